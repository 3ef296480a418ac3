package tui

import "github.com/mmcdole/reel/internal/state"

// ChannelObserver adapts state.Observer to a channel for Bubble Tea.
// The channel holds at most the latest snapshot: a stale undelivered one is
// replaced, so the UI never renders an outdated state after catching up.
type ChannelObserver struct {
	ch chan state.Snapshot
}

// NewChannelObserver creates an observer with a one-slot channel
func NewChannelObserver() *ChannelObserver {
	return &ChannelObserver{ch: make(chan state.Snapshot, 1)}
}

// Snapshots returns the receive side for WaitForSnapshotCmd
func (o *ChannelObserver) Snapshots() <-chan state.Snapshot {
	return o.ch
}

// OnSnapshot delivers snap without blocking
func (o *ChannelObserver) OnSnapshot(snap state.Snapshot) {
	for {
		select {
		case o.ch <- snap:
			return
		default:
		}
		// Full: drop the undelivered snapshot and retry
		select {
		case <-o.ch:
		default:
		}
	}
}
