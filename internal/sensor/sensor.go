// Package sensor provides an edge-triggered visibility sensor for the
// sentinel item of a paged list.
package sensor

import "sync"

// Sensor observes one sentinel target at a time
type Sensor interface {
	// Observe starts watching target. A different target re-arms the sensor.
	Observe(target string)

	// Disconnect releases the current target
	Disconnect()
}

// Option configures a Visibility sensor
type Option func(*Visibility)

// WithGuard suppresses the callback while guard returns false.
// A suppressed transition is still consumed: the sensor fires again only
// after the target leaves view and re-enters.
func WithGuard(guard func() bool) Option {
	return func(v *Visibility) {
		v.guard = guard
	}
}

// Visibility fires onVisible once per not-visible -> visible transition of
// the observed target. The owning list reports visibility via Report.
type Visibility struct {
	mu        sync.Mutex
	onVisible func()
	guard     func() bool

	target  string
	active  bool
	visible bool
}

var _ Sensor = (*Visibility)(nil)

// New creates a sensor that calls onVisible when the target scrolls into view
func New(onVisible func(), opts ...Option) *Visibility {
	v := &Visibility{onVisible: onVisible}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Visibility) Observe(target string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.active && v.target == target {
		return
	}
	v.target = target
	v.active = true
	v.visible = false
}

func (v *Visibility) Disconnect() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.target = ""
	v.active = false
	v.visible = false
}

// Rearm forgets the last reported visibility of the current target, so the
// next visible report fires even if the target never left view
func (v *Visibility) Rearm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = false
}

// Report records the current visibility of the observed target and fires
// the callback on a transition into view. It returns whether it fired.
func (v *Visibility) Report(visible bool) bool {
	v.mu.Lock()
	if !v.active {
		v.mu.Unlock()
		return false
	}
	entered := visible && !v.visible
	v.visible = visible
	guard := v.guard
	onVisible := v.onVisible
	v.mu.Unlock()

	if !entered || onVisible == nil {
		return false
	}
	if guard != nil && !guard() {
		return false
	}
	onVisible()
	return true
}
