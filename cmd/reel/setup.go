package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/catalog"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure TMDB credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			return runSetupFlow(a)
		},
	}
}

// runSetupFlow prompts for an API key until one is accepted, then saves it
func runSetupFlow(a *app) error {
	cfg := a.cfg

	fmt.Println()
	fmt.Println("Welcome to Reel!")
	fmt.Println()
	fmt.Println("Reel needs a TMDB API key. Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter your TMDB API key: ")
		key, err := readPassword(os.Stdin, reader)
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.Catalog.APIKey = key
		cfg.Catalog.AccessToken = ""

		fmt.Println()
		if err := verifyWithSpinner(cfg, a); err != nil {
			fmt.Printf("\n✗ Could not reach TMDB: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	var err error
	if a.configFile != "" {
		err = config.SaveConfigTo(cfg, a.configFile)
	} else {
		err = config.SaveConfig(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run reel again to start the application.")

	return nil
}

// verifyWithSpinner fetches trending once to check the key, with a visual spinner
func verifyWithSpinner(cfg *config.Config, a *app) error {
	client, err := catalog.NewClient(cfg, a.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)

	// Start verification in background
	go func() {
		_, err := client.FetchTrending(ctx)
		resultCh <- err
	}()

	// Spinner animation
	frame := 0

	// Print initial spinner
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			// Clear spinner line
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
