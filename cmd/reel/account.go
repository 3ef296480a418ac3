package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/domain"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between the light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openCommandStore(); err != nil {
				return err
			}
			dark, err := a.store.ToggleTheme()
			if err != nil {
				return err
			}
			mode := "light"
			if dark {
				mode = "dark"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", mode)
			return nil
		},
	}
}

func newLoginCmd(a *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Long: `Sign in with a username and password. The password is checked
for presence only and never stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openCommandStore(); err != nil {
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				line, err := readLine(reader)
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				username = line
			}

			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			password, err := readPassword(cmd.InOrStdin(), reader)
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			user, err := a.store.Login(domain.Credentials{Username: username, Password: password})
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					return errors.New("username and password are required")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Signed in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openCommandStore(); err != nil {
				return err
			}
			if !a.store.Snapshot().Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			if err := a.store.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo when in is a terminal, or a plain line
// from r otherwise. r must buffer in.
func readPassword(in io.Reader, r *bufio.Reader) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return readLine(r)
	}
	password, err := term.ReadPassword(int(f.Fd()))
	if err != nil {
		return "", err
	}
	return string(password), nil
}
