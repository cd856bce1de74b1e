package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var usernameFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the server and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, cfg, err := ctx.newClient()
			if err != nil {
				return err
			}

			username := strings.TrimSpace(usernameFlag)
			if username == "" {
				username = cfg.Server.Username
			}
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				return fmt.Errorf("username must not be empty")
			}

			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			if err := api.Authenticate(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := ctx.writeToken(api.Session().Token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", cfg.Server.URL, username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&usernameFlag, "username", "u", "", "Username (defaults to server.username from config)")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.clearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	// Piped input, e.g. in scripts.
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
