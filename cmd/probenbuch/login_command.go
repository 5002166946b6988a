package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"probenbuch/internal/baserow"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var token string
	var save bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Validate the API token and resolve the database URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.stateStore()
			if err != nil {
				return err
			}

			client, err := baserow.Login(cmd.Context(), cfg, store, token, save)
			if err != nil {
				if errors.Is(err, baserow.ErrUnauthorized) {
					return errors.New("login failed: the server rejected the token")
				}
				return err
			}

			ctx.ensureLogger().Info("login succeeded", "base_url", client.BaseURL(), "token_saved", save)
			fmt.Fprintf(cmd.OutOrStdout(), "Login successful (%s)\n", client.BaseURL())
			if save {
				fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "API token (falls back to config, API_TOKEN, or the saved state)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the token in the auth state file")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.stateStore()
			if err != nil {
				return err
			}
			if err := baserow.Logout(store); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
