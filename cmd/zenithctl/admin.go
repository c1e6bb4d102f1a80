package main

import (
	"github.com/spf13/cobra"
)

var loginEmail, loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as admin and print the session token",
	Long: `Log in with the admin credentials and print the token as JSON.

Examples:
  zenithctl login --email admin@zenith.test --password secret
  export ZENITH_TOKEN=$(zenithctl login --email ... --password ... | jq -r .token)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newClient().Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "List stored registrations as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := adminClient(cmd.Context())
		if err != nil {
			return err
		}
		recs, err := c.ListRegistrations(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), recs)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the registration count and live background viewers",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := adminClient(cmd.Context())
		if err != nil {
			return err
		}
		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "admin email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "admin password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, registrationsCmd, statsCmd)
}
