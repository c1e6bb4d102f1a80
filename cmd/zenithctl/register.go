package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vasu1712/zenith-backend/internal/registration"
)

var regForm registration.Form

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Submit a registration",
	Long: `Submit one registration form. The submission is sent exactly once;
a failure is reported and never retried.

Examples:
  zenithctl register --name "Ada Lovelace" --email ada@example.com \
    --college "IIT Delhi" --year 2 --phone 5550100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fl := registration.NewFlow(newClient(), 0)
		defer fl.Stop()

		status := fl.Submit(cmd.Context(), regForm)
		fmt.Fprintln(cmd.OutOrStdout(), status)
		if status != registration.StatusSuccess {
			return fmt.Errorf("registration %s", status)
		}
		return nil
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&regForm.Name, "name", "", "full name")
	f.StringVar(&regForm.Email, "email", "", "email address")
	f.StringVar(&regForm.College, "college", "", "college")
	f.StringVar(&regForm.Year, "year", "", "year of study")
	f.StringVar(&regForm.Phone, "phone", "", "phone number")
	for _, name := range []string{"name", "email", "college", "year", "phone"} {
		_ = registerCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(registerCmd)
}
