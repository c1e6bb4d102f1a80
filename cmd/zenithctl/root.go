package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vasu1712/zenith-backend/internal/client"
)

var (
	serverURL string
	token     string
)

var rootCmd = &cobra.Command{
	Use:           "zenithctl",
	Short:         "Operate a Zenith summit backend",
	Long:          `Submit registrations and read the admin views of a running Zenith backend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", envOr("ZENITH_SERVER", "http://localhost:8080"),
		"base URL of the backend (env ZENITH_SERVER)")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("ZENITH_TOKEN"),
		"admin session token (env ZENITH_TOKEN)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *client.Client {
	c := client.New(serverURL)
	c.Token = token
	return c
}

// adminClient returns a client with a session, logging in with
// ADMIN_EMAIL/ADMIN_PASSWORD when no token was given.
func adminClient(ctx context.Context) (*client.Client, error) {
	c := newClient()
	if c.Token != "" {
		return c, nil
	}
	email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil, errors.New("no session: pass --token, set ZENITH_TOKEN, or set ADMIN_EMAIL and ADMIN_PASSWORD")
	}
	if _, err := c.Login(ctx, email, password); err != nil {
		return nil, err
	}
	return c, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
