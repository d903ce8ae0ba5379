package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"complaintbox/internal/client/app"
	"complaintbox/internal/client/session"
)

var (
	name     string
	email    string
	password string
)

// Cmd represents the account command
var Cmd = &cobra.Command{
	Use:   "account",
	Short: "Register, sign in, or sign out against the relay service",
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account and store the issued credential locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.Relay.Register(cmd.Context(), name, email, password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		if err := a.State.SetSession(resp.Token, session.User{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
		}); err != nil {
			return err
		}
		if err := a.State.MarkOnboardingSeen(); err != nil {
			return err
		}

		fmt.Printf("Welcome, %s!\n", resp.User.Name)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the issued credential locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.Relay.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := a.State.SetSession(resp.Token, session.User{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
		}); err != nil {
			return err
		}

		fmt.Printf("Welcome back, %s!\n", resp.User.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential and cached profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.State.ClearSession(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the cached signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.State.Authenticated() {
			fmt.Println("Not signed in.")
			return nil
		}
		_, user := a.State.Session()
		if user == nil {
			fmt.Println("Signed in (no cached profile).")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "password")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(loginCmd)
	Cmd.AddCommand(logoutCmd)
	Cmd.AddCommand(whoamiCmd)
}
