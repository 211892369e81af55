package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result MessageResult

			if err := client.Post("/api/register", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result LoginResult

			if err := client.Post("/api/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Record a logout and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult
			if err := client.Post("/api/logout", nil, &result); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your farm",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := fetchUserData()
			if err != nil {
				return err
			}

			output(cmd).Print(*user)
			return nil
		},
	}
}

func newLastLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last-login",
		Short: "Show when you last logged in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LastLoginResult

			if err := client.Get("/api/last-login", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func fetchUserData() (*UserData, error) {
	var result UserDataResult
	if err := client.Get("/api/user-data", &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}
