package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/c8y-client/internal/auth"
	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
	"github.com/fivetwenty-io/c8y-client/pkg/c8yclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
		tfaCode  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a Cumulocity tenant",
		Long:  "Log in through OAI-Secure and save the issued token as a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			baseURL := viper.GetString("url")
			if baseURL == "" {
				fmt.Print("Tenant URL: ")
				baseURL, _ = reader.ReadString('\n')
				baseURL = strings.TrimSpace(baseURL)
			}

			if baseURL == "" {
				return constants.ErrNoBaseURLConfigured
			}

			tenant := viper.GetString("tenant")
			username = firstNonEmpty(username, viper.GetString("user"))
			password = firstNonEmpty(password, viper.GetString("password"))

			if username == "" {
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			if username == "" || password == "" {
				return constants.ErrCredentialsNeeded
			}

			config := &c8y.Config{
				BaseURL:          baseURL,
				Tenant:           tenant,
				Username:         username,
				Password:         password,
				TFACode:          tfaCode,
				UseOAuthInternal: true,
			}

			if viper.GetBool("verbose") {
				config.Logger = NewLogger(true)
				config.Debug = true
			}

			ctx := context.Background()

			client, err := c8yclient.New(ctx, config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			user, err := client.CurrentUser().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			current, err := client.CurrentTenant().Get(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to read current tenant: %w", err)
			}

			token, err := client.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}

			session := &SessionConfig{
				URL:      config.BaseURL,
				Tenant:   current.Name,
				Username: user.UserName,
				Token:    token,
			}

			expiresAt, err := auth.ParseJWTExpiry(token)
			if err == nil {
				session.TokenExpiresAt = &expiresAt
			}

			now := time.Now()
			session.LastRefreshed = &now

			configStruct := loadConfig()
			name := sessionName(config.BaseURL)
			configStruct.Sessions[name] = session
			configStruct.CurrentSession = name

			err = saveConfigStruct(configStruct)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s as %s\n", config.BaseURL, user.UserName)
			fmt.Printf("Tenant: %s (%s)\n", current.Name, current.DomainName)

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&tfaCode, "tfa-code", "", "two-factor authentication code")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the current session",
		Long:  "Forget the token of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if config.CurrentSession == "" {
				return constants.ErrNoSessions
			}

			delete(config.Sessions, config.CurrentSession)
			config.CurrentSession = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
