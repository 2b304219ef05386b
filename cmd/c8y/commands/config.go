package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/c8y-client/internal/auth"
	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
	"github.com/fivetwenty-io/c8y-client/pkg/c8yclient"
)

// Config represents the CLI configuration.
type Config struct {
	Sessions       map[string]*SessionConfig `json:"sessions,omitempty"        yaml:"sessions,omitempty"`
	CurrentSession string                    `json:"current_session,omitempty" yaml:"current_session,omitempty"`

	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// SessionConfig is a saved login to one tenant. Passwords are never stored.
type SessionConfig struct {
	URL            string     `json:"url"                        yaml:"url"`
	Tenant         string     `json:"tenant,omitempty"           yaml:"tenant,omitempty"`
	Username       string     `json:"username,omitempty"         yaml:"username,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	LastRefreshed  *time.Time `json:"last_refreshed,omitempty"   yaml:"last_refreshed,omitempty"`
}

// NewSessionsCommand creates the sessions command group.
func NewSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Manage saved sessions",
		Long:    "List saved tenant sessions and select the current one",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			names := make([]string, 0, len(config.Sessions))
			for name := range config.Sessions {
				names = append(names, name)
			}

			sort.Strings(names)

			sessions := make([]map[string]interface{}, 0, len(names))
			for _, name := range names {
				session := config.Sessions[name]
				sessions = append(sessions, map[string]interface{}{
					"name":     name,
					"url":      session.URL,
					"tenant":   session.Tenant,
					"username": session.Username,
					"current":  name == config.CurrentSession,
				})
			}

			return renderOutput(sessions, func(table *tablewriter.Table) {
				table.Header("Name", "URL", "Tenant", "Username", "Current")

				for _, name := range names {
					session := config.Sessions[name]
					current := ""

					if name == config.CurrentSession {
						current = "*"
					}

					_ = table.Append(name, session.URL, orNA(session.Tenant), orNA(session.Username), current)
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use NAME",
		Short: "Select the current session",
		Args:  cobra.ExactArgs(constants.OneArgument),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if _, exists := config.Sessions[args[0]]; !exists {
				return fmt.Errorf("%w: '%s'", constants.ErrSessionNotFound, args[0])
			}

			config.CurrentSession = args[0]

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Using session '%s'\n", args[0])

			return nil
		},
	})

	return cmd
}

// loadConfig reads the configuration held by viper.
func loadConfig() *Config {
	config := &Config{
		Sessions:       make(map[string]*SessionConfig),
		CurrentSession: viper.GetString("current_session"),
		Output:         viper.GetString("output"),
	}

	for name, raw := range viper.GetStringMap("sessions") {
		sessionMap, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		config.Sessions[name] = parseSessionConfig(sessionMap)
	}

	return config
}

func parseSessionConfig(sessionMap map[string]interface{}) *SessionConfig {
	session := &SessionConfig{}

	session.URL, _ = sessionMap["url"].(string)
	session.Tenant, _ = sessionMap["tenant"].(string)
	session.Username, _ = sessionMap["username"].(string)
	session.Token, _ = sessionMap["token"].(string)
	session.TokenExpiresAt = parseTimeValue(sessionMap["token_expires_at"])
	session.LastRefreshed = parseTimeValue(sessionMap["last_refreshed"])

	return session
}

func parseTimeValue(raw interface{}) *time.Time {
	switch value := raw.(type) {
	case time.Time:
		return &value
	case string:
		parsed, err := time.Parse(time.RFC3339, value)
		if err == nil {
			return &parsed
		}
	}

	return nil
}

// configFilePath returns the file the configuration is written to.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".c8y")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep viper in sync for later lookups in the same process.
	var fresh map[string]interface{}

	err = yaml.Unmarshal(data, &fresh)
	if err == nil {
		viper.Set("sessions", fresh["sessions"])
		viper.Set("current_session", config.CurrentSession)
	}

	return nil
}

// sessionName derives the session key from a tenant URL.
func sessionName(baseURL string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")

	if idx := strings.IndexAny(name, "/:"); idx != -1 {
		name = name[:idx]
	}

	return name
}

// currentSession returns the selected session, if any.
func currentSession(config *Config) *SessionConfig {
	if config.CurrentSession != "" {
		return config.Sessions[config.CurrentSession]
	}

	for _, session := range config.Sessions {
		return session
	}

	return nil
}

// sessionHost returns the host and port of a tenant URL, lower cased.
func sessionHost(baseURL string) string {
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	return strings.ToLower(parsed.Host)
}

// findSession returns the session saved for the tenant at baseURL, if any.
func findSession(config *Config, baseURL string) *SessionConfig {
	host := sessionHost(baseURL)
	if host == "" {
		return nil
	}

	if session := currentSession(config); session != nil && sessionHost(session.URL) == host {
		return session
	}

	names := make([]string, 0, len(config.Sessions))
	for name := range config.Sessions {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if session := config.Sessions[name]; session != nil && sessionHost(session.URL) == host {
			return session
		}
	}

	return nil
}

// resolveSession picks the session whose credentials may be sent. When the
// URL is overridden, only a session saved for that same tenant qualifies.
func resolveSession(config *Config) *SessionConfig {
	override := viper.GetString("url")
	if override == "" {
		return currentSession(config)
	}

	return findSession(config, override)
}

// buildClientConfig merges flags and environment over the session of the
// target tenant. Flags and C8Y_* variables win.
func buildClientConfig() (*c8y.Config, *SessionConfig, error) {
	session := resolveSession(loadConfig())
	if session == nil {
		session = &SessionConfig{}
	}

	config := &c8y.Config{
		BaseURL:  firstNonEmpty(viper.GetString("url"), session.URL),
		Tenant:   firstNonEmpty(viper.GetString("tenant"), session.Tenant),
		Username: firstNonEmpty(viper.GetString("user"), session.Username),
		Password: viper.GetString("password"),
		Token:    viper.GetString("token"),
	}

	if config.BaseURL == "" {
		return nil, nil, constants.ErrNoBaseURLConfigured
	}

	if viper.GetBool("verbose") {
		config.Logger = NewLogger(true)
		config.Debug = true
	}

	return config, session, nil
}

// CreateClient creates a client from flags, environment and the current
// session. A saved session token is used as long as it is valid and renewed
// through OAI-Secure when C8Y_PASSWORD is available.
func CreateClient(ctx context.Context) (c8y.Client, error) {
	config, session, err := buildClientConfig()
	if err != nil {
		return nil, err
	}

	if session.Token != "" && config.Username == "" {
		tenant, user, err := auth.ParseJWTSubject(session.Token)
		if err == nil && user != "" {
			config.Tenant = firstNonEmpty(config.Tenant, tenant)
			config.Username = user
		}
	}

	switch {
	case config.Token != "":
	case session.Token != "" && config.Username != "":
		config.TokenSource = auth.NewConfigTokenManager(&auth.OAuthInternalConfig{
			BaseURL:     config.BaseURL,
			Tenant:      config.Tenant,
			Username:    config.Username,
			Password:    config.Password,
			AccessToken: session.Token,
		}, NewConfigPersister())
	case config.Username != "" && config.Password != "":
	default:
		return nil, constants.ErrNotAuthenticated
	}

	client, err := c8yclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
