//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
	"github.com/fivetwenty-io/c8y-client/pkg/c8yclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	URL      string
	Tenant   string
	User     string
	Password string
	CLIPath  string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		URL:      os.Getenv("C8Y_URL"),
		Tenant:   os.Getenv("C8Y_TENANT"),
		User:     os.Getenv("C8Y_USER"),
		Password: os.Getenv("C8Y_PASSWORD"),
		CLIPath:  getCLIPath(),
		Verbose:  os.Getenv("C8Y_VERBOSE") == "true",
	}
}

// getCLIPath determines the path to the c8y binary
func getCLIPath() string {
	if path := os.Getenv("C8Y_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../c8y",
		"./c8y",
		"../c8y",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "c8y"
}

// SkipIfMissingConfig skips test if no tenant is configured
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.URL == "" || config.User == "" || config.Password == "" {
		t.Skip("C8Y_URL, C8Y_USER and C8Y_PASSWORD must be set, skipping integration test")
	}
}

// SkipIfMissingCLI skips test if the c8y binary is not available
func (config *TestConfig) SkipIfMissingCLI(t *testing.T) {
	t.Helper()
	config.SkipIfMissingConfig(t)

	if _, err := exec.LookPath(config.CLIPath); err != nil {
		t.Skipf("c8y binary not found at %s, skipping integration test", config.CLIPath)
	}
}

// NewClient creates a basic auth client for the configured tenant
func (config *TestConfig) NewClient(ctx context.Context) (c8y.Client, error) {
	return c8yclient.NewWithPassword(ctx, config.URL, config.Tenant, config.User, config.Password)
}

// CommandRunner provides utilities for running c8y commands
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a c8y command and returns output. The tenant credentials are
// passed through the environment and sessions go to a config file private to
// the runner.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.CLIPath, args...)
	cmd.Env = append(os.Environ(),
		"C8Y_URL="+runner.config.URL,
		"C8Y_TENANT="+runner.config.Tenant,
		"C8Y_USER="+runner.config.User,
		"C8Y_PASSWORD="+runner.config.Password,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CLIPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique name for test resources
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// WaitForCondition polls condition until it holds or timeout expires
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}

		time.Sleep(time.Second)
	}

	t.Fatalf("Timed out waiting for condition: %s", message)
}

// AssertJSONOutput validates that output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("Output is not valid JSON: %v\nOutput: %s", err, output)
	}
}

// AssertYAMLOutput validates that output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var result interface{}
	if err := yaml.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("Output is not valid YAML: %v\nOutput: %s", err, output)
	}
}
