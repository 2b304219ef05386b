//go:build integration

package integration

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkflow_LoginAndQuery logs in through the CLI and queries the tenant
// with the saved session
func TestWorkflow_LoginAndQuery(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCLI(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("login")
	require.NoError(t, err, "Failed to log in: %s", stderr)
	assert.Contains(t, stdout, "Successfully logged in")

	stdout, stderr, err = runner.Run("sessions", "list", "--output", "json")
	require.NoError(t, err, "Failed to list sessions: %s", stderr)
	AssertJSONOutput(t, stdout)
	assert.Contains(t, stdout, `"current": true`)

	stdout, stderr, err = runner.Run("info", "--output", "json")
	require.NoError(t, err, "Failed to get info: %s", stderr)
	AssertJSONOutput(t, stdout)

	_, stderr, err = runner.Run("logout")
	require.NoError(t, err, "Failed to log out: %s", stderr)
}

// TestWorkflow_OutputFormats checks the output formats of list commands
func TestWorkflow_OutputFormats(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCLI(t)

	runner := NewCommandRunner(config, t)

	for _, args := range [][]string{
		{"inventory", "list", "--page-size", "5"},
		{"alarms", "list", "--page-size", "5", "--status", "ACTIVE"},
		{"events", "list", "--page-size", "5", "--date-from", "-24h"},
		{"applications", "list", "--page-size", "5"},
	} {
		stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
		require.NoError(t, err, "%v failed: %s", args, stderr)
		AssertJSONOutput(t, stdout)

		stdout, stderr, err = runner.Run(append(args, "--output", "yaml")...)
		require.NoError(t, err, "%v failed: %s", args, stderr)
		AssertYAMLOutput(t, stdout)

		_, stderr, err = runner.Run(args...)
		require.NoError(t, err, "%v failed: %s", args, stderr)
	}
}

// TestWorkflow_TenantOptions writes a tenant option and reads it back
func TestWorkflow_TenantOptions(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCLI(t)

	runner := NewCommandRunner(config, t)

	key := GenerateTestName("it.option")

	_, stderr, err := runner.Run("options", "set", "integration", key, "first")
	require.NoError(t, err, "Failed to set option: %s", stderr)

	_, stderr, err = runner.Run("options", "set", "integration", key, "second")
	require.NoError(t, err, "Failed to update option: %s", stderr)

	WaitForCondition(t, func() bool {
		stdout, _, err := runner.Run("options", "get", "integration", key, "--output", "json")
		if err != nil {
			return false
		}

		var option struct {
			Value string `json:"value"`
		}

		return json.Unmarshal([]byte(stdout), &option) == nil && option.Value == "second"
	}, 30*time.Second, "option update to become visible")
}

// TestWorkflow_ErrorHandling checks that API errors surface as failures
func TestWorkflow_ErrorHandling(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingCLI(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.Run("inventory", "get", "0")
	require.Error(t, err)
	assert.Contains(t, stderr, "404")

	_, _, err = runner.Run("inventory", "list", "--output", "xml")
	require.Error(t, err)
}
