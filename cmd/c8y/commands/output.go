package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
)

// renderOutput writes data in the selected output format. table fills the
// table for the table format.
func renderOutput(data interface{}, table func(*tablewriter.Table)) error {
	return renderTo(os.Stdout, viper.GetString("output"), data, table)
}

func renderTo(w io.Writer, format string, data interface{}, table func(*tablewriter.Table)) error {
	switch format {
	case constants.FormatJSON:
		return writeJSON(w, data)
	case constants.FormatYAML:
		return writeYAML(w, data)
	case constants.FormatTable, "":
		t := tablewriter.NewWriter(w)
		table(t)

		err := t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}

	return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", constants.JSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// writeYAML goes through JSON first so that custom fragments, which only
// have a JSON encoding, appear in the document.
func writeYAML(w io.Writer, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	var generic interface{}

	err = json.Unmarshal(raw, &generic)
	if err != nil {
		return fmt.Errorf("decoding JSON document: %w", err)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(len(constants.JSONIndent))

	err = encoder.Encode(generic)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func orNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func truncate(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")

	if len(text) <= constants.MaxTextDisplayLength {
		return text
	}

	return text[:constants.MaxTextDisplayLength-3] + "..."
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Local().Format(time.RFC3339)
}

// parseDate accepts an RFC3339 timestamp or a duration relative to now
// ("-1h", "-30m", "-168h").
func parseDate(value string, now time.Time) (*time.Time, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // unset flag
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return &parsed, nil
	}

	offset, err := time.ParseDuration(value)
	if err == nil {
		relative := now.Add(offset)

		return &relative, nil
	}

	return nil, fmt.Errorf("%w: %q", constants.ErrInvalidDate, value)
}
