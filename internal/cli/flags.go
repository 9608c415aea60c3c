package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pipe-works/ipc/internal/config"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

// ParsePayloadFormat resolves the payload format from, in order, the --format
// flag, the file extension and the environment config.
func ParsePayloadFormat(cmd *cobra.Command, path string) (string, error) {
	value, err := OptionalStringFlag(cmd, "format")
	if err != nil {
		return "", err
	}
	if value != "" {
		return config.ParseFormat(value)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return config.FormatJSON, nil
	case ".yaml", ".yml":
		return config.FormatYAML, nil
	}

	return config.ParseFormat(configFrom(cmd).PayloadFormat)
}
