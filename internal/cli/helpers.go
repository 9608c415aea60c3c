package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pipe-works/ipc/internal/config"
)

// stdinName is the display name of standard input.
const stdinName = "-"

// readInput reads the file named by the first argument, or stdin when there is
// no argument or the argument is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, stdinName, fmt.Errorf("read stdin: %w", err)
		}
		return data, stdinName, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, args[0], fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, args[0], nil
}

// decodePayload decodes a single JSON or YAML document. JSON numbers are kept
// as json.Number so integers are not turned into floats.
func decodePayload(data []byte, format string) (any, error) {
	switch format {
	case config.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, errors.New("decode json: unexpected data after the first value")
		}
		return v, nil

	case config.FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unsupported payload format %q", format)
	}
}

// readPayload reads and decodes the payload named by args.
func readPayload(cmd *cobra.Command, args []string) (any, string, error) {
	data, name, err := readInput(cmd, args)
	if err != nil {
		return nil, name, err
	}

	path := ""
	if name != stdinName {
		path = name
	}
	format, err := ParsePayloadFormat(cmd, path)
	if err != nil {
		return nil, name, err
	}

	payload, err := decodePayload(data, format)
	if err != nil {
		return nil, name, fmt.Errorf("%s: %w", name, err)
	}
	return payload, name, nil
}

func printLine(cmd *cobra.Command, s string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}
