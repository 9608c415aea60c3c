package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pipe-works/ipc/internal/config"
	"github.com/pipe-works/ipc/provenance"
	"github.com/pipe-works/ipc/telemetry"
)

// RunFile is the YAML layout accepted by the record command.
type RunFile struct {
	Payload      any     `yaml:"payload"`
	SystemPrompt string  `yaml:"system_prompt"`
	Model        string  `yaml:"model"`
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int64   `yaml:"max_tokens"`
	Seed         int64   `yaml:"seed"`
	Output       *string `yaml:"output"`
}

// Run converts the file into a provenance.Run.
func (f RunFile) Run() provenance.Run {
	return provenance.Run{
		Payload:      f.Payload,
		SystemPrompt: f.SystemPrompt,
		Model:        f.Model,
		Temperature:  f.Temperature,
		MaxTokens:    f.MaxTokens,
		Seed:         f.Seed,
		Output:       f.Output,
	}
}

// LoadRunFile reads a YAML run file.
func LoadRunFile(path string) (RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	var f RunFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return RunFile{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if f.Payload == nil {
		return RunFile{}, fmt.Errorf("%s: payload is required", path)
	}
	return f, nil
}

func RunRecord(cmd *cobra.Command, args []string) error {
	logger := loggerFrom(cmd)

	f, err := LoadRunFile(args[0])
	if err != nil {
		return err
	}

	var opts []provenance.RecorderOption
	runID, err := OptionalStringFlag(cmd, "run-id")
	if err != nil {
		return err
	}
	if runID != "" {
		opts = append(opts, provenance.WithRunIDFunc(func() string { return runID }))
	}

	format, err := OptionalStringFlag(cmd, "format")
	if err != nil {
		return err
	}
	format, err = config.ParseFormat(format)
	if err != nil {
		return fmt.Errorf("--format: %w", err)
	}

	inst, err := telemetry.NewInstrumentation(telemetry.Options{
		Tracer:        otel.Tracer("github.com/pipe-works/ipc/cmd/ipchash"),
		MeterProvider: otel.GetMeterProvider(),
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rec, err := inst.Record(ctx, provenance.NewRecorder(opts...), f.Run())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	logger.Info("run recorded",
		zap.String("run_id", rec.RunID),
		zap.String("ipc_id", rec.IPCID.String()),
		zap.Bool("has_output", rec.HasOutput()),
	)

	return writeRecord(cmd, rec, format)
}

func writeRecord(cmd *cobra.Command, rec provenance.Record, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case config.FormatYAML:
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New("unsupported record format " + format)
	}
}
