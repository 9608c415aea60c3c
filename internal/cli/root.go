// Package cli implements the ipchash command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pipe-works/ipc/internal/config"
	"github.com/pipe-works/ipc/internal/logging"
)

type configKey struct{}

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ipchash",
		Short: "Compute deterministic provenance hashes for generation runs",
		Long: `ipchash computes the content hashes and the composite IPC id of a
generation run: the canonical payload hash, the normalized system prompt and
output hashes, and the id that joins them with the model parameters.

Results are printed on stdout. Logs are written as JSON lines on stderr.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error (default $IPCHASH_LOG_LEVEL or warn)")

	payloadCmd := &cobra.Command{
		Use:   "payload [file]",
		Short: "Hash a JSON or YAML payload mapping read from file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunPayload,
	}
	payloadCmd.Flags().String("format", "", "Payload format: json|yaml (default from extension or $IPCHASH_PAYLOAD_FORMAT)")
	payloadCmd.Flags().Bool("canonical", false, "Print the canonical form instead of its hash")

	promptCmd := &cobra.Command{
		Use:   "prompt [file]",
		Short: "Hash a system prompt read from file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunPrompt,
	}
	promptCmd.Flags().Bool("normalized", false, "Print the normalized text instead of its hash")

	outputCmd := &cobra.Command{
		Use:   "output [file]",
		Short: "Hash generated output text read from file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunOutput,
	}
	outputCmd.Flags().Bool("normalized", false, "Print the normalized text instead of its hash")

	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Compose the IPC id from hashes and model parameters",
		Args:  cobra.NoArgs,
		RunE:  RunID,
	}
	idCmd.Flags().String("input-hash", "", "Payload hash")
	idCmd.Flags().String("system-prompt-hash", "", "System prompt hash")
	idCmd.Flags().String("model", "", "Model identifier")
	idCmd.Flags().Float64("temperature", 0, "Sampling temperature")
	idCmd.Flags().Int64("max-tokens", 0, "Maximum generated tokens")
	idCmd.Flags().Int64("seed", 0, "Sampler seed")
	for _, name := range []string{"input-hash", "system-prompt-hash", "model", "temperature", "max-tokens", "seed"} {
		_ = idCmd.MarkFlagRequired(name)
	}

	recordCmd := &cobra.Command{
		Use:   "record <run.yaml>",
		Short: "Compute the full provenance record of a YAML run file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRecord,
	}
	recordCmd.Flags().String("run-id", "", "Use this run id instead of a random UUID")
	recordCmd.Flags().String("format", "json", "Output format: json|yaml")

	verifyCmd := &cobra.Command{
		Use:   "verify <digest> [file]",
		Short: "Check that a digest is well formed, and optionally that a payload hashes to it",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  RunVerify,
	}
	verifyCmd.Flags().String("format", "", "Payload format: json|yaml (default from extension or $IPCHASH_PAYLOAD_FORMAT)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ipchash %s\n", version)
		},
	}

	rootCmd.AddCommand(
		payloadCmd,
		promptCmd,
		outputCmd,
		idCmd,
		recordCmd,
		verifyCmd,
		versionCmd,
	)

	return rootCmd
}

// Execute runs root and logs the error of the failing command, if any.
func Execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err != nil && cmd != nil {
		loggerFrom(cmd).Error("command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
	}
	return err
}

// setup loads the environment config and installs the logger on the command
// context.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := OptionalStringFlag(cmd, "log-level")
	if err != nil {
		return err
	}
	if level == "" {
		level = cfg.LogLevel
	}

	logger, err := logging.NewLogger(logging.Config{
		Component: "ipchash",
		Level:     level,
		Output:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
	return nil
}

func configFrom(cmd *cobra.Command) config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
			return cfg
		}
	}
	return config.Config{LogLevel: "warn", PayloadFormat: config.FormatJSON}
}

func loggerFrom(cmd *cobra.Command) *zap.Logger {
	return logging.FromContext(cmd.Context())
}
