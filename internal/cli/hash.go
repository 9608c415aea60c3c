package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pipe-works/ipc"
	"github.com/pipe-works/ipc/digest"
	"github.com/pipe-works/ipc/normalize"
	"github.com/pipe-works/ipc/provenance"
)

func RunPayload(cmd *cobra.Command, args []string) error {
	logger := loggerFrom(cmd)

	payload, name, err := readPayload(cmd, args)
	if err != nil {
		return err
	}

	canonicalOnly, err := cmd.Flags().GetBool("canonical")
	if err != nil {
		return fmt.Errorf("failed to read --canonical flag: %w", err)
	}

	if canonicalOnly {
		text, err := ipc.CanonicalizePayload(payload)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return printLine(cmd, text)
	}

	h, err := provenance.PayloadHash(payload)
	if err != nil {
		if path, ok := ipc.MismatchPath(err); ok {
			logger.Debug("payload rejected", zap.String("input", name), zap.String("path", path))
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	logger.Debug("payload hashed", zap.String("input", name), zap.String("digest", h.String()))
	return printLine(cmd, h.String())
}

func RunPrompt(cmd *cobra.Command, args []string) error {
	return runText(cmd, args, normalize.Prompt, "prompt")
}

func RunOutput(cmd *cobra.Command, args []string) error {
	return runText(cmd, args, normalize.Output, "output")
}

func runText(cmd *cobra.Command, args []string, norm func(string) string, kind string) error {
	data, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	normalizedOnly, err := cmd.Flags().GetBool("normalized")
	if err != nil {
		return fmt.Errorf("failed to read --normalized flag: %w", err)
	}

	text := norm(string(data))
	if normalizedOnly {
		return printLine(cmd, text)
	}

	h := digest.SumString(text)
	loggerFrom(cmd).Debug(kind+" hashed", zap.String("input", name), zap.String("digest", h.String()))
	return printLine(cmd, h.String())
}

func RunID(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	inputHash, err := flags.GetString("input-hash")
	if err != nil {
		return fmt.Errorf("failed to read --input-hash flag: %w", err)
	}
	systemPromptHash, err := flags.GetString("system-prompt-hash")
	if err != nil {
		return fmt.Errorf("failed to read --system-prompt-hash flag: %w", err)
	}
	model, err := flags.GetString("model")
	if err != nil {
		return fmt.Errorf("failed to read --model flag: %w", err)
	}
	temperature, err := flags.GetFloat64("temperature")
	if err != nil {
		return fmt.Errorf("failed to read --temperature flag: %w", err)
	}
	maxTokens, err := flags.GetInt64("max-tokens")
	if err != nil {
		return fmt.Errorf("failed to read --max-tokens flag: %w", err)
	}
	seed, err := flags.GetInt64("seed")
	if err != nil {
		return fmt.Errorf("failed to read --seed flag: %w", err)
	}

	// Hash arguments are used verbatim; a malformed one still yields an id.
	for flag, h := range map[string]string{"input-hash": inputHash, "system-prompt-hash": systemPromptHash} {
		if !digest.Digest(h).Valid() {
			loggerFrom(cmd).Warn("hash argument is not digest shaped", zap.String("flag", flag))
		}
	}

	id := ipc.ComputeIPCID(digest.Digest(inputHash), digest.Digest(systemPromptHash), model, temperature, maxTokens, seed)
	return printLine(cmd, id.String())
}
