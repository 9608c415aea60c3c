package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pipe-works/ipc/digest"
	"github.com/pipe-works/ipc/provenance"
)

// RunVerify checks the shape of a digest. With a second argument it also
// checks that the payload in that file hashes to the digest.
func RunVerify(cmd *cobra.Command, args []string) error {
	want, err := digest.Parse(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return printLine(cmd, "ok")
	}

	payload, name, err := readPayload(cmd, args[1:])
	if err != nil {
		return err
	}
	got, err := provenance.PayloadHash(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if got != want {
		loggerFrom(cmd).Debug("digest mismatch", zap.String("want", want.String()), zap.String("got", got.String()))
		return fmt.Errorf("%s: payload hashes to %s, not %s", name, got, want)
	}
	return printLine(cmd, "ok")
}
