package proc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/rs/zerolog"
)

// PipeResult carries what a one-shot subprocess left behind. Stderr is
// diagnostic context only; the exit code (and whatever artifact the child
// was asked to produce) are the success signals, not stderr content.
type PipeResult struct {
	Stderr string
}

// RunPipe runs a one-shot subprocess feeding input on stdin.
//
// The stderr drain starts before anything is written to stdin and stays
// concurrent with the write. A child that fills its stderr pipe while the
// parent is still writing stdin would otherwise deadlock: the child blocks
// writing errors, the parent blocks waiting for it to read input. The
// drain reaches EOF when the child exits, so joining it before Wait is the
// safe reap order.
func RunPipe(ctx context.Context, logger zerolog.Logger, exePath string, args []string, input string) (*PipeResult, error) {
	cmd := exec.CommandContext(ctx, exePath, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdin pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", exePath, err)
	}

	logger.Debug().Str("exe", exePath).Int("pid", cmd.Process.Pid).Int("inputLen", len(input)).
		Msg("One-shot subprocess started")

	// Drain first, write second. Mandatory ordering.
	var errBuf bytes.Buffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		io.Copy(&errBuf, stderr)
	}()

	if _, err := io.WriteString(stdin, input); err != nil {
		// Child likely died early; fall through to Wait for the real cause.
		logger.Debug().Err(err).Msg("Writing subprocess stdin failed")
	}
	// Closing stdin signals end-of-input to the child.
	stdin.Close()

	<-drained
	waitErr := cmd.Wait()

	result := &PipeResult{Stderr: errBuf.String()}
	if waitErr != nil {
		return result, fmt.Errorf("%s exited abnormally: %w", exePath, waitErr)
	}
	return result, nil
}
