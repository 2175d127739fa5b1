package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitBadInput    = 2 // invalid data, flags or config
	ExitUnavailable = 3 // missing file or URL, network failure, no converter
	ExitInterrupted = 130
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch serrors.GetCode(err) {
	case serrors.ErrCodeInvalidInput, serrors.ErrCodeInvalidHierarchy, serrors.ErrCodeInvalidFormat,
		serrors.ErrCodeInvalidPalette, serrors.ErrCodeInvalidConfig, serrors.ErrCodeInvalidPath:
		return ExitBadInput
	case serrors.ErrCodeNotFound, serrors.ErrCodeFileNotFound, serrors.ErrCodeNetwork, serrors.ErrCodeUnsupported:
		return ExitUnavailable
	}
	return ExitFailure
}

// ReportError writes err for a terminal user. Interrupts print nothing.
func ReportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+serrors.UserMessage(err))
}
