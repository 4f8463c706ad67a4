package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

// HandleCheckError prints a user-facing description of a failed check and
// returns the matching exit code. duration is how long the check ran
// before failing; zero omits it.
func HandleCheckError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = plainColors{}
	}
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration.Round(time.Microsecond))
	}

	var timeout TimeoutError
	switch {
	case errors.As(err, &timeout):
		fmt.Fprintf(out, "%sCheck timed out%s (%s limit on %s).%s Try --algo rho for very large candidates.\n",
			colors.Yellow(), suffix, timeout.Limit, timeout.Operation, colors.Reset())
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sCheck timed out%s.%s Try --algo rho for very large candidates.\n", colors.Yellow(), suffix, colors.Reset())
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCheck canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	default:
		fmt.Fprintf(out, "%sCheck failed%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
	}
	return ExitCodeFor(err)
}
