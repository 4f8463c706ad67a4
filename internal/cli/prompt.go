package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/agbru/primecheck/internal/config"
	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/report"
)

// InvalidInputMessage is shown when the prompted line is not an integer.
const InvalidInputMessage = "Invalid input. Please enter a valid integer."

// PromptCandidate asks for a candidate on in. A line that is not an
// integer yields an apperrors.ParseError; the caller reports it and
// exits without checking anything.
func PromptCandidate(in io.Reader, out io.Writer) (*big.Int, error) {
	fmt.Fprintln(out, "--- PRIME NUMBER CHECKER ---")
	fmt.Fprintln(out, report.Separator)
	fmt.Fprint(out, "Enter a whole number to check if it's prime: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.ParseError{Input: "", Cause: io.ErrUnexpectedEOF}
		}
		return nil, fmt.Errorf("reading candidate: %w", err)
	}
	return config.ParseCandidate(strings.TrimSpace(line))
}

// DisplayParseError prints the invalid-input message.
func DisplayParseError(out io.Writer, err error) {
	var pe apperrors.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintln(out, InvalidInputMessage)
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
}
