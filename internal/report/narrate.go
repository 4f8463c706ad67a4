package report

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/agbru/primecheck/internal/prime"
)

// Separator frames the verdict block.
var Separator = strings.Repeat("=", 40)

// Suggestion is a candidate worth trying, with the reason it is interesting.
type Suggestion struct {
	N    int64
	Note string
}

// Suggestions are printed after every explained verdict.
var Suggestions = []Suggestion{
	{7, "a small prime"},
	{97, "a larger prime"},
	{100, "a non-prime/composite number"},
	{899, "a non-prime with less obvious factors: 29 * 31"},
}

// InfoLine explains why n is not prime. It returns false for primes,
// which need no explanation.
func InfoLine(n *big.Int, v prime.Verdict) (string, bool) {
	if v.IsPrime() {
		return "", false
	}
	d, ok := v.Witness()
	if !ok {
		return fmt.Sprintf("Info: %s is not a prime number because primes must be greater than 1.", n), true
	}
	return fmt.Sprintf("Info: %s is not prime because it is divisible by %s (e.g., %s * %s = %s).",
		n, d, d, v.Cofactor(n), n), true
}

// ResultLine is the one-line verdict.
func ResultLine(n *big.Int, v prime.Verdict) string {
	if v.IsPrime() {
		return fmt.Sprintf("✅ Result: %s is a PRIME number!", n)
	}
	return fmt.Sprintf("❌ Result: %s is NOT a prime number.", n)
}

// EfficiencyLines explains the search bound for e.
func EfficiencyLines(e Efficiency) []string {
	if e.Candidate.Cmp(big.NewInt(1)) <= 0 {
		return []string{
			fmt.Sprintf("• %s is below 2, so no divisor needs to be checked at all.", e.Candidate),
		}
	}
	lines := []string{
		fmt.Sprintf("• For the number %s, we only need to check for divisors from 2 up to %s.", e.Candidate, e.Limit),
		fmt.Sprintf("• A less efficient method would check all the way up to %s.", e.LastNaiveDivisor()),
	}
	if e.ShowRatio() {
		lines = append(lines, fmt.Sprintf("• This optimization makes the check approximately %.1f times faster!", e.Ratio))
	}
	return lines
}

// SuggestionLines renders Suggestions as bullets.
func SuggestionLines() []string {
	lines := make([]string, len(Suggestions))
	for i, s := range Suggestions {
		lines[i] = fmt.Sprintf("• %d (%s)", s.N, s.Note)
	}
	return lines
}

// LineKind classifies a narration line for styling.
type LineKind int

const (
	LinePlain LineKind = iota
	LineInfo
	LinePrime
	LineNotPrime
	LineHeading
	LineSuggestion
)

// Styler decorates one narration line. It must not add line breaks.
type Styler func(kind LineKind, line string) string

func plain(_ LineKind, line string) string { return line }

// Narrate writes the full explanation of v for n: the info line, the
// framed result, the efficiency section and the suggestions.
func Narrate(w io.Writer, n *big.Int, v prime.Verdict) error {
	return NarrateStyled(w, n, v, nil)
}

// NarrateStyled is Narrate with every line passed through style. A nil
// style writes plain text.
func NarrateStyled(w io.Writer, n *big.Int, v prime.Verdict, style Styler) error {
	if style == nil {
		style = plain
	}
	var b strings.Builder
	line := func(kind LineKind, s string) {
		b.WriteString(style(kind, s))
		b.WriteByte('\n')
	}

	line(LinePlain, Separator)
	if info, ok := InfoLine(n, v); ok {
		line(LineInfo, info)
	}
	resultKind := LineNotPrime
	if v.IsPrime() {
		resultKind = LinePrime
	}
	line(resultKind, ResultLine(n, v))
	line(LinePlain, Separator)

	b.WriteByte('\n')
	line(LineHeading, "--- How the Algorithm Works (Efficiency) ---")
	for _, l := range EfficiencyLines(Estimate(n)) {
		line(LinePlain, l)
	}

	b.WriteByte('\n')
	line(LineHeading, "--- Try Checking These Numbers ---")
	for _, l := range SuggestionLines() {
		line(LineSuggestion, l)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
