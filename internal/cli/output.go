// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatCandidate].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReport].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/format"
	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/report"
	"github.com/agbru/primecheck/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet prints only the verdict keyword.
	Quiet bool
	// Details adds timing and size information.
	Details bool
	// Explain prints the narration and efficiency section.
	Explain bool
}

// FormatQuietResult renders v the way --quiet prints it.
func FormatQuietResult(v prime.Verdict) string {
	return v.String()
}

// DisplayQuietResult writes the verdict keyword on its own line.
func DisplayQuietResult(out io.Writer, v prime.Verdict) {
	fmt.Fprintln(out, FormatQuietResult(v))
}

// DisplayResult presents the retained verdict for n.
//
// Parameters:
//   - out: The writer for standard output.
//   - n: The candidate that was checked.
//   - result: The retained strategy outcome.
//   - cfg: Output configuration.
func DisplayResult(out io.Writer, n *big.Int, result orchestration.CheckResult, cfg OutputConfig) {
	if cfg.Quiet {
		DisplayQuietResult(out, result.Verdict)
		return
	}

	if cfg.Explain {
		displayNarration(out, n, result.Verdict)
	} else {
		fmt.Fprintf(out, "\n%s\n", colorResult(n, result.Verdict))
	}

	if cfg.Details {
		displayDetails(out, n, result)
	}
}

func colorResult(n *big.Int, v prime.Verdict) string {
	color := ui.ColorRed()
	if v.IsPrime() {
		color = ui.ColorGreen()
	}
	return color + report.ResultLine(n, v) + ui.ColorReset()
}

// displayNarration writes report.Narrate with theme colours.
func displayNarration(out io.Writer, n *big.Int, v prime.Verdict) {
	fmt.Fprintln(out)
	_ = report.NarrateStyled(out, n, v, themeStyler)
}

func themeStyler(kind report.LineKind, line string) string {
	var color string
	switch kind {
	case report.LineInfo:
		color = ui.ColorYellow()
	case report.LinePrime:
		color = ui.ColorGreen()
	case report.LineNotPrime:
		color = ui.ColorRed()
	case report.LineHeading:
		color = ui.ColorBold()
	case report.LineSuggestion:
		color = ui.ColorCyan()
	default:
		return line
	}
	return color + line + ui.ColorReset()
}

func displayDetails(out io.Writer, n *big.Int, result orchestration.CheckResult) {
	fmt.Fprintf(out, "\n%s--- Details ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Strategy:       %s%s%s\n", ui.ColorBlue(), result.Name, ui.ColorReset())
	fmt.Fprintf(out, "Check time:     %s%s%s\n", ui.ColorYellow(), tableDuration(result.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Candidate:      %s (%d bits, %d digits)\n",
		displayCandidate(n), n.BitLen(), format.Digits(n))
	fmt.Fprintf(out, "Checked bound:  %s\n", format.FormatBigInt(result.Verdict.CheckedBound()))
	if d, ok := result.Verdict.Witness(); ok {
		fmt.Fprintf(out, "Factorisation:  %s × %s\n", format.FormatBigInt(d), format.FormatBigInt(result.Verdict.Cofactor(n)))
	}
}

// BuildReport assembles a report from the analysed results. The first
// successful result (results are sorted by AnalyzeComparisonResults) is
// the reported verdict.
func BuildReport(n *big.Int, results []orchestration.CheckResult) (report.Report, bool) {
	var (
		r     report.Report
		found bool
	)
	for _, res := range results {
		if res.Err == nil {
			r = report.New(n, res.Key, res.Verdict, res.Duration)
			found = true
			break
		}
	}
	if !found {
		return report.Report{}, false
	}
	for _, res := range results {
		r.Results = append(r.Results, report.StrategyResult{
			Name:     res.Key,
			Verdict:  res.Verdict,
			Duration: res.Duration,
			Err:      res.Err,
		})
	}
	return r, true
}

// WriteReport saves r to path in the requested format and tells the user.
func WriteReport(out io.Writer, path, reportFormat string, r report.Report) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating report directory")
		}
	}
	if err := report.WriteFile(path, reportFormat, r); err != nil {
		return apperrors.WrapError(err, "writing %s report", reportFormat)
	}
	fmt.Fprintf(out, "%s✓ Report saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
	return nil
}
