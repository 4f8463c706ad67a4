package cli

import (
	"fmt"
	"io"
	"math/big"
	"runtime"

	"github.com/agbru/primecheck/internal/config"
	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/sysmon"
	"github.com/agbru/primecheck/internal/ui"
)

// PrintExecutionConfig displays the candidate, the timeout and the
// execution environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - n: The candidate about to be checked.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, n *big.Int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Checking %s%s%s (%d bits) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), displayCandidate(n), ui.ColorReset(), n.BitLen(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "CPU features: %s%s%s.\n", ui.ColorCyan(), sysmon.GetCPUFeatures(), ui.ColorReset())
}

// PrintExecutionMode displays whether one strategy runs or several are
// cross-validated.
func PrintExecutionMode(selected []orchestration.Selection, out io.Writer) {
	var modeDesc string
	if len(selected) > 1 {
		modeDesc = "Parallel cross-validation of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single check with the %s%s%s strategy",
			ui.ColorGreen(), selected[0].Checker.Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
