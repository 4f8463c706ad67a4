package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/agbru/primecheck/internal/config"
	"github.com/agbru/primecheck/internal/logging"
	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the strategy used by "check" until "algo" changes it.
	DefaultAlgo string
	// Timeout bounds each check.
	Timeout time.Duration
	// Explain prints the narration after each verdict.
	Explain bool
	// Logger receives per-check diagnostics. Nil disables them.
	Logger logging.Logger
}

// REPL is an interactive primality session.
type REPL struct {
	config      REPLConfig
	factory     prime.CheckerFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a REPL over the strategies of factory.
func NewREPL(factory prime.CheckerFactory, cfg REPLConfig) *REPL {
	current := strings.ToLower(cfg.DefaultAlgo)
	if _, err := factory.Get(current); err != nil {
		current = config.DefaultAlgo
		if _, err := factory.Get(current); err != nil {
			if names := factory.List(); len(names) > 0 {
				current = names[0]
			}
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop{}
	}
	return &REPL{
		config:      cfg,
		factory:     factory,
		currentAlgo: current,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// CurrentAlgo returns the active strategy key.
func (r *REPL) CurrentAlgo() string { return r.currentAlgo }

// Start reads commands until "exit" or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"prime> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sPrime Number Checker - Interactive Mode%s              %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scheck <n>%s     - Check n with the current strategy\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s   - Change strategy (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getAlgoList())
	fmt.Fprintf(r.out, "  %scompare <n>%s   - Cross-validate n with every strategy\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s          - List available strategies\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexplain%s       - Toggle the efficiency explanation\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "A bare number is checked directly.\n")
}

func (r *REPL) getAlgoList() string {
	return strings.Join(r.factory.List(), ", ")
}

// processCommand executes one line. It returns false when the session ends.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "check", "c":
		r.cmdCheck(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "list", "ls":
		r.cmdList()
	case "explain":
		r.cmdExplain()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := config.ParseCandidate(input); err == nil {
			r.check(n)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

// parseArg reads the candidate argument of check and compare.
func (r *REPL) parseArg(usage string, args []string) (*big.Int, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return nil, false
	}
	n, err := config.ParseCandidate(strings.Join(args, ""))
	if err != nil {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorRed(), InvalidInputMessage, ui.ColorReset())
		return nil, false
	}
	return n, true
}

func (r *REPL) cmdCheck(args []string) {
	if n, ok := r.parseArg("check <n>", args); ok {
		r.check(n)
	}
}

// check runs the current strategy on n with a spinner.
func (r *REPL) check(n *big.Int) {
	selected := orchestration.GetCheckersToRun(r.currentAlgo, r.factory)
	if len(selected) == 0 {
		fmt.Fprintf(r.out, "%sStrategy not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "Checking %s%s%s with %s%s%s...\n",
		ui.ColorMagenta(), FormatCandidate(n.String()), ui.ColorReset(),
		ui.ColorCyan(), selected[0].Checker.Name(), ui.ColorReset())

	results := r.run(selected, n, CLIProgressReporter{})
	res := results[0]
	if res.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		return
	}

	DisplayResult(r.out, n, res, OutputConfig{Explain: r.config.Explain, Details: true})
	fmt.Fprintln(r.out)
}

func (r *REPL) run(selected []orchestration.Selection, n *big.Int, reporter orchestration.ProgressReporter) []orchestration.CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	return orchestration.ExecuteChecks(ctx, selected, n, reporter, r.out,
		orchestration.WithLogger(r.config.Logger),
		orchestration.WithTimeoutLimit(r.config.Timeout))
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.getAlgoList())
		return
	}
	name := strings.ToLower(args[0])
	c, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.getAlgoList())
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), c.Name(), ui.ColorReset())
}

func (r *REPL) cmdCompare(args []string) {
	n, ok := r.parseArg("compare <n>", args)
	if !ok {
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", ui.ColorBold(), FormatCandidate(n.String()), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	selected := orchestration.GetCheckersToRun(orchestration.AlgoAll, r.factory)
	results := r.run(selected, n, orchestration.NullProgressReporter{})
	orchestration.SortResults(results)
	mismatch := orchestration.FindMismatch(results, n)

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-8s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Key, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		fmt.Fprintf(r.out, "  %s%-8s%s: %s%12s%s  %s\n",
			ui.ColorYellow(), res.Key, ui.ColorReset(),
			ui.ColorCyan(), tableDuration(res.Duration), ui.ColorReset(),
			res.Verdict)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())
	if mismatch != nil {
		fmt.Fprintf(r.out, "%s✗ INCONSISTENT: %v%s\n\n", ui.ColorRed(), mismatch, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s✓ All verdicts agree%s\n\n", ui.ColorGreen(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		c, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-8s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), c.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdExplain() {
	r.config.Explain = !r.config.Explain
	status := "disabled"
	if r.config.Explain {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Explanation: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:     %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:      %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	explain := "no"
	if r.config.Explain {
		explain = "yes"
	}
	fmt.Fprintf(r.out, "  Explanation:  %s%s%s\n", ui.ColorCyan(), explain, ui.ColorReset())
	fmt.Fprintln(r.out)
}
