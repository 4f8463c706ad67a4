package tui

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecheck/internal/cli"
	"github.com/agbru/primecheck/internal/config"
	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/format"
	"github.com/agbru/primecheck/internal/logging"
	"github.com/agbru/primecheck/internal/metrics"
	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/report"
	"github.com/agbru/primecheck/internal/sysmon"
)

// Layout constants.
const (
	tickInterval     = 500 * time.Millisecond
	progressBarWidth = 40
	minPanelWidth    = 40
)

// ExecutionState holds the fields of the run in flight.
type ExecutionState struct {
	cancel     context.CancelFunc
	generation uint64
	running    bool
	exitCode   int
}

// Options carries the collaborators a dashboard run needs.
type Options struct {
	Version  string
	Logger   logging.Logger
	Recorder *metrics.Recorder
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	metrics MetricsModel
	input   textinput.Model
	help    help.Model
	keymap  KeyMap

	ExecutionState

	parentCtx context.Context
	factory   prime.CheckerFactory
	algos     []string
	algoIndex int
	timeout   time.Duration
	explain   bool
	opts      Options
	ref       *programRef

	candidate *big.Int
	progress  float64
	eta       time.Duration
	outcome   *CheckCompleteMsg
	notice    string

	width int
}

// NewModel creates the dashboard. The strategy list is the factory's
// names followed by "all".
func NewModel(parentCtx context.Context, factory prime.CheckerFactory, cfg config.AppConfig, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "whole number, e.g. 899"
	ti.Prompt = "n = "
	ti.CharLimit = 4096
	ti.Focus()
	if cfg.HasCandidate() {
		ti.SetValue(strings.TrimSpace(cfg.N))
	}

	algos := append(factory.List(), orchestration.AlgoAll)
	algoIndex := 0
	for i, a := range algos {
		if a == cfg.Algo {
			algoIndex = i
		}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop{}
	}

	m := Model{
		header:    NewHeaderModel(opts.Version),
		metrics:   NewMetricsModel(),
		input:     ti,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		parentCtx: parentCtx,
		factory:   factory,
		algos:     algos,
		algoIndex: algoIndex,
		timeout:   cfg.Timeout,
		explain:   cfg.Explain,
		opts:      opts,
		ref:       &programRef{},
	}
	if m.timeout <= 0 {
		m.timeout = config.DefaultTimeout
	}
	m.header.SetStrategy(m.currentAlgo())
	return m
}

func (m Model) currentAlgo() string { return m.algos[m.algoIndex] }

// ExitCode returns the exit code of the last completed run.
func (m Model) ExitCode() int { return m.exitCode }

// Init starts the ticker and, when a candidate was given on the command
// line, the first check.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tickCmd()}
	if strings.TrimSpace(m.input.Value()) != "" {
		cmds = append(cmds, func() tea.Msg {
			return tea.KeyMsg{Type: tea.KeyEnter}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation {
			m.progress = msg.AverageProgress
			m.eta = msg.ETA
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case CheckCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.running = false
		m.exitCode = msg.ExitCode
		m.outcome = &msg
		m.progress = 1
		m.header.SetDone()
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleStatsCmd(), tickCmd())

	case StatsMsg:
		m.metrics.Update(sysmon.Stats(msg))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Check):
		return m.startCheck(m.currentAlgo())

	case key.Matches(msg, m.keymap.Compare):
		return m.startCheck(orchestration.AlgoAll)

	case key.Matches(msg, m.keymap.NextAlgo):
		m.algoIndex = (m.algoIndex + 1) % len(m.algos)
		m.header.SetStrategy(m.currentAlgo())
		return m, nil

	case key.Matches(msg, m.keymap.PrevAlgo):
		m.algoIndex = (m.algoIndex - 1 + len(m.algos)) % len(m.algos)
		m.header.SetStrategy(m.currentAlgo())
		return m, nil

	case key.Matches(msg, m.keymap.Explain):
		m.explain = !m.explain
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.running = false
		m.outcome = nil
		m.notice = ""
		m.progress = 0
		m.eta = 0
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startCheck parses the input and launches algo on it. A running check
// is superseded.
func (m Model) startCheck(algo string) (tea.Model, tea.Cmd) {
	n, err := config.ParseCandidate(m.input.Value())
	if err != nil {
		m.notice = cli.InvalidInputMessage
		m.exitCode = apperrors.ExitCodeFor(err)
		return m, nil
	}
	algo = config.ResolveAlgo(algo, n)
	selected := orchestration.GetCheckersToRun(algo, m.factory)
	if len(selected) == 0 {
		m.notice = fmt.Sprintf("Unknown strategy %q", algo)
		return m, nil
	}

	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	ctx, cancel := context.WithTimeout(m.parentCtx, m.timeout)
	m.cancel = cancel
	m.running = true
	m.candidate = n
	m.progress = 0
	m.eta = 0
	m.outcome = nil
	m.notice = ""
	m.header.Start()

	return m, runCheckCmd(ctx, m.ref, selected, n, m.generation, m.timeout, m.opts)
}

// runCheckCmd runs the orchestration off the UI goroutine.
func runCheckCmd(ctx context.Context, ref *programRef, selected []orchestration.Selection, n *big.Int, gen uint64, timeout time.Duration, opts Options) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{}

		execOpts := []orchestration.ExecOption{
			orchestration.WithLogger(opts.Logger),
			orchestration.WithTimeoutLimit(timeout),
		}
		if opts.Recorder != nil {
			execOpts = append(execOpts, orchestration.WithRecorder(opts.Recorder))
		}
		results := orchestration.ExecuteChecks(ctx, selected, n, reporter, io.Discard, execOpts...)
		presOpts := orchestration.PresentationOptions{N: n}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)

		done := CheckCompleteMsg{
			N:          n,
			Results:    results,
			Final:      presenter.final,
			Err:        presenter.err,
			ExitCode:   exitCode,
			Generation: gen,
		}
		if exitCode == apperrors.ExitErrorMismatch {
			done.Err = orchestration.FindMismatch(results, n)
		}
		return done
	}
}

// View renders the dashboard.
func (m Model) View() string {
	width := max(m.width, minPanelWidth+4)
	panel := panelStyle.Width(width - 4)

	sections := []string{
		m.header.View(),
		panel.Render(m.inputView()),
	}
	if m.running || m.outcome != nil {
		sections = append(sections, panel.Render(m.progressView()))
	}
	if m.outcome != nil {
		sections = append(sections, panel.Render(m.resultView()))
	}
	sections = append(sections,
		panel.Render(panelTitleStyle.Render("Runtime")+"\n"+m.metrics.View()),
		m.help.View(m.keymap),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) inputView() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Candidate") + "\n")
	b.WriteString(m.input.View() + "\n")

	labels := make([]string, len(m.algos))
	for i, a := range m.algos {
		if i == m.algoIndex {
			labels[i] = selectedStyle.Render(a)
		} else {
			labels[i] = dimStyle.Render(a)
		}
	}
	b.WriteString(metricLabelStyle.Render("Strategy: ") + strings.Join(labels, " "))
	if m.notice != "" {
		b.WriteString("\n" + warningStyle.Render(m.notice))
	}
	return b.String()
}

func (m Model) progressView() string {
	eta := m.eta
	if !m.running {
		eta = 0
	}
	return panelTitleStyle.Render("Progress") + "\n" +
		accentStyle.Render(format.FormatProgressBarWithETA(m.progress, eta, progressBarWidth))
}

func (m Model) resultView() string {
	o := m.outcome
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Result") + "\n")

	if len(o.Results) > 1 {
		for _, res := range o.Results {
			status := res.Verdict.String()
			if res.Err != nil {
				status = errorStyle.Render("error: " + res.Err.Error())
			}
			fmt.Fprintf(&b, "%s %s %s\n",
				accentStyle.Render(fmt.Sprintf("%-6s", res.Key)),
				dimStyle.Render(fmt.Sprintf("%10s", format.FormatExecutionDuration(res.Duration))),
				status)
		}
		b.WriteString("\n")
	}

	if o.Final == nil {
		msg := "Check failed"
		if o.Err != nil {
			msg = o.Err.Error()
		}
		b.WriteString(errorStyle.Render(msg))
		return b.String()
	}
	if o.Err != nil {
		b.WriteString(errorStyle.Render(o.Err.Error()))
		return b.String()
	}

	v := o.Final.Verdict
	if info, ok := report.InfoLine(o.N, v); ok {
		b.WriteString(warningStyle.Render(info) + "\n")
	}
	style := compositeStyle
	if v.IsPrime() {
		style = primeStyle
	}
	b.WriteString(style.Render(report.ResultLine(o.N, v)))

	if m.explain {
		b.WriteString("\n\n" + panelTitleStyle.Render("How the Algorithm Works (Efficiency)"))
		for _, line := range report.EfficiencyLines(report.Estimate(o.N)) {
			b.WriteString("\n" + line)
		}
	}
	return b.String()
}

// Run starts the dashboard and returns the exit code of the last run.
func Run(ctx context.Context, factory prime.CheckerFactory, cfg config.AppConfig, opts Options) int {
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(err) || ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		opts.Logger.Error("dashboard failed", err)
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		if m.cancel != nil {
			m.cancel()
		}
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return StatsMsg(sysmon.Sample())
	}
}
