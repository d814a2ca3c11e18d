package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// maxEvents bounds the scrolling event log of the progress view.
const maxEvents = 8

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	projectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	compiledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea. Run mode drives a live progress
// program; report mode prints tables and pages them when they do not fit.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program in run mode.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &StartConfig{}
	for _, option := range options {
		option(cfg)
	}

	if cfg.mode != ModeRun {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	t.program = tea.NewProgram(newProgressModel(),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	t.done = make(chan struct{})

	program, done := t.program, t.done

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "progress display failed: %v\n", err)
		}
	}()

	return nil
}

// Close stops the progress program and waits for its final render.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(finishedMsg{})
	<-done
}

// Wait returns once the progress program has exited.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// send delivers msg to the running program; without one, fallback renders
// the message directly.
func (t *TUI) send(msg tea.Msg, fallback func() string) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
		return
	}

	if fallback != nil {
		if text := fallback(); text != "" {
			_, _ = fmt.Fprintln(t.output, text)
		}
	}
}

// DisplayProject announces a project.
func (t *TUI) DisplayProject(ctx context.Context, project string, targets int) {
	if ctx.Err() != nil {
		return
	}

	t.send(projectMsg{project: project, targets: targets}, func() string {
		return projectStyle.Render(fmt.Sprintf("%s: %d target mutant(s)", project, targets))
	})
}

// DisplayStage announces a stage.
func (t *TUI) DisplayStage(ctx context.Context, project string, stage string) {
	if ctx.Err() != nil {
		return
	}

	t.send(stageMsg{project: project, stage: stage}, nil)
}

// DisplaySkip shows the merge skip marker.
func (t *TUI) DisplaySkip(ctx context.Context, project string, id m.MutantID) {
	if ctx.Err() != nil {
		return
	}

	t.send(eventMsg{text: skippedStyle.Render(fmt.Sprintf("Skipping Mutant-%s (%s)", id, project))}, nil)
}

// DisplayCandidate updates the counters with one candidate outcome.
func (t *TUI) DisplayCandidate(ctx context.Context, outcome m.ValidationOutcome) {
	if ctx.Err() != nil {
		return
	}

	t.send(candidateMsg{outcome: outcome}, nil)
}

// DisplayValidationSummary shows the per-mutant table of a validation run.
func (t *TUI) DisplayValidationSummary(ctx context.Context, summary m.ValidationSummary, mutants []MutantValidation) {
	if ctx.Err() != nil {
		return
	}

	table := titleStyle.Render("Validation of "+summary.Project) + "\n" + renderValidationTable(summary, mutants)

	t.send(reportMsg{text: table}, func() string { return table })
}

// DisplayError shows a project-level error.
func (t *TUI) DisplayError(ctx context.Context, project string, err error) {
	if ctx.Err() != nil {
		return
	}

	text := errorStyle.Render(fmt.Sprintf("[%s] %v", project, err))

	t.send(eventMsg{text: text}, func() string { return text })
}

// DisplayTargets shows the target mutant table.
func (t *TUI) DisplayTargets(ctx context.Context, rows []TargetRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page(titleStyle.Render("Target mutants") + "\n" + renderTargetTable(rows))
}

// DisplayPool shows the pool of one project.
func (t *TUI) DisplayPool(ctx context.Context, project string, entries []m.PoolEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page(titleStyle.Render("Patch pool of "+project) + "\n" + renderPoolTable(entries))
}

// DisplayAudit shows the audit aggregates.
func (t *TUI) DisplayAudit(ctx context.Context, report *m.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page(titleStyle.Render("Correctness audit") + "\n" + renderAuditTable(report))
}

// page prints content, or opens a pager when it does not fit the terminal.
func (t *TUI) page(content string) error {
	model := newPagerModel(strings.Split(strings.TrimRight(content, "\n"), "\n"))

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprintln(t.output, strings.Join(model.lines, "\n"))
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

type (
	projectMsg struct {
		project string
		targets int
	}
	stageMsg struct {
		project string
		stage   string
	}
	candidateMsg struct{ outcome m.ValidationOutcome }
	eventMsg     struct{ text string }
	reportMsg    struct{ text string }
	finishedMsg  struct{}
)

// progressModel is the live view of a pipeline run.
type progressModel struct {
	spinner  spinner.Model
	project  string
	targets  int
	stage    string
	compiled int
	failed   int
	skipped  int
	events   []string
	reports  []string
	finished bool
}

func newProgressModel() progressModel {
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(projectStyle)),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd

		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd

	case projectMsg:
		pm.project, pm.targets, pm.stage = msg.project, msg.targets, ""

	case stageMsg:
		pm.project, pm.stage = msg.project, msg.stage

	case candidateMsg:
		pm = pm.count(msg.outcome)

	case eventMsg:
		pm = pm.log(msg.text)

	case reportMsg:
		pm.reports = append(pm.reports, msg.text)

	case finishedMsg:
		pm.finished = true
		return pm, tea.Quit
	}

	return pm, nil
}

func (pm progressModel) count(outcome m.ValidationOutcome) progressModel {
	switch outcome.Status {
	case m.Compiled:
		pm.compiled++

		if outcome.PoolID != nil {
			return pm.log(compiledStyle.Render(fmt.Sprintf("Compile Succeeded! PatchId: %d (mutant %s)", *outcome.PoolID, outcome.MutantID)))
		}
	case m.Failed:
		pm.failed++
	case m.Skipped:
		pm.skipped++
	}

	return pm
}

func (pm progressModel) log(text string) progressModel {
	events := append(append([]string(nil), pm.events...), text)
	if len(events) > maxEvents {
		events = events[len(events)-maxEvents:]
	}

	pm.events = events

	return pm
}

func (pm progressModel) View() string {
	var b strings.Builder

	for _, report := range pm.reports {
		b.WriteString(report)
		b.WriteString("\n")
	}

	if !pm.finished && pm.project != "" {
		fmt.Fprintf(&b, "%s %s", pm.spinner.View(), projectStyle.Render(pm.project))

		if pm.stage != "" {
			fmt.Fprintf(&b, " • %s", pm.stage)
		}

		fmt.Fprintf(&b, " (%d targets)\n", pm.targets)
	}

	fmt.Fprintf(&b, "  %s  %s  %s\n",
		compiledStyle.Render(fmt.Sprintf("compiled %d", pm.compiled)),
		failedStyle.Render(fmt.Sprintf("failed %d", pm.failed)),
		skippedStyle.Render(fmt.Sprintf("skipped %d", pm.skipped)),
	)

	for _, event := range pm.events {
		b.WriteString("  ")
		b.WriteString(event)
		b.WriteString("\n")
	}

	return b.String()
}

// pagerModel scrolls a pre-rendered report.
type pagerModel struct {
	lines  []string
	height int
	width  int
	offset int
}

func newPagerModel(lines []string) pagerModel {
	return pagerModel{lines: lines}
}

func (pg pagerModel) Init() tea.Cmd {
	return nil
}

func (pg pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pg.height = msg.Height
		pg.width = msg.Width
		pg.offset = min(pg.offset, pg.maxOffset())

		return pg, nil

	case tea.KeyMsg:
		return pg.handleKeyPress(msg)
	}

	return pg, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (pg pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return pg, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		return pg, tea.Quit
	case "down", "j":
		pg.offset = min(pg.offset+1, pg.maxOffset())
	case "up", "k":
		pg.offset = max(pg.offset-1, 0)
	case "g", "home":
		pg.offset = 0
	case "G", "end":
		pg.offset = pg.maxOffset()
	case "d", "pgdown":
		pg.offset = min(pg.offset+pg.linesPerPage(), pg.maxOffset())
	case "u", "pgup":
		pg.offset = max(pg.offset-pg.linesPerPage(), 0)
	}

	return pg, nil
}

// linesPerPage reserves two lines for the footer.
func (pg pagerModel) linesPerPage() int {
	if pg.height == 0 {
		return 10
	}

	return max(pg.height-2, 1)
}

func (pg pagerModel) maxOffset() int {
	return max(len(pg.lines)-pg.linesPerPage(), 0)
}

func (pg pagerModel) needsPagination() bool {
	return pg.height > 0 && len(pg.lines) > pg.linesPerPage()
}

func (pg pagerModel) View() string {
	end := min(pg.offset+pg.linesPerPage(), len(pg.lines))

	var b strings.Builder

	b.WriteString(strings.Join(pg.lines[pg.offset:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("lines %d-%d of %d • j/k scroll • d/u page • q quit", pg.offset+1, end, len(pg.lines))))

	return b.String()
}
