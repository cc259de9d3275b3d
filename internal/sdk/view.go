package sdk

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/macmole/internal/ui"
)

// ─── Messages ────────────────────────────────────────────────────────────────

// sizesMsg carries the async sizing result, keyed by candidate path.
type sizesMsg map[string]int64

// appliedMsg carries the execution results after the user confirms apply.
type appliedMsg []Result

// ─── Model ───────────────────────────────────────────────────────────────────

type reviewState int

const (
	stateReviewing reviewState = iota
	stateApplying
	stateDone
)

// ReviewModel is the bubbletea model for interactive prune-plan review.
// The plan is shown grouped by platform; sizes are computed asynchronously
// while a spinner runs. Apply is a two-key confirmation ("a" then Enter),
// and execution happens through the same Executor the non-interactive path
// uses, so audit logging and failure isolation are identical.
type ReviewModel struct {
	decisions []Decision
	exec      *Executor

	sizes   map[string]int64
	sized   bool
	results []Result

	cursor   int
	offset   int
	width    int
	height   int
	state    reviewState
	confirm  bool
	quitting bool

	spin spinner.Model
}

// NewReviewModel creates a review model over an already-computed plan.
func NewReviewModel(decisions []Decision, exec *Executor) ReviewModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorPrimary)
	return ReviewModel{
		decisions: decisions,
		exec:      exec,
		sizes:     make(map[string]int64),
		width:     80,
		height:    24,
		spin:      sp,
	}
}

// Applied reports whether the user confirmed and execution ran.
func (m ReviewModel) Applied() bool { return m.state == stateDone }

// Results returns the execution results, valid once Applied is true.
func (m ReviewModel) Results() []Result { return m.results }

func (m ReviewModel) computeSizes() tea.Cmd {
	exec := m.exec
	decisions := m.decisions
	return func() tea.Msg {
		sizes := make(sizesMsg, len(decisions))
		for _, d := range decisions {
			if d.Action == ActionRemove {
				sizes[d.Candidate.Path] = exec.SizeOf(d.Candidate.Path)
			}
		}
		return sizes
	}
}

func (m ReviewModel) runApply() tea.Cmd {
	exec := m.exec
	decisions := m.decisions
	return func() tea.Msg {
		return appliedMsg(exec.Apply(decisions))
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m ReviewModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.computeSizes())
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.confirm {
				m.confirm = false
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.decisions)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.viewportHeight() {
					m.offset++
				}
			}
		case "a":
			// Only a fully-sized plan in reviewing state can be applied.
			if m.state == stateReviewing && m.sized {
				m.confirm = true
			}
		case "enter":
			if m.confirm && m.state == stateReviewing {
				m.confirm = false
				m.state = stateApplying
				return m, tea.Batch(m.spin.Tick, m.runApply())
			}
		}
		return m, nil

	case sizesMsg:
		m.sizes = msg
		m.sized = true
		return m, nil

	case appliedMsg:
		m.results = msg
		m.state = stateDone
		return m, nil

	case spinner.TickMsg:
		if !m.sized || m.state == stateApplying {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m ReviewModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.width
	if w < 50 {
		w = 50
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	s.WriteString(m.renderPlan(w))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Rendering ───────────────────────────────────────────────────────────────

func (m ReviewModel) viewportHeight() int {
	vh := m.height - 8
	if vh < 4 {
		vh = 4
	}
	return vh
}

func (m ReviewModel) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("  " + ui.IconDiamond + " SDK Retention Plan")

	removals := 0
	var reclaim int64
	for _, d := range m.decisions {
		if d.Action != ActionRemove {
			continue
		}
		removals++
		if sz, ok := m.sizes[d.Candidate.Path]; ok && sz > 0 {
			reclaim += sz
		}
	}

	var summary string
	switch {
	case m.state == stateApplying:
		summary = m.spin.View() + " applying…"
	case m.state == stateDone:
		summary = fmt.Sprintf("%d removal(s) processed", removals)
	case !m.sized:
		summary = m.spin.View() + " computing sizes…"
	default:
		summary = fmt.Sprintf("%d removal(s), ~%s reclaimable", removals, ui.FormatSize(reclaim))
	}
	subtitle := lipgloss.NewStyle().
		Foreground(ui.ColorTextDim).
		Render("  " + summary)

	inner := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Width(w - 2).
		Render(inner)
}

func (m ReviewModel) renderPlan(w int) string {
	if len(m.decisions) == 0 {
		return ui.StyleMuted.Italic(true).Render("  (no SDK bundles discovered)")
	}

	resultFor := make(map[string]Result, len(m.results))
	for _, r := range m.results {
		resultFor[r.Decision.Candidate.Path] = r
	}

	vh := m.viewportHeight()
	var lines []string
	lastPlatform := ""

	for i := m.offset; i < len(m.decisions) && i < m.offset+vh; i++ {
		d := m.decisions[i]

		if d.Candidate.Platform != lastPlatform {
			lastPlatform = d.Candidate.Platform
			lines = append(lines, ui.StyleDim.Bold(true).Render("  "+d.Candidate.Platform))
		}

		lines = append(lines, m.renderRow(d, i == m.cursor, resultFor))
	}

	if len(m.decisions) > vh {
		lines = append(lines, ui.StyleMuted.Italic(true).
			Render(fmt.Sprintf("  ── %d/%d ──", min(m.offset+vh, len(m.decisions)), len(m.decisions))))
	}

	return strings.Join(lines, "\n")
}

func (m ReviewModel) renderRow(d Decision, selected bool, resultFor map[string]Result) string {
	icon := ui.StyleOK.Render(ui.IconKeep)
	if d.Action == ActionRemove {
		icon = ui.StyleErr.Render(ui.IconRemove)
	}

	size := ""
	if d.Action == ActionRemove {
		if sz, ok := m.sizes[d.Candidate.Path]; ok {
			size = ui.FormatSize(sz)
		} else if !m.sized {
			size = m.spin.View()
		}
	}

	outcome := ""
	if r, ok := resultFor[d.Candidate.Path]; ok {
		switch r.Status {
		case StatusSucceeded:
			outcome = ui.StyleOK.Render("removed")
		case StatusFailed:
			outcome = ui.StyleErr.Render("failed: " + r.Err.Error())
		case StatusSkippedAbsent:
			outcome = ui.StyleMuted.Render("already absent")
		}
	}

	row := fmt.Sprintf("    %s #%d %-28s %-9s %8s  %s",
		icon, d.Rank, d.Candidate.RawName, d.Candidate.Version.String(), size, outcome)

	if selected {
		return lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render(row)
	}
	return row
}

func (m ReviewModel) renderFooter() string {
	switch {
	case m.confirm:
		return ui.StyleWarn.Render("  Enter confirm apply " + ui.IconDot + " Esc cancel")
	case m.state == stateDone:
		return ui.StyleMuted.Render("  q quit")
	default:
		mode := m.exec.Mode.String()
		return ui.StyleMuted.Render("  ↑/↓ navigate " + ui.IconDot + " a apply (" + mode + ") " + ui.IconDot + " q quit")
	}
}
