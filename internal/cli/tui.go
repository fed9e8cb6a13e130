package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgcanvas/pkg/canvas"
	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
	"github.com/matzehuels/orgcanvas/pkg/hierarchy"
	"github.com/matzehuels/orgcanvas/pkg/viewport"
)

// nudgeStep is the screen-space distance one arrow key press moves a card
// mid-drag.
const nudgeStep = 20

// editCommand creates the edit command for the interactive canvas editor.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [chart.json]",
		Short: "Edit a chart interactively",
		Long: `Edit a chart interactively.

Keys:
  up/down        select the previous/next card
  space          toggle multi-selection on the focused card
  g              grab the focused card (arrows move it, enter drops, esc cancels)
  c              start a connection from the focused card (then pick the target)
  x              delete the focused card's selected connection
  +/-            zoom in/out
  f              fit the chart in the viewport
  a              auto-arrange from the saved hierarchy
  H              capture the current rows as the saved hierarchy
  s              save and quit
  q              quit without saving`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0])
		},
	}
	return cmd
}

func (c *CLI) runEdit(input string) error {
	s, err := chart.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}

	m := newEditorModel(&s, input)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	fm := final.(editorModel)
	if !fm.save {
		return nil
	}
	if err := chart.WriteFile(*fm.canvas.Snapshot(), input); err != nil {
		return fmt.Errorf("write chart %s: %w", input, err)
	}
	printSuccess("Saved")
	printFile(input)
	return nil
}

// =============================================================================
// Editor Model
// =============================================================================

var (
	editorCardStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	editorFocusStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorSelectedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	editorStatusStyle   = lipgloss.NewStyle().Foreground(colorGray)
	editorModeStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// editorModel is the bubbletea model for the canvas editor. Cards are listed
// top-to-bottom, left-to-right in canvas order; all interaction runs through
// the canvas engine so drag, connect, and selection behave exactly like the
// rendered chart.
type editorModel struct {
	canvas *canvas.Canvas
	path   string

	order   []string // card ids in display order
	focus   int
	pointer geometry.Point // simulated screen-space pointer
	status  string
	save    bool
}

func newEditorModel(s *chart.Snapshot, path string) editorModel {
	view := viewport.New(1200, 800)
	cv := canvas.New(s, view)
	view.FitToContent(cv.Bounds())

	m := editorModel{canvas: cv, path: path}
	m.reorder()
	return m
}

// reorder recomputes the display order from the live positions: by row, then
// left to right, matching what a user sees on the rendered canvas.
func (m *editorModel) reorder() {
	positions := m.canvas.LivePositions()
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := positions[ids[i]], positions[ids[j]]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return ids[i] < ids[j]
	})
	m.order = ids
	if m.focus >= len(ids) {
		m.focus = 0
	}
}

func (m editorModel) focused() string {
	if len(m.order) == 0 {
		return ""
	}
	return m.order[m.focus]
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Viewport().Resize(float64(msg.Width*8), float64(msg.Height*16))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.canvas.Mode() {
	case canvas.ModeDragging:
		return m.handleDragKey(msg)
	case canvas.ModeConnecting:
		return m.handleConnectKey(msg)
	}
	return m.handleIdleKey(msg)
}

func (m editorModel) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.save = true
		return m, tea.Quit
	case "up", "k":
		if m.focus > 0 {
			m.focus--
		}
	case "down", "j":
		if m.focus < len(m.order)-1 {
			m.focus++
		}
	case " ":
		m.canvas.ToggleSelect(m.focused())
	case "g":
		id := m.focused()
		if id == "" {
			break
		}
		m.pointer = m.canvas.Viewport().ContentToScreen(m.canvas.LivePositions()[id])
		if m.canvas.StartDrag(id, m.pointer) {
			m.status = "dragging " + id
		}
	case "c":
		id := m.focused()
		if id != "" && m.canvas.BeginConnect(id, geometry.SideRight) {
			m.status = "connecting from " + id + ": pick a target with up/down, enter to link"
		}
	case "x":
		if sel := m.canvas.SelectedConnection(); sel != "" {
			if _, ok := m.canvas.DeleteConnection(sel); ok {
				m.status = "connection deleted"
			}
		}
	case "+", "=":
		m.canvas.Viewport().ZoomIn()
	case "-":
		m.canvas.Viewport().ZoomOut()
	case "f":
		m.canvas.Viewport().FitToContent(m.canvas.Bounds())
	case "a":
		s := m.canvas.Snapshot()
		result := hierarchy.AutoArrange(s, m.canvas.VisibleNodes(), hierarchy.Options{
			HasConnections: len(s.Connections) > 0,
		})
		s.SetPositions(result.Positions)
		m.canvas.Reload()
		m.canvas.Viewport().FitToContent(m.canvas.Bounds())
		m.reorder()
		if n := len(result.Dropped); n > 0 {
			m.status = fmt.Sprintf("arranged, %d stale hierarchy entries dropped", n)
		} else {
			m.status = "arranged"
		}
	case "H":
		s := m.canvas.Snapshot()
		s.Hierarchy = hierarchy.Capture(s.PositionMap())
		m.status = fmt.Sprintf("hierarchy saved: %d rows", len(s.Hierarchy.Rows))
	}
	return m, nil
}

func (m editorModel) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.pointer.Y -= nudgeStep
	case "down":
		m.pointer.Y += nudgeStep
	case "left":
		m.pointer.X -= nudgeStep
	case "right":
		m.pointer.X += nudgeStep
	case "enter":
		if _, ok := m.canvas.EndDrag(m.pointer); ok {
			m.status = "moved"
			m.reorder()
		}
		return m, nil
	case "esc":
		m.canvas.CancelDrag()
		m.status = "drag cancelled"
		return m, nil
	default:
		return m, nil
	}
	m.canvas.UpdateDrag(m.pointer)
	return m, nil
}

func (m editorModel) handleConnectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.focus > 0 {
			m.focus--
		}
	case "down", "j":
		if m.focus < len(m.order)-1 {
			m.focus++
		}
	case "enter":
		if patch, ok := m.canvas.CompleteConnect(m.focused(), geometry.SideLeft); ok {
			m.status = "linked " + patch.Connection.FromID + " and " + patch.Connection.ToID
		} else if m.canvas.Mode() == canvas.ModeIdle {
			m.status = "already linked"
		}
	case "esc":
		m.canvas.CancelConnect()
		m.status = "connect cancelled"
	}
	return m, nil
}

func (m editorModel) View() string {
	var b strings.Builder

	s := m.canvas.Snapshot()
	title := s.Name
	if title == "" {
		title = m.path
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(editorStatusStyle.Render(fmt.Sprintf("  %d cards · %d connections · zoom %.0f%%",
		len(m.order), len(m.canvas.Connections()), m.canvas.Viewport().Scale*100)))
	b.WriteString("\n\n")

	byID := make(map[string]chart.Node)
	for _, n := range m.canvas.VisibleNodes() {
		byID[n.ID] = n
	}
	positions := m.canvas.LivePositions()
	for i, id := range m.order {
		n := byID[id]
		pos := positions[id]
		line := fmt.Sprintf("%-24s (%5.0f, %5.0f)", n.DisplayLabel(), pos.X, pos.Y)

		style := editorCardStyle
		prefix := "  "
		if m.canvas.Selected(id) {
			style = editorSelectedStyle
			prefix = "* "
		}
		if i == m.focus {
			style = editorFocusStyle
			prefix = "> "
		}
		b.WriteString(style.Render(prefix + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.canvas.Mode() != canvas.ModeIdle {
		b.WriteString(editorModeStyle.Render(strings.ToUpper(m.canvas.Mode().String())))
		b.WriteString(" ")
	}
	if m.status != "" {
		b.WriteString(editorStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("g grab · c connect · space select · a arrange · H save rows · s save · q quit"))
	b.WriteString("\n")

	return b.String()
}
