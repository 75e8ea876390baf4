package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tillvoss/mindweave/pkg/cache"
	"github.com/tillvoss/mindweave/pkg/document"
	"github.com/tillvoss/mindweave/pkg/errors"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/pipeline"
	"github.com/tillvoss/mindweave/pkg/viewport"
)

// Terminal cells are roughly twice as tall as they are wide, so the two
// axes use different pixel densities to keep the map visually round.
const (
	cellPxX = 10.0 // screen units per terminal column
	cellPxY = 20.0 // screen units per terminal row

	// statusLines is the number of rows reserved below the canvas.
	statusLines = 2
)

// Node label styles by hierarchy kind.
var (
	viewTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	viewSectionStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	viewSubsectionStyle = lipgloss.NewStyle().Foreground(colorBlue)
	viewItemStyle       = lipgloss.NewStyle().Foreground(colorGray)
	viewSelectedStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	viewStatusStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command for exploring a mind map in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
		focus      string
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "view [outline.md]",
		Short: "Explore a mind map interactively in the terminal",
		Long: `Explore a mind map interactively in the terminal.

The view command parses and lays out the outline, then opens a full-screen
viewer. Pan with the arrow keys (or the mouse), zoom with +/- (or the
scroll wheel), and click a node to select it.

Keys:
  arrows, hjkl   pan
  +, -           zoom in, zoom out
  f              fit the map to the window
  r              reset zoom and pan
  tab            select the next node
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			opts.Layout = mergeLayoutConfig(cmd, opts.Layout, cfg.Layout)
			return c.runView(cmd.Context(), args[0], opts, noCache, focus)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: mindweave.toml if present)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&focus, "focus", "", "node to select on startup (e.g. section-2)")
	registerLayoutFlags(cmd, &opts.Layout)

	return cmd
}

// runView builds the scene and hands it to the bubbletea viewer.
func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options, noCache bool, focus string) error {
	if focus != "" {
		if err := errors.ValidateNodeID(focus); err != nil {
			return err
		}
	}

	source, name, err := readSource(input)
	if err != nil {
		return err
	}
	opts.Source = source
	opts.SourceName = name

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	tree, err := runner.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if tree.IsEmpty() {
		printInfo("Nothing to show: the document has no headings")
		return nil
	}

	scene, err := runner.BuildScene(ctx, tree, cache.Hash([]byte(opts.Source)), opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	model := newViewModel(name, scene)
	if focus != "" && !model.focusNode(focus) {
		return errors.New(errors.ErrCodeNotFound, "node %q not found in %s", focus, name)
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.relay.bind(p.Send)
	defer model.refit.Stop()

	_, err = p.Run()
	return err
}

// =============================================================================
// Model
// =============================================================================

// refitMsg asks the viewer to re-fit the map after a window resize settled.
type refitMsg struct{}

// msgRelay forwards messages into a running bubbletea program. The program
// handle only exists after the model has been constructed, so commands bind
// it late.
type msgRelay struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (r *msgRelay) bind(send func(tea.Msg)) {
	r.mu.Lock()
	r.send = send
	r.mu.Unlock()
}

func (r *msgRelay) notify(msg tea.Msg) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// viewModel is the bubbletea model for the interactive viewer.
type viewModel struct {
	source string
	scene  *graph.Scene
	ctrl   *viewport.Controller

	cols, rows int // terminal size in cells

	selected string
	hovered  string

	// dragging tracks an active mouse pan and the last cell position.
	dragging     bool
	dragMoved    bool
	lastX, lastY int

	refit *pipeline.Debouncer
	relay *msgRelay
}

// newViewModel creates a viewer model for the given scene.
func newViewModel(source string, scene *graph.Scene) *viewModel {
	m := &viewModel{
		source: source,
		scene:  scene,
		ctrl:   viewport.New(viewport.DefaultBounds()),
		refit:  pipeline.NewDebouncer(pipeline.DefaultDebounce),
		relay:  &msgRelay{},
	}
	m.ctrl.SetHandlers(viewport.Handlers{
		OnSelect: func(id string) { m.selected = id },
		OnHover: func(id string, entered bool) {
			if entered {
				m.hovered = id
			} else if m.hovered == id {
				m.hovered = ""
			}
		},
	})
	return m
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

// canvasSize returns the drawable area in screen units.
func (m *viewModel) canvasSize() (w, h float64) {
	rows := m.rows - statusLines
	if rows < 1 {
		rows = 1
	}
	return float64(m.cols) * cellPxX, float64(rows) * cellPxY
}

func (m *viewModel) fitToWindow() {
	w, h := m.canvasSize()
	if w > 0 && h > 0 {
		m.ctrl.FitToContent(m.scene.Nodes, w, h)
	}
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.cols == 0
		m.cols, m.rows = msg.Width, msg.Height
		if first {
			m.fitToWindow()
		} else {
			m.refit.Trigger(func() { m.relay.notify(refitMsg{}) })
		}

	case refitMsg:
		m.fitToWindow()

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	return m, nil
}

func (m *viewModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "+", "=":
		m.ctrl.ZoomIn()
	case "-", "_":
		m.ctrl.ZoomOut()
	case "f":
		m.fitToWindow()
	case "r":
		m.ctrl.ResetView()
	case "tab":
		m.selectNext(1)
	case "shift+tab":
		m.selectNext(-1)
	case "left", "h":
		m.panCells(1, 0)
	case "right", "l":
		m.panCells(-1, 0)
	case "up", "k":
		m.panCells(0, 1)
	case "down", "j":
		m.panCells(0, -1)
	}
	return m, nil
}

// panCells pans the camera by whole cells. Keyboard panning moves the
// content, so panning left shifts the map right under a fixed window.
func (m *viewModel) panCells(dx, dy int) {
	m.ctrl.StartPan()
	m.ctrl.PanBy(float64(dx)*cellPxX, float64(dy)*cellPxY)
	m.ctrl.EndPan()
}

func (m *viewModel) updateMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ctrl.Wheel(-1)
		case tea.MouseButtonWheelDown:
			m.ctrl.Wheel(1)
		case tea.MouseButtonLeft:
			m.dragging = true
			m.dragMoved = false
			m.lastX, m.lastY = msg.X, msg.Y
			m.ctrl.StartPan()
		}

	case tea.MouseActionMotion:
		if m.dragging {
			dx := float64(msg.X-m.lastX) * cellPxX
			dy := float64(msg.Y-m.lastY) * cellPxY
			if dx != 0 || dy != 0 {
				m.dragMoved = true
				m.ctrl.PanBy(dx, dy)
			}
			m.lastX, m.lastY = msg.X, msg.Y
			return
		}
		sx, sy := cellToScreen(msg.X, msg.Y)
		if id, ok := m.ctrl.HitTest(m.scene.Nodes, sx, sy); ok {
			m.ctrl.Hover(id, true)
		} else if m.hovered != "" {
			m.ctrl.Hover(m.hovered, false)
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		m.ctrl.EndPan()
		if !m.dragMoved {
			// A click without movement selects the node under the pointer.
			sx, sy := cellToScreen(msg.X, msg.Y)
			if id, ok := m.ctrl.HitTest(m.scene.Nodes, sx, sy); ok {
				m.ctrl.Select(id)
			} else {
				m.selected = ""
			}
		}
	}
}

// focusNode selects the node with the given id and reports whether the
// scene contains it.
func (m *viewModel) focusNode(id string) bool {
	for i := range m.scene.Nodes {
		if m.scene.Nodes[i].ID == id {
			m.ctrl.Select(id)
			return true
		}
	}
	return false
}

// selectNext moves the selection through the scene's nodes in layout order.
func (m *viewModel) selectNext(step int) {
	n := len(m.scene.Nodes)
	if n == 0 {
		return
	}
	idx := -1
	for i, node := range m.scene.Nodes {
		if node.ID == m.selected {
			idx = i
			break
		}
	}
	idx = ((idx+step)%n + n) % n
	m.ctrl.Select(m.scene.Nodes[idx].ID)
}

// cellToScreen converts a terminal cell position to screen units,
// sampling the center of the cell.
func cellToScreen(x, y int) (sx, sy float64) {
	return (float64(x) + 0.5) * cellPxX, (float64(y) + 0.5) * cellPxY
}

// =============================================================================
// View
// =============================================================================

func (m *viewModel) View() string {
	if m.cols == 0 || m.rows == 0 {
		return ""
	}
	rows := m.rows - statusLines

	canvas := newCellCanvas(m.cols, rows)
	for i := range m.scene.Nodes {
		m.drawNode(canvas, &m.scene.Nodes[i])
	}

	var b strings.Builder
	b.WriteString(canvas.String())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(viewStatusStyle.Render("arrows pan · +/- zoom · f fit · r reset · tab select · q quit"))
	return b.String()
}

// drawNode places a node's label on the canvas at its screen position.
func (m *viewModel) drawNode(canvas *cellCanvas, node *graph.Node) {
	sx, sy := m.ctrl.WorldToScreen(node.X, node.Y)
	col := int(sx / cellPxX)
	row := int(sy / cellPxY)

	label := node.Text
	if len(node.Lines) > 0 {
		label = node.Lines[0]
	}

	style := styleForKind(node.Kind)
	if node.ID == m.selected {
		style = viewSelectedStyle
	} else if node.ID == m.hovered {
		style = style.Underline(true)
	}

	canvas.put(col-lipgloss.Width(label)/2, row, label, style)
}

// styleForKind maps a node kind to its display style.
func styleForKind(kind string) lipgloss.Style {
	switch document.Kind(kind) {
	case document.KindTitle:
		return viewTitleStyle
	case document.KindSection:
		return viewSectionStyle
	case document.KindSubsection:
		return viewSubsectionStyle
	default:
		return viewItemStyle
	}
}

// statusLine summarizes camera state and the current selection.
func (m *viewModel) statusLine() string {
	state := m.ctrl.State()
	status := fmt.Sprintf("%s · %d nodes · zoom %.0f%%", m.source, len(m.scene.Nodes), state.Scale*100)
	if m.selected != "" {
		for i := range m.scene.Nodes {
			if m.scene.Nodes[i].ID == m.selected {
				status += " · " + StyleHighlight.Render(m.scene.Nodes[i].Text)
				break
			}
		}
	}
	return viewStatusStyle.Render(status)
}

// =============================================================================
// Cell Canvas
// =============================================================================

// cellCanvas is a fixed-size grid of styled runes for terminal drawing.
type cellCanvas struct {
	cols, rows int
	cells      [][]string
}

func newCellCanvas(cols, rows int) *cellCanvas {
	cells := make([][]string, rows)
	for i := range cells {
		row := make([]string, cols)
		for j := range row {
			row[j] = " "
		}
		cells[i] = row
	}
	return &cellCanvas{cols: cols, rows: rows, cells: cells}
}

// put writes text starting at (col, row), clipping at the canvas edges.
func (c *cellCanvas) put(col, row int, text string, style lipgloss.Style) {
	if row < 0 || row >= c.rows {
		return
	}
	for i, r := range []rune(text) {
		x := col + i
		if x < 0 || x >= c.cols {
			continue
		}
		c.cells[row][x] = style.Render(string(r))
	}
}

func (c *cellCanvas) String() string {
	lines := make([]string, c.rows)
	for i, row := range c.cells {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
