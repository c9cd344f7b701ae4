// Command listdemo hosts the windowing engine inside a bubbletea program:
// a million-row list with variable row heights, multi-select, pagination,
// and a dropdown panel placed by the positioner.
//
//	↑/↓ move · pgup/pgdn page · g/G top/bottom · space select · d dropdown · q quit
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vlist"
)

const (
	startRows = 50_000
	maxRows   = 1_000_000
	pageRows  = 50_000
)

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	panelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63"))
)

// rowNode is the render node the engine recycles. Content is rebound on
// reuse; the node itself has no item identity across frames.
type rowNode struct {
	item  int
	lines []string
}

type model struct {
	engine *vlist.Engine[*rowNode]
	rows   int

	cursor      int
	dropdown    bool
	dropdownPos vlist.Position

	width  int
	height int

	pendingPage int // page requested by the engine, applied after the tick
}

// rowLines renders item content. Every third row carries extra detail
// lines, so heights genuinely vary and have to be measured.
func rowLines(i int) []string {
	lines := []string{fmt.Sprintf("#%07d  record %d", i, i)}
	for d := 0; d < i%3; d++ {
		lines = append(lines, fmt.Sprintf("    · detail %d for record %d", d+1, i))
	}
	return lines
}

func newModel() *model {
	m := &model{rows: startRows, pendingPage: -1}
	e := vlist.NewEngine[*rowNode](startRows, vlist.Config{
		Buffer:          5,
		EstimatedHeight: 2,
		PageSize:        pageRows,
	})
	e.Alloc = func() *rowNode { return &rowNode{item: -1} }
	e.Bind = func(n *rowNode, i int) {
		n.item = i
		n.lines = rowLines(i)
	}
	e.Measure = func(n *rowNode) (float64, bool) {
		if n.item < 0 {
			return 0, false
		}
		return float64(len(n.lines)), true
	}
	e.LoadMore = func(page int) { m.pendingPage = page }
	m.engine = e
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetViewport(float64(m.listHeight()))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "pgup":
			m.engine.ScrollBy(-float64(m.listHeight()))
		case "pgdown":
			m.engine.ScrollBy(float64(m.listHeight()))
		case "g":
			m.cursor = 0
			m.engine.SetScroll(0)
		case "G":
			m.cursor = m.rows - 1
			m.engine.SetScroll(m.engine.MaxScroll())
		case " ":
			m.engine.Selection().Toggle(m.cursor)
		case "d":
			m.dropdown = !m.dropdown
		case "esc":
			m.dropdown = false
		}
	}

	m.engine.Tick()
	m.loadPending()
	if m.dropdown {
		m.placeDropdown()
	}
	return m, nil
}

// loadPending grows the dataset when the engine asked for another page.
// Data arrival is decoupled from the frame: here it is instant, a real host
// would fetch and Resize later.
func (m *model) loadPending() {
	if m.pendingPage < 0 || m.rows >= maxRows {
		m.pendingPage = -1
		return
	}
	m.pendingPage = -1
	m.rows = min(m.rows+pageRows, maxRows)
	m.engine.Resize(m.rows)
	m.engine.Tick()
}

func (m *model) listHeight() int {
	return max(m.height-1, 1) // one line reserved for the status bar
}

func (m *model) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, m.rows-1)

	// Keep the cursor row inside the viewport.
	x := m.engine.Index()
	top := x.CumulativeOffsetBefore(m.cursor)
	bottom := top + x.HeightAt(m.cursor)
	if top < m.engine.Scroll() {
		m.engine.SetScroll(top)
	} else if vh := float64(m.listHeight()); bottom > m.engine.Scroll()+vh {
		m.engine.SetScroll(bottom - vh)
	}
}

// placeDropdown anchors the action panel to the cursor row and lets the
// positioner pick a side that stays on screen.
func (m *model) placeDropdown() {
	x := m.engine.Index()
	anchor := vlist.Rect{
		X: 2,
		Y: x.CumulativeOffsetBefore(m.cursor) - m.engine.Scroll() + 1,
		W: 30,
		H: x.HeightAt(m.cursor),
	}
	panel := vlist.Rect{W: 24, H: float64(len(dropdownLines()))}
	boundary := vlist.Rect{Y: 1, W: float64(m.width), H: float64(m.listHeight())}
	m.dropdownPos = m.engine.PlacePanel(anchor, panel, boundary, nil, true)
}

func dropdownLines() []string {
	return []string{
		" open        ",
		" rename      ",
		" duplicate   ",
		" delete      ",
	}
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}

	st := m.engine.Window()
	lines := make([]string, 0, m.listHeight())
	kinds := make([]int, 0, m.listHeight()) // 0 plain, 1 cursor, 2 selected, 3 detail

	// The rendered block starts at ContainerOffset; skip the part that
	// scrolled past the viewport top.
	skip := int(m.engine.Scroll() - st.ContainerOffset)
	for _, n := range m.engine.Nodes() {
		for li, line := range n.lines {
			if skip > 0 {
				skip--
				continue
			}
			kind := 0
			switch {
			case n.item == m.cursor:
				kind = 1
			case li > 0:
				kind = 3
			case m.engine.Selection().Selected(n.item):
				kind = 2
			}
			if li == 0 {
				marker := "  "
				if m.engine.Selection().Selected(n.item) {
					marker = "✓ "
				}
				line = marker + line
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
			kinds = append(kinds, kind)
			if len(lines) >= m.listHeight() {
				break
			}
		}
		if len(lines) >= m.listHeight() {
			break
		}
	}
	for len(lines) < m.listHeight() {
		lines = append(lines, "")
		kinds = append(kinds, 0)
	}

	var b strings.Builder
	b.WriteString(m.statusBar())
	for i, line := range lines {
		b.WriteByte('\n')
		b.WriteString(m.styleLine(i+1, line, kinds[i]))
	}
	return b.String()
}

// styleLine styles one viewport row, splicing in the dropdown panel where it
// overlaps.
func (m *model) styleLine(screenY int, line string, kind int) string {
	style := lipgloss.NewStyle()
	switch kind {
	case 1:
		style = cursorStyle
	case 2:
		style = selectedStyle
	case 3:
		style = detailStyle
	}

	if m.dropdown {
		py := int(m.dropdownPos.Y)
		plines := dropdownLines()
		if screenY >= py && screenY < py+len(plines) {
			px := int(m.dropdownPos.X)
			left := padTo(line, px)
			seg := plines[screenY-py]
			var right string
			if rest := px + len(seg); len(line) > rest {
				right = line[rest:]
			}
			return style.Render(left) + panelStyle.Render(seg) + style.Render(right)
		}
	}
	return style.Render(line)
}

func (m *model) statusBar() string {
	st := m.engine.Window()
	s := fmt.Sprintf(" %d rows · window [%d,%d) · %d selected · row %d ",
		m.rows, st.Range.Start, st.Range.End, m.engine.Selection().Count(), m.cursor)
	if m.rows < maxRows {
		s += "· scroll to the end to load more "
	}
	return statusStyle.Width(m.width).Render(s)
}

func padTo(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func main() {
	if _, err := tea.NewProgram(newModel(), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "listdemo:", err)
		os.Exit(1)
	}
}
