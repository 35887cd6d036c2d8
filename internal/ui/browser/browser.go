// Package browser is the full-screen command browser behind
// `help --interactive`.
package browser

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cto-ai/clif/internal/dispatchers"
	"github.com/cto-ai/clif/internal/ui/splitpanel"
	"github.com/cto-ai/clif/internal/ui/style"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("help browser requires an interactive terminal")

var layoutConfig = splitpanel.Config{
	SidebarWidthPercent: 0.25,
	SidebarMinWidth:     24,
	SidebarMaxWidth:     32,
}

const (
	defaultWidth  = 100
	defaultHeight = 30
	footerHeight  = 2
)

// Action returns the command that opens the browser over p.
func Action(p *dispatchers.Program) dispatchers.CommandFunc {
	return func(ctx context.Context, _ []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return ErrNotTerminal
		}
		prog := tea.NewProgram(
			newModel(p),
			tea.WithContext(ctx),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		_, err := prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
}

type item struct {
	label      string
	isCategory bool
	node       *dispatchers.DispatchNode
}

type model struct {
	program   string
	items     []item
	cursor    int
	width     int
	height    int
	focusSide bool
	content   viewport.Model
	colors    style.ColorConfig
}

func newModel(p *dispatchers.Program) model {
	m := model{
		program:   p.Root.Name,
		items:     buildItems(p),
		focusSide: true,
		content:   viewport.New(defaultWidth, defaultHeight),
		colors:    style.GetColors(),
	}
	m.jumpToFirst()
	m.resize(defaultWidth, defaultHeight)
	return m
}

func buildItems(p *dispatchers.Program) []item {
	var items []item
	for _, group := range p.Catalog() {
		items = append(items, item{label: strings.ToUpper(group.Category.String()), isCategory: true})
		for _, cmd := range group.Commands {
			items = append(items, item{label: strings.Join(cmd.CommandPath(), " "), node: cmd})
		}
	}
	return items
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			m.focusSide = !m.focusSide
			return m, nil
		}
		if !m.focusSide {
			var cmd tea.Cmd
			m.content, cmd = m.content.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "home", "g":
			m.jumpToFirst()
		case "end", "G":
			m.jumpToLast()
		case "pgdown", "d":
			m.content.HalfViewDown()
		case "pgup", "u":
			m.content.HalfViewUp()
		}
	}
	return m, nil
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	l := m.layout()
	m.content.Width = l.MainContentWidth()
	m.content.Height = l.VisibleHeight()
	m.refreshContent()
}

func (m model) layout() *splitpanel.Layout {
	l := splitpanel.NewLayout(m.width, max(m.height-footerHeight, 3), layoutConfig, m.colors)
	l.FocusSidebar = m.focusSide
	return l
}

func (m *model) refreshContent() {
	if m.cursor >= len(m.items) || m.items[m.cursor].node == nil {
		m.content.SetContent("")
		return
	}
	m.content.SetContent(dispatchers.NodeHelp(m.items[m.cursor].node, m.program))
	m.content.GotoTop()
}

func (m *model) moveCursor(delta int) {
	if !m.hasSelectable() {
		return
	}
	next := m.cursor
	for {
		next = (next + delta + len(m.items)) % len(m.items)
		if !m.items[next].isCategory {
			break
		}
	}
	m.cursor = next
	m.refreshContent()
}

func (m *model) jumpToFirst() {
	for i, it := range m.items {
		if !it.isCategory {
			m.cursor = i
			m.refreshContent()
			return
		}
	}
}

func (m *model) jumpToLast() {
	for i := len(m.items) - 1; i >= 0; i-- {
		if !m.items[i].isCategory {
			m.cursor = i
			m.refreshContent()
			return
		}
	}
}

func (m model) hasSelectable() bool {
	for _, it := range m.items {
		if !it.isCategory {
			return true
		}
	}
	return false
}

func (m model) View() string {
	l := m.layout()
	visible := l.VisibleHeight()

	scroll := 0
	if m.cursor >= scroll+visible {
		scroll = m.cursor - visible + 1
	}

	sidebar := splitpanel.Panel{ScrollPos: scroll, TotalItems: len(m.items)}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted)).Bold(true)
	selected := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(m.colors.Info))
	for i := scroll; i < len(m.items) && len(sidebar.Lines) < visible; i++ {
		it := m.items[i]
		switch {
		case it.isCategory:
			sidebar.Lines = append(sidebar.Lines, muted.Render(it.label))
		case i == m.cursor:
			sidebar.Lines = append(sidebar.Lines, "▸ "+selected.Render(it.label))
		default:
			sidebar.Lines = append(sidebar.Lines, "  "+it.label)
		}
	}

	content := splitpanel.Panel{
		Lines:      strings.Split(m.content.View(), "\n"),
		ScrollPos:  m.content.YOffset,
		TotalItems: m.content.TotalLineCount(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, l.Render(sidebar, content), m.footer())
}

func (m model) footer() string {
	key := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(m.colors.Info)).
		Padding(0, 1)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.UIDim)).Render(" │ ")

	return key.Render("↑↓") + label.Render(" nav") + sep +
		key.Render("tab") + label.Render(" focus") + sep +
		key.Render("u/d") + label.Render(" scroll") + sep +
		key.Render("q") + label.Render(" quit")
}
