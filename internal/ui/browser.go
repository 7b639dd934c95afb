// Package ui implements turingc ui's interactive dump browser: a
// bubbletea program that lets a user step through a unit's rendered
// dump sections (ast, scope, types) with a list-and-viewport layout,
// grounded on the teacher's bubbletea progress model idiom but adapted
// from a streaming progress bar to a static, navigable document browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Section is one pre-rendered dump pane the browser can display. The
// caller (the turingc driver) renders the ast/scope/types text the same
// way the non-interactive `build --dump` path does; Browser only knows
// how to list and scroll sections, not how to produce them.
type Section struct {
	Title string
	Body  string
}

type sectionItem Section

func (i sectionItem) FilterValue() string { return i.Title }
func (i sectionItem) Title() string       { return i.Title }
func (i sectionItem) Description() string {
	return fmt.Sprintf("%d lines", strings.Count(i.Body, "\n")+1)
}

var (
	borderStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the browser's bubbletea model: a section list on the left,
// a scrollable viewport of the selected section's body on the right.
type Model struct {
	name      string
	list      list.Model
	viewport  viewport.Model
	sections  []Section
	focusList bool
	ready     bool
}

// NewBrowser returns a bubbletea model presenting sections under name.
func NewBrowser(name string, sections []Section) tea.Model {
	items := make([]list.Item, len(sections))
	for i, s := range sections {
		items[i] = sectionItem(s)
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = name
	l.SetShowStatusBar(false)

	vp := viewport.New(0, 0)
	if len(sections) > 0 {
		vp.SetContent(sections[0].Body)
	}

	return &Model{name: name, list: l, viewport: vp, sections: sections, focusList: true}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		listWidth := msg.Width / 3
		if listWidth < 24 {
			listWidth = 24
		}
		contentHeight := msg.Height - 4
		m.list.SetSize(listWidth, contentHeight)
		m.viewport.Width = msg.Width - listWidth - 4
		m.viewport.Height = contentHeight
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focusList = !m.focusList
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focusList {
		m.list, cmd = m.list.Update(msg)
		m.syncViewport()
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *Model) syncViewport() {
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.sections) {
		return
	}
	m.viewport.SetContent(m.sections[idx].Body)
}

func (m *Model) View() string {
	if !m.ready {
		return "loading...\n"
	}
	header := titleStyle.Render(m.name)
	help := helpStyle.Render("tab: switch pane  q: quit")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), borderStyle.Render(m.viewport.View()))
	return header + "\n" + body + "\n" + help + "\n"
}
