package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/lxengine/config"
	"github.com/wippyai/lxengine/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateTitle
)

// interactiveModel drives one engine handle from the keyboard. Caller refs
// are tracked per document so close and release can be exercised separately.
type interactiveModel struct {
	err      error
	engine   *engine.Handle
	refs     map[*engine.Document]*engine.DocumentRef
	docs     []*engine.Document
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel(h *engine.Handle) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "untitled"
	ti.Prompt = "title: "
	ti.Width = 40
	return &interactiveModel{
		engine: h,
		refs:   make(map[*engine.Document]*engine.DocumentRef),
		input:  ti,
		state:  stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateTitle {
		switch key.String() {
		case "enter":
			m.create(m.input.Value())
			m.input.Reset()
			m.input.Blur()
			m.state = stateBrowse
			return m, nil
		case "esc":
			m.input.Reset()
			m.input.Blur()
			m.state = stateBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.releaseAll()
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.docs)-1 {
			m.selected++
		}

	case "n":
		m.err = nil
		m.state = stateTitle
		return m, m.input.Focus()

	case "c":
		if doc := m.current(); doc != nil {
			m.err = m.engine.CloseDocument(doc)
		}

	case "r":
		if doc := m.current(); doc != nil {
			if ref, ok := m.refs[doc]; ok {
				m.err = ref.Release()
				delete(m.refs, doc)
			}
		}

	case "s":
		m.err = m.engine.Shutdown()
	}
	m.refresh()
	return m, nil
}

func (m *interactiveModel) create(title string) {
	ref, err := m.engine.CreateDocument()
	if err != nil {
		m.err = err
		return
	}
	if title != "" {
		ref.Document().SetTitle(title)
	}
	m.refs[ref.Document()] = ref
	m.refresh()
}

// refresh lists active documents followed by closed ones the caller still
// holds, and drops refs whose documents are gone.
func (m *interactiveModel) refresh() {
	m.docs = m.engine.Documents()
	for doc := range m.refs {
		if !doc.Alive() {
			delete(m.refs, doc)
			continue
		}
		if !m.isActive(doc) {
			m.docs = append(m.docs, doc)
		}
	}
	if m.selected >= len(m.docs) {
		m.selected = max(len(m.docs)-1, 0)
	}
}

func (m *interactiveModel) isActive(doc *engine.Document) bool {
	for _, d := range m.engine.Documents() {
		if d == doc {
			return true
		}
	}
	return false
}

func (m *interactiveModel) current() *engine.Document {
	if m.selected < len(m.docs) {
		return m.docs[m.selected]
	}
	return nil
}

func (m *interactiveModel) releaseAll() {
	for doc, ref := range m.refs {
		_ = ref.Release()
		delete(m.refs, doc)
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lxctl"))
	b.WriteString(" ")
	b.WriteString(m.engine.InstanceID())
	if m.engine.ShuttingDown() {
		b.WriteString(errorStyle.Render(" (shut down)"))
	}
	b.WriteString("\n\n")

	c := m.engine.ObjectCount("Document")
	b.WriteString(countStyle.Render(fmt.Sprintf("current %d  peak %d  total %d", c.Current, c.Peak, c.Total)))
	b.WriteString("\n\n")

	if len(m.docs) == 0 {
		b.WriteString("No documents.\n")
	}
	for i, doc := range m.docs {
		line := m.formatDoc(doc)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.state == stateTitle {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter create • esc cancel"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • n new • c close • r release • s shutdown • q quit"))
	return b.String()
}

func (m *interactiveModel) formatDoc(doc *engine.Document) string {
	title := doc.Title()
	if title == "" {
		title = "untitled"
	}
	var flags []string
	if m.isActive(doc) {
		flags = append(flags, "active")
	}
	if ref, ok := m.refs[doc]; ok {
		flags = append(flags, fmt.Sprintf("held, %d shares", ref.UseCount()))
	}
	return docStyle.Render(title) + " " + countStyle.Render("["+strings.Join(flags, ", ")+"]")
}

func runInteractive(cfg config.Config) error {
	engine.Configure(engine.Options{Config: cfg})
	h := engine.Acquire()
	defer func() { _ = h.Release() }()

	p := tea.NewProgram(newInteractiveModel(h), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
