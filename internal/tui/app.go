package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/todo-tui/internal/logger"
	"github.com/pdxmph/todo-tui/internal/todo"
)

// EmptyTaskAlert is shown when the user tries to add an empty task
const EmptyTaskAlert = "You shouldn't add empty task"

// focus says which part of the screen receives keys
type focus int

const (
	focusInput focus = iota
	focusList
)

// savedMsg reports the outcome of a background save
type savedMsg struct {
	err   error
	count int
}

// Model represents the main application state
type Model struct {
	list   *todo.List
	saver  todo.Saver
	input  textinput.Model
	help   help.Model
	keys   keyMap
	focus  focus
	cursor int
	width  int
	height int

	// Blocking notice; any key dismisses it
	alert string

	// Saves issued but not yet reported back
	pending int

	// Quit requested; exits once pending reaches zero
	quitting bool
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("235")).
			Padding(0, 3)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("33")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	editingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	fallbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// New creates the screen model over a restored list. Mutations are saved through saver.
func New(list *todo.List, saver todo.Saver) Model {
	ti := textinput.New()
	ti.Placeholder = "Add a task"
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Width = 40
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	ti.Focus()

	return Model{
		list:  list,
		saver: saver,
		input: ti,
		help:  help.New(),
		keys:  defaultKeyMap(),
		focus: focusInput,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.width > 10 {
			m.input.Width = m.width - 8 // border and padding
		}
		return m, nil

	case savedMsg:
		m.pending--
		if msg.err != nil {
			// memory stays authoritative; the next mutation retries with the full list
			logger.Error("saving %d tasks: %v", msg.count, msg.err)
		}
		if m.quitting && m.pending <= 0 {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if m.quitting {
			// a second ctrl+c gives up on the outstanding saves
			if key.Matches(msg, m.keys.ForceQuit) {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.alert != "" {
			m.alert = ""
			return m, nil
		}

		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}

		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Cancel):
		if m.list.Editing() {
			m.list.CancelEdit()
			m.input.SetValue("")
			return m, nil
		}
		return m.focusOnList(), nil

	case key.Matches(msg, m.keys.FocusList):
		return m.focusOnList(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.list.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.list.BeginEdit(task.ID); err != nil {
			logger.Error("starting edit: %v", err)
			return m, nil
		}
		m.input.SetValue(m.list.Draft())
		m.input.CursorEnd()
		return m.focusOnInput()

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		eff := m.list.Delete(task.ID)
		m.input.SetValue(m.list.Draft())
		m.cursor = m.ensureValidCursor()
		return m.persist(eff)

	case key.Matches(msg, m.keys.FocusInput):
		return m.focusOnInput()
	}

	return m, nil
}

// submit adds the draft as a new task, or commits it when an edit is active
func (m Model) submit() (tea.Model, tea.Cmd) {
	var (
		eff todo.Effect
		err error
	)
	if m.list.Editing() {
		eff, err = m.list.CommitEdit()
	} else {
		eff, err = m.list.Add()
	}

	if errors.Is(err, todo.ErrEmptyTask) {
		m.alert = EmptyTaskAlert
		return m, nil
	}
	if err != nil {
		logger.Error("submitting task: %v", err)
		return m, nil
	}

	m.input.SetValue(m.list.Draft())
	return m.persist(eff)
}

// persist turns a mutation's effect into a background save
func (m Model) persist(eff todo.Effect) (tea.Model, tea.Cmd) {
	if !eff.Save {
		return m, nil
	}
	m.pending++
	saver := m.saver
	return m, func() tea.Msg {
		err := eff.Persist(context.Background(), saver)
		return savedMsg{err: err, count: len(eff.Tasks)}
	}
}

// quit exits now, or after the outstanding saves report back
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.pending <= 0 {
		return m, tea.Quit
	}
	m.quitting = true
	logger.Info("waiting for %d save(s) before quitting", m.pending)
	return m, nil
}

func (m Model) focusOnInput() (tea.Model, tea.Cmd) {
	m.focus = focusInput
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) focusOnList() Model {
	m.focus = focusList
	m.input.Blur()
	m.cursor = m.ensureValidCursor()
	return m
}

func (m Model) selected() (todo.Task, bool) {
	tasks := m.list.Tasks()
	if len(tasks) == 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

// ensureValidCursor keeps the cursor within the list
func (m Model) ensureValidCursor() int {
	n := m.list.Len()
	if n == 0 || m.cursor < 0 {
		return 0
	}
	if m.cursor >= n {
		return n - 1
	}
	return m.cursor
}

// buttonLabel is "Save" while a task is being edited and "Add" otherwise
func (m Model) buttonLabel() string {
	if m.list.Editing() {
		return "Save"
	}
	return "Add"
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.quitting {
		return fallbackStyle.Render("Saving...")
	}

	if m.alert != "" {
		return m.renderAlert()
	}

	header := titleStyle.Render(fmt.Sprintf("Todo (%d)", m.list.Len()))
	input := inputStyle.Width(m.width - 4).Render(m.input.View())
	button := buttonStyle.Render(m.buttonLabel())

	// header, input, button, blank lines and help
	listHeight := m.height - 9

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		input,
		button,
		"",
		m.renderList(m.width, listHeight),
		"",
		m.renderHelp(),
	)
}

// renderList renders the task list, or the fallback when it is empty
func (m Model) renderList(width, height int) string {
	tasks := m.list.Tasks()
	if len(tasks) == 0 {
		return fallbackStyle.Render("No tasks yet")
	}

	if height < 1 {
		height = 1
	}
	startIdx := 0
	if m.cursor >= height {
		startIdx = m.cursor - height + 1
	}

	var lines []string
	for i := startIdx; i < len(tasks) && i < startIdx+height; i++ {
		t := tasks[i]

		marker := "  "
		if t.ID == m.list.EditingID() {
			marker = editingStyle.Render("✎ ")
		}

		line := displayTitle(t.Title)
		if width > 6 && len([]rune(line)) > width-4 {
			line = string([]rune(line)[:width-5]) + "…"
		}

		if m.focus == focusList && i == m.cursor {
			line = selectedStyle.Render(" " + line + " ")
		} else {
			line = itemStyle.Render(" " + line + " ")
		}
		lines = append(lines, marker+line)
	}

	return strings.Join(lines, "\n")
}

// displayTitle normalizes a title for a single line.
// Empty or whitespace-only titles become "(untitled)".
func displayTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// renderHelp renders the help line for the focused area
func (m Model) renderHelp() string {
	var bindings []key.Binding
	if m.focus == focusInput {
		submit := m.keys.Submit
		if m.list.Editing() {
			submit.SetHelp("enter", "save")
			bindings = []key.Binding{submit, m.keys.Cancel, m.keys.FocusList, m.keys.ForceQuit}
		} else {
			bindings = []key.Binding{submit, m.keys.FocusList, m.keys.ForceQuit}
		}
	} else {
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Edit, m.keys.Delete, m.keys.FocusInput, m.keys.Quit}
	}
	return m.help.ShortHelpView(bindings)
}

// renderAlert renders the blocking notice centered on screen
func (m Model) renderAlert() string {
	width := 50
	height := 5

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(m.alert + "\n\npress any key")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Width(width).
		Render(content)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
