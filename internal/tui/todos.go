package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adanyl0v/go-todo-client/internal/models"
)

// todoItem adapts models.Todo to bubbles/list.Item.
type todoItem struct {
	todo models.Todo
}

func (i todoItem) Title() string {
	box := boxUnchecked
	if i.todo.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.todo.Text)
}

func (i todoItem) Description() string { return "" }
func (i todoItem) FilterValue() string { return i.todo.Text }

// Single-line rendering, checked items struck through.
type todoDelegate struct{}

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(todoItem)

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Text
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

func newTodoList() list.Model {
	l := list.New(nil, todoDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.FilterInput.Prompt = "/ "

	binds := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return binds }
	l.AdditionalFullHelpKeys = func() []key.Binding { return binds }
	return l
}

// syncList rebuilds the list items from the service collection.
func (m *model) syncList() {
	todos := m.todos.Todos()
	items := make([]list.Item, 0, len(todos))
	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
		items = append(items, todoItem{todo: t})
	}
	m.list.SetItems(items)

	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		accentStyle.Render("Total"), len(todos),
	)
}

func (m model) selectedID() (int64, bool) {
	item, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return 0, false
	}
	return item.todo.ID, true
}

func (m model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case " ":
			if id, ok := m.selectedID(); ok {
				m.todos.Toggle(id)
				m.syncList()
			}
			return m, nil

		case "x":
			if id, ok := m.selectedID(); ok {
				m.todos.Remove(id)
				m.syncList()
			}
			return m, nil

		case "a":
			m.screen = screenAdd
			m.addInput.SetValue("")
			m.addInput.Focus()
			return m, textinput.Blink

		case "r":
			m.listMsg = ""
			return m, m.fetchCmd()

		case "ctrl+l":
			_ = m.auth.Logout(context.Background())
			return m.toLogin(""), nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) viewList() string {
	view := m.list.View()
	if m.listMsg != "" {
		view += "\n" + errorStyle.Render(m.listMsg)
	}
	return view
}

func (m model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.screen = screenList
			return m, nil

		case "enter":
			title := strings.TrimSpace(m.addInput.Value())
			if title == "" {
				return m, nil
			}
			m.todos.Add(title)
			m.screen = screenList
			m.syncList()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m model) viewAdd() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add todo"))
	b.WriteString("\n\n")
	b.WriteString(m.addInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter add • esc cancel"))
	return panelStyle.Render(b.String())
}
