package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			if m.username.Focused() {
				m.username.Blur()
				m.password.Focus()
			} else {
				m.password.Blur()
				m.username.Focus()
			}
			return m, textinput.Blink

		case "enter":
			if m.busy {
				return m, nil
			}
			if strings.TrimSpace(m.username.Value()) == "" ||
				m.password.Value() == "" {
				m.notice = "Please enter username and password."
				return m, nil
			}
			m.busy = true
			m.notice = ""
			return m, tea.Batch(m.spin.Tick, m.loginCmd())
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Todos — Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.spin.View() + mutedStyle.Render("Signing in..."))
	case m.notice != "":
		b.WriteString(errorStyle.Render(m.notice))
	default:
		b.WriteString(helpStyle.Render("enter sign in • tab switch field • esc quit"))
	}

	return panelStyle.Render(b.String())
}
