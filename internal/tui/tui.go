package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-client/internal/services"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenAdd
)

type loginDoneMsg struct{ err error }

type fetchDoneMsg struct{}

type model struct {
	logger zerolog.Logger
	auth   services.AuthService
	todos  services.TodoService

	screen screen
	width  int
	height int

	// login screen
	username textinput.Model
	password textinput.Model
	spin     spinner.Model
	busy     bool
	notice   string

	// list screen
	list    list.Model
	listMsg string

	// add screen
	addInput textinput.Model
}

// Run blocks until the user quits.
func Run(
	logger zerolog.Logger,
	auth services.AuthService,
	todos services.TodoService,
) error {
	logger.Debug().Msg("starting tui")
	p := tea.NewProgram(newModel(logger, auth, todos), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(
	logger zerolog.Logger,
	auth services.AuthService,
	todos services.TodoService,
) model {
	username := textinput.New()
	username.Prompt = "> "
	username.Placeholder = "Username"
	username.CharLimit = 128
	username.Focus()

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	addInput := textinput.New()
	addInput.Prompt = "> "
	addInput.Placeholder = "What needs to be done?"
	addInput.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		logger:   logger,
		auth:     auth,
		todos:    todos,
		screen:   screenLogin,
		username: username,
		password: password,
		spin:     sp,
		addInput: addInput,
		list:     newTodoList(),
	}

	// A restored session skips the login screen.
	if auth.Session().Active() {
		m.screen = screenList
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.screen == screenList {
		return tea.Batch(m.spin.Tick, m.fetchCmd())
	}
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.notice = m.auth.Message()
			return m, nil
		}
		m.notice = ""
		m.password.SetValue("")
		m.screen = screenList
		return m, m.fetchCmd()

	case fetchDoneMsg:
		if m.screen == screenLogin {
			// Late result of a fetch that was in flight at logout.
			return m, nil
		}
		if !m.auth.Session().Active() {
			// A 401 during the fetch terminated the session.
			return m.toLogin("Session expired. Please log in again."), nil
		}
		m.listMsg = m.todos.Message()
		m.syncList()
		return m, nil
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenAdd:
		return m.updateAdd(msg)
	default:
		return m.updateList(msg)
	}
}

func (m model) View() string {
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenAdd:
		return m.viewAdd()
	default:
		return m.viewList()
	}
}

func (m model) toLogin(notice string) model {
	m.screen = screenLogin
	m.notice = notice
	m.busy = false
	m.username.SetValue("")
	m.password.SetValue("")
	m.username.Focus()
	m.password.Blur()
	m.syncList()
	return m
}

func (m model) loginCmd() tea.Cmd {
	params := services.LoginParams{
		Username: m.username.Value(),
		Password: m.password.Value(),
	}
	auth := m.auth
	return func() tea.Msg {
		return loginDoneMsg{err: auth.Login(context.Background(), params)}
	}
}

func (m model) fetchCmd() tea.Cmd {
	todos := m.todos
	return func() tea.Msg {
		todos.FetchAll(context.Background())
		return fetchDoneMsg{}
	}
}
