package services

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-client/internal/api"
	"github.com/adanyl0v/go-todo-client/internal/models"
)

type todoServiceImpl struct {
	logger zerolog.Logger
	client *api.Client
	auth   AuthService

	mu      sync.Mutex
	todos   []models.Todo
	message string
	// version guards fetch results against racing local mutations:
	// a fetch started before the last mutation is discarded.
	version uint64
	lastID  int64
}

func NewTodoService(
	logger zerolog.Logger,
	client *api.Client,
	auth AuthService,
) TodoService {
	s := &todoServiceImpl{
		logger: logger,
		client: client,
		auth:   auth,
	}

	auth.Subscribe(func(session models.Session) {
		if session.Active() {
			return
		}
		s.mu.Lock()
		s.todos = nil
		s.message = ""
		s.version++
		s.mu.Unlock()

		s.logger.Debug().Msg("session ended, cleared todos")
	})

	return s
}

func (s *todoServiceImpl) FetchAll(ctx context.Context) {
	session := s.auth.Session()
	if !session.Active() {
		return
	}

	s.mu.Lock()
	snapshot := s.version
	s.mu.Unlock()

	page, err := s.client.TodosByUser(ctx, session.UserID, session.Token)
	if err != nil {
		s.mu.Lock()
		s.message = MsgFetchFailed
		s.mu.Unlock()

		s.logger.Error().
			Err(err).
			Str("user_id", session.UserID).
			Msg("failed to fetch todos")

		if api.KindOf(err) == api.KindUnauthorized {
			_ = s.auth.Logout(ctx)
		}
		return
	}

	todos := page.Todos
	if owner, convErr := strconv.ParseInt(session.UserID, 10, 64); convErr == nil {
		todos = todos[:0:0]
		for _, t := range page.Todos {
			if t.UserID == owner {
				todos = append(todos, t)
			}
		}
	}

	s.mu.Lock()
	if s.version != snapshot {
		s.mu.Unlock()
		s.logger.Debug().
			Str("user_id", session.UserID).
			Msg("discarded stale fetch result")
		return
	}
	s.todos = todos
	s.message = ""
	s.version++
	s.mu.Unlock()

	s.logger.Info().
		Int("count", len(todos)).
		Str("user_id", session.UserID).
		Msg("fetched todos")
}

func (s *todoServiceImpl) Add(title string) {
	session := s.auth.Session()
	if !session.Active() {
		return
	}

	title = strings.TrimSpace(title)
	if title == "" {
		s.logger.Debug().Msg("ignored empty todo title")
		return
	}

	// The backing service never persists writes, so the id only has
	// to be unique within this process.
	owner, _ := strconv.ParseInt(session.UserID, 10, 64)

	s.mu.Lock()
	id := time.Now().UnixMilli()*1000 + rand.Int64N(1000)
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	s.todos = append(s.todos, models.Todo{
		ID:        id,
		Text:      title,
		Completed: false,
		UserID:    owner,
	})
	s.version++
	s.mu.Unlock()

	s.logger.Info().
		Int64("todo_id", id).
		Str("user_id", session.UserID).
		Msg("added todo")
}

func (s *todoServiceImpl) Toggle(id int64) {
	if !s.auth.Session().Active() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Completed = !s.todos[i].Completed
			s.version++

			s.logger.Debug().
				Int64("todo_id", id).
				Bool("completed", s.todos[i].Completed).
				Msg("toggled todo")
			return
		}
	}
	s.logger.Debug().
		Int64("todo_id", id).
		Msg("toggle: todo not found")
}

func (s *todoServiceImpl) Remove(id int64) {
	if !s.auth.Session().Active() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			s.version++

			s.logger.Debug().
				Int64("todo_id", id).
				Msg("removed todo")
			return
		}
	}
	s.logger.Debug().
		Int64("todo_id", id).
		Msg("remove: todo not found")
}

func (s *todoServiceImpl) Todos() []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *todoServiceImpl) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
