package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-client/internal/api"
	"github.com/adanyl0v/go-todo-client/internal/credstore"
	"github.com/adanyl0v/go-todo-client/internal/models"
)

type authServiceImpl struct {
	logger zerolog.Logger
	client *api.Client
	creds  credstore.Store

	mu      sync.Mutex
	session models.Session
	message string
	subs    map[int]func(models.Session)
	nextSub int
}

func NewAuthService(
	logger zerolog.Logger,
	client *api.Client,
	creds credstore.Store,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		client: client,
		creds:  creds,
		subs:   make(map[int]func(models.Session)),
	}
}

func (s *authServiceImpl) Restore(ctx context.Context) {
	stored, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to load stored credentials")
		return
	}
	if !stored.Complete() {
		s.logger.Debug().Msg("no complete credential pair stored")
		return
	}

	s.mu.Lock()
	s.session = models.Session{
		Token:  stored.Token,
		UserID: stored.UserID,
	}
	s.mu.Unlock()

	s.logger.Info().
		Str("user_id", stored.UserID).
		Msg("restored session")
	s.publish()
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) error {
	result, err := s.client.Login(ctx, params.Username, params.Password)
	if err != nil {
		msg := messageForKind(api.KindOf(err))
		s.mu.Lock()
		s.message = msg
		s.mu.Unlock()

		s.logger.Error().
			Err(err).
			Str("username", params.Username).
			Msg("failed to login")
		return err
	}

	err = s.creds.Save(ctx, credstore.Credentials{
		Token:  result.AccessToken,
		UserID: result.UserID,
	})
	if err != nil {
		s.mu.Lock()
		s.message = MsgUnexpected
		s.mu.Unlock()

		s.logger.Error().
			Err(err).
			Msg("failed to persist credentials")
		return err
	}

	s.mu.Lock()
	s.session = models.Session{
		Token:  result.AccessToken,
		UserID: result.UserID,
	}
	s.message = ""
	s.mu.Unlock()

	s.logger.Info().
		Str("user_id", result.UserID).
		Msg("logged in")
	s.publish()
	return nil
}

func (s *authServiceImpl) Logout(ctx context.Context) error {
	clearErr := s.creds.Clear(ctx)
	if clearErr != nil {
		// Non-fatal: the in-memory session is dropped regardless.
		s.logger.Error().
			Err(clearErr).
			Msg("failed to clear stored credentials")
	}

	s.mu.Lock()
	s.session = models.Session{}
	if clearErr != nil {
		s.message = MsgLogoutFailed
	} else {
		s.message = ""
	}
	s.mu.Unlock()

	s.logger.Info().Msg("logged out")
	s.publish()
	return clearErr
}

func (s *authServiceImpl) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *authServiceImpl) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *authServiceImpl) Subscribe(fn func(models.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// publish delivers the current session to all subscribers. Callbacks
// run outside the lock so they may call back into the service.
func (s *authServiceImpl) publish() {
	s.mu.Lock()
	session := s.session
	fns := make([]func(models.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

func messageForKind(kind api.Kind) string {
	switch kind {
	case api.KindInvalidCredentials:
		return MsgInvalidCredentials
	case api.KindNotFound:
		return MsgServerNotFound
	case api.KindServer:
		return MsgServerError
	case api.KindMalformed:
		return MsgLoginFailed
	default:
		return MsgUnexpected
	}
}
