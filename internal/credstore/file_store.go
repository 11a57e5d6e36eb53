package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const defaultFileName = "credentials.json"

type fileStore struct {
	logger zerolog.Logger
	path   string
}

// NewFileStore persists the credential pair as a single JSON file.
// Writes go through a temp file and rename, so the pair on disk is
// always complete or absent, never partial.
func NewFileStore(logger zerolog.Logger, path string) Store {
	return &fileStore{
		logger: logger,
		path:   path,
	}
}

// DefaultPath resolves the credentials file location
// under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "go-todo-client", defaultFileName), nil
}

func (s *fileStore) Load(_ context.Context) (Credentials, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().
				Str("path", s.path).
				Msg("no stored credentials")
			return Credentials{}, nil
		}

		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to read credentials file")
		return Credentials{}, err
	}

	var creds Credentials
	err = json.Unmarshal(b, &creds)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to unmarshal credentials file")
		return Credentials{}, err
	}
	s.logger.Debug().
		Str("user_id", creds.UserID).
		Msg("loaded credentials")

	return creds, nil
}

func (s *fileStore) Save(_ context.Context, creds Credentials) error {
	err := os.MkdirAll(filepath.Dir(s.path), 0o700)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to create credentials dir")
		return err
	}

	b, err := json.Marshal(creds)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to marshal credentials")
		return err
	}

	tmp := s.path + ".tmp"
	err = os.WriteFile(tmp, b, 0o600)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", tmp).
			Msg("failed to write credentials file")
		return err
	}

	err = os.Rename(tmp, s.path)
	if err != nil {
		_ = os.Remove(tmp)
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to replace credentials file")
		return err
	}
	s.logger.Debug().
		Str("user_id", creds.UserID).
		Msg("saved credentials")

	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to remove credentials file")
		return err
	}
	s.logger.Debug().Msg("cleared credentials")

	return nil
}
