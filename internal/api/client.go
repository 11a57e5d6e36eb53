package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-client/internal/config"
	"github.com/adanyl0v/go-todo-client/internal/models"
)

// Client issues the two calls the app needs against the backing service.
// No retries and no pagination; the configured timeout is the only bound.
type Client struct {
	logger     zerolog.Logger
	httpClient *http.Client
	baseURL    string
}

func NewClient(logger zerolog.Logger, cfg config.APIConfig) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
	}
}

type LoginResult struct {
	UserID      string
	AccessToken string
}

type TodosPage struct {
	Todos []models.Todo `json:"todos"`
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// Login authenticates against POST /auth/login. A 2xx response missing
// either the user id or the access token is reported as malformed; the
// user id is canonicalized to a string whether it arrives as a JSON
// number or a string.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	reqID := uuid.NewString()

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, transportError(err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/auth/login",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("request_id", reqID).
			Msg("login request failed")
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("request_id", reqID).
			Msg("login rejected")
		return nil, statusError(resp.StatusCode)
	}

	var decoded struct {
		ID          any    `json:"id"`
		AccessToken string `json:"accessToken"`
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	err = dec.Decode(&decoded)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("request_id", reqID).
			Msg("failed to decode login response")
		return nil, malformedError()
	}

	userID, ok := stringifyID(decoded.ID)
	if !ok || decoded.AccessToken == "" {
		c.logger.Error().
			Str("request_id", reqID).
			Msg("login response missing id or access token")
		return nil, malformedError()
	}
	c.logger.Debug().
		Str("user_id", userID).
		Str("request_id", reqID).
		Msg("logged in")

	return &LoginResult{
		UserID:      userID,
		AccessToken: decoded.AccessToken,
	}, nil
}

// TodosByUser fetches the single page of todos owned by userID
// from GET /todos/user/{id} with a bearer token.
func (c *Client) TodosByUser(ctx context.Context, userID, token string) (*TodosPage, error) {
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/todos/user/"+userID,
		nil,
	)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("request_id", reqID).
			Msg("todos request failed")
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("user_id", userID).
			Str("request_id", reqID).
			Msg("todos rejected")
		return nil, statusError(resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	page := new(TodosPage)
	err = json.Unmarshal(b, page)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("request_id", reqID).
			Msg("failed to decode todos response")
		return nil, malformedError()
	}
	c.logger.Debug().
		Int("count", len(page.Todos)).
		Str("user_id", userID).
		Str("request_id", reqID).
		Msg("fetched todos")

	return page, nil
}

func stringifyID(v any) (string, bool) {
	switch id := v.(type) {
	case json.Number:
		return id.String(), true
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(id), true
	}
}
