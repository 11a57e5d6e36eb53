package services

import (
	"context"

	"github.com/adanyl0v/go-todo-client/internal/models"
)

// User-facing failure texts. Components store the text of the most
// recent failure; screens render it verbatim.
const (
	MsgInvalidCredentials = "Invalid username or password."
	MsgServerNotFound     = "Server not found. Please try again later."
	MsgServerError        = "Server error. Please try again later."
	MsgLoginFailed        = "Login failed. Please try again later."
	MsgLogoutFailed       = "Failed to logout. Please try again."
	MsgFetchFailed        = "Failed to load todos. Please try again."
	MsgUnexpected         = "An unexpected error occurred. Please try again."
)

type AuthService interface {
	// Restore establishes a session from stored credentials. A partial
	// pair or a store failure leaves the session empty; the caller is
	// never failed. Must be called before the first FetchAll.
	Restore(ctx context.Context)

	// Login authenticates against the remote service, persists the
	// credential pair and publishes the new session. On failure the
	// classified error is returned and also available via Message;
	// no session is established. Login while a session is already
	// active replaces it.
	Login(ctx context.Context, params LoginParams) error

	// Logout clears the stored credentials and the in-memory session
	// and publishes the empty session. A store failure is returned as
	// non-fatal; the in-memory session is cleared regardless.
	Logout(ctx context.Context) error

	// Session returns the current session, which may be inactive.
	Session() models.Session

	// Message returns the user-facing text of the last failure,
	// or "" after a successful operation.
	Message() string

	// Subscribe registers fn to be called with every published
	// session change. The returned function unsubscribes.
	Subscribe(fn func(models.Session)) (unsubscribe func())
}

// TodoService owns the in-memory todo collection for the current
// session. Every operation is a silent no-op without an active
// session. Mutations are local only; the backing service does not
// persist writes.
type TodoService interface {
	// FetchAll replaces the collection with the remote state. On
	// failure the previous collection is kept and Message is set;
	// a 401 additionally terminates the session via AuthService.
	FetchAll(ctx context.Context)

	// Add appends a new todo with a locally generated id, unique
	// within the process lifetime.
	Add(title string)

	// Toggle flips completion on the matching todo; no-op if absent.
	Toggle(id int64)

	// Remove deletes the matching todo; no-op if absent.
	Remove(id int64)

	// Todos returns a snapshot of the collection.
	Todos() []models.Todo

	// Message returns the user-facing text of the last failure,
	// or "" after a successful fetch.
	Message() string
}

type LoginParams struct {
	Username string
	Password string
}
