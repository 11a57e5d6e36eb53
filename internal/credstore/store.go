package credstore

import "context"

// Credentials is the persisted session pair. Both fields are written
// and removed together; a store must never hold only one of them.
type Credentials struct {
	Token  string `json:"auth_token"`
	UserID string `json:"user_id"`
}

func (c Credentials) Complete() bool {
	return c.Token != "" && c.UserID != ""
}

// Store abstracts persistence of the credential pair across restarts.
type Store interface {
	// Load returns the stored pair, or zero credentials if nothing is stored.
	Load(ctx context.Context) (Credentials, error)
	// Save persists the pair, replacing any existing one.
	Save(ctx context.Context, creds Credentials) error
	// Clear removes the pair. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
