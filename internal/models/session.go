package models

// Session is the authenticated identity currently active in the client.
// Token and UserID are either both set or both empty.
type Session struct {
	Token  string
	UserID string
}

func (s Session) Active() bool {
	return s.Token != "" && s.UserID != ""
}
