package model

import "time"

// Flash is a one-shot notification stored in the session. Type is a severity
// tag the templates use for styling ("success" or "danger"); Text is the
// message shown to the user.
type Flash struct {
	Type string
	Text string
}

// Flash severity tags.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Session is the server-side state behind one session cookie.
//
// Token is the opaque value stored in the cookie; everything else lives only
// in the session store. User is the logged-in username (empty while
// anonymous). Flash holds at most one pending notification — it is cleared
// the first time it is read for rendering.
type Session struct {
	Token     string
	User      string
	Flash     *Flash
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry time.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// LoggedIn reports whether a user is attached to the session.
func (s *Session) LoggedIn() bool {
	return s.User != ""
}
