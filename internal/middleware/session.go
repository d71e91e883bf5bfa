package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookieName holds the browser session identifier.
const SessionCookieName = "diario_session"

const (
	sessionLocal       = "session_id"
	sessionIssuedLocal = "session_issued"
)

// SessionConfig tunes the session cookie.
type SessionConfig struct {
	TTL    time.Duration
	Secure bool
}

// Session makes sure every request carries a session id, issuing a cookie when the browser has
// none or sends something that is not a uuid.
func Session(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			cookie := &fiber.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			}
			if cfg.TTL > 0 {
				cookie.Expires = time.Now().Add(cfg.TTL)
			}
			c.Cookie(cookie)
			c.Locals(sessionIssuedLocal, true)
		}

		c.Locals(sessionLocal, id)
		return c.Next()
	}
}

// SessionID returns the session identifier bound by Session.
func SessionID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	id, _ := c.Locals(sessionLocal).(string)
	return id
}

// SessionIssued reports whether Session minted the id on this request.
func SessionIssued(c *fiber.Ctx) bool {
	if c == nil {
		return false
	}
	issued, _ := c.Locals(sessionIssuedLocal).(bool)
	return issued
}
