package middleware

import (
	"finqa/store"

	"github.com/gofiber/fiber/v2"
)

const SessionCookie = "finqa_session"

const sessionKey = "session"

// Sessions resolves the caller's session from its cookie, creating a fresh
// one when the cookie is missing or unknown.
func Sessions(sessions store.SessionStorer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := sessions.Get(c.Cookies(SessionCookie))
		if !ok {
			s = sessions.Create()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    s.ID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(sessionKey, s)
		return c.Next()
	}
}

func Session(c *fiber.Ctx) *store.Session {
	s, _ := c.Locals(sessionKey).(*store.Session)
	return s
}
