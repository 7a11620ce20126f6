package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suprajagandikota3-max/designer-app/internal/session"
)

const (
	sessionCookie = "designer_session"
	sessionKey    = "session_id"
)

// session returns the caller's session, issuing a cookie for new ones. The id
// is remembered on the context so later calls in the same request agree.
func (h *Handlers) session(c *gin.Context) session.Session {
	id := c.GetString(sessionKey)
	if id == "" {
		id, _ = c.Cookie(sessionCookie)
	}
	sess := h.sessions.Get(id)
	if sess.ID != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	}
	c.Set(sessionKey, sess.ID)
	return sess
}

// recordDesign counts a finished design and carries its text over to the
// next form.
func (h *Handlers) recordDesign(c *gin.Context, text string) session.Session {
	sess := h.session(c)
	return h.sessions.Update(sess.ID, func(s *session.Session) {
		s.Designs++
		s.LastText = text
	})
}
