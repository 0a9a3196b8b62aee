package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/chirp/internal/policy"
)

const sessionKeyUserID = "userID"

// currentUserID returns the signed-in user's id, or 0 for anonymous
// requests.
func (r *Router) currentUserID(c *gin.Context) int64 {
	id, _ := r.sessions.Get(c.Request.Context(), sessionKeyUserID).(int64)
	return id
}

// requireAuth redirects anonymous requests to the login flow, keeping
// the original destination in the next parameter.
func (r *Router) requireAuth(c *gin.Context) {
	if !policy.Authenticated(r.currentUserID(c)) {
		r.redirectToLogin(c)
		c.Abort()
		return
	}
	c.Next()
}

func (r *Router) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/auth/login/?next="+c.Request.URL.Path)
}

// signIn binds the session to a user. The token is renewed so a
// pre-login session id never survives authentication.
func (r *Router) signIn(c *gin.Context, userID int64) error {
	if err := r.sessions.RenewToken(c.Request.Context()); err != nil {
		return err
	}
	r.sessions.Put(c.Request.Context(), sessionKeyUserID, userID)
	return nil
}

// signOut destroys the session.
func (r *Router) signOut(c *gin.Context) error {
	return r.sessions.Destroy(c.Request.Context())
}
