package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/chirpnet/chirp/internal/db"
	"github.com/chirpnet/chirp/internal/models"
)

// signup registers a new user and signs them in.
func (r *Router) signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	fields := map[string]string{}
	if username == "" {
		fields["username"] = "this field is required"
	}
	if password == "" {
		fields["password"] = "this field is required"
	}
	if len(fields) > 0 {
		renderFieldErrors(c, fields)
		return
	}

	userRepo := db.NewUserRepository(r.repo)
	existing, err := userRepo.GetByUsername(c.Request.Context(), username)
	if err != nil {
		r.renderError(c, err)
		return
	}
	if existing != nil {
		renderFieldErrors(c, map[string]string{"username": "already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		r.renderError(c, err)
		return
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Create(c.Request.Context(), user); err != nil {
		r.renderError(c, err)
		return
	}

	if err := r.signIn(c, user.ID); err != nil {
		r.renderError(c, err)
		return
	}

	r.logger.Info("user registered", zap.String("username", username))
	c.Redirect(http.StatusFound, "/")
}

// loginForm serves the login form data, echoing the return path.
func (r *Router) loginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{"fields": []string{"username", "password"}},
		"next": c.Query("next"),
	})
}

// login authenticates a user and establishes the session, then sends
// them to the return path the login flow preserved.
func (r *Router) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := db.NewUserRepository(r.repo).GetByUsername(c.Request.Context(), username)
	if err != nil {
		r.renderError(c, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		renderFieldErrors(c, map[string]string{"username": "invalid credentials"})
		return
	}

	if err := r.signIn(c, user.ID); err != nil {
		r.renderError(c, err)
		return
	}

	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// logout destroys the session.
func (r *Router) logout(c *gin.Context) {
	if err := r.signOut(c); err != nil {
		r.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
