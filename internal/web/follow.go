package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/chirp/internal/db"
	"github.com/chirpnet/chirp/internal/feed"
	"github.com/chirpnet/chirp/internal/models"
	"github.com/chirpnet/chirp/pkg/telemetry"
)

// followIndex serves the viewer's personalized feed: posts from the
// authors they follow.
func (r *Router) followIndex(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.follow_index")
	defer span.End()

	page, err := r.assembler.PersonalFeed(ctx, r.currentUserID(c), feed.ParsePageNumber(c.Query("page")))
	if err != nil {
		r.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": newPageView(page),
	})
}

// profileFollow creates a follow edge toward the named author.
// Self-follow is silently ignored.
func (r *Router) profileFollow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.profile_follow")
	defer span.End()

	author, err := r.loadAuthor(c)
	if err != nil {
		r.renderError(c, err)
		return
	}

	if err := r.relation.Follow(ctx, r.currentUserID(c), author.ID); err != nil {
		r.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}

// profileUnfollow deletes the follow edge toward the named author; a
// missing edge is a 404.
func (r *Router) profileUnfollow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.profile_unfollow")
	defer span.End()

	author, err := r.loadAuthor(c)
	if err != nil {
		r.renderError(c, err)
		return
	}

	if err := r.relation.Unfollow(ctx, r.currentUserID(c), author.ID); err != nil {
		r.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}

// loadAuthor resolves the :username path parameter, treating unknown
// usernames as not found.
func (r *Router) loadAuthor(c *gin.Context) (*models.User, error) {
	author, err := db.NewUserRepository(r.repo).GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, db.ErrNotFound
	}
	return author, nil
}
