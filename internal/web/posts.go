package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/cache"
	"github.com/chirpnet/chirp/internal/db"
	"github.com/chirpnet/chirp/internal/feed"
	"github.com/chirpnet/chirp/internal/models"
	"github.com/chirpnet/chirp/internal/policy"
	"github.com/chirpnet/chirp/pkg/telemetry"
)

// index serves the global feed. The rendered payload sits behind the
// TTL list cache, keyed by the query string; writes do not invalidate
// it, so a new post stays invisible here until the entry expires.
func (r *Router) index(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.index")
	defer span.End()

	key := cache.HashKey("index", c.Request.URL.RawQuery)
	if r.listCache != nil {
		if payload, err := r.listCache.Get(key); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	page, err := r.assembler.GlobalFeed(ctx, feed.ParsePageNumber(c.Query("page")))
	if err != nil {
		r.renderError(c, err)
		return
	}

	payload, err := json.Marshal(gin.H{"page": newPageView(page)})
	if err != nil {
		r.renderError(c, err)
		return
	}

	if r.listCache != nil {
		if err := r.listCache.Set(key, payload, r.cacheTTL); err != nil {
			r.logger.Warn("failed to cache global feed", zap.Error(err))
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// groupFeed serves one group's posts.
func (r *Router) groupFeed(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.group_feed")
	defer span.End()

	page, group, err := r.assembler.GroupFeed(ctx, c.Param("slug"), feed.ParsePageNumber(c.Query("page")))
	if err != nil {
		r.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group": newGroupView(group),
		"page":  newPageView(page),
	})
}

// profile serves an author's posts plus the viewer's follow state.
func (r *Router) profile(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.profile")
	defer span.End()

	page, author, following, err := r.assembler.AuthorFeed(
		ctx,
		c.Param("username"),
		r.currentUserID(c),
		feed.ParsePageNumber(c.Query("page")),
	)
	if err != nil {
		r.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author":    newUserView(author),
		"following": following,
		"page":      newPageView(page),
	})
}

// postDetail serves one post with its comments and the comment form.
func (r *Router) postDetail(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.post_detail")
	defer span.End()

	post, err := r.loadPost(c)
	if err != nil {
		r.renderError(c, err)
		return
	}

	comments, err := db.NewCommentRepository(r.repo).ListByPost(ctx, post.ID)
	if err != nil {
		r.renderError(c, err)
		return
	}

	commentViews := make([]commentView, len(comments))
	for i, comment := range comments {
		commentViews[i] = newCommentView(comment)
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     newPostView(post),
		"comments": commentViews,
		"form":     gin.H{"fields": []string{"text"}},
	})
}

// postCreateForm serves the creation form data: the fields plus the
// groups available for tagging.
func (r *Router) postCreateForm(c *gin.Context) {
	groups, err := db.NewGroupRepository(r.repo).List(c.Request.Context())
	if err != nil {
		r.renderError(c, err)
		return
	}

	groupViews := make([]*groupView, len(groups))
	for i, g := range groups {
		groupViews[i] = newGroupView(g)
	}

	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"fields": []string{"text", "group", "image"},
			"groups": groupViews,
		},
	})
}

// postCreate handles post submission. The session user becomes the
// author regardless of what the request carries.
func (r *Router) postCreate(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.post_create")
	defer span.End()

	actorID := r.currentUserID(c)

	post := &models.Post{AuthorID: actorID, CreatedAt: time.Now().UTC()}
	if fields := r.bindPostForm(c, post); len(fields) > 0 {
		renderFieldErrors(c, fields)
		return
	}

	if err := db.NewPostRepository(r.repo).Create(ctx, post); err != nil {
		r.renderError(c, err)
		return
	}

	author, err := db.NewUserRepository(r.repo).GetByID(ctx, actorID)
	if err != nil || author == nil {
		r.renderError(c, fmt.Errorf("failed to load author: %w", err))
		return
	}

	r.logger.Info("post created",
		zap.Int64("post_id", post.ID),
		zap.Int64("author_id", actorID),
	)
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// postEditForm serves the edit form for a post's author. Anyone else
// is sent to the read-only detail view.
func (r *Router) postEditForm(c *gin.Context) {
	post, err := r.loadPost(c)
	if err != nil {
		r.renderError(c, err)
		return
	}

	if !policy.CanEditPost(r.currentUserID(c), post) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"fields": []string{"text", "group", "image"},
		},
		"post":    newPostView(post),
		"is_edit": true,
	})
}

// postEdit handles an edit submission. A non-author is redirected to
// the detail view; the post is left untouched.
func (r *Router) postEdit(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.post_edit")
	defer span.End()

	post, err := r.loadPost(c)
	if err != nil {
		r.renderError(c, err)
		return
	}

	if !policy.CanEditPost(r.currentUserID(c), post) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	if fields := r.bindPostForm(c, post); len(fields) > 0 {
		renderFieldErrors(c, fields)
		return
	}
	post.ModifiedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}

	if err := db.NewPostRepository(r.repo).Update(ctx, post); err != nil {
		r.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// addComment handles a comment submission; the session user becomes
// the comment's author. An invalid submission writes nothing and goes
// back to the detail view.
func (r *Router) addComment(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "web.add_comment")
	defer span.End()

	post, err := r.loadPost(c)
	if err != nil {
		r.renderError(c, err)
		return
	}

	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		c.Redirect(http.StatusFound, detailURL)
		return
	}

	comment := &models.Comment{
		PostID:    post.ID,
		AuthorID:  r.currentUserID(c),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.NewCommentRepository(r.repo).Create(ctx, comment); err != nil {
		r.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, detailURL)
}

// loadPost resolves the :id path parameter to a post, treating bad or
// unknown ids as not found.
func (r *Router) loadPost(c *gin.Context) (*models.Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, db.ErrNotFound
	}
	post, err := db.NewPostRepository(r.repo).GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, db.ErrNotFound
	}
	return post, nil
}

// bindPostForm applies a multipart post submission to a post, storing
// the image if one was uploaded. A non-empty result means validation
// failed and nothing was written to the post's row.
func (r *Router) bindPostForm(c *gin.Context, post *models.Post) map[string]string {
	fields := map[string]string{}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		fields["text"] = "this field is required"
	}

	var groupID sql.NullInt64
	if raw := c.PostForm("group"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["group"] = "invalid group"
		} else {
			group, lookupErr := db.NewGroupRepository(r.repo).GetByID(c.Request.Context(), id)
			if lookupErr != nil || group == nil {
				fields["group"] = "unknown group"
			} else {
				groupID = sql.NullInt64{Int64: group.ID, Valid: true}
			}
		}
	}

	image := post.Image
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, openErr := file.Open()
		if openErr != nil {
			fields["image"] = "could not read upload"
		} else {
			defer src.Close()
			path, saveErr := r.media.SavePostImage(src, file.Filename)
			if saveErr != nil {
				r.logger.Error("failed to store image", zap.Error(saveErr))
				fields["image"] = "could not store upload"
			} else {
				image = path
			}
		}
	}

	if len(fields) > 0 {
		return fields
	}

	post.Text = text
	post.GroupID = groupID
	post.Image = image
	return nil
}
