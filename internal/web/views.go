package web

import (
	"time"

	"github.com/chirpnet/chirp/internal/feed"
	"github.com/chirpnet/chirp/internal/models"
)

// View payloads returned to the rendering layer. Timestamps are
// RFC 3339; optional fields are pointers so absent values serialize
// as null.

type userView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type groupView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type postView struct {
	ID         int64      `json:"id"`
	Text       string     `json:"text"`
	Author     *userView  `json:"author"`
	Group      *groupView `json:"group"`
	Image      string     `json:"image,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at"`
}

type commentView struct {
	ID        int64     `json:"id"`
	Author    *userView `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type pageView struct {
	Items      []postView `json:"items"`
	Number     int        `json:"number"`
	TotalPages int        `json:"total_pages"`
	TotalCount int64      `json:"total_count"`
	HasNext    bool       `json:"has_next"`
	HasPrev    bool       `json:"has_prev"`
}

func newUserView(u *models.User) *userView {
	if u == nil {
		return nil
	}
	return &userView{ID: u.ID, Username: u.Username}
}

func newGroupView(g *models.Group) *groupView {
	if g == nil {
		return nil
	}
	return &groupView{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

func newPostView(p *models.Post) postView {
	view := postView{
		ID:        p.ID,
		Text:      p.Text,
		Author:    newUserView(p.Author),
		Group:     newGroupView(p.Group),
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
	if p.ModifiedAt.Valid {
		t := p.ModifiedAt.Time
		view.ModifiedAt = &t
	}
	return view
}

func newCommentView(c *models.Comment) commentView {
	return commentView{
		ID:        c.ID,
		Author:    newUserView(c.Author),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func newPageView(p *feed.Page) pageView {
	items := make([]postView, len(p.Items))
	for i, post := range p.Items {
		items[i] = newPostView(post)
	}
	return pageView{
		Items:      items,
		Number:     p.Number,
		TotalPages: p.TotalPages,
		TotalCount: p.TotalCount,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}
