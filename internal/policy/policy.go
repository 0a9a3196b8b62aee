// Package policy decides what a given actor may do. Actor id 0 means
// anonymous. Denials are surfaced by the web layer as redirects, not
// errors: unauthenticated actors go to the login flow, a non-author
// editing a post goes to the post's read-only detail view.
package policy

import (
	"github.com/chirpnet/chirp/internal/models"
)

// Authenticated reports whether the actor is a signed-in user.
func Authenticated(actorID int64) bool {
	return actorID != 0
}

// CanCreatePost reports whether the actor may create a post. The actor
// always becomes the post's author; any author carried in the request
// body is ignored.
func CanCreatePost(actorID int64) bool {
	return Authenticated(actorID)
}

// CanEditPost reports whether the actor may edit a post. Only the
// post's current author may.
func CanEditPost(actorID int64, post *models.Post) bool {
	return Authenticated(actorID) && actorID == post.AuthorID
}

// CanComment reports whether the actor may comment on a post.
func CanComment(actorID int64) bool {
	return Authenticated(actorID)
}

// CanFollow reports whether the actor may create or delete follow
// edges. Self-follow is filtered out later, silently, by the
// relationship engine.
func CanFollow(actorID int64) bool {
	return Authenticated(actorID)
}
