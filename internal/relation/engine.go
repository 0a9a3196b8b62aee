package relation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chirpnet/chirp/internal/db"
	"github.com/chirpnet/chirp/internal/models"
	"github.com/chirpnet/chirp/pkg/logging"
)

// Engine computes and mutates follow relationships between viewers and
// authors.
type Engine struct {
	repo   *db.Repository
	logger *zap.Logger
}

// NewEngine creates a new relationship engine
func NewEngine(repo *db.Repository) *Engine {
	return &Engine{
		repo:   repo,
		logger: logging.WithComponent("relation-engine"),
	}
}

// IsFollowing reports whether viewer follows author. An anonymous
// viewer (id 0) never follows anyone and short-circuits without a
// query.
func (e *Engine) IsFollowing(ctx context.Context, viewerID, authorID int64) (bool, error) {
	if viewerID == 0 {
		return false, nil
	}
	return db.NewFollowRepository(e.repo).Exists(ctx, viewerID, authorID)
}

// Follow inserts a follow edge from viewer to author. Self-follow and
// an already existing edge are silent no-ops. The existence check and
// the insert are not atomic; concurrent duplicate attempts can produce
// duplicate rows.
func (e *Engine) Follow(ctx context.Context, viewerID, authorID int64) error {
	if viewerID == authorID {
		return nil
	}

	followRepo := db.NewFollowRepository(e.repo)
	exists, err := followRepo.Exists(ctx, viewerID, authorID)
	if err != nil {
		return fmt.Errorf("failed to check existing follow: %w", err)
	}
	if exists {
		return nil
	}

	follow := &models.Follow{
		UserID:   viewerID,
		AuthorID: authorID,
	}
	if err := followRepo.Create(ctx, follow); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	e.logger.Debug("follow edge created",
		zap.Int64("user_id", viewerID),
		zap.Int64("author_id", authorID),
	)
	return nil
}

// Unfollow deletes the follow edge from viewer to author. The edge is
// looked up first; a missing edge is reported as ErrNotFound.
func (e *Engine) Unfollow(ctx context.Context, viewerID, authorID int64) error {
	followRepo := db.NewFollowRepository(e.repo)
	follow, err := followRepo.Get(ctx, viewerID, authorID)
	if err != nil {
		return fmt.Errorf("failed to look up follow: %w", err)
	}
	if follow == nil {
		return db.ErrNotFound
	}
	if err := followRepo.Delete(ctx, follow); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

// FollowingFeedQuery builds the query for all posts authored by users
// the viewer follows, newest first. A viewer following nobody yields
// an empty result.
func (e *Engine) FollowingFeedQuery(ctx context.Context, viewerID int64) *gorm.DB {
	return e.repo.DB().WithContext(ctx).
		Model(&models.Post{}).
		Joins("INNER JOIN chirp_follows ON chirp_follows.author_id = chirp_posts.author_id").
		Where("chirp_follows.user_id = ?", viewerID)
}
