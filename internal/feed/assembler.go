package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chirpnet/chirp/internal/db"
	"github.com/chirpnet/chirp/internal/models"
	"github.com/chirpnet/chirp/internal/relation"
	"github.com/chirpnet/chirp/pkg/logging"
	"github.com/chirpnet/chirp/pkg/telemetry"
)

// Assembler builds ordered, paginated post listings for the four feed
// views. All feeds are reverse-chronological; related records are
// eagerly attached so rendering needs no further queries.
type Assembler struct {
	repo     *db.Repository
	relation *relation.Engine
	pageSize int
	logger   *zap.Logger
}

// NewAssembler creates a new feed assembler
func NewAssembler(repo *db.Repository, engine *relation.Engine, pageSize int) *Assembler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Assembler{
		repo:     repo,
		relation: engine,
		pageSize: pageSize,
		logger:   logging.WithComponent("feed-assembler"),
	}
}

// GlobalFeed returns a page of all posts, newest first, with authors
// attached.
func (a *Assembler) GlobalFeed(ctx context.Context, pageNum int) (*Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.global")
	defer span.End()

	query := a.repo.DB().WithContext(ctx).Model(&models.Post{})
	return a.paginate(ctx, query, pageNum, "Author")
}

// GroupFeed returns a page of one group's posts, newest first, with
// authors and groups attached. Unknown slugs yield ErrNotFound.
func (a *Assembler) GroupFeed(ctx context.Context, slug string, pageNum int) (*Page, *models.Group, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.group")
	defer span.End()

	group, err := db.NewGroupRepository(a.repo).GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up group: %w", err)
	}
	if group == nil {
		return nil, nil, db.ErrNotFound
	}

	query := a.repo.DB().WithContext(ctx).
		Model(&models.Post{}).
		Where("group_id = ?", group.ID)
	page, err := a.paginate(ctx, query, pageNum, "Author", "Group")
	if err != nil {
		return nil, nil, err
	}
	return page, group, nil
}

// AuthorFeed returns a page of one author's posts, newest first, plus
// whether the viewer follows that author. Unknown usernames yield
// ErrNotFound.
func (a *Assembler) AuthorFeed(ctx context.Context, username string, viewerID int64, pageNum int) (*Page, *models.User, bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.author")
	defer span.End()

	author, err := db.NewUserRepository(a.repo).GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to look up author: %w", err)
	}
	if author == nil {
		return nil, nil, false, db.ErrNotFound
	}

	following, err := a.relation.IsFollowing(ctx, viewerID, author.ID)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to check follow state: %w", err)
	}

	query := a.repo.DB().WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", author.ID)
	page, err := a.paginate(ctx, query, pageNum, "Author")
	if err != nil {
		return nil, nil, false, err
	}
	return page, author, following, nil
}

// PersonalFeed returns a page of posts authored by users the viewer
// follows, newest first.
func (a *Assembler) PersonalFeed(ctx context.Context, viewerID int64, pageNum int) (*Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.personal")
	defer span.End()

	query := a.relation.FollowingFeedQuery(ctx, viewerID)
	return a.paginate(ctx, query, pageNum, "Author")
}

// paginate counts the result set, clamps the requested page to a valid
// one, and loads that slice newest-first with the given associations
// preloaded.
func (a *Assembler) paginate(ctx context.Context, query *gorm.DB, pageNum int, preloads ...string) (*Page, error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	total := totalPages(count, a.pageSize)
	pageNum = clampPage(pageNum, total)

	items := []*models.Post{}
	itemQuery := query.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Offset((pageNum - 1) * a.pageSize).
		Limit(a.pageSize)
	for _, preload := range preloads {
		itemQuery = itemQuery.Preload(preload)
	}
	if err := itemQuery.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	return &Page{
		Items:      items,
		Number:     pageNum,
		PageSize:   a.pageSize,
		TotalPages: total,
		TotalCount: count,
		HasNext:    pageNum < total,
		HasPrev:    pageNum > 1,
	}, nil
}
