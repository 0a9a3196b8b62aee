package feed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chirpnet/chirp/internal/db"
	"github.com/chirpnet/chirp/internal/models"
	"github.com/chirpnet/chirp/internal/relation"
)

type fixture struct {
	gdb       *gorm.DB
	repo      *db.Repository
	engine    *relation.Engine
	assembler *Assembler
	baseTime  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A pooled :memory: connection is a separate empty database
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	repo := db.NewRepository(gdb)
	engine := relation.NewEngine(repo)
	return &fixture{
		gdb:       gdb,
		repo:      repo,
		engine:    engine,
		assembler: NewAssembler(repo, engine, 10),
		baseTime:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", CreatedAt: f.baseTime}
	if err := f.gdb.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func (f *fixture) group(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: title + " group"}
	if err := f.gdb.Create(group).Error; err != nil {
		t.Fatalf("failed to create group %s: %v", slug, err)
	}
	return group
}

// post creates a post with a distinct creation time so ordering is
// deterministic: higher seq means newer.
func (f *fixture) post(t *testing.T, author *models.User, group *models.Group, seq int) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:      fmt.Sprintf("post %d by %s", seq, author.Username),
		AuthorID:  author.ID,
		CreatedAt: f.baseTime.Add(time.Duration(seq) * time.Minute),
	}
	if group != nil {
		post.GroupID = sql.NullInt64{Int64: group.ID, Valid: true}
	}
	if err := f.gdb.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func TestGlobalFeedPagination(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	for i := 0; i < 13; i++ {
		f.post(t, alice, nil, i)
	}

	page, err := f.assembler.GlobalFeed(context.Background(), 1)
	if err != nil {
		t.Fatalf("GlobalFeed() error: %v", err)
	}
	if len(page.Items) != 10 {
		t.Errorf("page 1 has %d items, want 10", len(page.Items))
	}
	if page.TotalPages != 2 || page.TotalCount != 13 {
		t.Errorf("page 1 totals = (%d pages, %d items), want (2, 13)", page.TotalPages, page.TotalCount)
	}
	if !page.HasNext || page.HasPrev {
		t.Errorf("page 1 HasNext=%v HasPrev=%v", page.HasNext, page.HasPrev)
	}

	// Newest first
	if page.Items[0].Text != "post 12 by alice" {
		t.Errorf("first item = %q, want newest post", page.Items[0].Text)
	}

	// Author eagerly attached
	if page.Items[0].Author == nil || page.Items[0].Author.Username != "alice" {
		t.Error("author not eagerly attached to feed items")
	}

	page2, err := f.assembler.GlobalFeed(context.Background(), 2)
	if err != nil {
		t.Fatalf("GlobalFeed() page 2 error: %v", err)
	}
	if len(page2.Items) != 3 {
		t.Errorf("page 2 has %d items, want 3", len(page2.Items))
	}

	// Out-of-range page clamps to the last page instead of failing
	clamped, err := f.assembler.GlobalFeed(context.Background(), 99)
	if err != nil {
		t.Fatalf("GlobalFeed() page 99 error: %v", err)
	}
	if clamped.Number != 2 || len(clamped.Items) != 3 {
		t.Errorf("page 99 clamped to page %d with %d items, want page 2 with 3", clamped.Number, len(clamped.Items))
	}
}

func TestGroupFeed(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	golang := f.group(t, "Go", "go")
	f.post(t, alice, golang, 0)
	f.post(t, alice, golang, 1)
	ungrouped := f.post(t, alice, nil, 2)

	page, group, err := f.assembler.GroupFeed(context.Background(), "go", 1)
	if err != nil {
		t.Fatalf("GroupFeed() error: %v", err)
	}
	if group.Slug != "go" {
		t.Errorf("group slug = %q, want go", group.Slug)
	}
	if len(page.Items) != 2 {
		t.Fatalf("group feed has %d items, want 2", len(page.Items))
	}

	// Ungrouped posts never leak into a group feed
	for _, item := range page.Items {
		if item.ID == ungrouped.ID {
			t.Error("ungrouped post appeared in group feed")
		}
	}

	// Group eagerly attached
	if page.Items[0].Group == nil || page.Items[0].Group.Slug != "go" {
		t.Error("group not eagerly attached to feed items")
	}

	_, _, err = f.assembler.GroupFeed(context.Background(), "missing", 1)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("GroupFeed(unknown slug) = %v, want ErrNotFound", err)
	}
}

func TestGroupFeedPagination(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	golang := f.group(t, "Go", "go")
	for i := 0; i < 13; i++ {
		f.post(t, alice, golang, i)
	}

	page, _, err := f.assembler.GroupFeed(context.Background(), "go", 1)
	if err != nil {
		t.Fatalf("GroupFeed() error: %v", err)
	}
	if len(page.Items) != 10 {
		t.Errorf("group page 1 has %d items, want 10", len(page.Items))
	}
}

func TestAuthorFeed(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	f.post(t, alice, nil, 0)
	f.post(t, bob, nil, 1)

	page, author, following, err := f.assembler.AuthorFeed(context.Background(), "alice", bob.ID, 1)
	if err != nil {
		t.Fatalf("AuthorFeed() error: %v", err)
	}
	if author.Username != "alice" {
		t.Errorf("author = %q, want alice", author.Username)
	}
	if following {
		t.Error("follow state = true before any follow")
	}
	if len(page.Items) != 1 || page.Items[0].AuthorID != alice.ID {
		t.Errorf("author feed returned wrong posts: %+v", page.Items)
	}

	if err := f.engine.Follow(context.Background(), bob.ID, alice.ID); err != nil {
		t.Fatalf("Follow() error: %v", err)
	}
	_, _, following, err = f.assembler.AuthorFeed(context.Background(), "alice", bob.ID, 1)
	if err != nil {
		t.Fatalf("AuthorFeed() error: %v", err)
	}
	if !following {
		t.Error("follow state = false after follow")
	}

	_, _, _, err = f.assembler.AuthorFeed(context.Background(), "nobody", bob.ID, 1)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("AuthorFeed(unknown username) = %v, want ErrNotFound", err)
	}
}

func TestPersonalFeed(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")

	alicePost := f.post(t, alice, nil, 0)
	bobPost := f.post(t, bob, nil, 1)
	f.post(t, carol, nil, 2)

	// Carol follows nobody: empty feed
	page, err := f.assembler.PersonalFeed(context.Background(), carol.ID, 1)
	if err != nil {
		t.Fatalf("PersonalFeed() error: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("feed of non-follower has %d items, want 0", len(page.Items))
	}

	if err := f.engine.Follow(context.Background(), carol.ID, alice.ID); err != nil {
		t.Fatalf("Follow() error: %v", err)
	}

	page, err = f.assembler.PersonalFeed(context.Background(), carol.ID, 1)
	if err != nil {
		t.Fatalf("PersonalFeed() error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != alicePost.ID {
		t.Errorf("personalized feed = %+v, want only alice's post", page.Items)
	}
	for _, item := range page.Items {
		if item.ID == bobPost.ID {
			t.Error("personalized feed includes a non-followed author's post")
		}
	}

	// Bob's followers see his post, carol still does not
	if err := f.engine.Follow(context.Background(), alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow() error: %v", err)
	}
	alicePage, err := f.assembler.PersonalFeed(context.Background(), alice.ID, 1)
	if err != nil {
		t.Fatalf("PersonalFeed() error: %v", err)
	}
	if len(alicePage.Items) != 1 || alicePage.Items[0].ID != bobPost.ID {
		t.Errorf("alice's personalized feed = %+v, want only bob's post", alicePage.Items)
	}
}
