package web

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/cache"
	"github.com/chirpnet/chirp/internal/db"
	"github.com/chirpnet/chirp/internal/feed"
	"github.com/chirpnet/chirp/internal/media"
	"github.com/chirpnet/chirp/internal/relation"
	"github.com/chirpnet/chirp/pkg/config"
	"github.com/chirpnet/chirp/pkg/logging"
)

// Router wires the HTTP surface: feeds, post CRUD, comments, follow
// actions, and the auth pages.
type Router struct {
	repo      *db.Repository
	assembler *feed.Assembler
	relation  *relation.Engine
	listCache cache.Store
	media     *media.Store
	sessions  *scs.SessionManager
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewRouter creates a new router with all its collaborators.
func NewRouter(database *db.DB, listCache cache.Store, mediaStore *media.Store, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)
	engine := relation.NewEngine(repo)

	sessions := scs.New()
	sessions.Lifetime = cfg.Session.Lifetime
	sessions.Cookie.Secure = cfg.Session.Secure

	return &Router{
		repo:      repo,
		assembler: feed.NewAssembler(repo, engine, cfg.Feed.PageSize),
		relation:  engine,
		listCache: listCache,
		media:     mediaStore,
		sessions:  sessions,
		cacheTTL:  cfg.Feed.CacheTTL,
		logger:    logging.WithComponent("web-router"),
	}
}

// Handler builds the full HTTP handler: gin routes wrapped in the
// session middleware.
func (r *Router) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)
	return r.sessions.LoadAndSave(engine)
}

// SetupRoutes registers all routes on a gin engine.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Feeds
	engine.GET("/", r.index)
	engine.GET("/group/:slug/", r.groupFeed)
	engine.GET("/profile/:username/", r.profile)
	engine.GET("/follow/", r.requireAuth, r.followIndex)

	// Posts and comments
	engine.GET("/posts/:id/", r.postDetail)
	engine.GET("/create/", r.requireAuth, r.postCreateForm)
	engine.POST("/create/", r.requireAuth, r.postCreate)
	engine.GET("/posts/:id/edit/", r.requireAuth, r.postEditForm)
	engine.POST("/posts/:id/edit/", r.requireAuth, r.postEdit)
	engine.POST("/posts/:id/comment/", r.requireAuth, r.addComment)

	// Follow edges
	engine.POST("/profile/:username/follow/", r.requireAuth, r.profileFollow)
	engine.POST("/profile/:username/unfollow/", r.requireAuth, r.profileUnfollow)

	// Auth
	engine.POST("/auth/signup/", r.signup)
	engine.GET("/auth/login/", r.loginForm)
	engine.POST("/auth/login/", r.login)
	engine.POST("/auth/logout/", r.requireAuth, r.logout)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "chirp",
	})
}
