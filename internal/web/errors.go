package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/db"
)

// renderError maps domain errors onto the fixed error pages: unknown
// records become a 404, anything else a generic 500.
func (r *Router) renderError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
			"path":  c.Request.URL.Path,
		})
		return
	}

	r.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "server error",
	})
}

// renderFieldErrors redisplays a form submission with its field
// errors. No partial write has happened by this point.
func renderFieldErrors(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"errors": fields,
	})
}
