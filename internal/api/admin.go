package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func AdminReloadHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		issues, err := s.Reload(c.Request.Context())
		if errors.Is(err, ErrBlockingIssues) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "schema has blocking issues",
				"issues": issues,
				"hint":   "fix DSL and retry",
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "catalog load error", "details": err.Error()})
			return
		}
		cat := s.Catalog()
		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"entities": len(cat.FQNs()),
			"enums":    len(cat.Enums()),
		})
	}
}
