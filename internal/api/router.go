package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router собирает gin-маршруты браузера каталога.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), s.metrics.middleware(), AccessLog(s.log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "entities": len(s.Catalog().FQNs())})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	apiGroup := r.Group("/api")
	if s.limit > 0 {
		apiGroup.Use(RateLimiter(s.limit, s.burst))
	}
	caching := Cache(s.cache)
	{
		apiGroup.GET("/meta", caching, MetaListHandler(s))
		apiGroup.GET("/meta/:module/:entity", caching, MetaEntityHandler(s))
		apiGroup.GET("/enums", caching, EnumListHandler(s))
		apiGroup.GET("/enums/:name", caching, EnumHandler(s))
		apiGroup.GET("/enums/:name/resolve", caching, EnumResolveHandler(s))
		apiGroup.POST("/admin/reload", AdminReloadHandler(s))
	}
	return r
}
