package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/toolsuggest/core/pkg/catalog"
	"github.com/toolsuggest/core/pkg/config"
	"github.com/toolsuggest/core/pkg/suggest"
)

// Router builds the gin engine exposing /ws, /config, and /metrics.
func (g *Gateway) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws", func(c *gin.Context) { g.ServeWS(c.Writer, c.Request) })
	r.GET("/config", g.getConfig)
	r.PUT("/config", g.putConfig)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g.Registry(), promhttp.HandlerOpts{})))
	return r
}

func (g *Gateway) getConfig(c *gin.Context) {
	cfg := g.Config()
	c.JSON(http.StatusOK, gin.H{
		"config":        cfg,
		"session_count": g.SessionCount(),
		"catalog_size":  g.CatalogSize(),
	})
}

// putConfig accepts a replacement EngineConfig, validates it, reinitializes
// the engine from the catalog path it names, and clears all sessions. This
// side effect is never silent: it is logged at info level and counted by
// reinit_total.
func (g *Gateway) putConfig(c *gin.Context) {
	var body config.EngineConfig
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newCfg := &config.Config{Engine: body, Gateway: g.Config().Gateway}
	if err := newCfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tools, err := catalog.Load(body.CatalogPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine, err := suggest.NewEngine(tools, newCfg.ToEngineConfig())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g.Reinit(engine, newCfg)
	c.JSON(http.StatusOK, gin.H{"config": newCfg, "catalog_size": engine.CatalogSize()})
}
