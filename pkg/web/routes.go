// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/metrics"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/notify"
)

// APIDeps carries the engine surfaces exposed through the web API.
type APIDeps struct {
	Registry *engine.Registry
	Hub      *notify.Hub
}

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server, deps APIDeps) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler(deps))
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/activity", activityHandler(deps))
		api.GET("/feed", feedHandler())
	}

	s.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// statusHandler returns the bot status and the VPS pool counters
func statusHandler(deps APIDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := discord.Get()

		botOnline := false
		if client != nil {
			botOnline = client.IsReady()
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"bot": gin.H{
				"isOnline": botOnline,
			},
			"vps": deps.Registry.Stats(),
		})
	}
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ChunkHost VPS engine is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// activityHandler returns the newest activity events from the durable log
func activityHandler(deps APIDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		count := 50
		if raw := c.Query("count"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
				count = n
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"events": deps.Hub.Recent(count),
		})
	}
}
