// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"

	"github.com/CastorStudios/CentinelaGo/pkg/database"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/cases/:guildId", guildCasesHandler)
		api.GET("/cases/:guildId/user/:userId", userCasesHandler)
		api.GET("/cases/:guildId/number/:caseNumber", caseByNumberHandler)
		api.GET("/feed", FeedHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Centinela is running",
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

// guildCasesHandler returns the most recent moderation cases of a guild
func guildCasesHandler(c *gin.Context) {
	svc := database.GlobalCaseService
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Offline",
			"message": "La base de datos no está disponible en este momento.",
		})
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	cases, err := svc.FindRecent(c.Param("guildId"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database Error",
			"message": "No se pudieron consultar los casos.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId": c.Param("guildId"),
		"count":   len(cases),
		"cases":   cases,
	})
}

// userCasesHandler returns the moderation history of a user in a guild
func userCasesHandler(c *gin.Context) {
	svc := database.GlobalCaseService
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Offline",
			"message": "La base de datos no está disponible en este momento.",
		})
		return
	}

	cases, err := svc.FindByUser(c.Param("guildId"), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database Error",
			"message": "No se pudieron consultar los casos.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId": c.Param("guildId"),
		"userId":  c.Param("userId"),
		"count":   len(cases),
		"cases":   cases,
	})
}

// caseByNumberHandler returns a single case by its per-guild number
func caseByNumberHandler(c *gin.Context) {
	svc := database.GlobalCaseService
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Offline",
			"message": "La base de datos no está disponible en este momento.",
		})
		return
	}

	number, err := strconv.ParseInt(c.Param("caseNumber"), 10, 64)
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "El número de caso no es válido.",
		})
		return
	}

	found, err := svc.FindByCaseNumber(c.Param("guildId"), number)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database Error",
			"message": "No se pudo consultar el caso.",
		})
		return
	}
	if found == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "El caso solicitado no existe.",
		})
		return
	}

	c.JSON(http.StatusOK, found)
}
