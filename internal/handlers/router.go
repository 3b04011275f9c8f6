package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Routes groups the handlers mounted under /api/v1.
type Routes struct {
	CVs           *CVHandler
	Confirmations *ConfirmationHandler
	Cooldowns     *CooldownHandler
	Referrals     *ReferralHandler
}

// NewRouter builds the gin engine. Nil handlers are left unmounted.
func NewRouter(rt Routes, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true // For development only
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	api.GET("/health", HealthCheck)

	if h := rt.CVs; h != nil {
		api.POST("/cvs/extract", h.ExtractCV)
		api.POST("/cvs", h.CreateCV)
		api.GET("/cvs", h.ListCVs)
		api.GET("/cvs/:id", h.GetCV)
		api.PUT("/cvs/:id", h.UpdateCV)
		api.DELETE("/cvs/:id", h.DeleteCV)
	}
	if h := rt.Confirmations; h != nil {
		api.POST("/confirmations", h.OpenConfirmation)
		api.GET("/confirmations/:id", h.GetConfirmation)
		api.POST("/confirmations/:id/submit", h.SubmitConfirmation)
		api.DELETE("/confirmations/:id", h.CancelConfirmation)
	}
	if h := rt.Cooldowns; h != nil {
		api.GET("/cooldowns/:key", h.CheckCooldown)
		api.PUT("/cooldowns/:key", h.SetCooldown)
		api.DELETE("/cooldowns/:key", h.ClearCooldown)
	}
	if h := rt.Referrals; h != nil {
		api.POST("/referrals/:code/visits", h.TrackVisit)
		api.GET("/referrals/:code", h.GetStats)
	}
	return r
}
