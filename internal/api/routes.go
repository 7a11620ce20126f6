package api

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with templates, middleware and routes.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.SetHTMLTemplate(Templates())
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/", h.indexPage)
	r.POST("/design", h.designPage)
	r.GET("/suggest", h.suggestPage)

	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/design", h.designHandler)
		api.GET("/suggestions", h.suggestionsHandler)
		api.POST("/feedback", h.feedbackHandler)
		api.GET("/qr", h.qrHandler)
		api.GET("/fonts", h.fontsHandler)
	}
}
