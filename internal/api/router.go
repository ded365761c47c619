package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterCharacterRoutes wires the character endpoints onto an API group.
func RegisterCharacterRoutes(rg *gin.RouterGroup, handler *CharacterHandler) {
	characters := rg.Group("/characters")
	{
		characters.GET("", handler.ListCharacters)
		characters.POST("/create-with-text", handler.CreateWithText)
		characters.POST("/create-with-url", handler.CreateWithURL)
		characters.POST("/create-with-template", handler.CreateWithTemplate)
		characters.GET("/:id", handler.GetCharacter)
		characters.PUT("/:id", handler.UpdateCharacter)
		characters.POST("/:id/generate-avatar", handler.GenerateAvatar)
		characters.DELETE("/:id", handler.DeleteCharacter)
	}
}

// RegisterTemplateRoutes wires the template endpoints onto an API group.
func RegisterTemplateRoutes(rg *gin.RouterGroup, handler *TemplateHandler) {
	templates := rg.Group("/templates")
	{
		templates.GET("", handler.ListTemplates)
		templates.POST("", handler.CreateTemplate)
		templates.GET("/:id", handler.GetTemplate)
		templates.PUT("/:id", handler.UpdateTemplate)
		templates.DELETE("/:id", handler.DeleteTemplate)
	}
}
