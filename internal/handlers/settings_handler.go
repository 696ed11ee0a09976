package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/celebration/internal/helpers"
	"github.com/joshua-takyi/celebration/internal/services"
)

func GetSettings(s *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := s.Get(c.Request.Context())
		if err != nil {
			respondError(c, err, "Setting")
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func UpdateSetting(s *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Value *string `json:"value"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Value == nil {
			badRequest(c, `Body must be {"value": "<string>"}`)
			return
		}
		setting, err := s.Set(c.Request.Context(), helpers.StringTrim(c.Param("key")), *body.Value)
		if err != nil {
			respondError(c, err, "Setting")
			return
		}
		c.JSON(http.StatusOK, setting)
	}
}

// UpdateSettings upserts every key of a flat {"key": "value"} object.
func UpdateSettings(s *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var values map[string]string
		if err := c.ShouldBindJSON(&values); err != nil {
			badRequest(c, "Body must be a JSON object of string values")
			return
		}
		settings, err := s.SetMany(c.Request.Context(), values)
		if err != nil {
			respondError(c, err, "Setting")
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
