package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/celebration/internal/middleware"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/services"
)

// loginRequest accepts the identifier under any of the field names older clients send.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r loginRequest) identifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Username != "":
		return r.Username
	default:
		return r.Email
	}
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *models.User `json:"user"`
}

func Login(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid JSON body")
			return
		}
		token, user, err := a.Login(c.Request.Context(), req.identifier(), req.Password)
		if err != nil {
			respondError(c, err, "User")
			return
		}
		c.JSON(http.StatusOK, loginResponse{
			Token:     token,
			ExpiresIn: int64(a.Expiry().Seconds()),
			User:      user,
		})
	}
}

func Register(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid JSON body")
			return
		}
		user, err := a.CreateUser(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, "User")
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Authentication required"))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":        claims.UserID,
			"username":  claims.Username,
			"role":      claims.GetSafeRole(),
			"isAdmin":   claims.IsAdmin(),
			"expiresAt": claims.ExpiresAt,
		})
	}
}
