package helpers

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of every token this service signs.
type Claims struct {
	UserID   string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Helper methods for role checking
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

func (c *Claims) GetSafeRole() string {
	if c.Role == "" {
		return "guest"
	}
	return c.Role
}
