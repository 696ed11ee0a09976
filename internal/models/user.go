package models

import (
	"context"
	"strings"
)

const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

type User struct {
	Base         `bson:",inline"`
	Username     string `bson:"username,omitempty" json:"username,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	PasswordHash string `bson:"password_hash" json:"-"`
	Role         string `bson:"role" json:"role" validate:"required,oneof=admin guest"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeIdentifier lowercases and trims a username or email before lookup or storage.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

const UsersCollectionName = "users"

type UserRepo interface {
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
}
