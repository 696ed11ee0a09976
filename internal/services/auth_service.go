package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/celebration/internal/helpers"
	"github.com/joshua-takyi/celebration/internal/models"
)

const tokenIssuer = "celebration-api"

type AuthService struct {
	users  models.UserRepo
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewAuthService(users models.UserRepo, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login accepts a username or an email as identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("authentication failed: %w", err)
	}
	if !helpers.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := helpers.Claims{
		UserID:   user.ID.Hex(),
		Role:     user.Role,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) VerifyToken(tokenStr string) (*helpers.Claims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, ErrMissingToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &helpers.Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*helpers.Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CreateUser hashes the password before anything is written.
func (s *AuthService) CreateUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = models.NormalizeIdentifier(in.Username)
	in.Email = models.NormalizeIdentifier(in.Email)
	if in.Username == "" && in.Email == "" {
		return nil, models.NewValidationError("username", "username or email is required")
	}
	if !helpers.IsPasswordStrong(in.Password) {
		return nil, models.NewValidationError("password",
			"password must be at least 8 characters with upper and lower case letters, a digit and a symbol")
	}
	if in.Role == "" {
		in.Role = models.RoleAdmin
	}

	user := &models.User{Username: in.Username, Email: in.Email, Role: in.Role}
	if err := models.ValidateDocument(user); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, models.NewValidationError("username", "a user with this username or email already exists")
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the seed admin unless a user with that username or email exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	for _, ident := range []string{username, email} {
		if ident == "" {
			continue
		}
		existing, err := s.users.FindByIdentifier(ctx, ident)
		if err == nil {
			if !existing.IsAdmin() {
				return false, fmt.Errorf("seed admin %q already exists with role %q", ident, existing.Role)
			}
			return false, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return false, err
		}
	}
	_, err := s.CreateUser(ctx, RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) Expiry() time.Duration {
	return s.expiry
}
