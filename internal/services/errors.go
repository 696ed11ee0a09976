package services

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrMissingToken         = errors.New("no token provided")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrMissingFile          = errors.New("no image file provided")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("file too large")
)
