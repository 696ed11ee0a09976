package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	StorageLocal      = "local"
	StorageS3         = "s3"
	StorageCloudinary = "cloudinary"
	StorageSupabase   = "supabase"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	StoreDriver     string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string

	JWTSecret   string
	TokenExpiry time.Duration

	AllowedOrigins []string
	StaticDir      string

	StorageBackend  string
	UploadDir       string
	UploadURLPrefix string
	MaxUploadBytes  int64

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseBucket  string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	tokenExpiry, err := time.ParseDuration(getEnvWithDefault("TOKEN_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_EXPIRY is not a valid duration: %w", err)
	}
	maxUpload, err := strconv.ParseInt(getEnvWithDefault("MAX_UPLOAD_BYTES", "5242880"), 10, 64)
	if err != nil || maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer")
	}

	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		StoreDriver:     strings.ToLower(getEnvWithDefault("STORE_DRIVER", StoreMongo)),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "celebration"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenExpiry: tokenExpiry,

		AllowedOrigins: splitList(getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:8080")),
		StaticDir:      getEnvWithDefault("STATIC_DIR", "public"),

		StorageBackend:  strings.ToLower(getEnvWithDefault("STORAGE_BACKEND", StorageLocal)),
		UploadDir:       getEnvWithDefault("UPLOAD_DIR", "public/uploads"),
		UploadURLPrefix: getEnvWithDefault("UPLOAD_URL_PREFIX", "/uploads"),
		MaxUploadBytes:  maxUpload,

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnvWithDefault("CLOUDINARY_FOLDER", "gallery"),

		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_URL_ANON_KEY"),
		SupabaseBucket:  os.Getenv("SUPABASE_BUCKET"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY must be positive")
	}

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoDBURI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (expected mongo or memory)", c.StoreDriver)
	}

	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageS3:
		if c.S3Endpoint == "" || c.S3AccessKey == "" || c.S3SecretKey == "" || c.S3Bucket == "" {
			return fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET are required for s3 storage")
		}
	case StorageCloudinary:
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for cloudinary storage")
		}
	case StorageSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" || c.SupabaseBucket == "" {
			return fmt.Errorf("SUPABASE_URL, SUPABASE_URL_ANON_KEY and SUPABASE_BUCKET are required for supabase storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}

	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must list explicit origins, \"*\" is not allowed")
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("ALLOWED_ORIGINS entry %q must start with http:// or https://", o)
		}
	}

	if c.AdminPassword != "" && c.AdminUsername == "" && c.AdminEmail == "" {
		return fmt.Errorf("ADMIN_USERNAME or ADMIN_EMAIL is required when ADMIN_PASSWORD is set")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SeedAdmin reports whether an admin account should be ensured at startup.
func (c *Config) SeedAdmin() bool {
	return c.AdminPassword != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
