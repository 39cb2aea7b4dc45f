package main

import (
	"os"
)

// Config holds all environment variables for the catalog service.
type Config struct {
	Port             string // HTTP port (default: 8080)
	Env              string // "development" or "production"
	RedisURL         string // Redis connection URL
	UploadDir        string // Directory for queued import spreadsheets
	CloudinaryFolder string // Asset-host folder for product images
}

// LoadConfig loads environment variables into a Config struct,
// applying defaults where a variable is unset.
func LoadConfig() *Config {
	cfg := &Config{
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("APP_ENV"),
		RedisURL:         os.Getenv("REDIS_URL"),
		UploadDir:        os.Getenv("IMPORT_UPLOAD_DIR"),
		CloudinaryFolder: os.Getenv("CLOUDINARY_FOLDER"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./data/imports"
	}
	if cfg.CloudinaryFolder == "" {
		cfg.CloudinaryFolder = "products"
	}

	return cfg
}
