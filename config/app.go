package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName    string
	Port       string
	Env        string
	Debug      bool
	BackendURL string // absolute base used when building product image URLs
	MediaDir   string // filesystem root for uploaded product images
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		backend := os.Getenv("BACKEND_URL")
		if backend == "" {
			backend = "http://localhost:8080"
		}
		mediaDir := os.Getenv("MEDIA_DIR")
		if mediaDir == "" {
			mediaDir = "media/images"
		}
		AppConfig = &Config{
			AppName:    os.Getenv("APP_NAME"),
			Port:       os.Getenv("PORT"),
			Env:        os.Getenv("APP_ENV"),
			Debug:      os.Getenv("DEBUG") == "true",
			BackendURL: backend,
			MediaDir:   mediaDir,
		}
	})
}
