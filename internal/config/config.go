package config

import "os"

// Config carries every environment-driven setting the API needs. It is
// loaded once in main and passed down; handlers never read os.Getenv.
type Config struct {
	MongoURI      string
	MongoDatabase string
	APIPort       string

	JWTSecret string

	GeminiAPIKey     string
	GeminiModel      string
	GeminiAPIVersion string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	StudioEmail  string
	AllowOrigins []string
}

func Load() Config {
	cfg := Config{
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDatabase:    os.Getenv("MONGO_DATABASE"),
		APIPort:          os.Getenv("API_PORT"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		GeminiAPIVersion: os.Getenv("GEMINI_API_VERSION"),
		MinioEndpoint:    os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:   os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:   os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:      os.Getenv("MINIO_BUCKET"),
		MinioUseSSL:      os.Getenv("MINIO_USE_SSL") == "true",
		StudioEmail:      os.Getenv("STUDIO_EMAIL"),
	}

	if cfg.APIPort == "" {
		cfg.APIPort = "8080"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.MinioBucket == "" {
		cfg.MinioBucket = "studio-media"
	}
	if origins := os.Getenv("ALLOW_ORIGINS"); origins != "" {
		cfg.AllowOrigins = []string{origins}
	} else {
		cfg.AllowOrigins = []string{"https://maheynails.netlify.app"}
	}

	return cfg
}
