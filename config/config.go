package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server settings
	AppPort     string
	Host        string
	DatabaseURL string

	// JWT settings
	JWTSecret string

	// Blob storage settings. When NATSURL is empty the server falls back to
	// local-disk storage under UploadDir.
	NATSURL     string
	BlobBucket  string
	BlobBaseURL string
	UploadDir   string

	// Optional listing cache; empty disables caching entirely.
	RedisAddr string

	// CORS settings
	CORSAllowOrigins string
	CORSAllowMethods string
	CORSAllowHeaders string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	config := &Config{
		AppPort:     getEnv("PORT", "5000"),
		Host:        os.Getenv("HOST"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		NATSURL:     os.Getenv("NATS_URL"),
		BlobBucket:  getEnv("BLOB_BUCKET", "multimart-images"),
		BlobBaseURL: getEnv("BLOB_PUBLIC_URL", "/images"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		CORSAllowOrigins: "*",
		CORSAllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		CORSAllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}

	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
