package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDatabase  string
	RedisURL       string
	ServerPort     string
	JWTSecret      string
	WorkdayEndHour int
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	AdminEmail     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	return &Config{
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "yogurt_cleaning"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ServerPort:     os.Getenv("SERVER_PORT"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		WorkdayEndHour: getEnvInt("WORKDAY_END_HOUR", 21),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
