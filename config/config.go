package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	LogMode     string
	BodyLimitMB int

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBDSN      string // overrides the assembled DSN when set

	JWTKey    string
	SaltRound int

	CertificateBaseURL       string
	CertificateVerifyBaseURL string

	SendGridAPIKey  string
	EmailSender     string
	EmailSenderName string

	SMSApiURL string
	SMSApiKey string

	RedisAddr            string // empty disables the rating cache
	RedisPassword        string
	RedisDB              int
	RatingCacheTTLSecond int

	CourseSchedulerSpec string
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		LogMode:     getEnv("LOG_MODE", "development"),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 4),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "entrelaunch"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBDSN:      getEnv("DB_DSN", ""),

		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		CertificateBaseURL:       strings.TrimRight(getEnv("CERTIFICATE_BASE_URL", "https://entrelaunch.com/certificates"), "/"),
		CertificateVerifyBaseURL: strings.TrimRight(getEnv("CERTIFICATE_VERIFY_BASE_URL", "https://entrelaunch.com/certificates/verify"), "/"),

		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@entrelaunch.com"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "EntreLaunch"),

		SMSApiURL: getEnv("SMS_API_URL", ""),
		SMSApiKey: getEnv("SMS_API_KEY", ""),

		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		RatingCacheTTLSecond: getEnvInt("RATING_CACHE_TTL_SECONDS", 300),

		CourseSchedulerSpec: getEnv("COURSE_SCHEDULER_SPEC", "0 1 * * *"),
	}

	// Validate critical configuration
	if cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if cfg.SaltRound < 4 {
		cfg.SaltRound = 10
	}
	if cfg.BodyLimitMB <= 0 {
		cfg.BodyLimitMB = 4
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
