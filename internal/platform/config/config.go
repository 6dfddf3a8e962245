package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort     string
	TokenSecret []byte

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PaymentProviderURL    string
	PaymentProviderSecret string
	SiteDomain            string
	CheckoutSessionTTL    time.Duration
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:               getEnv("API_PORT", "8080"),
		TokenSecret:           []byte(getEnv("AUTH_TOKEN_SECRET", "defaultsecret")),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "user"),
		DBPassword:            getEnv("DB_PASSWORD", "password"),
		DBName:                getEnv("DB_NAME", "contest_hub_db"),
		DBSslMode:             getEnv("DB_SSLMODE", "disable"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		PaymentProviderURL:    getEnv("PAYMENT_PROVIDER_URL", "https://api.payment-provider.test/v1/checkout/sessions"),
		PaymentProviderSecret: getEnv("PAYMENT_PROVIDER_SECRET", ""),
		SiteDomain:            getEnv("SITE_DOMAIN", "http://localhost:5173"),
		CheckoutSessionTTL:    time.Duration(getEnvAsInt("CHECKOUT_SESSION_TTL_HOURS", 24)) * time.Hour,
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
