package config

import "os"

type Config struct {
	Port     string
	Env      string
	LogLevel string

	PostgresDSN string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	RedisDB     int
}

func Load() *Config {
	return &Config{
		Port:        GetEnv("PORT", "8080"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		PostgresDSN: GetEnv("DATABASE_URL", "host=localhost port=5432 user=docpress password=docpress dbname=docpress sslmode=disable"),
		MongoURI:    GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     GetEnv("MONGO_DB", "docpress"),
		RedisAddr:   GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     0,
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
