package config

import (
	"os"
	"strconv"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "docpress-dev-secret-change-in-production"
	}
	JWTSecret = []byte(secret)

	hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	JWTExpiration = time.Duration(hours) * time.Hour
}
