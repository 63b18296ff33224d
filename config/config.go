// config/config.go
package config

import (
	"log"
	"os"
	"time"
)

var (
	Port           string
	MongoURI       string
	DBName         string
	JWTKey         []byte
	JWTExpiration  time.Duration
	SignupSecret   string
	CookieSecure   bool
	CookieSameSite string
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	DBName = os.Getenv("DB_NAME")
	if DBName == "" {
		DBName = "campusassets"
	}

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		log.Println("WARNING: JWT_SECRET not set, using insecure default")
		JWTKey = []byte("change-me")
	}

	SignupSecret = os.Getenv("SIGNUP_SECRET")

	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 8 * time.Hour
	if expireStr != "" {
		var err error
		dur, err = time.ParseDuration(expireStr)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRE: %s, using 8h", expireStr)
			dur = 8 * time.Hour
		}
	}
	JWTExpiration = dur

	CookieSecure = os.Getenv("COOKIE_SECURE") == "true"
	CookieSameSite = os.Getenv("COOKIE_SAMESITE")
	if CookieSameSite == "" {
		CookieSameSite = "Lax"
	}
}
