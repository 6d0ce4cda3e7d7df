package main

import "os"

type Config struct {
	DatabaseURL  string
	JWTSecret    string
	CookieName   string
	CookieSecure bool
	Port         string
	TemplateDir  string
	StaticDir    string
	MediaDir     string
}

func loadConfig() Config {
	secure := os.Getenv("COOKIE_SECURE") == "true"
	return Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CookieName:   getenv("COOKIE_NAME", "blogicum_auth"),
		CookieSecure: secure,
		Port:         getenv("PORT", "8080"),
		TemplateDir:  getenv("TEMPLATE_DIR", "templates"),
		StaticDir:    getenv("STATIC_DIR", "static"),
		MediaDir:     getenv("MEDIA_DIR", "media"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
