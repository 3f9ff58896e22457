package config

import (
	"log"

	"github.com/caarlos0/env/v11"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                int    `env:"PORT" envDefault:"8080"`
	Dsn                 string `env:"DSN" envDefault:"postgres://localhost:5432/wall"`
	JwtSecret           string `env:"JWT_SECRET"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	NominatimBaseURL    string `env:"NOMINATIM_BASE_URL"`
	NominatimUserAgent  string `env:"NOMINATIM_USER_AGENT" envDefault:"wall-api/1.0"`
	OpenWeatherAPIKey   string `env:"OPENWEATHER_API_KEY"`
	RedisAddr           string `env:"REDIS_ADDR"`
	RedisPassword       string `env:"REDIS_PASSWORD"`

	// Fallback reference point for discovery and weather when the
	// caller supplies no location.
	DefaultLatitude  float64 `env:"DEFAULT_LATITUDE" envDefault:"31.2304"`
	DefaultLongitude float64 `env:"DEFAULT_LONGITUDE" envDefault:"121.4737"`
	DefaultRadiusKm  float64 `env:"DEFAULT_RADIUS_KM" envDefault:"20"`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file %v", loadErr)
	}

	var cfg Config

	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}
