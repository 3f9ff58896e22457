package deps

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odezzy/wall_api/config"
	"github.com/odezzy/wall_api/internal/db"
	"github.com/odezzy/wall_api/internal/geocode"
	"github.com/odezzy/wall_api/internal/http/nominatim"
	"github.com/odezzy/wall_api/internal/http/openweather"
	"github.com/odezzy/wall_api/util/storage"
	"github.com/odezzy/wall_api/util/websockets"
	"github.com/redis/go-redis/v9"
)

type Dependencies struct {
	DB         *db.DB
	Cloudinary *storage.Cloudinary
	Cache      *redis.Client
	Geocoder   *geocode.Resolver
	Weather    *openweather.Client
	WebSocket  *websockets.WebSocketManager

	geocodeSource geocode.Geocoder
}

func New(cfg *config.Config) *Dependencies {
	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	cache := openRedis(cfg)
	source := geocode.NominatimSource{
		Client: nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent),
	}

	deps := Dependencies{
		DB:            database,
		Cloudinary:    storage.NewCloudinary(cfg),
		Cache:         cache,
		Geocoder:      geocode.NewResolver(source, cache),
		Weather:       openweather.NewClient(cfg.OpenWeatherAPIKey),
		WebSocket:     websockets.NewWebSocketManager(),
		geocodeSource: source,
	}
	return &deps
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}

// NewSearchSession returns a fresh debounced resolver for one
// interactive client, sharing the lookup source and cache.
func (d *Dependencies) NewSearchSession() *geocode.Resolver {
	return geocode.NewResolver(d.geocodeSource, d.Cache)
}

func openRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
}
