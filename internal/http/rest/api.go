package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odezzy/wall_api/config"
	deps "github.com/odezzy/wall_api/internal/debs"
	"github.com/odezzy/wall_api/internal/geocode"
	"github.com/odezzy/wall_api/internal/metrics"
	"github.com/odezzy/wall_api/util/values"
	"github.com/odezzy/wall_api/util/websockets"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	respByte, err := json.Marshal(resp)
	if err != nil {
		writeErrorResponse(w, err, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server *http.Server
	Config *config.Config
	Deps   *deps.Dependencies
	DB     *pgxpool.Pool

	searchMu       sync.Mutex
	searchSessions map[*websockets.Client]*geocode.Resolver
}

// Init wires the websocket hub callbacks. Must run before Serve.
func (api *API) Init() {
	api.searchSessions = make(map[*websockets.Client]*geocode.Resolver)
	api.Deps.WebSocket.OnPlaceSearch = api.placeSearchOverSocket
	api.Deps.WebSocket.OnDisconnect = api.closeSearchSession
}

func (api *API) Serve() error {
	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.setUpServerHandler(),
	}
	return api.Server.ListenAndServe()
}

func (api *API) setUpServerHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestTracing)

	mux.Get("/",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("The Wall API"))
		},
	)

	mux.Mount("/posters", api.PosterRoutes())
	mux.Mount("/places", api.PlacesRoutes())
	mux.Mount("/weather", api.WeatherRoutes())
	mux.Mount("/moderation", api.ModerationRoutes())
	mux.Handle("/metrics", metrics.Handler())
	mux.Get("/ws", api.Deps.WebSocket.HandleConnections)

	return mux
}

func (a *API) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
	defer cancel()

	err := a.Server.Shutdown(ctx)
	if err != nil {
		return err
	}
	return nil
}
