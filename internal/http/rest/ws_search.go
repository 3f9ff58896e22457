package rest

import (
	"context"
	"encoding/json"
	"log"

	"github.com/odezzy/wall_api/internal/geocode"
	"github.com/odezzy/wall_api/util/websockets"
)

// placeSearchOverSocket handles interactive place queries typed over a
// websocket connection. Each client gets its own debounced resolver, so
// rapid keystrokes supersede one another and only the latest query's
// candidates are pushed back.
func (api *API) placeSearchOverSocket(client *websockets.Client, query string) {
	api.searchMu.Lock()
	resolver, ok := api.searchSessions[client]
	if !ok {
		resolver = api.Deps.NewSearchSession()
		api.searchSessions[client] = resolver
	}
	api.searchMu.Unlock()

	resolver.ResolveDebounced(context.Background(), query, func(applied string, places []geocode.Place) {
		if places == nil {
			places = []geocode.Place{}
		}
		payload, err := json.Marshal(map[string]interface{}{
			"type":   websockets.MsgTypePlaceResults,
			"query":  applied,
			"places": places,
		})
		if err != nil {
			return
		}
		if err := client.Send(payload); err != nil {
			log.Println("failed to push place results:", err)
		}
	})
}

// closeSearchSession tears a client's resolver down on disconnect; a
// lookup still in flight will never apply its result.
func (api *API) closeSearchSession(client *websockets.Client) {
	api.searchMu.Lock()
	defer api.searchMu.Unlock()

	if resolver, ok := api.searchSessions[client]; ok {
		resolver.Close()
		delete(api.searchSessions, client)
	}
}
