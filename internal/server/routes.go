package server

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"scopone-game/internal/game"
	"scopone-game/internal/results"
	"scopone-game/internal/types"
)

// NewMux wires the spectator socket and the results API on a fresh mux.
func NewMux(hub *Hub, store *results.Store, log logrus.FieldLogger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	})
	HandleRoutes(mux, store, log)
	return mux
}

// HandleRoutes registers the read-only results API.
func HandleRoutes(mux *http.ServeMux, store *results.Store, log logrus.FieldLogger) {
	mux.HandleFunc("GET /api/results/player/{name}", func(w http.ResponseWriter, r *http.Request) {
		GetResultsByPlayerHandler(store, w, r)
	})
	mux.HandleFunc("GET /api/results/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetResultHandler(store, w, r)
	})
	mux.HandleFunc("GET /api/results", func(w http.ResponseWriter, r *http.Request) {
		GetResultsHandler(store, w, r)
	})
	log.Debug("Registered routes: /api/results, /api/results/{id}, /api/results/player/{name}")
}

func GetResultsByPlayerHandler(store *results.Store, w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("name")
	if player == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}

	found, err := store.GetByPlayer(player)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, found)
}

func GetResultHandler(store *results.Store, w http.ResponseWriter, r *http.Request) {
	result, err := store.GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

func GetResultsHandler(store *results.Store, w http.ResponseWriter, r *http.Request) {
	all := store.GetAll()
	if all == nil {
		all = make([]*game.TournamentResult, 0)
	}
	writeJSON(w, all)
}

func writeError(w http.ResponseWriter, err error) {
	if types.IsGameError(err, types.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
