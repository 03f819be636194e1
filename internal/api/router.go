package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the lifecycle routes. Unknown paths answer 403 so probes
// cannot tell real routes from missing ones by the status code.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Post("/create", h.CreateGame)
	r.Post("/join", h.JoinGame)
	r.Post("/get", h.GetGame)
	r.Post("/move", h.MakeMove)
	r.Post("/is-it-my-turn", h.IsItMyTurn)
	r.Get("/ws", h.WebSocket)

	forbidden := func(w http.ResponseWriter, _ *http.Request) {
		h.writeMessage(w, http.StatusForbidden, "errors.forbidden")
	}
	r.NotFound(forbidden)
	r.MethodNotAllowed(forbidden)

	return r
}
