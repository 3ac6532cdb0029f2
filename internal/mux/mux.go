package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"doppelkopf-server/internal/config"
	"doppelkopf-server/internal/jwt"
	"doppelkopf-server/pkg/model"
	"doppelkopf-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxMatchKey
)

// matchActions are the game commands accepted on the match action endpoint
const matchActions = "join|start|deal|declare|bid|play|call"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config   muxConfig
	version  string
	croupier *room.Croupier

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

type muxConfig struct {
	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	croupier := room.NewCroupier(model.GetMatchByUUID)
	croupier.StartShift()

	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		croupier: croupier,
		config: muxConfig{
			playerCreateDelay: time.Second * time.Duration(config.Instance().PlayerCreateDelay),
		},
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodPost).Path("/player/auth").Handler(this.postPlayerAuth())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/match").Handler(this.postMatch())
		r.Methods(http.MethodGet).Path("/match").Handler(this.getMatch())

		mr := r.PathPrefix("/match/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		mr.Use(this.matchMiddleware)

		mr.Methods(http.MethodGet).Path("").Handler(this.getMatchUUID())
		mr.Methods(http.MethodGet).Path("/ws").Handler(this.getMatchUUIDWS())
		mr.Methods(http.MethodPost).Path("/{action:" + matchActions + "}").Handler(this.postMatchAction())
	}

	// requires admin access
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodGet).Path("/player").Handler(this.getPlayer())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := model.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("Doppelkopf-UserID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		if !player.IsSiteAdmin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Mux) matchMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		match, err := model.GetMatchByUUID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxMatchKey, match)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
