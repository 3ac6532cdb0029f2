package mux

import (
	"errors"
	"net/http"
	"regexp"

	"doppelkopf-server/pkg/doppelkopf"
	"doppelkopf-server/pkg/model"
	"doppelkopf-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type postMatchPayload struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers"`
}

func (m *Mux) postMatch() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postMatchPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		match, err := model.CreateMatch(r.Context(), player, pp.Name, pp.MaxPlayers)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, match)
	}
}

func (m *Mux) getMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		matches, err := model.GetMatchesByPlayer(r.Context(), player.ID, offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, matches)
	}
}

type getMatchUUIDResponse struct {
	*model.Match
	Game *doppelkopf.GameView `json:"game"`
}

func (m *Mux) getMatchUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		match := r.Context().Value(ctxMatchKey).(*model.Match)

		writeJSON(w, http.StatusOK, getMatchUUIDResponse{
			Match: match,
			Game:  match.Game().PlayerView(player.ID),
		})
	})
}

// postMatchAction forwards a game command to the match's table. The action
// name comes from the URL; the payload carries the action's arguments.
func (m *Mux) postMatchAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		match := r.Context().Value(ctxMatchKey).(*model.Match)

		var action room.Action
		if r.ContentLength > 0 {
			if !decodeRequest(w, r, &action) {
				return
			}
		}

		action.Name = gmux.Vars(r)["action"]

		if err := m.croupier.Apply(match.UUID, player.ID, action); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})
}
