// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
//   - GET  /daily     → today's date key
//   - POST /daily/new → create a game whose secret is today's daily code
//
// The daily code is derived from the UTC date and a server salt, so every
// daily game created on the same day (with the same dimensions) shares it.
// Play then continues through the regular /games/{id} endpoints.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/bullscows/internal/daily"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
	})
}

type dailyInfoRes struct {
	Date string `json:"date"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if s.daily.Now != nil {
		now = s.daily.Now
	}
	writeJSON(w, http.StatusOK, dailyInfoRes{Date: daily.DateKey(now())})
}

// handleDailyNew accepts the POST /games payload; secret_code is ignored.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req.Daily = true
	s.createGame(w, r, req)
}
