package httpserver

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	gamesCreated  *prometheus.CounterVec
	guesses       *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
}

// newMetrics registers the game counters on reg. Each Server owns its
// registry so several servers can coexist in one process (tests).
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		gamesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bnc_games_created_total",
			Help: "Games created, by board mode.",
		}, []string{"mode"}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bnc_guesses_total",
			Help: "Guess submissions, by outcome (accepted, rejected, game_over).",
		}, []string{"outcome"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bnc_games_finished_total",
			Help: "Games that reached game over, by result (won, lost).",
		}, []string{"result"}),
	}
	reg.MustRegister(m.gamesCreated, m.guesses, m.gamesFinished)
	return m
}
