package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	collectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_collects_total",
			Help: "Total collect actions, by product",
		},
		[]string{"product"},
	)
	salesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_sales_total",
			Help: "Total completed sales, by product",
		},
		[]string{"product"},
	)
	upgradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_upgrades_total",
			Help: "Total production upgrades, by product",
		},
		[]string{"product"},
	)
	achievementsUnlocked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_achievements_unlocked_total",
			Help: "Total achievement completions granted",
		},
	)
)

func init() {
	prometheus.MustRegister(collectsTotal, salesTotal, upgradesTotal, achievementsUnlocked)
}
