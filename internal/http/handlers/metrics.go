package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ChatMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Chat post attempts by result",
		},
		[]string{"result"},
	)
	RainClaims = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rain_claims_total",
			Help: "Successful rain claims",
		},
	)
	RainStarts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rain_starts_total",
			Help: "Rain events started",
		},
	)
	BonusGrants = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "social_bonus_grants_total",
			Help: "Social bonuses granted",
		},
	)
)

func init() {
	prometheus.MustRegister(ChatMessages)
	prometheus.MustRegister(RainClaims)
	prometheus.MustRegister(RainStarts)
	prometheus.MustRegister(BonusGrants)
}
