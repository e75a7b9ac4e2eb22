// Package metrics defines the custom Prometheus metrics of the linkboard API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered on the Registerer passed to New so that every router
// instance can own its registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linkboard"

// Login results.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

type Metrics struct {
	// UsersRegisteredTotal counts successful registrations.
	UsersRegisteredTotal prometheus.Counter

	// LoginsTotal counts login attempts.
	// Label:
	//   - result: "success" or "failure"
	LoginsTotal *prometheus.CounterVec

	// PostsCreatedTotal counts newly created posts.
	PostsCreatedTotal prometheus.Counter

	// PostsChangedTotal counts successful owner edits.
	// Label:
	//   - op: "update" or "delete"
	PostsChangedTotal *prometheus.CounterVec

	// VotesCastTotal counts recorded votes, overwrites included.
	// Label:
	//   - vote_type: "up" or "down"
	VotesCastTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UsersRegisteredTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Total number of registered users.",
		}),
		LoginsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		PostsCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Total number of posts created.",
		}),
		PostsChangedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_changed_total",
			Help:      "Total number of post edits by their owners, by operation.",
		}, []string{"op"}),
		VotesCastTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Total number of votes recorded, by vote type.",
		}, []string{"vote_type"}),
	}
}
