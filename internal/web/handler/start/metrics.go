package start

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultStored   = "stored"
	resultRejected = "rejected"
)

var submissionsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "eingabe_submissions_total",
		Help: "Number of submit form posts, differentiated by result.",
	},
	[]string{"result"},
)
