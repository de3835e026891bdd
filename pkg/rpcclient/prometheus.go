package rpcclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/prometheus/client_golang/prometheus"
)

// Call outcomes used as the "outcome" label value.
const (
	outcomeSuccess   = "success"
	outcomeTransport = "transport"
	outcomeProtocol  = "protocol"
	outcomeMalformed = "malformed"
	outcomeNoResult  = "no_result"
	outcomeDecode    = "decode"
	outcomeOther     = "other"
)

// Metrics used in monitoring client calls.
var (
	rpcCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of RPC calls made by the client",
			Name:      "calls_total",
			Subsystem: "rpcclient",
			Namespace: "neargo",
		},
		[]string{"method", "outcome"},
	)
	rpcCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Help:      "RPC call duration in seconds",
			Name:      "call_duration_seconds",
			Subsystem: "rpcclient",
			Namespace: "neargo",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// registerMetrics adds client metrics to r. Metrics are shared by all
// clients, so registering them twice in the same registry is not an error.
func registerMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{rpcCalls, rpcCallDuration} {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("failed to register client metrics: %w", err)
		}
	}
	return nil
}

func observeCall(method string, err error, d time.Duration) {
	rpcCalls.WithLabelValues(method, outcomeOf(err)).Inc()
	rpcCallDuration.WithLabelValues(method).Observe(d.Seconds())
}

func outcomeOf(err error) string {
	var (
		te *nearrpc.TransportError
		pe *nearrpc.Error
		de *nearrpc.DecodeError
	)
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &te):
		return outcomeTransport
	case errors.As(err, &pe):
		return outcomeProtocol
	case errors.As(err, &de):
		return outcomeDecode
	case errors.Is(err, nearrpc.ErrMalformedEnvelope):
		return outcomeMalformed
	case errors.Is(err, nearrpc.ErrMissingResult):
		return outcomeNoResult
	default:
		return outcomeOther
	}
}
