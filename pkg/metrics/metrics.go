package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	JobRunsTotal     *prometheus.CounterVec
	JobFailuresTotal *prometheus.CounterVec
	JobDuration      *prometheus.HistogramVec

	SlotsCreatedTotal     prometheus.Counter
	SlotsDeletedTotal     prometheus.Counter
	SlotAllocationsTotal  prometheus.Counter
	SlotCapacityConflicts prometheus.Counter
	BookingsAutoCancelled prometheus.Counter
}

// New registers and returns the service collectors. serviceName becomes the
// "service" constant label on every metric.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, path and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and path.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduler_job_runs_total",
			Help:        "Completed scheduler job runs by job name.",
			ConstLabels: constLabels,
		}, []string{"job"}),

		JobFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduler_job_failures_total",
			Help:        "Scheduler job failures by job name.",
			ConstLabels: constLabels,
		}, []string{"job"}),

		JobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "scheduler_job_duration_seconds",
			Help:        "Scheduler job run duration by job name.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"job"}),

		SlotsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slots_created_total",
			Help:        "Slots created by the generator.",
			ConstLabels: constLabels,
		}),

		SlotsDeletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slots_deleted_total",
			Help:        "Expired unbooked slots removed by maintenance.",
			ConstLabels: constLabels,
		}),

		SlotAllocationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slot_allocations_total",
			Help:        "Successful booking allocations.",
			ConstLabels: constLabels,
		}),

		SlotCapacityConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slot_capacity_conflicts_total",
			Help:        "Allocation attempts rejected because the slot was full.",
			ConstLabels: constLabels,
		}),

		BookingsAutoCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_auto_cancelled_total",
			Help:        "Bookings cancelled by the expiry job.",
			ConstLabels: constLabels,
		}),
	}
}
