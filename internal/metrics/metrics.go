package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Attempt outcomes reported by the transcription client.
const (
	OutcomeSuccess     = "success"
	OutcomeLoading     = "loading"
	OutcomeTimeout     = "timeout"
	OutcomeError       = "error"
	OutcomeRemoteError = "remote_error"
)

var (
	transcriptionAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lecturenotes_transcription_attempts_total",
			Help: "Calls made to the speech-recognition endpoint by outcome",
		},
		[]string{"outcome"},
	)

	transcriptionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lecturenotes_transcription_duration_seconds",
			Help:    "Wall time of a transcription including retries and backoff",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"result"},
	)

	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lecturenotes_jobs_total",
			Help: "Processed uploads by final status",
		},
		[]string{"status"},
	)

	uploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lecturenotes_upload_bytes",
			Help:    "Size of accepted audio uploads",
			Buckets: prometheus.ExponentialBuckets(64*1024, 4, 8),
		},
	)
)

// Register registers all collectors with r.
func Register(r prometheus.Registerer) {
	r.MustRegister(transcriptionAttempts, transcriptionDuration, jobsTotal, uploadBytes)
}

// RecordAttempt counts one call to the remote endpoint.
func RecordAttempt(outcome string) {
	transcriptionAttempts.WithLabelValues(outcome).Inc()
}

// ObserveTranscription records the total time spent on one transcription.
func ObserveTranscription(success bool, d time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	transcriptionDuration.WithLabelValues(result).Observe(d.Seconds())
}

// RecordJob counts a finished upload; status is e.g. "success", "rejected", "failed".
func RecordJob(status string) {
	jobsTotal.WithLabelValues(status).Inc()
}

func ObserveUpload(size int) {
	uploadBytes.Observe(float64(size))
}
