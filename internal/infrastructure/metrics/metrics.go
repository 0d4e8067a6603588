package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Upload metrics
	UploadsProcessed *prometheus.CounterVec
	UploadsFailed    *prometheus.CounterVec
	RowsIngested     prometheus.Counter
	RowsSkipped      prometheus.Counter
	UploadDuration   prometheus.Histogram

	// Reporting metrics
	ConsolidationsComputed prometheus.Counter
	KPIsCalculated         prometheus.Counter
	ReportsGenerated       *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Upload metrics
		UploadsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groupledger_uploads_processed_total",
				Help: "Total number of uploads processed successfully",
			},
			[]string{"upload_type"},
		),
		UploadsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groupledger_uploads_failed_total",
				Help: "Total number of uploads that failed",
			},
			[]string{"upload_type"},
		),
		RowsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "groupledger_rows_ingested_total",
			Help: "Total number of CSV rows ingested",
		}),
		RowsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "groupledger_rows_skipped_total",
			Help: "Total number of CSV rows skipped",
		}),
		UploadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "groupledger_upload_duration_seconds",
			Help:    "Duration of upload processing",
			Buckets: prometheus.DefBuckets,
		}),

		// Reporting metrics
		ConsolidationsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "groupledger_consolidations_computed_total",
			Help: "Total number of consolidations computed",
		}),
		KPIsCalculated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "groupledger_kpis_calculated_total",
			Help: "Total number of KPI values calculated",
		}),
		ReportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groupledger_reports_generated_total",
				Help: "Total number of reports generated by type",
			},
			[]string{"report_type"},
		),
	}
}
