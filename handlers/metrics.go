package handlers

import "github.com/prometheus/client_golang/prometheus"

var (
	backupsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "copiatrack_backups_recorded_total",
		Help: "Total backup confirmations recorded",
	})
	exportsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "copiatrack_exports_generated_total",
		Help: "Total spreadsheet exports generated",
	})
)

func init() {
	prometheus.MustRegister(backupsRecorded, exportsGenerated)
}
