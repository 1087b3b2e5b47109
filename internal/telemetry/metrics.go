package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("site-sync")

func must[T any](m T, err error) T {
	if err != nil {
		panic(err)
	}
	return m
}

var SiteSyncErrors = must(meter.Int64Counter("site_sync_errors",
	metric.WithDescription("Total number of site sync errors"),
))

var UploadErrors = must(meter.Int64Counter("upload_errors",
	metric.WithDescription("Total number of per-file upload errors"),
))

var UploadedFiles = must(meter.Int64Counter("uploaded_files",
	metric.WithDescription("Total number of files uploaded"),
))

var SkippedFiles = must(meter.Int64Counter("skipped_files",
	metric.WithDescription("Total number of files skipped because the remote ETag matched"),
))

var UploadedBytes = must(meter.Int64Counter("uploaded_bytes",
	metric.WithDescription("Total number of bytes uploaded"),
))

var MonitoredSites = must(meter.Int64Gauge("monitored_sites",
	metric.WithDescription("Total number of monitored sites"),
))
