//go:build !gcloud

package alertrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

const measurement = "alert_dispatch"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.AlertResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "alert result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, alert result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "alert result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

// RecordDispatchResults writes one point per record. Write failures are logged
// and never fail the dispatch run.
func (r *influxDBRecorder) RecordDispatchResults(ctx context.Context, records []domain.AlertResultRecord) error {
	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		point := influxdb2.NewPoint(
			measurement,
			map[string]string{
				"run_id":  runID,
				"urgency": record.Urgency,
				"status":  record.Status,
			},
			map[string]any{
				"sent_count":    record.SentCount,
				"skipped_count": record.SkippedCount,
				"failed_count":  record.FailedCount,
			},
			record.DispatchedAt,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write alert result to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("run_id", runID),
				slog.String("urgency", record.Urgency),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
