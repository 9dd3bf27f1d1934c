// Package telemetry exports per-calculation timing data to InfluxDB.
// Export is disabled by default; when the configured server cannot be
// reached, points fall back to a gzipped line-protocol file so a later
// import can recover them.
package telemetry

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/CapCeph/ship-lens/internal/config"
)

// Measurement written for every completed calculation.
const calcMeasurement = "ttk_calc"

// Recorder handles the InfluxDB connection and calculation writes.
type Recorder struct {
	Client       influxdb2.Client
	Writer       influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	Logger       zerolog.Logger
	BackupPath   string

	cfg config.InfluxConfig
}

// NewRecorder creates a telemetry recorder. Connect must be called
// before any points are written.
func NewRecorder(cfg config.InfluxConfig, log zerolog.Logger, backupPath string) *Recorder {
	return &Recorder{
		IsValid:    false,
		Logger:     log,
		BackupPath: backupPath,
		cfg:        cfg,
	}
}

// Enabled reports whether telemetry export is turned on in config.
func (r *Recorder) Enabled() bool {
	return r.cfg.Enabled
}

// Connect establishes the InfluxDB connection. A recorder with
// telemetry disabled connects to nothing and stays a no-op. An
// unreachable server is downgraded to a warning plus the backup file.
func (r *Recorder) Connect() error {
	if !r.cfg.Enabled {
		return nil
	}

	r.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf("%s://%s:%s", r.cfg.Protocol, r.cfg.Host, r.cfg.Port),
		r.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	running, err := r.Client.Ping(context.Background())
	if err != nil || !running {
		r.IsValid = false
		if r.BackupWriter == nil {
			r.Logger.Warn().Str("backupPath", r.BackupPath).
				Msg("InfluxDB unreachable, writing telemetry to backup file")

			file, err := os.OpenFile(r.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("error creating telemetry backup file: %w", err)
			}
			r.BackupWriter = gzip.NewWriter(file)
		}
		return nil
	}

	r.IsValid = true
	if err := r.setupOrganizationAndBucket(); err != nil {
		return err
	}
	r.createWriter()
	r.Logger.Info().Msg("InfluxDB telemetry initialized")
	return nil
}

func (r *Recorder) setupOrganizationAndBucket() error {
	ctx := context.Background()

	org, err := r.Client.OrganizationsAPI().FindOrganizationByName(ctx, r.cfg.Org)
	if err != nil {
		r.Logger.Info().Str("org", r.cfg.Org).Msg("Organization not found, creating")
		org, err = r.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, r.cfg.Org)
		if err != nil {
			r.Logger.Error().Err(err).Str("org", r.cfg.Org).Msg("Error creating organization")
			return err
		}
	}

	if _, err = r.Client.BucketsAPI().FindBucketByName(ctx, r.cfg.Bucket); err != nil {
		r.Logger.Info().Str("bucket", r.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = r.Client.BucketsAPI().CreateBucketWithName(ctx, org, r.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			r.Logger.Error().Err(err).Str("bucket", r.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}

	return nil
}

func (r *Recorder) createWriter() {
	r.Writer = r.Client.WriteAPI(r.cfg.Org, r.cfg.Bucket)

	errorsCh := r.Writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			r.Logger.Error().Err(writeErr).Str("bucket", r.cfg.Bucket).
				Msg("Error sending telemetry to InfluxDB")
		}
	}()
}

// RecordCalculation writes one calculation point. Failures are logged,
// never returned, so the calculation path stays clean.
func (r *Recorder) RecordCalculation(target, shield string, duration time.Duration, totalTTK float64) {
	if !r.cfg.Enabled {
		return
	}

	point := influxdb2_write.NewPointWithMeasurement(calcMeasurement).
		AddTag("target", target).
		AddTag("shield", shield).
		AddField("duration_us", duration.Microseconds()).
		AddField("total_ttk", totalTTK).
		SetTime(time.Now())

	if err := r.writePoint(point); err != nil {
		r.Logger.Error().Err(err).Msg("Error recording calculation telemetry")
	}
}

func (r *Recorder) writePoint(point *influxdb2_write.Point) error {
	if r.IsValid {
		r.Writer.WritePoint(point)
		return nil
	}

	if r.BackupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if _, err := r.BackupWriter.Write([]byte(lineProtocol + "\n")); err != nil {
		return fmt.Errorf("error writing to telemetry backup file: %w", err)
	}
	return nil
}

// Close flushes and shuts down whichever sink is active.
func (r *Recorder) Close() {
	if r.Writer != nil {
		r.Writer.Flush()
	}
	if r.Client != nil {
		r.Client.Close()
	}
	if r.BackupWriter != nil {
		if err := r.BackupWriter.Close(); err != nil {
			r.Logger.Error().Err(err).Msg("Error closing telemetry backup file")
		}
	}
}
