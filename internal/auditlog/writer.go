// Package auditlog optionally records one row per composer export_bytes
// call into Postgres: run id, composer kind, and the record/byte/peer
// counts. Adapted from the teacher's internal/history/writer.go
// batch-insert pattern (pgx.Batch, ON CONFLICT DO NOTHING idempotency);
// RecordExport inserts a single row with one pool Exec, and
// RecordExportBatch queues several rows in one pgx.Batch.
// Raw-bytes storage reuses the teacher's zstdEncoder/storeRawBytes/
// compressRaw pattern from internal/history/writer.go.
package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/route-beacon/mrt-writer/internal/metrics"
)

var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(fmt.Sprintf("auditlog: zstd encoder init: %v", err))
	}
}

// ExportRun is one composer export_bytes invocation worth recording.
type ExportRun struct {
	RunID        string
	ComposerKind string // "updates" or "rib"
	RecordCount  int
	ByteCount    int
	PeerCount    int
	ExportedAt   time.Time

	// RawBytes is the exported payload itself. Only persisted when the
	// Writer was constructed with storeRawBytes; nil otherwise.
	RawBytes []byte
}

// Writer records ExportRuns. A nil pool makes every call a no-op so the
// composers never require Postgres to function.
type Writer struct {
	pool          *pgxpool.Pool
	logger        *zap.Logger
	storeRawBytes bool
	compressRaw   bool
}

func NewWriter(pool *pgxpool.Pool, logger *zap.Logger, storeRawBytes, compressRaw bool) *Writer {
	return &Writer{
		pool:          pool,
		logger:        logger,
		storeRawBytes: storeRawBytes,
		compressRaw:   compressRaw,
	}
}

const insertSQL = `
	INSERT INTO export_runs (run_id, composer_kind, record_count, byte_count, peer_count, exported_at, raw_bytes)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (run_id) DO NOTHING`

// rawColumn applies storeRawBytes/compressRaw to the run's payload, the
// same branch internal/history/writer.go runs over BMPRaw before queuing
// an insert.
func (w *Writer) rawColumn(run ExportRun) []byte {
	if !w.storeRawBytes || run.RawBytes == nil {
		return nil
	}
	if w.compressRaw {
		return zstdEncoder.EncodeAll(run.RawBytes, nil)
	}
	return run.RawBytes
}

// RecordExport inserts one row for run. It is a no-op if no pool was
// configured.
func (w *Writer) RecordExport(ctx context.Context, run ExportRun) error {
	if w.pool == nil {
		return nil
	}

	tag, err := w.pool.Exec(ctx, insertSQL,
		run.RunID, run.ComposerKind, run.RecordCount, run.ByteCount, run.PeerCount, run.ExportedAt, w.rawColumn(run),
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert export_runs: %w", err)
	}
	if tag.RowsAffected() == 0 && w.logger != nil {
		w.logger.Debug("auditlog: duplicate export run skipped", zap.String("run_id", run.RunID))
	}

	metrics.RecordsEncodedTotal.WithLabelValues(run.ComposerKind).Add(float64(run.RecordCount))
	metrics.BytesWrittenTotal.WithLabelValues(run.ComposerKind).Add(float64(run.ByteCount))
	if run.ComposerKind == "rib" {
		metrics.RibPeerTableSize.WithLabelValues(run.ComposerKind).Set(float64(run.PeerCount))
	}
	return nil
}

// RecordExportBatch inserts several runs in one round trip, following the
// teacher's pgx.Batch pattern for bulk writes.
func (w *Writer) RecordExportBatch(ctx context.Context, runs []ExportRun) error {
	if w.pool == nil || len(runs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, run := range runs {
		batch.Queue(insertSQL, run.RunID, run.ComposerKind, run.RecordCount, run.ByteCount, run.PeerCount, run.ExportedAt, w.rawColumn(run))
	}

	results := w.pool.SendBatch(ctx, batch)
	for i, run := range runs {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("auditlog: insert export_runs[%d]: %w", i, err)
		}
		metrics.RecordsEncodedTotal.WithLabelValues(run.ComposerKind).Add(float64(run.RecordCount))
		metrics.BytesWrittenTotal.WithLabelValues(run.ComposerKind).Add(float64(run.ByteCount))
	}
	return results.Close()
}
