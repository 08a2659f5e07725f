// Package exportpipeline is the one outermost call site where a
// composer's ExportBytes output reaches a sink.Sink, gets one audit-log
// row, and drives the encode_duration/encode_errors_total metrics.
// Grounded on the teacher's internal/history/writer.go FlushBatch, which
// wraps its own Postgres batch insert in the same
// time.Since+Observe+error-metric shape around the thing it's timing.
package exportpipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/route-beacon/mrt-writer/internal/auditlog"
	"github.com/route-beacon/mrt-writer/internal/metrics"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
	"github.com/route-beacon/mrt-writer/internal/sink"
)

// Composer is the subset of compose.UpdatesComposer/RibComposer the
// pipeline needs.
type Composer interface {
	ExportBytes() ([]byte, error)
	RecordCount() int
}

// peerCounter is implemented by compose.RibComposer; UpdatesComposer has
// no peer table and doesn't satisfy it, so PeerCount is reported as 0.
type peerCounter interface {
	PeerCount() int
}

// Pipeline is the export_bytes -> sink -> audit-log path. Sink and Audit
// are both optional: a nil Sink skips the write-through step, and a nil
// Audit skips recording the export run (the same "unconfigured means
// no-op" rule auditlog.Writer itself uses for a nil pool).
type Pipeline struct {
	Sink   sink.Sink
	Audit  *auditlog.Writer
	Logger *zap.Logger
}

// Run exports composerKind's accumulated records through c, writes the
// result to the configured sink, and records one audit-log row. It times
// the whole call under metrics.EncodeDuration and increments
// metrics.EncodeErrorsTotal, labeled by stage and error reason, at
// whichever step fails first.
func (p *Pipeline) Run(ctx context.Context, runID, composerKind string, c Composer, exportedAt time.Time) error {
	start := time.Now()
	raw, err := c.ExportBytes()
	metrics.EncodeDuration.WithLabelValues(composerKind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EncodeErrorsTotal.WithLabelValues(composerKind, errorReason(err)).Inc()
		return err
	}

	if p.Sink != nil {
		if err := p.Sink.Write(ctx, raw); err != nil {
			metrics.EncodeErrorsTotal.WithLabelValues(composerKind, "sink_write").Inc()
			return err
		}
	}

	if p.Audit == nil {
		return nil
	}

	peers := 0
	if pc, ok := c.(peerCounter); ok {
		peers = pc.PeerCount()
	}

	run := auditlog.ExportRun{
		RunID:        runID,
		ComposerKind: composerKind,
		RecordCount:  c.RecordCount(),
		ByteCount:    len(raw),
		PeerCount:    peers,
		ExportedAt:   exportedAt,
		RawBytes:     raw,
	}
	if err := p.Audit.RecordExport(ctx, run); err != nil {
		metrics.EncodeErrorsTotal.WithLabelValues(composerKind, "audit_write").Inc()
		if p.Logger != nil {
			p.Logger.Error("exportpipeline: audit record failed", zap.String("run_id", runID), zap.Error(err))
		}
		return err
	}

	return nil
}

// errorReason maps an encoder error to the mrterr sentinel it wraps, the
// "reason" label spec.md §7 requires on encode_errors_total.
func errorReason(err error) string {
	switch {
	case errors.Is(err, mrterr.ErrUnsupportedMessage):
		return "unsupported_message"
	case errors.Is(err, mrterr.ErrValueTooLarge):
		return "value_too_large"
	case errors.Is(err, mrterr.ErrMalformedInput):
		return "malformed_input"
	default:
		return "io"
	}
}
