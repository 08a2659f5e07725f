package auditlog

import (
	"context"
	"testing"
	"time"
)

func TestRecordExport_NilPoolIsNoop(t *testing.T) {
	w := NewWriter(nil, nil, false, false)
	err := w.RecordExport(context.Background(), ExportRun{
		RunID:        "run-1",
		ComposerKind: "rib",
		RecordCount:  3,
		ByteCount:    128,
		PeerCount:    2,
		ExportedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("expected no-op success with nil pool, got error: %v", err)
	}
}

func TestRecordExportBatch_NilPoolIsNoop(t *testing.T) {
	w := NewWriter(nil, nil, false, false)
	err := w.RecordExportBatch(context.Background(), []ExportRun{
		{RunID: "run-1", ComposerKind: "updates"},
	})
	if err != nil {
		t.Fatalf("expected no-op success with nil pool, got error: %v", err)
	}
}
