package exportpipeline

import (
	"context"
	"testing"
	"time"

	"github.com/route-beacon/mrt-writer/internal/auditlog"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
	"github.com/route-beacon/mrt-writer/internal/sink"
)

type fakeComposer struct {
	bytes []byte
	err   error
	peers int
}

func (f *fakeComposer) ExportBytes() ([]byte, error) { return f.bytes, f.err }
func (f *fakeComposer) RecordCount() int              { return 1 }
func (f *fakeComposer) PeerCount() int                { return f.peers }

func TestRun_WritesThroughSinkAndRecordsAudit(t *testing.T) {
	ms := sink.NewMemorySink()
	p := &Pipeline{Sink: ms, Audit: auditlog.NewWriter(nil, nil, false, false)}

	c := &fakeComposer{bytes: []byte("abc"), peers: 2}
	if err := p.Run(context.Background(), "run-1", "rib", c, time.Unix(0, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := string(ms.Bytes()); got != "abc" {
		t.Errorf("sink received %q, want %q", got, "abc")
	}
}

func TestRun_ExportErrorSkipsSinkAndAudit(t *testing.T) {
	ms := sink.NewMemorySink()
	p := &Pipeline{Sink: ms, Audit: auditlog.NewWriter(nil, nil, false, false)}

	c := &fakeComposer{err: mrterr.Unsupported("rib_generic")}
	err := p.Run(context.Background(), "run-2", "rib", c, time.Unix(0, 0))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(ms.Bytes()) != 0 {
		t.Errorf("sink should not have been written on export failure, got %q", ms.Bytes())
	}
}

func TestRun_NilSinkAndAuditIsFine(t *testing.T) {
	p := &Pipeline{}
	c := &fakeComposer{bytes: []byte("xyz")}
	if err := p.Run(context.Background(), "run-3", "updates", c, time.Unix(0, 0)); err != nil {
		t.Fatalf("unexpected error with nil Sink/Audit: %v", err)
	}
}
