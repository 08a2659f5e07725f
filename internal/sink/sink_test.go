package sink

import (
	"bytes"
	"context"
	"testing"
)

func TestMemorySink_AccumulatesWrites(t *testing.T) {
	m := NewMemorySink()
	ctx := context.Background()

	if err := m.Write(ctx, []byte{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Write(ctx, []byte{4, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(m.Bytes(), []byte{1, 2, 3, 4, 5}) {
		t.Errorf("got %v, want [1 2 3 4 5]", m.Bytes())
	}

	m.Reset()
	if len(m.Bytes()) != 0 {
		t.Errorf("expected empty buffer after Reset, got %v", m.Bytes())
	}
}
