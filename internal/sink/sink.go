// Package sink fans composer output bytes out to one or more
// destinations, through exportpipeline.Pipeline. MemorySink is the
// default sink the pipeline writes through when no Kafka sink is
// configured; KafkaSink is an optional production mirror of the
// teacher's internal/kafka consumer, publishing instead of consuming.
package sink

import "context"

// Sink accepts one framed MRT record (or a concatenated run of them) at
// a time.
type Sink interface {
	Write(ctx context.Context, recordBytes []byte) error
}

// MemorySink appends every write to an in-memory buffer. exportpipeline
// falls back to one of these when no Kafka sink is configured, so a
// composer's export still has somewhere to land.
type MemorySink struct {
	buf []byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) Write(_ context.Context, recordBytes []byte) error {
	m.buf = append(m.buf, recordBytes...)
	return nil
}

// Bytes returns the accumulated buffer. The caller must not retain a
// reference across a later Write unless it no longer needs the prior
// contents; Reset clears it.
func (m *MemorySink) Bytes() []byte {
	return m.buf
}

func (m *MemorySink) Reset() {
	m.buf = nil
}
