package compose

import (
	"net"
	"testing"

	"github.com/route-beacon/mrt-writer/internal/bgpelem"
)

func sampleElem(peerIP string, atomic bgpelem.AtomicAggregate) bgpelem.BgpElem {
	nh := bgpelem.IPv4(net.ParseIP("4.3.2.1"))
	origin := bgpelem.OriginEGP
	med := uint32(251)
	return bgpelem.BgpElem{
		Timestamp: 12.1,
		ElemType:  bgpelem.Announce,
		PeerIP:    bgpelem.IPv4(net.ParseIP(peerIP)),
		PeerASN:   bgpelem.Asn32(100),
		Prefix: bgpelem.NetworkPrefix{
			IP:        net.ParseIP("10.2.2.0").To4(),
			PrefixLen: 24,
		},
		NextHop: &nh,
		ASPath: &bgpelem.ASPath{
			Segments: []bgpelem.ASPathSegment{
				{Type: bgpelem.ASPathSegmentSequence, ASNs: []bgpelem.Asn{
					bgpelem.Asn32(1), bgpelem.Asn32(2), bgpelem.Asn32(3), bgpelem.Asn32(5),
				}},
			},
		},
		Origin: &origin,
		MED:    &med,
		Atomic: &atomic,
	}
}

func TestUpdatesComposer_EmptyExportIsEmpty(t *testing.T) {
	c := NewUpdatesComposer()
	b, err := c.ExportBytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("got %d bytes, want 0 (P11)", len(b))
	}
}

func TestUpdatesComposer_AtomicAggregateAbsentForNAG(t *testing.T) {
	elem := sampleElem("1.2.3.4", bgpelem.NAG)
	attrs := elemToAttributes(elem)
	for _, a := range attrs {
		if a.Type == 6 { // TypeAtomicAggregate
			t.Fatal("ATOMIC_AGGREGATE must not appear when atomic=NAG (P10)")
		}
	}

	elem.Atomic = func() *bgpelem.AtomicAggregate { v := bgpelem.AG; return &v }()
	attrsAG := elemToAttributes(elem)
	found := false
	for _, a := range attrsAG {
		if a.Type == 6 {
			found = true
		}
	}
	if !found {
		t.Fatal("ATOMIC_AGGREGATE must appear when atomic=AG")
	}
}

func TestUpdatesComposer_AddElemProducesOneRecord(t *testing.T) {
	c := NewUpdatesComposer()
	if err := c.AddElem(sampleElem("1.2.3.4", bgpelem.AG)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.records) != 1 {
		t.Fatalf("got %d records, want 1", len(c.records))
	}

	b, err := c.ExportBytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("expected non-empty export")
	}
}

func TestRibComposer_EmptyExportIsEmpty(t *testing.T) {
	c := NewRibComposer()
	b, err := c.ExportBytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("got %d bytes, want 0 (P11)", len(b))
	}
}

// TestRibComposer_PeerIndexDensity checks P9: one PeerIndexTable entry
// per distinct peer IP, indexed 0..N-1 in first-seen order.
func TestRibComposer_PeerIndexDensity(t *testing.T) {
	c := NewRibComposer()
	peers := []string{"1.2.3.4", "1.2.3.1", "1.2.3.4", "5.6.7.8"}
	for _, p := range peers {
		if err := c.AddElem(sampleElem(p, bgpelem.AG)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records := c.buildRecords()
	if len(c.peers) != 3 {
		t.Fatalf("got %d distinct peers, want 3", len(c.peers))
	}

	wantOrder := []string{"1.2.3.4", "1.2.3.1", "5.6.7.8"}
	for i, want := range wantOrder {
		if c.peers[i].Address.String() != want {
			t.Errorf("peer index %d = %s, want %s", i, c.peers[i].Address.String(), want)
		}
	}

	if len(records) != 2 { // one PeerIndexTable + one prefix (all four elems share one prefix)
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestRibComposer_ExportIsCached(t *testing.T) {
	c := NewRibComposer()
	if err := c.AddElem(sampleElem("1.2.3.4", bgpelem.AG)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := c.ExportBytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.cache == nil {
		t.Fatal("expected export to populate the cache")
	}
	second, err := c.ExportBytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("cached export changed length: %d vs %d", len(first), len(second))
	}

	if err := c.AddElem(sampleElem("9.9.9.9", bgpelem.AG)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.cache != nil {
		t.Fatal("AddElem must invalidate the cache")
	}
}
