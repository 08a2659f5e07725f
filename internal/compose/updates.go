package compose

import (
	"math"

	"github.com/route-beacon/mrt-writer/internal/bgp4mp"
	"github.com/route-beacon/mrt-writer/internal/bgpelem"
	"github.com/route-beacon/mrt-writer/internal/bgpmsg"
	"github.com/route-beacon/mrt-writer/internal/mrt"
)

// UpdatesComposer turns a stream of BgpElem announcements/withdrawals
// into one BGP4MP_MESSAGE_AS4 MRT record per element. Grounded on
// original_source/src/mrt_compose/updates_composer.rs.
type UpdatesComposer struct {
	records []mrt.Record
}

func NewUpdatesComposer() *UpdatesComposer {
	return &UpdatesComposer{}
}

// AddElem appends one BgpElem as a BGP4MP_MESSAGE_AS4 record holding a
// single-prefix BGP UPDATE (one NLRI announced, or one withdrawn).
func (c *UpdatesComposer) AddElem(elem bgpelem.BgpElem) error {
	sec, usec := splitTimestamp(elem.Timestamp)

	var announced, withdrawn []bgpelem.NetworkPrefix
	switch elem.ElemType {
	case bgpelem.Announce:
		announced = []bgpelem.NetworkPrefix{elem.Prefix}
	case bgpelem.Withdraw:
		withdrawn = []bgpelem.NetworkPrefix{elem.Prefix}
	}

	update := bgpmsg.UpdateMessage{
		WithdrawnPrefixes: withdrawn,
		Attributes:        elemToAttributes(elem),
		AnnouncedPrefixes: announced,
	}

	afi := uint16(1)
	if elem.Prefix.V6 {
		afi = 2
	}

	localASN := elem.PeerASN
	localASN.Value = 0

	localIP := bgpelem.ZeroAddress(elem.PeerIP.V6)

	record := mrt.Record{
		Header: mrt.CommonHeader{
			Timestamp:            sec,
			MicrosecondTimestamp: &usec,
			EntryType:            mrt.EntryTypeBGP4MPET,
			EntrySubtype:         uint16(bgp4mp.SubtypeMessageAs4),
		},
		Bgp4Mp: bgp4mp.BgpMessageRecord{
			Sub:            bgp4mp.SubtypeMessageAs4,
			PeerASN:        elem.PeerASN,
			LocalASN:       localASN,
			InterfaceIndex: 0,
			AFI:            afi,
			PeerIP:         elem.PeerIP,
			LocalIP:        localIP,
			BGPMessage:     update,
		},
	}

	c.records = append(c.records, record)
	return nil
}

// AddElems appends each element in order; it stops at the first error.
func (c *UpdatesComposer) AddElems(elems []bgpelem.BgpElem) error {
	for _, e := range elems {
		if err := c.AddElem(e); err != nil {
			return err
		}
	}
	return nil
}

// RecordCount reports how many BGP4MP_MESSAGE_AS4 records the next
// ExportBytes call will encode.
func (c *UpdatesComposer) RecordCount() int {
	return len(c.records)
}

// ExportBytes encodes every accumulated record, in insertion order, into
// one concatenated MRT byte stream.
func (c *UpdatesComposer) ExportBytes() ([]byte, error) {
	var out []byte
	for _, r := range c.records {
		b, err := mrt.Encode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// splitTimestamp turns a float seconds-since-epoch value into its integer
// second and microsecond parts, as original_source/src/mrt_compose/
// updates_composer.rs does by formatting "%.6f" and parsing the fractional
// half back out.
func splitTimestamp(ts float64) (sec uint32, usec uint32) {
	whole := math.Floor(ts)
	frac := ts - whole
	usec = uint32(math.Round(frac * 1_000_000))
	if usec >= 1_000_000 {
		whole++
		usec -= 1_000_000
	}
	return uint32(whole), usec
}
