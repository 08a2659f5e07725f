package mrt

import (
	"encoding/binary"
	"errors"
	"net"
	"testing"

	"github.com/route-beacon/mrt-writer/internal/bgp4mp"
	"github.com/route-beacon/mrt-writer/internal/bgpelem"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
)

// TestEncode_HeaderLength checks the length field equals the payload
// length for a non-ET subtype, and payload length + 4 for an ET subtype.
func TestEncode_HeaderLength(t *testing.T) {
	stateChange := bgp4mp.StateChange{
		Sub:       bgp4mp.SubtypeStateChange,
		PeerASN:   bgpelem.Asn16(64496),
		LocalASN:  bgpelem.Asn16(64497),
		PeerAddr:  bgpelem.IPv4(net.ParseIP("192.0.2.1")),
		LocalAddr: bgpelem.IPv4(net.ParseIP("192.0.2.2")),
	}

	r := Record{
		Header: CommonHeader{
			Timestamp:    100,
			EntryType:    EntryTypeBGP4MP,
			EntrySubtype: uint16(bgp4mp.SubtypeStateChange),
		},
		Bgp4Mp: stateChange,
	}

	b, err := Encode(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	length := binary.BigEndian.Uint32(b[8:12])
	payloadLen := len(b) - 12
	if int(length) != payloadLen {
		t.Errorf("non-ET length field = %d, want %d", length, payloadLen)
	}

	usec := uint32(250000)
	rET := Record{
		Header: CommonHeader{
			Timestamp:            100,
			MicrosecondTimestamp: &usec,
			EntryType:            EntryTypeBGP4MPET,
			EntrySubtype:         uint16(bgp4mp.SubtypeStateChange),
		},
		Bgp4Mp: stateChange,
	}

	bET, err := Encode(rET)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lengthET := binary.BigEndian.Uint32(bET[8:12])
	payloadLenET := len(bET) - 16
	if int(lengthET) != payloadLenET+4 {
		t.Errorf("ET length field = %d, want %d", lengthET, payloadLenET+4)
	}
	if len(bET) != len(b)+4 {
		t.Errorf("ET record should be exactly 4 bytes longer than non-ET: got %d vs %d", len(bET), len(b))
	}
}

func TestEncode_NoPayloadIsUnsupported(t *testing.T) {
	_, err := Encode(Record{Header: CommonHeader{EntryType: EntryTypeBGP4MP}})
	if !errors.Is(err, mrterr.ErrUnsupportedMessage) {
		t.Fatalf("record with no payload: got err %v, want UnsupportedMessage", err)
	}
}
