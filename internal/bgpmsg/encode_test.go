package bgpmsg

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/route-beacon/mrt-writer/internal/attr"
	"github.com/route-beacon/mrt-writer/internal/bgpelem"
	"github.com/route-beacon/mrt-writer/internal/wire"
)

func TestEncode_MarkerIsAllOnes(t *testing.T) {
	var buf wire.Buffer
	if err := Encode(&buf, KeepaliveMessage{}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := buf.Bytes()
	for i := 0; i < 16; i++ {
		if b[i] != 0xFF {
			t.Fatalf("marker byte %d = %#x, want 0xff", i, b[i])
		}
	}
}

// TestEncode_UpdateLengthField checks the length field in the BGP header
// equals the whole message length (19 + body bytes after the type byte).
func TestEncode_UpdateLengthField(t *testing.T) {
	prefix := bgpelem.NetworkPrefix{IP: net.ParseIP("10.0.0.0").To4(), PrefixLen: 24}
	msg := UpdateMessage{
		AnnouncedPrefixes: []bgpelem.NetworkPrefix{prefix},
		Attributes: []attr.Attribute{
			{Flag: attr.TransitiveFlag, Type: attr.TypeOrigin, Value: attr.OriginValue(bgpelem.OriginIGP)},
		},
	}

	var buf wire.Buffer
	if err := Encode(&buf, msg, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := buf.Bytes()
	length := binary.BigEndian.Uint16(b[16:18])
	if int(length) != len(b) {
		t.Errorf("length field = %d, want %d (whole message)", length, len(b))
	}
	if b[18] != byte(TypeUpdate) {
		t.Errorf("type byte = %d, want %d", b[18], TypeUpdate)
	}
}

func TestEncode_KeepaliveIsHeaderOnly(t *testing.T) {
	var buf wire.Buffer
	if err := Encode(&buf, KeepaliveMessage{}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != HeaderSize {
		t.Errorf("keepalive length = %d, want %d", buf.Len(), HeaderSize)
	}
}

// TestEncode_UpdateBodyLayout hand-walks an encoded UPDATE message's
// withdrawn-routes, attribute, and NLRI sections byte by byte, the same
// way attr/encode_test.go and mrt/encode_test.go check their own layers
// without an external parser.
func TestEncode_UpdateBodyLayout(t *testing.T) {
	nh := bgpelem.IPv4(net.ParseIP("192.168.1.1"))
	msg := UpdateMessage{
		AnnouncedPrefixes: []bgpelem.NetworkPrefix{
			{IP: net.ParseIP("10.0.0.0").To4(), PrefixLen: 24},
		},
		Attributes: []attr.Attribute{
			{Flag: attr.TransitiveFlag, Type: attr.TypeOrigin, Value: attr.OriginValue(bgpelem.OriginIGP)},
			{Flag: attr.TransitiveFlag, Type: attr.TypeNextHop, Value: attr.NextHopValue(nh)},
		},
	}

	var buf wire.Buffer
	if err := Encode(&buf, msg, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := buf.Bytes()

	off := HeaderSize
	withdrawnLen := binary.BigEndian.Uint16(b[off : off+2])
	if withdrawnLen != 0 {
		t.Fatalf("withdrawn_routes_length = %d, want 0", withdrawnLen)
	}
	off += 2

	attrsLen := binary.BigEndian.Uint16(b[off : off+2])
	off += 2
	attrsStart := off

	// First attribute: ORIGIN, flag+type+length(1)+value(1) = 4 bytes.
	if b[off] != attr.TransitiveFlag {
		t.Errorf("attr[0] flag = %#x, want %#x", b[off], attr.TransitiveFlag)
	}
	if b[off+1] != byte(attr.TypeOrigin) {
		t.Errorf("attr[0] type = %d, want %d", b[off+1], attr.TypeOrigin)
	}
	if b[off+2] != 1 {
		t.Errorf("attr[0] length = %d, want 1", b[off+2])
	}
	if b[off+3] != byte(bgpelem.OriginIGP) {
		t.Errorf("attr[0] value = %d, want %d", b[off+3], bgpelem.OriginIGP)
	}
	off += 4

	// Second attribute: NEXT_HOP, flag+type+length(1)+value(4) = 7 bytes.
	if b[off+1] != byte(attr.TypeNextHop) {
		t.Errorf("attr[1] type = %d, want %d", b[off+1], attr.TypeNextHop)
	}
	if b[off+2] != 4 {
		t.Errorf("attr[1] length = %d, want 4", b[off+2])
	}
	gotNH := net.IP(b[off+3 : off+3+4])
	if !gotNH.Equal(net.ParseIP("192.168.1.1")) {
		t.Errorf("attr[1] next-hop = %v, want 192.168.1.1", gotNH)
	}
	off += 7

	if off-attrsStart != int(attrsLen) {
		t.Fatalf("consumed %d attribute bytes, header says %d", off-attrsStart, attrsLen)
	}

	// NLRI: prefix_len(1) + ceil(24/8)=3 address bytes = 4 bytes, value 10.0.0.0/24.
	if b[off] != 24 {
		t.Fatalf("nlri prefix_len = %d, want 24", b[off])
	}
	nlriAddr := b[off+1 : off+4]
	if nlriAddr[0] != 10 || nlriAddr[1] != 0 || nlriAddr[2] != 0 {
		t.Errorf("nlri address bytes = %v, want [10 0 0]", nlriAddr)
	}
	off += 4

	if off != len(b) {
		t.Errorf("consumed %d bytes, message is %d bytes", off, len(b))
	}
}
