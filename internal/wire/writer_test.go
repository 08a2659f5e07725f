package wire

import (
	"net"
	"testing"

	"github.com/route-beacon/mrt-writer/internal/bgpelem"
)

// TestWriteNLRI_ByteCount checks that NLRI occupies 1 + ceil(L/8) bytes,
// plus 4 when add-path carries a path-id.
func TestWriteNLRI_ByteCount(t *testing.T) {
	cases := []struct {
		prefixLen int
		wantBytes int
	}{
		{0, 1},
		{1, 2},
		{8, 2},
		{9, 3},
		{24, 4},
		{32, 5},
	}

	for _, c := range cases {
		prefix := bgpelem.NetworkPrefix{
			IP:        net.ParseIP("10.0.0.0").To4(),
			PrefixLen: uint8(c.prefixLen),
		}
		var buf Buffer
		WriteNLRI(&buf, prefix, false)
		if buf.Len() != c.wantBytes {
			t.Errorf("prefixLen=%d: got %d bytes, want %d", c.prefixLen, buf.Len(), c.wantBytes)
		}

		var addPathBuf Buffer
		WriteNLRI(&addPathBuf, prefix, true)
		if addPathBuf.Len() != c.wantBytes+4 {
			t.Errorf("prefixLen=%d add-path: got %d bytes, want %d", c.prefixLen, addPathBuf.Len(), c.wantBytes+4)
		}
	}
}

func TestWriteASN_Width(t *testing.T) {
	var buf Buffer
	WriteASN(&buf, bgpelem.Asn16(64496))
	if buf.Len() != 2 {
		t.Errorf("16-bit ASN: got %d bytes, want 2", buf.Len())
	}

	buf.Reset()
	WriteASN(&buf, bgpelem.Asn32(4200000000))
	if buf.Len() != 4 {
		t.Errorf("32-bit ASN: got %d bytes, want 4", buf.Len())
	}
}
