// Package wire implements the append-only byte-sink primitives every
// higher-level encoder builds on: big-endian integers, IP addresses, ASNs,
// and NLRI. Grounded on original_source/src/mrt_compose's byteorder-crate
// writers (write_16b/write_32b/write_ip), the encode-direction counterpart
// of this package, reimplemented with encoding/binary.
package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/route-beacon/mrt-writer/internal/bgpelem"
)

// Buffer is the append-only sink the encoders write into. bytes.Buffer
// already satisfies everything needed; this alias documents intent at
// call sites.
type Buffer = bytes.Buffer

func WriteU8(buf *Buffer, v uint8) {
	buf.WriteByte(v)
}

func WriteU16BE(buf *Buffer, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func WriteU32BE(buf *Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

// WriteIP emits 4 octets for a v4 address, 16 for v6. No length prefix.
func WriteIP(buf *Buffer, addr bgpelem.IPAddress) {
	buf.Write(addr.Bytes)
}

// WriteASN emits 2 or 4 big-endian octets depending on the width tag.
func WriteASN(buf *Buffer, asn bgpelem.Asn) {
	if asn.Is32Bit {
		WriteU32BE(buf, asn.Value)
	} else {
		WriteU16BE(buf, uint16(asn.Value))
	}
}

// WriteNLRI emits an optional 4-byte path-id (when addPath is set),
// followed by a 1-byte prefix length and ceil(len/8) octets of network
// address, high-order bytes first.
func WriteNLRI(buf *Buffer, prefix bgpelem.NetworkPrefix, addPath bool) {
	if addPath {
		WriteU32BE(buf, prefix.PathID)
	}
	WriteU8(buf, prefix.PrefixLen)

	byteLen := prefix.ByteLen()
	ipBytes := prefix.IP
	if prefix.V6 {
		ipBytes = ipBytes.To16()
	} else {
		ipBytes = ipBytes.To4()
	}
	buf.Write(ipBytes[:byteLen])
}
