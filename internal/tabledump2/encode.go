package tabledump2

import (
	"fmt"
	"net"

	"github.com/route-beacon/mrt-writer/internal/attr"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
	"github.com/route-beacon/mrt-writer/internal/wire"
)

// Message is implemented by PeerIndexTable, RibAfiEntries, and
// RibGeneric (which always fails to encode).
type Message interface {
	EntrySubtype() Subtype
}

func (PeerIndexTable) EntrySubtype() Subtype { return SubtypePeerIndexTable }
func (r RibAfiEntries) EntrySubtype() Subtype { return r.Subtype }

// RibGeneric stands in for the unimplemented RIB_GENERIC subtype (6);
// encoding it always fails (spec §4.D, non-goals).
type RibGeneric struct{}

func (RibGeneric) EntrySubtype() Subtype { return SubtypeRibGeneric }

func Encode(buf *wire.Buffer, msg Message) error {
	switch m := msg.(type) {
	case PeerIndexTable:
		return encodePeerIndexTable(buf, m)
	case RibAfiEntries:
		return encodeRibAfiEntries(buf, m)
	case RibGeneric:
		return mrterr.Unsupported("RIB_GENERIC encoding is not supported")
	default:
		return mrterr.Unsupported(fmt.Sprintf("table_dump_v2 message type %T has no encoding", msg))
	}
}

func encodePeerIndexTable(buf *wire.Buffer, m PeerIndexTable) error {
	collector := m.CollectorBGPID
	if collector == nil {
		collector = make(net.IP, 4)
	}
	buf.Write(collector.To4())

	viewName := []byte(m.ViewName)
	wire.WriteU16BE(buf, uint16(len(viewName)))
	buf.Write(viewName)

	wire.WriteU16BE(buf, uint16(len(m.Peers)))
	for _, peer := range m.Peers {
		wire.WriteU8(buf, peer.PeerType)
		bgpid := peer.BGPID
		if bgpid == nil {
			bgpid = make(net.IP, 4)
		}
		buf.Write(bgpid.To4())
		wire.WriteIP(buf, peer.Address)
		wire.WriteASN(buf, peer.ASN)
	}
	return nil
}

func encodeRibAfiEntries(buf *wire.Buffer, m RibAfiEntries) error {
	addPath := m.Subtype.IsAddPath()

	wire.WriteU32BE(buf, m.SequenceNumber)
	wire.WriteNLRI(buf, m.Prefix, addPath)

	wire.WriteU16BE(buf, uint16(len(m.Entries)))
	for _, entry := range m.Entries {
		wire.WriteU16BE(buf, entry.PeerIndex)
		wire.WriteU32BE(buf, entry.OriginatedTime)
		if addPath {
			wire.WriteU32BE(buf, entry.PathID)
		}

		var attrBuf wire.Buffer
		for _, a := range entry.Attributes {
			// AFI/SAFI/NLRI are implicit in the enclosing record;
			// the attribute encoder suppresses all three.
			if err := attr.Encode(&attrBuf, a, attr.Mode{AddPath: addPath}); err != nil {
				return err
			}
		}
		wire.WriteU16BE(buf, uint16(attrBuf.Len()))
		buf.Write(attrBuf.Bytes())
	}
	return nil
}
