package bgpmsg

import (
	"fmt"

	"github.com/route-beacon/mrt-writer/internal/attr"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
	"github.com/route-beacon/mrt-writer/internal/wire"
)

// Encode writes the 19-byte BGP header (16 marker bytes, all 0xFF per RFC
// 4271 -- the source this repo is descended from wrote 16 zero bytes; see
// DESIGN.md Open Question 1) followed by the type-specific body. addPath
// toggles NLRI add-path encoding for UPDATE messages; it is supplied by
// the enclosing BGP4MP subtype (spec §4.C).
func Encode(buf *wire.Buffer, msg Message, addPath bool) error {
	var marker [16]byte
	for i := range marker {
		marker[i] = 0xFF
	}

	var body wire.Buffer
	wire.WriteU8(&body, uint8(msg.Type()))

	switch m := msg.(type) {
	case OpenMessage:
		encodeOpen(&body, m)
	case UpdateMessage:
		if err := encodeUpdate(&body, m, addPath); err != nil {
			return err
		}
	case NotificationMessage:
		encodeNotification(&body, m)
	case KeepaliveMessage:
		// Empty body.
	default:
		return mrterr.Unsupported(fmt.Sprintf("bgp message type %T has no encoding", msg))
	}

	buf.Write(marker[:])
	wire.WriteU16BE(buf, uint16(HeaderSize+body.Len()-1)) // -1: body includes the type byte counted again below
	buf.Write(body.Bytes())
	return nil
}

func encodeOpen(body *wire.Buffer, m OpenMessage) {
	wire.WriteU8(body, m.Version)
	wire.WriteU16BE(body, m.MyASN)
	wire.WriteU16BE(body, m.HoldTime)
	body.Write(m.BGPID.To4())
	// Optional parameters unsupported: opt_parm_len = 0.
	wire.WriteU8(body, 0)
}

func encodeUpdate(body *wire.Buffer, m UpdateMessage, addPath bool) error {
	var withdrawn wire.Buffer
	for _, p := range m.WithdrawnPrefixes {
		wire.WriteNLRI(&withdrawn, p, addPath)
	}
	wire.WriteU16BE(body, uint16(withdrawn.Len()))
	body.Write(withdrawn.Bytes())

	var attrs wire.Buffer
	for _, a := range m.Attributes {
		if err := attr.Encode(&attrs, a, attr.Mode{AddPath: addPath, WriteAFI: true, WriteSAFI: true, WritePrefixes: true}); err != nil {
			return err
		}
	}
	wire.WriteU16BE(body, uint16(attrs.Len()))
	body.Write(attrs.Bytes())

	var announced wire.Buffer
	for _, p := range m.AnnouncedPrefixes {
		wire.WriteNLRI(&announced, p, addPath)
	}
	body.Write(announced.Bytes())
	return nil
}

func encodeNotification(body *wire.Buffer, m NotificationMessage) {
	wire.WriteU8(body, m.ErrorCode)
	wire.WriteU8(body, m.ErrorSubcode)
	body.Write(m.Data)
}
