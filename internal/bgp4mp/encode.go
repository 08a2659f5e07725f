package bgp4mp

import (
	"fmt"

	"github.com/route-beacon/mrt-writer/internal/bgpmsg"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
	"github.com/route-beacon/mrt-writer/internal/wire"
)

func Encode(buf *wire.Buffer, msg Message) error {
	switch m := msg.(type) {
	case StateChange:
		return encodeStateChange(buf, m)
	case BgpMessageRecord:
		return encodeBgpMessageRecord(buf, m)
	default:
		return mrterr.Unsupported(fmt.Sprintf("bgp4mp message type %T has no encoding", msg))
	}
}

func encodeStateChange(buf *wire.Buffer, m StateChange) error {
	wire.WriteASN(buf, m.PeerASN)
	wire.WriteASN(buf, m.LocalASN)
	wire.WriteU16BE(buf, m.InterfaceIndex)
	wire.WriteU16BE(buf, m.AFI)
	wire.WriteIP(buf, m.PeerAddr)
	wire.WriteIP(buf, m.LocalAddr)
	wire.WriteU16BE(buf, m.OldState)
	wire.WriteU16BE(buf, m.NewState)
	return nil
}

func encodeBgpMessageRecord(buf *wire.Buffer, m BgpMessageRecord) error {
	wire.WriteASN(buf, m.PeerASN)
	wire.WriteASN(buf, m.LocalASN)
	wire.WriteU16BE(buf, m.InterfaceIndex)
	wire.WriteU16BE(buf, m.AFI)
	wire.WriteIP(buf, m.PeerIP)
	wire.WriteIP(buf, m.LocalIP)

	return bgpmsg.Encode(buf, m.BGPMessage, m.Sub.IsAddPath())
}
