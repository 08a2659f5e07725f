// Package bgpmsg encodes BGP OPEN/UPDATE/NOTIFICATION/KEEPALIVE messages
// and the common 19-byte BGP header, grounded on RFC 4271 §4 and on
// original_source/src/mrt_compose/updates_composer.rs, which builds this
// same message shape.
package bgpmsg

import (
	"net"

	"github.com/route-beacon/mrt-writer/internal/attr"
	"github.com/route-beacon/mrt-writer/internal/bgpelem"
)

type MsgType uint8

const (
	TypeOpen         MsgType = 1
	TypeUpdate       MsgType = 2
	TypeNotification MsgType = 3
	TypeKeepalive    MsgType = 4
)

const HeaderSize = 19

// Message is implemented by each of the four BGP message bodies.
type Message interface {
	Type() MsgType
}

type OpenMessage struct {
	Version  uint8
	MyASN    uint16
	HoldTime uint16
	BGPID    net.IP
	// Optional parameters are not supported (spec §4.C); OptParmLen is
	// always emitted as 0.
}

func (OpenMessage) Type() MsgType { return TypeOpen }

type UpdateMessage struct {
	WithdrawnPrefixes []bgpelem.NetworkPrefix
	Attributes        []attr.Attribute
	AnnouncedPrefixes []bgpelem.NetworkPrefix
}

func (UpdateMessage) Type() MsgType { return TypeUpdate }

type NotificationMessage struct {
	ErrorCode    uint8
	ErrorSubcode uint8
	Data         []byte
}

func (NotificationMessage) Type() MsgType { return TypeNotification }

type KeepaliveMessage struct{}

func (KeepaliveMessage) Type() MsgType { return TypeKeepalive }
