// Package bgp4mp encodes BGP4MP_STATE_CHANGE and BGP4MP_MESSAGE records
// (RFC 6396 §4.4), delegating the embedded BGP message to bgpmsg.
package bgp4mp

import (
	"github.com/route-beacon/mrt-writer/internal/bgpelem"
	"github.com/route-beacon/mrt-writer/internal/bgpmsg"
)

// Subtype is the BGP4MP entry_subtype.
type Subtype uint16

const (
	SubtypeStateChange           Subtype = 0
	SubtypeMessage               Subtype = 1
	SubtypeMessageAs4            Subtype = 4
	SubtypeStateChangeAs4        Subtype = 5
	SubtypeMessageLocal          Subtype = 6
	SubtypeMessageAs4Local       Subtype = 7
	SubtypeMessageAddPath        Subtype = 8
	SubtypeMessageAs4AddPath     Subtype = 9
	SubtypeMessageLocalAddPath   Subtype = 10
	SubtypeMessageAs4LocalAddPath Subtype = 11
)

func (s Subtype) IsAddPath() bool {
	switch s {
	case SubtypeMessageAddPath, SubtypeMessageAs4AddPath,
		SubtypeMessageLocalAddPath, SubtypeMessageAs4LocalAddPath:
		return true
	}
	return false
}

type Message interface {
	Subtype() Subtype
}

type StateChange struct {
	Sub            Subtype // StateChange or StateChangeAs4
	PeerASN        bgpelem.Asn
	LocalASN       bgpelem.Asn
	InterfaceIndex uint16
	AFI            uint16
	PeerAddr       bgpelem.IPAddress
	LocalAddr      bgpelem.IPAddress
	OldState       uint16
	NewState       uint16
}

func (s StateChange) Subtype() Subtype { return s.Sub }

type BgpMessageRecord struct {
	Sub            Subtype
	PeerASN        bgpelem.Asn
	LocalASN       bgpelem.Asn
	InterfaceIndex uint16
	AFI            uint16
	PeerIP         bgpelem.IPAddress
	LocalIP        bgpelem.IPAddress
	BGPMessage     bgpmsg.Message
}

func (m BgpMessageRecord) Subtype() Subtype { return m.Sub }
