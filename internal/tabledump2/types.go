// Package tabledump2 encodes TABLE_DUMP_V2 PeerIndexTable and
// RIB_AFI_Entries records (RFC 6396 §4.3). RIB_GENERIC is a known gap and
// is rejected explicitly rather than silently mis-encoded (spec §4.D).
package tabledump2

import (
	"net"

	"github.com/route-beacon/mrt-writer/internal/attr"
	"github.com/route-beacon/mrt-writer/internal/bgpelem"
)

// Subtype is the TABLE_DUMP_V2 entry_subtype (RFC 6396 §4.3).
type Subtype uint16

const (
	SubtypePeerIndexTable        Subtype = 1
	SubtypeRibIPv4Unicast        Subtype = 2
	SubtypeRibIPv4Multicast      Subtype = 3
	SubtypeRibIPv6Unicast        Subtype = 4
	SubtypeRibIPv6Multicast      Subtype = 5
	SubtypeRibGeneric            Subtype = 6
	SubtypeRibIPv4UnicastAddPath   Subtype = 8
	SubtypeRibIPv4MulticastAddPath Subtype = 9
	SubtypeRibIPv6UnicastAddPath   Subtype = 10
	SubtypeRibIPv6MulticastAddPath Subtype = 11
)

func (s Subtype) IsAddPath() bool {
	switch s {
	case SubtypeRibIPv4UnicastAddPath, SubtypeRibIPv4MulticastAddPath,
		SubtypeRibIPv6UnicastAddPath, SubtypeRibIPv6MulticastAddPath:
		return true
	}
	return false
}

type PeerIndexTable struct {
	CollectorBGPID net.IP
	ViewName       string
	// Peers is indexed 0..len(Peers)-1 in ascending order; spec P9
	// requires exactly one entry per index with no gaps.
	Peers []bgpelem.Peer
}

type RibEntry struct {
	PeerIndex      uint16
	OriginatedTime uint32
	PathID         uint32
	Attributes     []attr.Attribute
}

type RibAfiEntries struct {
	Subtype        Subtype
	SequenceNumber uint32
	Prefix         bgpelem.NetworkPrefix
	Entries        []RibEntry
}
