// Package attr encodes a single BGP path attribute. The same encoder
// serves three call sites that differ only in four boolean flags (add-path
// NLRI, and whether AFI/SAFI/NLRI are written for MP_REACH/MP_UNREACH) --
// see Mode. Grounded on RFC 4271 §4.3/RFC 4760 §3 and
// original_source/src/attributes.rs, which builds this exact wire shape.
package attr

import "github.com/route-beacon/mrt-writer/internal/bgpelem"

// AttrType is the BGP path attribute type code (RFC 4271/4760/4893/5065).
type AttrType uint8

const (
	TypeOrigin              AttrType = 1
	TypeASPath              AttrType = 2
	TypeNextHop             AttrType = 3
	TypeMultiExitDisc       AttrType = 4
	TypeLocalPref           AttrType = 5
	TypeAtomicAggregate     AttrType = 6
	TypeAggregator          AttrType = 7
	TypeCommunities         AttrType = 8
	TypeOriginatorID        AttrType = 9
	TypeClusterList         AttrType = 10
	TypeMPReachNLRI         AttrType = 14
	TypeMPUnreachNLRI       AttrType = 15
	TypeExtendedCommunities AttrType = 16
	TypeAS4Path             AttrType = 17
	TypeLargeCommunities    AttrType = 32
)

// ExtendedLengthBit is flag bit 4 (0x10): selects the 2-byte length field.
const ExtendedLengthBit byte = 0x10

// TransitiveFlag is the flag byte every composer-produced attribute uses.
const TransitiveFlag byte = 0x40

// Value is implemented by every concrete attribute payload.
type Value interface {
	isAttributeValue()
}

type Attribute struct {
	Flag  byte
	Type  AttrType
	Value Value
}

type OriginValue bgpelem.Origin

func (OriginValue) isAttributeValue() {}

// ASPathValue backs both AS_PATH and AS4_PATH; the caller picks the Type.
type ASPathValue bgpelem.ASPath

func (ASPathValue) isAttributeValue() {}

type NextHopValue bgpelem.IPAddress

func (NextHopValue) isAttributeValue() {}

type MultiExitDiscValue uint32

func (MultiExitDiscValue) isAttributeValue() {}

type LocalPrefValue uint32

func (LocalPrefValue) isAttributeValue() {}

// AtomicAggregateValue carries no data; its mere presence sets AG. NAG
// must never be constructed as an attribute (spec P10).
type AtomicAggregateValue struct{}

func (AtomicAggregateValue) isAttributeValue() {}

type AggregatorValue struct {
	ASN bgpelem.Asn
	IP  bgpelem.IPAddress
}

func (AggregatorValue) isAttributeValue() {}

type CommunitiesValue []bgpelem.Community

func (CommunitiesValue) isAttributeValue() {}

// ExtendedCommunitiesValue backs the single EXTENDED_COMMUNITIES
// attribute (type 16). Entries holds the generic 8-byte-per-entry family
// (two/four-octet-AS-specific, IPv4-address-specific, opaque); V6Entries
// holds the RFC 5701 IPv6-address-specific 20-byte-per-entry family.
// original_source encodes both families into the same attribute body
// back to back, so this encoder does the same rather than splitting
// them across two attribute types.
type ExtendedCommunitiesValue struct {
	Entries   []bgpelem.ExtendedCommunity
	V6Entries []bgpelem.IPv6ExtendedCommunity
}

func (ExtendedCommunitiesValue) isAttributeValue() {}

type LargeCommunitiesValue []bgpelem.LargeCommunity

func (LargeCommunitiesValue) isAttributeValue() {}

type OriginatorIDValue bgpelem.IPAddress

func (OriginatorIDValue) isAttributeValue() {}

type ClusterListValue []bgpelem.IPAddress

func (ClusterListValue) isAttributeValue() {}

// MPNextHop is the MP_REACH_NLRI next-hop, 0/4/16/32 bytes.
type MPNextHop struct {
	Global   *bgpelem.IPAddress
	LinkLocal *bgpelem.IPAddress // only set for the 32-byte v6+link-local form
}

type MPReachNLRIValue struct {
	AFI      uint16
	SAFI     uint8
	NextHop  *MPNextHop
	Prefixes []bgpelem.NetworkPrefix
}

func (MPReachNLRIValue) isAttributeValue() {}

type MPUnreachNLRIValue struct {
	AFI      uint16
	SAFI     uint8
	Prefixes []bgpelem.NetworkPrefix
}

func (MPUnreachNLRIValue) isAttributeValue() {}

// DevelopmentValue is the raw-passthrough fallback for unrecognized
// attribute types.
type DevelopmentValue []byte

func (DevelopmentValue) isAttributeValue() {}

// Mode selects which of the four boolean wire variations apply to this
// call site (spec §4.B "rationale for the four flags").
type Mode struct {
	AddPath      bool
	WriteAFI     bool
	WriteSAFI    bool
	WritePrefixes bool
}
