// Package bgpelem holds the flattened BGP route data model shared by the
// attribute, message, and record encoders and by the two composers. It
// mirrors the parser's own output types so that a BgpElem produced by
// parsing an MRT archive can be fed straight back into a composer.
package bgpelem

import "net"

// Asn is an autonomous system number tagged with its wire width.
type Asn struct {
	Value   uint32
	Is32Bit bool
}

func Asn16(v uint16) Asn { return Asn{Value: uint32(v)} }
func Asn32(v uint32) Asn { return Asn{Value: v, Is32Bit: true} }

// IPAddress is a tagged v4/v6 address. Bytes is always 4 or 16 long.
type IPAddress struct {
	Bytes []byte
	V6    bool
}

func IPv4(ip net.IP) IPAddress {
	v4 := ip.To4()
	return IPAddress{Bytes: append([]byte(nil), v4...), V6: false}
}

func IPv6(ip net.IP) IPAddress {
	v6 := ip.To16()
	return IPAddress{Bytes: append([]byte(nil), v6...), V6: true}
}

func ZeroAddress(v6 bool) IPAddress {
	if v6 {
		return IPAddress{Bytes: make([]byte, 16), V6: true}
	}
	return IPAddress{Bytes: make([]byte, 4), V6: false}
}

func (a IPAddress) String() string {
	return net.IP(a.Bytes).String()
}

func (a IPAddress) Len() int {
	if a.V6 {
		return 16
	}
	return 4
}

// NetworkPrefix is an (network address, prefix length, path-id) triple.
type NetworkPrefix struct {
	IP        net.IP
	PrefixLen uint8
	PathID    uint32
	V6        bool
}

func (p NetworkPrefix) ByteLen() int {
	return (int(p.PrefixLen) + 7) / 8
}

// ElemType distinguishes an announcement from a withdrawal.
type ElemType int

const (
	Announce ElemType = iota
	Withdraw
)

// Origin is the well-known ORIGIN path attribute value.
type Origin uint8

const (
	OriginIGP        Origin = 0
	OriginEGP        Origin = 1
	OriginIncomplete Origin = 2
)

// AtomicAggregate distinguishes presence (AG) from absence (NAG) of the
// ATOMIC_AGGREGATE attribute. NAG must never be emitted on the wire.
type AtomicAggregate uint8

const (
	NAG AtomicAggregate = iota
	AG
)

// ASPathSegmentType enumerates the RFC 4271/5065 segment kinds.
type ASPathSegmentType uint8

const (
	ASPathSegmentSet           ASPathSegmentType = 1
	ASPathSegmentSequence      ASPathSegmentType = 2
	ASPathSegmentConfedSeq     ASPathSegmentType = 3
	ASPathSegmentConfedSet     ASPathSegmentType = 4
)

type ASPathSegment struct {
	Type ASPathSegmentType
	ASNs []Asn
}

type ASPath struct {
	Segments []ASPathSegment
}

// Community is a raw 4-byte standard community value.
type Community uint32

const (
	CommunityNoExport           Community = 0xFFFFFF01
	CommunityNoAdvertise        Community = 0xFFFFFF02
	CommunityNoExportSubConfed  Community = 0xFFFFFF03
)

// NewCommunity packs a custom (asn, value) pair into the 4-byte wire form.
func NewCommunity(asn, value uint16) Community {
	return Community(uint32(asn)<<16 | uint32(value))
}

// ExtendedCommunity is the generic 8-byte TLV: 2 type/subtype bytes plus a
// 6-byte value whose internal structure varies by type (two/four-octet-AS
// specific, IPv4-address-specific, opaque, raw passthrough). The
// IPv6-address-specific form doesn't fit this 8-byte shape; it has its
// own type below.
type ExtendedCommunity struct {
	Type    byte
	Subtype byte
	Value   [6]byte
}

// IPv6ExtendedCommunity is the RFC 5701 IPv6-address-specific extended
// community: 2 type/subtype bytes, a 16-byte IPv6 global administrator,
// and a 2-byte local administrator (20 bytes total on the wire).
type IPv6ExtendedCommunity struct {
	Type        byte
	Subtype     byte
	GlobalAdmin net.IP // always 16 bytes
	LocalAdmin  [2]byte
}

// LargeCommunity is the RFC 8092 12-byte tuple.
type LargeCommunity struct {
	GlobalAdmin uint32
	LocalData1  uint32
	LocalData2  uint32
}

// Peer is a deduplicated RIB composer peer entry.
type Peer struct {
	PeerType  uint8
	BGPID     net.IP // IPv4 address, written as 4 bytes
	Address   IPAddress
	ASN       Asn
}

// BgpElem is the flattened per-(prefix, peer) announcement/withdrawal the
// composers consume, matching the parser's BgpElem output type.
type BgpElem struct {
	Timestamp float64
	ElemType  ElemType
	PeerIP    IPAddress
	PeerASN   Asn
	Prefix    NetworkPrefix

	NextHop   *IPAddress
	ASPath    *ASPath
	Origin    *Origin
	LocalPref *uint32
	MED       *uint32

	CommunitiesStd   []Community
	CommunitiesExt   []ExtendedCommunity
	CommunitiesExtV6 []IPv6ExtendedCommunity
	CommunitiesLarge []LargeCommunity

	Atomic  *AtomicAggregate
	AggrASN *Asn
	AggrIP  *IPAddress
}
