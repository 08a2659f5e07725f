package attr

import (
	"fmt"

	"github.com/route-beacon/mrt-writer/internal/bgpelem"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
	"github.com/route-beacon/mrt-writer/internal/wire"
)

// Encode writes flag(1) | type(1) | length(1 or 2) | value onto buf. mode
// governs NLRI/AFI/SAFI handling for MP_REACH_NLRI / MP_UNREACH_NLRI and
// add-path NLRI everywhere else.
func Encode(buf *wire.Buffer, a Attribute, mode Mode) error {
	var body wire.Buffer
	if err := encodeValue(&body, a.Type, a.Value, mode); err != nil {
		return err
	}

	extended := a.Flag&ExtendedLengthBit != 0
	if !extended && body.Len() > 255 {
		return mrterr.TooLarge(fmt.Sprintf("attribute type %d body %d bytes exceeds 1-byte length field without extended-length flag", a.Type, body.Len()))
	}

	wire.WriteU8(buf, a.Flag)
	wire.WriteU8(buf, uint8(a.Type))
	if extended {
		wire.WriteU16BE(buf, uint16(body.Len()))
	} else {
		wire.WriteU8(buf, uint8(body.Len()))
	}
	buf.Write(body.Bytes())
	return nil
}

func encodeValue(body *wire.Buffer, t AttrType, v Value, mode Mode) error {
	switch val := v.(type) {
	case OriginValue:
		wire.WriteU8(body, uint8(val))

	case ASPathValue:
		for _, seg := range val.Segments {
			if len(seg.ASNs) > 255 {
				return mrterr.Malformed(fmt.Sprintf("AS_PATH segment has %d ASNs, exceeds 255-ASN limit", len(seg.ASNs)))
			}
			wire.WriteU8(body, uint8(seg.Type))
			wire.WriteU8(body, uint8(len(seg.ASNs)))
			for _, asn := range seg.ASNs {
				wire.WriteASN(body, asn)
			}
		}

	case NextHopValue:
		addr := bgpelem.IPAddress(val)
		if len(addr.Bytes) != 4 && len(addr.Bytes) != 16 {
			return mrterr.Malformed(fmt.Sprintf("NEXT_HOP has unsupported length %d", len(addr.Bytes)))
		}
		wire.WriteIP(body, addr)

	case MultiExitDiscValue:
		wire.WriteU32BE(body, uint32(val))

	case LocalPrefValue:
		wire.WriteU32BE(body, uint32(val))

	case AtomicAggregateValue:
		// Zero-length value; presence alone signals AG.

	case AggregatorValue:
		if len(val.IP.Bytes) != 4 && len(val.IP.Bytes) != 16 {
			return mrterr.Malformed("AGGREGATOR has an ASN but no valid IP address")
		}
		wire.WriteASN(body, val.ASN)
		wire.WriteIP(body, val.IP)

	case CommunitiesValue:
		for _, c := range val {
			wire.WriteU32BE(body, uint32(c))
		}

	case ExtendedCommunitiesValue:
		for _, c := range val.Entries {
			wire.WriteU8(body, c.Type)
			wire.WriteU8(body, c.Subtype)
			body.Write(c.Value[:])
		}
		for _, c := range val.V6Entries {
			addr := c.GlobalAdmin.To16()
			if addr == nil {
				return mrterr.Malformed("IPv6 extended community global administrator is not a valid IPv6 address")
			}
			wire.WriteU8(body, c.Type)
			wire.WriteU8(body, c.Subtype)
			body.Write(addr)
			body.Write(c.LocalAdmin[:])
		}

	case LargeCommunitiesValue:
		for _, c := range val {
			wire.WriteU32BE(body, c.GlobalAdmin)
			wire.WriteU32BE(body, c.LocalData1)
			wire.WriteU32BE(body, c.LocalData2)
		}

	case OriginatorIDValue:
		wire.WriteIP(body, bgpelem.IPAddress(val))

	case ClusterListValue:
		for _, ip := range val {
			wire.WriteIP(body, ip)
		}

	case MPReachNLRIValue:
		if mode.WriteAFI {
			wire.WriteU16BE(body, val.AFI)
		}
		if mode.WriteSAFI {
			wire.WriteU8(body, val.SAFI)
		}
		if err := writeMPNextHop(body, val.NextHop); err != nil {
			return err
		}
		if mode.WritePrefixes {
			// reserved byte, RFC 4760 §3
			wire.WriteU8(body, 0)
			for _, p := range val.Prefixes {
				wire.WriteNLRI(body, p, mode.AddPath)
			}
		}

	case MPUnreachNLRIValue:
		if mode.WriteAFI {
			wire.WriteU16BE(body, val.AFI)
		}
		if mode.WriteSAFI {
			wire.WriteU8(body, val.SAFI)
		}
		if mode.WritePrefixes {
			for _, p := range val.Prefixes {
				wire.WriteNLRI(body, p, mode.AddPath)
			}
		}

	case DevelopmentValue:
		body.Write(val)

	default:
		return mrterr.Unsupported(fmt.Sprintf("attribute type %d has no known encoding", t))
	}
	return nil
}

func writeMPNextHop(body *wire.Buffer, nh *MPNextHop) error {
	if nh == nil {
		wire.WriteU8(body, 0)
		return nil
	}
	if nh.LinkLocal != nil {
		if nh.Global == nil {
			return mrterr.Malformed("MP_REACH_NLRI link-local next-hop requires a global next-hop")
		}
		wire.WriteU8(body, 32)
		wire.WriteIP(body, *nh.Global)
		wire.WriteIP(body, *nh.LinkLocal)
		return nil
	}
	if nh.Global == nil {
		wire.WriteU8(body, 0)
		return nil
	}
	switch len(nh.Global.Bytes) {
	case 4:
		wire.WriteU8(body, 4)
	case 16:
		wire.WriteU8(body, 16)
	default:
		return mrterr.Malformed(fmt.Sprintf("MP_REACH_NLRI next-hop has unsupported length %d", len(nh.Global.Bytes)))
	}
	wire.WriteIP(body, *nh.Global)
	return nil
}
