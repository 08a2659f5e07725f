// Package compose reconstructs MRT records from flattened BgpElem
// streams, the inverse of what a parser's iterator produces. Grounded on
// original_source/src/mrt_compose/{composer.rs,updates_composer.rs,rib_composer.rs}.
package compose

import (
	"github.com/route-beacon/mrt-writer/internal/attr"
	"github.com/route-beacon/mrt-writer/internal/bgpelem"
)

// elemToAttributes maps one BgpElem onto the BGP path attribute list
// composers embed in UPDATE bodies and RIB entries, in the fixed order
// original_source/src/mrt_compose/composer.rs builds them: NEXT_HOP,
// communities (std/extended/large, only when non-empty), AGGREGATOR
// (requires both ASN and IP), AS4_PATH, ATOMIC_AGGREGATE (only when AG;
// NAG never appears on the wire), MULTI_EXIT_DISC, ORIGIN. LOCAL_PREF is
// never emitted here, matching the source composer.
func elemToAttributes(elem bgpelem.BgpElem) []attr.Attribute {
	var attrs []attr.Attribute

	if elem.NextHop != nil {
		attrs = append(attrs, attr.Attribute{
			Flag:  attr.TransitiveFlag,
			Type:  attr.TypeNextHop,
			Value: attr.NextHopValue(*elem.NextHop),
		})
	}

	if len(elem.CommunitiesStd) > 0 {
		attrs = append(attrs, attr.Attribute{
			Flag:  attr.TransitiveFlag,
			Type:  attr.TypeCommunities,
			Value: attr.CommunitiesValue(elem.CommunitiesStd),
		})
	}
	if len(elem.CommunitiesExt) > 0 || len(elem.CommunitiesExtV6) > 0 {
		attrs = append(attrs, attr.Attribute{
			Flag: attr.TransitiveFlag,
			Type: attr.TypeExtendedCommunities,
			Value: attr.ExtendedCommunitiesValue{
				Entries:   elem.CommunitiesExt,
				V6Entries: elem.CommunitiesExtV6,
			},
		})
	}
	if len(elem.CommunitiesLarge) > 0 {
		attrs = append(attrs, attr.Attribute{
			Flag:  attr.TransitiveFlag,
			Type:  attr.TypeLargeCommunities,
			Value: attr.LargeCommunitiesValue(elem.CommunitiesLarge),
		})
	}

	if elem.AggrASN != nil && elem.AggrIP != nil {
		attrs = append(attrs, attr.Attribute{
			Flag: attr.TransitiveFlag,
			Type: attr.TypeAggregator,
			Value: attr.AggregatorValue{
				ASN: *elem.AggrASN,
				IP:  *elem.AggrIP,
			},
		})
	}

	if elem.ASPath != nil {
		attrs = append(attrs, attr.Attribute{
			Flag:  attr.TransitiveFlag,
			Type:  attr.TypeAS4Path,
			Value: attr.ASPathValue(*elem.ASPath),
		})
	}

	if elem.Atomic != nil && *elem.Atomic == bgpelem.AG {
		attrs = append(attrs, attr.Attribute{
			Flag:  attr.TransitiveFlag,
			Type:  attr.TypeAtomicAggregate,
			Value: attr.AtomicAggregateValue{},
		})
	}

	if elem.MED != nil {
		attrs = append(attrs, attr.Attribute{
			Flag:  attr.TransitiveFlag,
			Type:  attr.TypeMultiExitDisc,
			Value: attr.MultiExitDiscValue(*elem.MED),
		})
	}

	if elem.Origin != nil {
		attrs = append(attrs, attr.Attribute{
			Flag:  attr.TransitiveFlag,
			Type:  attr.TypeOrigin,
			Value: attr.OriginValue(*elem.Origin),
		})
	}

	return attrs
}
