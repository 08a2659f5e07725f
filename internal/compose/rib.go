package compose

import (
	"fmt"
	"net"
	"sort"

	"github.com/route-beacon/mrt-writer/internal/bgpelem"
	"github.com/route-beacon/mrt-writer/internal/mrt"
	"github.com/route-beacon/mrt-writer/internal/tabledump2"
)

// RibComposer accumulates BgpElem announcements into a single RIB
// snapshot: one PEER_INDEX_TABLE record plus one RIB_AFI_ENTRIES record
// per distinct prefix. Grounded on
// original_source/src/mrt_compose/rib_composer.rs.
//
// Timestamp pinning: the snapshot's CommonHeader.timestamp is taken from
// the first element added and reused for every record in that export,
// matching the source composer's ts_sec field; this is a per-snapshot
// timestamp, not a per-entry one (documented in DESIGN.md, Open Question 3).
type RibComposer struct {
	tsSet bool
	tsSec uint32

	peerOrder []string
	peerIndex map[string]int
	peers     []bgpelem.Peer

	prefixOrder []string
	prefixByKey map[string]bgpelem.NetworkPrefix
	entries     map[string][]tabledump2.RibEntry

	cache []mrt.Record
}

func NewRibComposer() *RibComposer {
	return &RibComposer{
		peerIndex:   make(map[string]int),
		prefixByKey: make(map[string]bgpelem.NetworkPrefix),
		entries:     make(map[string][]tabledump2.RibEntry),
	}
}

// AddElem appends one BgpElem as a RIB entry under its prefix, assigning
// the peer a dense index the first time its address is seen. Invalidates
// any previously exported byte cache.
func (c *RibComposer) AddElem(elem bgpelem.BgpElem) error {
	c.cache = nil

	if !c.tsSet {
		c.tsSec = uint32(elem.Timestamp)
		c.tsSet = true
	}

	peerKey := elem.PeerIP.String()
	pid, ok := c.peerIndex[peerKey]
	if !ok {
		pid = len(c.peerOrder)
		c.peerIndex[peerKey] = pid
		c.peerOrder = append(c.peerOrder, peerKey)

		peerType := uint8(2)
		if elem.PeerIP.V6 {
			peerType = 3
		}
		c.peers = append(c.peers, bgpelem.Peer{
			PeerType: peerType,
			BGPID:    net.IPv4zero,
			Address:  elem.PeerIP,
			ASN:      elem.PeerASN,
		})
	}

	prefixKey := prefixCacheKey(elem.Prefix)
	if _, ok := c.prefixByKey[prefixKey]; !ok {
		c.prefixByKey[prefixKey] = elem.Prefix
		c.prefixOrder = append(c.prefixOrder, prefixKey)
	}

	c.entries[prefixKey] = append(c.entries[prefixKey], tabledump2.RibEntry{
		PeerIndex:      uint16(pid),
		OriginatedTime: 0,
		PathID:         elem.Prefix.PathID,
		Attributes:     elemToAttributes(elem),
	})
	return nil
}

// AddElems appends each element in order; it stops at the first error.
func (c *RibComposer) AddElems(elems []bgpelem.BgpElem) error {
	for _, e := range elems {
		if err := c.AddElem(e); err != nil {
			return err
		}
	}
	return nil
}

// RecordCount reports how many MRT records (one PEER_INDEX_TABLE plus
// one RIB_AFI_ENTRIES per distinct prefix; none for an empty composer)
// the next ExportBytes call will encode.
func (c *RibComposer) RecordCount() int {
	if len(c.peers) == 0 {
		return 0
	}
	return 1 + len(c.prefixOrder)
}

// PeerCount reports the number of distinct peers seen so far, the same
// count ExportBytes bakes into the PEER_INDEX_TABLE record.
func (c *RibComposer) PeerCount() int {
	return len(c.peers)
}

// ExportBytes builds (or reuses the cached) PEER_INDEX_TABLE record
// followed by one RIB_AFI_ENTRIES record per prefix, in ascending prefix
// order, and concatenates their encodings. A composer with no elements
// exports zero bytes.
func (c *RibComposer) ExportBytes() ([]byte, error) {
	if len(c.peers) == 0 {
		return nil, nil
	}
	if c.cache == nil {
		c.cache = c.buildRecords()
	}

	var out []byte
	for _, r := range c.cache {
		b, err := mrt.Encode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (c *RibComposer) buildRecords() []mrt.Record {
	records := make([]mrt.Record, 0, 1+len(c.prefixOrder))

	records = append(records, mrt.Record{
		Header: mrt.CommonHeader{
			Timestamp:    c.tsSec,
			EntryType:    mrt.EntryTypeTableDumpV2,
			EntrySubtype: uint16(tabledump2.SubtypePeerIndexTable),
		},
		TableDumpV2: tabledump2.PeerIndexTable{
			CollectorBGPID: net.IPv4zero,
			Peers:          c.peers,
		},
	})

	sortedPrefixes := append([]string(nil), c.prefixOrder...)
	sort.Slice(sortedPrefixes, func(i, j int) bool {
		return prefixLess(c.prefixByKey[sortedPrefixes[i]], c.prefixByKey[sortedPrefixes[j]])
	})

	for _, key := range sortedPrefixes {
		prefix := c.prefixByKey[key]
		subtype := tabledump2.SubtypeRibIPv4Unicast
		if prefix.V6 {
			subtype = tabledump2.SubtypeRibIPv6Unicast
		}

		records = append(records, mrt.Record{
			Header: mrt.CommonHeader{
				Timestamp:    c.tsSec,
				EntryType:    mrt.EntryTypeTableDumpV2,
				EntrySubtype: uint16(subtype),
			},
			TableDumpV2: tabledump2.RibAfiEntries{
				Subtype:        subtype,
				SequenceNumber: 0,
				Prefix:         prefix,
				Entries:        c.entries[key],
			},
		})
	}

	return records
}

func prefixCacheKey(p bgpelem.NetworkPrefix) string {
	ip := p.IP
	if p.V6 {
		ip = ip.To16()
	} else {
		ip = ip.To4()
	}
	return fmt.Sprintf("%s/%d", string(ip), p.PrefixLen)
}

func prefixLess(a, b bgpelem.NetworkPrefix) bool {
	aIP, bIP := a.IP, b.IP
	if a.V6 {
		aIP = aIP.To16()
	} else {
		aIP = aIP.To4()
	}
	if b.V6 {
		bIP = bIP.To16()
	} else {
		bIP = bIP.To4()
	}
	if c := compareBytes(aIP, bIP); c != 0 {
		return c < 0
	}
	return a.PrefixLen < b.PrefixLen
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
