// Package mrt frames MRT records (RFC 6396 §2): the 12/16-byte common
// header followed by the payload produced by bgp4mp or tabledump2.
// Grounded on the teacher's internal/bmp package, which frames and
// unframes the analogous BMP common header in the opposite direction.
package mrt

import (
	"github.com/route-beacon/mrt-writer/internal/bgp4mp"
	"github.com/route-beacon/mrt-writer/internal/tabledump2"
)

// EntryType is the MRT record's top-level type (RFC 6396 §4).
type EntryType uint16

const (
	EntryTypeTableDump   EntryType = 12
	EntryTypeTableDumpV2 EntryType = 13
	EntryTypeBGP4MP      EntryType = 16
	EntryTypeBGP4MPET    EntryType = 17
)

// IsExtendedTimestamp reports whether this entry type carries a 4-byte
// microsecond_timestamp field inside the length count (the _ET family).
func (t EntryType) IsExtendedTimestamp() bool {
	return t == EntryTypeBGP4MPET
}

type CommonHeader struct {
	Timestamp            uint32
	EntryType            EntryType
	EntrySubtype         uint16
	MicrosecondTimestamp *uint32
}

// Record is a tagged union over the two supported MRT payload families.
// Exactly one of Bgp4Mp / TableDumpV2 is set; TableDump (v1) and
// RIB_GENERIC are known gaps (spec §1 non-goals) and have no field here.
type Record struct {
	Header      CommonHeader
	Bgp4Mp      bgp4mp.Message
	TableDumpV2 tabledump2.Message
}
