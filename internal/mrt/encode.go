package mrt

import (
	"fmt"

	"github.com/route-beacon/mrt-writer/internal/bgp4mp"
	"github.com/route-beacon/mrt-writer/internal/mrterr"
	"github.com/route-beacon/mrt-writer/internal/tabledump2"
	"github.com/route-beacon/mrt-writer/internal/wire"
)

// Encode serializes one MRT record: the payload is built first so its
// length is known, then the common header is prepended (spec §4.F,
// grounded on original_source/src/mrt_dump/mrt.rs's mirror-image reader).
func Encode(r Record) ([]byte, error) {
	var payload wire.Buffer

	switch {
	case r.Bgp4Mp != nil:
		if err := bgp4mp.Encode(&payload, r.Bgp4Mp); err != nil {
			return nil, err
		}
	case r.TableDumpV2 != nil:
		if err := tabledump2.Encode(&payload, r.TableDumpV2); err != nil {
			return nil, err
		}
	default:
		return nil, mrterr.Unsupported("mrt record carries no payload")
	}

	length := payload.Len()
	if r.Header.EntryType.IsExtendedTimestamp() {
		length += 4
	}
	if length > 0xFFFFFFFF {
		return nil, mrterr.TooLarge(fmt.Sprintf("mrt record payload length %d overflows u32", length))
	}

	var out wire.Buffer
	wire.WriteU32BE(&out, r.Header.Timestamp)
	wire.WriteU16BE(&out, uint16(r.Header.EntryType))
	wire.WriteU16BE(&out, r.Header.EntrySubtype)
	wire.WriteU32BE(&out, uint32(length))
	if r.Header.EntryType.IsExtendedTimestamp() {
		var us uint32
		if r.Header.MicrosecondTimestamp != nil {
			us = *r.Header.MicrosecondTimestamp
		}
		wire.WriteU32BE(&out, us)
	}
	out.Write(payload.Bytes())

	return out.Bytes(), nil
}
