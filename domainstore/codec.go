package domainstore

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// encode/decode give State a hand-rolled msgp codec: a fixed three-field
// record (weight, status, max_shard_id) rather than a generated
// map-keyed message, because this is the hottest path in the store and
// the field set never evolves independently of this package. The msgp
// runtime helpers (msgp.AppendFloat64 et al.) are the same ones `msgp
// -file` generates into MarshalMsg/UnmarshalMsg pairs; spec §4.2 calls
// for "a zero-copy binary format with a validation step on read", which
// is exactly what decode below performs before returning a State.
//
//go:generate msgp -io=false -tests=false

func encode(st State) ([]byte, error) {
	b := make([]byte, 0, 24)
	b = msgp.AppendFloat64(b, st.Weight)
	b = msgp.AppendUint8(b, uint8(st.Status))
	b = msgp.AppendUint64(b, st.MaxShardID)
	return b, nil
}

func decode(raw []byte) (State, error) {
	weight, rest, err := msgp.ReadFloat64Bytes(raw)
	if err != nil {
		return State{}, fmt.Errorf("domainstore: decode weight: %w", err)
	}
	statusByte, rest, err := msgp.ReadUint8Bytes(rest)
	if err != nil {
		return State{}, fmt.Errorf("domainstore: decode status: %w", err)
	}
	if statusByte != uint8(Pending) && statusByte != uint8(CrawlInProgress) {
		return State{}, fmt.Errorf("domainstore: invalid status tag %d", statusByte)
	}
	maxShardID, rest, err := msgp.ReadUint64Bytes(rest)
	if err != nil {
		return State{}, fmt.Errorf("domainstore: decode max_shard_id: %w", err)
	}
	if len(rest) != 0 {
		return State{}, fmt.Errorf("domainstore: %d trailing bytes after record", len(rest))
	}
	return State{Weight: weight, Status: Status(statusByte), MaxShardID: maxShardID}, nil
}
