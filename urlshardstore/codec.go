package urlshardstore

import (
	"fmt"
	"sort"

	"github.com/tinylib/msgp/msgp"

	"github.com/NEOS-AI/stract-frontier/domain"
)

// encodeShard/decodeShard give Shard a hand-rolled msgp codec, the same
// style domainstore.encode/decode use: a length-prefixed run of
// (url, weight, status, failed_code) records. Keys are written in
// sorted order so the encoded form is stable regardless of Go's
// randomized map iteration — spec §6 calls for an endian-fixed layout,
// which a map-order-dependent encoding would violate.
//
//go:generate msgp -io=false -tests=false

func encodeShard(sh Shard) ([]byte, error) {
	urls := make([]domain.UrlString, 0, len(sh))
	for u := range sh {
		urls = append(urls, u)
	}
	sort.Slice(urls, func(i, j int) bool { return urls[i] < urls[j] })

	b := msgp.AppendUint32(nil, uint32(len(urls)))
	for _, u := range urls {
		st := sh[u]
		b = msgp.AppendString(b, string(u))
		b = msgp.AppendFloat64(b, st.Weight)
		b = msgp.AppendUint8(b, uint8(st.Status))
		b = msgp.AppendInt(b, st.FailedCode)
	}
	return b, nil
}

func decodeShard(raw []byte) (Shard, error) {
	n, rest, err := msgp.ReadUint32Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("urlshardstore: decode count: %w", err)
	}
	if n > URLSPerShard*2 {
		// InsertUrls rolls over before a shard passes URLSPerShard, and
		// only InsertSeedUrls writes shard 0 without that check; a count
		// over twice the bound is taken as a corrupt length prefix.
		return nil, fmt.Errorf("urlshardstore: implausible record count %d", n)
	}

	sh := make(Shard, n)
	for i := uint32(0); i < n; i++ {
		var u string
		var weight float64
		var statusByte uint8
		var failedCode int

		u, rest, err = msgp.ReadStringBytes(rest)
		if err != nil {
			return nil, fmt.Errorf("urlshardstore: decode url %d: %w", i, err)
		}
		weight, rest, err = msgp.ReadFloat64Bytes(rest)
		if err != nil {
			return nil, fmt.Errorf("urlshardstore: decode weight %d: %w", i, err)
		}
		statusByte, rest, err = msgp.ReadUint8Bytes(rest)
		if err != nil {
			return nil, fmt.Errorf("urlshardstore: decode status %d: %w", i, err)
		}
		if statusByte > uint8(Failed) {
			return nil, fmt.Errorf("urlshardstore: invalid status tag %d at record %d", statusByte, i)
		}
		failedCode, rest, err = msgp.ReadIntBytes(rest)
		if err != nil {
			return nil, fmt.Errorf("urlshardstore: decode failed_code %d: %w", i, err)
		}

		sh[domain.UrlString(u)] = UrlState{Weight: weight, Status: UrlStatus(statusByte), FailedCode: failedCode}
	}

	if len(rest) != 0 {
		return nil, fmt.Errorf("urlshardstore: %d trailing bytes after shard", len(rest))
	}
	return sh, nil
}
