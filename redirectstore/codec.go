package redirectstore

import (
	"bytes"
	"encoding/gob"

	"github.com/NEOS-AI/stract-frontier/domain"
)

// record is the gob-encoded value stored for each redirect. Spec §6
// calls this tier "a conventional self-describing binary encoding,
// stable field order, no schema evolution required here" — encoding/gob
// is the stdlib's version of exactly that, and using it here (instead
// of the zero-copy msgp codecs domainstore/urlshardstore use) is the
// one deliberate standard-library choice in the serialization layer:
// redirects are a low-volume, WAL-less, reconstructable-from-recrawl
// side table, not the hot path those two codecs are tuned for.
type record struct {
	To string
}

func encode(to domain.UrlString) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(record{To: string(to)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (domain.UrlString, error) {
	var rec record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return "", err
	}
	return domain.UrlString(rec.To), nil
}
