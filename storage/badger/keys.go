package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/keywordx/core"
)

// Key prefixes for different data types
const (
	documentPrefix     = "doc"
	documentDatePrefix = "docd"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeDocumentDateKey generates a composite key for the extraction date index.
// Format: prefix:timestamp:id
func makeDocumentDateKey(timestamp time.Time, id core.ID) []byte {
	buf := makePartialDocumentDateKey(timestamp)
	out := make([]byte, len(buf)+8)
	offset := copy(out, buf)
	binary.BigEndian.PutUint64(out[offset:], uint64(id))
	return out
}

// makePartialDocumentDateKey generates a partial key for date range scans.
// Format: prefix:timestamp
func makePartialDocumentDateKey(timestamp time.Time) []byte {
	prefixBytes := []byte(documentDatePrefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
