package badger

import (
	"encoding/binary"
	"time"

	"github.com/poiesic/radiolex/core"
)

// Key prefixes for different data types
const (
	messagePrefix            = "msg:"
	messageDatePrefix        = "msgd:"
	messageFingerprintPrefix = "msgf:"
	messageIDSeq             = "msgseq"
	checkpointPrefix         = "chkpt:"
)

// makeMessageKey generates a key for a message by ID.
// IDs are written BigEndian so key order is arrival order.
func makeMessageKey(id core.ID) []byte {
	buf := make([]byte, len(messagePrefix)+8)
	offset := copy(buf, messagePrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// messageIDFromKey extracts the ID from a primary message key.
func messageIDFromKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(messagePrefix):]))
}

// makeMessageDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeMessageDateKey(timestamp time.Time, id core.ID) []byte {
	buf := make([]byte, len(messageDatePrefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, messageDatePrefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialMessageDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialMessageDateKey(timestamp time.Time) []byte {
	buf := make([]byte, len(messageDatePrefix)+8)
	offset := copy(buf, messageDatePrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// dateKeyMicros extracts the timestamp from a date index key.
func dateKeyMicros(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key[len(messageDatePrefix):]))
}

// makeFingerprintKey generates the dedupe index key for a message fingerprint.
func makeFingerprintKey(fp core.ID) []byte {
	buf := make([]byte, len(messageFingerprintPrefix)+8)
	offset := copy(buf, messageFingerprintPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fp))
	return buf
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(checkpointPrefix + processorType)
}
