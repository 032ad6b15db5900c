package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	notePrefix      = "notrec"
	noteOwnerPrefix = "notown"
	userPrefix      = "usrrec"
	userEmailPrefix = "usreml"
	sessionPrefix   = "sesrec"
)

// makeNoteKey generates a key for a note by ID.
// Notes are keyed globally by ID so duplicate IDs are detected across owners.
func makeNoteKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", notePrefix, id))
}

// makeNoteOwnerKey generates a composite key for the per-owner recency index.
// Format: prefix:owner:timestamp:id
func makeNoteOwnerKey(owner string, createdAt time.Time, id string) []byte {
	prefix := makePartialNoteOwnerKey(owner)
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makePartialNoteOwnerKey generates the index prefix shared by all of an
// owner's notes.
func makePartialNoteOwnerKey(owner string) []byte {
	return []byte(noteOwnerPrefix + ":" + owner + ":")
}

// makeNoteOwnerSeekKey generates a key sorting after every index entry of
// the owner, for reverse iteration.
func makeNoteOwnerSeekKey(owner string) []byte {
	prefix := makePartialNoteOwnerKey(owner)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	for i := 0; i < 8; i++ {
		buf[offset+i] = 0xFF
	}
	return buf
}

// makeUserKey generates a key for a user by ID.
func makeUserKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", userPrefix, id))
}

// makeUserEmailKey generates a key for the email uniqueness index.
func makeUserEmailKey(email string) []byte {
	return []byte(fmt.Sprintf("%s:%s", userEmailPrefix, email))
}

// makeSessionKey generates a key for a session by token digest.
func makeSessionKey(digest string) []byte {
	return []byte(fmt.Sprintf("%s:%s", sessionPrefix, digest))
}
