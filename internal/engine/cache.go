package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"completiond/pkg/types"
)

// newRecentCache builds the short-lived suggestion cache. An identical
// re-trigger (same file, cursor and typed prefix, same profile) inside the
// TTL reuses the sanitized suggestion instead of calling the backend again.
func newRecentCache(ttl time.Duration) *ttlcache.Cache[string, string] {
	c := ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](ttl),
		ttlcache.WithCapacity[string, string](256),
	)
	go c.Start()
	return c
}

// snapshotKey derives the cache key for a snapshot under a given profile.
// The suffix head is included so edits after the cursor invalidate the key.
func snapshotKey(snap types.DocumentSnapshot, profileID string) string {
	h := sha256.New()
	h.Write([]byte(profileID))
	h.Write([]byte{0})
	h.Write([]byte(snap.Path))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(snap.Cursor.Line)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(snap.Cursor.Col)))
	h.Write([]byte{0})
	h.Write([]byte(snap.LinePrefix()))
	h.Write([]byte{0})
	suffix := snap.Suffix
	if len(suffix) > 256 {
		suffix = suffix[:256]
	}
	h.Write([]byte(suffix))
	return hex.EncodeToString(h.Sum(nil))
}
