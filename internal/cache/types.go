package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrItemTooLarge is returned when an item exceeds the cache capacity.
var ErrItemTooLarge = errors.New("item too large for cache")

// Stats holds cache counters.
type Stats struct {
	Capacity  int64 // Maximum capacity in bytes
	Size      int64 // Current size in bytes
	Items     int   // Number of items in cache
	Hits      int64
	Misses    int64
	Evictions int64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	if s.Hits+s.Misses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Hits+s.Misses)
}

// Key identifies one synthesized utterance. Volume is applied at playback
// and is not part of the key.
type Key struct {
	Engine string
	Voice  string
	Locale string
	Text   string
	Rate   float64
	Pitch  float64
}

// String returns a short stable hash of the key.
func (k Key) String() string {
	data := fmt.Sprintf("%s|%s|%s|%.2f|%.2f|%s", k.Engine, k.Voice, k.Locale, k.Rate, k.Pitch, k.Text)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:16])
}
