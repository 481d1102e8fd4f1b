package service

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"
)

// ShuffleQuestionIDs returns a deterministic pseudo-random permutation of
// ids for the given seed string. The seed is hashed with sha256 and the
// first 8 bytes drive a seeded generator, so the same (ids, seed) pair
// produces the same order on any machine at any time. The input slice is
// never mutated.
func ShuffleQuestionIDs(ids []uint, seed string) []uint {
	out := append([]uint(nil), ids...)
	if len(out) < 2 {
		return out
	}
	sum := sha256.Sum256([]byte(seed))
	r := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8]))))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// GenerateSeed produces a fresh random seed for a brand-new attempt. This
// is the only place the engine uses true randomness; everything downstream
// is derived deterministically from the stored seed.
func GenerateSeed() string {
	return uuid.NewString()
}
