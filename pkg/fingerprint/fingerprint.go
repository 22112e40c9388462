package fingerprint

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/spaolacci/murmur3"
)

// Digest accumulates named parts into a fingerprint.
type Digest struct {
	h murmur3.Hash128
}

// New creates an empty digest.
func New() *Digest {
	return &Digest{h: murmur3.New128()}
}

// Add mixes one named part into the digest. Name and content are
// length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func (d *Digest) Add(name string, data []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(name)))
	d.h.Write(n[:])
	d.h.Write([]byte(name))
	binary.BigEndian.PutUint64(n[:], uint64(len(data)))
	d.h.Write(n[:])
	d.h.Write(data)
}

// Sum returns the hex-encoded fingerprint.
func (d *Digest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// Short returns the first 12 characters of a fingerprint for display.
func Short(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12]
}
