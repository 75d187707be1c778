package crypto

import (
	"crypto/sha256"
)

// Transcript is the rolling handshake hash. The zero value reads as
// HashSize zero bytes.
type Transcript struct {
	h [HashSize]byte
}

// Initialize replaces the state with the hash of the protocol name.
func (t *Transcript) Initialize(protocolName []byte) {
	t.h = sha256.Sum256(protocolName)
}

// Update sets the state to SHA256(state || data)
func (t *Transcript) Update(data []byte) {
	h := sha256.New()
	// hash.Hash.Write never returns an error
	_, _ = h.Write(t.h[:])
	_, _ = h.Write(data)
	h.Sum(t.h[:0])
}

// Bytes returns a copy of the current state.
func (t *Transcript) Bytes() [HashSize]byte {
	return t.h
}

// Reset wipes the state back to zeros
func (t *Transcript) Reset() {
	ZeroBytes(t.h[:])
}
