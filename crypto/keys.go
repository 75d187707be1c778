package crypto

import (
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// GenPrivkey reads 32 byte candidates from rand until one is a valid
// secp256k1 scalar.
func GenPrivkey(rand io.Reader) (*secp256k1.PrivateKey, error) {
	var buf [PrivkeySize]byte
	defer ZeroBytes(buf[:])

	for {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return nil, err
		}
		var k secp256k1.ModNScalar
		if overflow := k.SetBytes(&buf); overflow == 0 && !k.IsZero() {
			return secp256k1.NewPrivateKey(&k), nil
		}
	}
}

// ParsePrivkey decodes a 32 byte big endian scalar
func ParsePrivkey(b []byte) (*secp256k1.PrivateKey, error) {
	if len(b) != PrivkeySize {
		return nil, ErrKeysize
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(b); overflow || k.IsZero() {
		return nil, ErrPrivkey
	}
	return secp256k1.NewPrivateKey(&k), nil
}

// ParsePubkey decodes a 33 byte compressed public key. Uncompressed and
// hybrid encodings are rejected.
func ParsePubkey(b []byte) (*secp256k1.PublicKey, error) {
	if len(b) != PubkeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrPubkey, len(b))
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPubkey, err)
	}
	return pub, nil
}
