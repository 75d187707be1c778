package crypto

import (
	"crypto/sha256"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the size of chaining keys, AEAD keys and ECDH outputs
	KeySize = chacha20poly1305.KeySize
	// HashSize is the size of the handshake hash
	HashSize = sha256.Size
	// TagSize is the size of a Poly1305 authentication tag
	TagSize = chacha20poly1305.Overhead
	// PubkeySize is the size of a compressed secp256k1 public key
	PubkeySize = secp256k1.PubKeyBytesLenCompressed
	// PrivkeySize is the size of a serialized secp256k1 private key
	PrivkeySize = secp256k1.PrivKeyBytesLen

	nonceSize = chacha20poly1305.NonceSize
)

var (
	// ErrDecrypt represents all decryption errors
	ErrDecrypt = errors.New("bolt8/crypto: decryption error")
	// ErrEncrypt represents all encryption errors
	ErrEncrypt = errors.New("bolt8/crypto: encryption error")
	// ErrKeysize occurs on an invalid key size
	ErrKeysize = errors.New("bolt8/crypto: key size should be 32")
	// ErrPubkey occurs when bytes don't decode to a compressed curve point
	ErrPubkey = errors.New("bolt8/crypto: invalid compressed public key")
	// ErrPrivkey occurs when a scalar is zero or not below the curve order
	ErrPrivkey = errors.New("bolt8/crypto: private key out of range")
)

// Key stores a 32 byte symmetric key or chaining key
type Key [KeySize]byte
