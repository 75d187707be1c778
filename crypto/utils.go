package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// HKDF derives a new chaining key and a temporary key from the chaining key
// (used as salt) and the input key material. The info field is always empty.
func HKDF(salt Key, ikm []byte) (ck, k Key) {
	keyReader := hkdf.New(sha256.New, ikm, salt[:], nil)
	// 64 bytes is far below the 255*HashSize limit, reads can't fail
	_, _ = io.ReadFull(keyReader, ck[:])
	_, _ = io.ReadFull(keyReader, k[:])
	return
}

// ZeroBytes fills all slices passed in with zeros.
func ZeroBytes(keys ...[]byte) {
	for _, key := range keys {
		for i := range key {
			key[i] = 0
		}
	}
}

// nonce returns 4 zero bytes followed by the counter in little endian
func nonce(counter uint64) (n [nonceSize]byte) {
	binary.LittleEndian.PutUint64(n[4:], counter)
	return
}

// EncryptWithAd encrypts the plaintext with ChaCha20 and authenticates it
// together with ad using Poly1305. The result is ciphertext followed by the tag.
func EncryptWithAd(key Key, counter uint64, ad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncrypt, err)
	}
	n := nonce(counter)
	return aead.Seal(nil, n[:], plaintext, ad), nil
}

// DecryptWithAd verifies ciphertext and ad with Poly1305, then decrypts the ciphertext with ChaCha20.
func DecryptWithAd(key Key, counter uint64, ad, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	n := nonce(counter)
	plaintext, err := aead.Open(nil, n[:], ciphertext, ad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return plaintext, nil
}

// ECDH multiplies pub by priv and returns the SHA-256 hash of the
// compressed result.
func ECDH(pub *secp256k1.PublicKey, priv *secp256k1.PrivateKey) Key {
	var point, result secp256k1.JacobianPoint
	pub.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&priv.Key, &point, &result)
	result.ToAffine()

	shared := secp256k1.NewPublicKey(&result.X, &result.Y)
	return Key(sha256.Sum256(shared.SerializeCompressed()))
}
