package auth

import (
	"crypto/rand"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/flynn/noise"
	"github.com/malcolmseyd/bolt8-go/bolt8"
	"github.com/malcolmseyd/bolt8-go/crypto"
)

// DHSecp256k1 is the secp256k1 DH function from BOLT-8. Public keys are
// compressed and the shared secret is the hash of the compressed product.
var DHSecp256k1 noise.DHFunc = dhSecp256k1{}

var noiseConfig = noise.Config{
	CipherSuite: noise.NewCipherSuite(DHSecp256k1, noise.CipherChaChaPoly, noise.HashSHA256),
	Random:      rand.Reader,
	Pattern:     noise.HandshakeXK,
	Initiator:   false,
	Prologue:    []byte(bolt8.Prologue),
}

type dhSecp256k1 struct{}

func (dhSecp256k1) GenerateKeypair(random io.Reader) (noise.DHKey, error) {
	priv, err := crypto.GenPrivkey(random)
	if err != nil {
		return noise.DHKey{}, err
	}
	return noise.DHKey{
		Private: priv.Serialize(),
		Public:  priv.PubKey().SerializeCompressed(),
	}, nil
}

func (dhSecp256k1) DH(privkey, pubkey []byte) ([]byte, error) {
	priv, err := crypto.ParsePrivkey(privkey)
	if err != nil {
		return nil, err
	}
	pub, err := crypto.ParsePubkey(pubkey)
	if err != nil {
		return nil, err
	}
	ss := crypto.ECDH(pub, priv)
	return ss[:], nil
}

func (dhSecp256k1) DHLen() int     { return crypto.PubkeySize }
func (dhSecp256k1) DHName() string { return "secp256k1" }

// CipherState is an alternate implementation of noise.CipherState
// that allows manual control over the nonce
type CipherState struct {
	c noise.Cipher
	n uint64
}

// NewCipherState initializes a new CipherState
func NewCipherState(c noise.Cipher) *CipherState {
	return &CipherState{c: c}
}

// Encrypt is the same as noise.CipherState
func (s *CipherState) Encrypt(out, ad, plaintext []byte) []byte {
	out = s.c.Encrypt(out, s.n, ad, plaintext)
	s.n++
	return out
}

// Decrypt is the same as noise.CipherState
func (s *CipherState) Decrypt(out, ad, ciphertext []byte) ([]byte, error) {
	out, err := s.c.Decrypt(out, s.n, ad, ciphertext)
	s.n++
	return out, err
}

// Nonce returns the nonce value inside CipherState
func (s *CipherState) Nonce() uint64 {
	return s.n
}

// NewConfig initializes a responder noise.Config for the static key priv.
// Ephemeral keys are drawn from random, crypto/rand when nil.
func NewConfig(priv *secp256k1.PrivateKey, random io.Reader) noise.Config {
	config := noiseConfig
	if random != nil {
		config.Random = random
	}
	config.StaticKeypair = noise.DHKey{
		Private: priv.Serialize(),
		Public:  priv.PubKey().SerializeCompressed(),
	}
	return config
}
