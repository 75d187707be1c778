package network

import (
	"crypto/rand"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/malcolmseyd/bolt8-go/crypto"
)

// Client stores the local node's identity
type Client struct {
	Privkey *secp256k1.PrivateKey
	// Rand is the source of ephemeral keys
	Rand io.Reader
}

// NewClient creates a Client with the static key privkey. A nil privkey is
// replaced by a fresh random key.
func NewClient(privkey *secp256k1.PrivateKey) (Client, error) {
	if privkey == nil {
		var err error
		privkey, err = crypto.GenPrivkey(rand.Reader)
		if err != nil {
			return Client{}, err
		}
	}
	return Client{Privkey: privkey, Rand: rand.Reader}, nil
}
