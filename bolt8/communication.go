package bolt8

import (
	"encoding/binary"
	"io"

	"github.com/malcolmseyd/bolt8-go/crypto"
)

// Communication is an established session. Every message uses two nonces
// in its direction: one for the length prefix and one for the body.
//
// Any failure is sticky. Once a read or write fails the nonces can no longer
// be trusted to match the peer, so every later call returns the same error.
type Communication struct {
	sk, rk crypto.Key
	sn, rn uint64
	// chaining keys for key rotation, which isn't implemented
	sck, rck crypto.Key

	err error
}

// NewCommunication drops the act three message and keeps the session keys.
func NewCommunication(a3 *Act3) (*Communication, error) {
	if a3 == nil || a3.spent {
		return nil, ErrSpentState
	}
	defer a3.wipe()

	return &Communication{
		sk:  a3.sk,
		rk:  a3.rk,
		sn:  a3.sn,
		rn:  a3.rn,
		sck: a3.sck,
		rck: a3.rck,
	}, nil
}

// ReadMessage reads and decrypts one message from r.
func (c *Communication) ReadMessage(r io.Reader) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	p, err := c.readMessage(r)
	if err != nil {
		c.err = err
		return nil, err
	}
	return p, nil
}

func (c *Communication) readMessage(r io.Reader) ([]byte, error) {
	var lc [LengthHeaderSize]byte
	if _, err := io.ReadFull(r, lc[:]); err != nil {
		return nil, &IOError{Err: err}
	}
	l, err := crypto.DecryptWithAd(c.rk, c.rn, nil, lc[:])
	if err != nil {
		return nil, &CryptographyError{Err: err}
	}
	c.rn++
	if len(l) != 2 {
		return nil, &InvalidMessageLengthError{Want: 2, Got: len(l)}
	}

	body := make([]byte, int(binary.BigEndian.Uint16(l))+crypto.TagSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, &IOError{Err: err}
	}
	p, err := crypto.DecryptWithAd(c.rk, c.rn, nil, body)
	if err != nil {
		return nil, &CryptographyError{Err: err}
	}
	c.rn++
	return p, nil
}

// WriteMessage encrypts p and writes it to w as a single frame.
func (c *Communication) WriteMessage(w io.Writer, p []byte) error {
	if c.err != nil {
		return c.err
	}
	if len(p) > MaxMessageSize {
		return ErrMessageTooLarge
	}

	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(p)))
	lc, err := crypto.EncryptWithAd(c.sk, c.sn, nil, l[:])
	if err != nil {
		c.err = &CryptographyError{Err: err}
		return c.err
	}
	c.sn++

	body, err := crypto.EncryptWithAd(c.sk, c.sn, nil, p)
	if err != nil {
		c.err = &CryptographyError{Err: err}
		return c.err
	}
	c.sn++

	if _, err := w.Write(append(lc, body...)); err != nil {
		c.err = &IOError{Err: err}
		return c.err
	}
	return nil
}
