package bolt8

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/malcolmseyd/bolt8-go/crypto"
)

// testResponder plays the other side of the handshake using only the crypto
// primitives, so the initiator is checked against an independent derivation.
type testResponder struct {
	ls, le *secp256k1.PrivateKey
	re, rs *secp256k1.PublicKey

	ck     crypto.Key
	tempK2 crypto.Key
	h      crypto.Transcript

	sk, rk crypto.Key
}

func newTestResponder(ls, le *secp256k1.PrivateKey) *testResponder {
	r := &testResponder{ls: ls, le: le}
	r.h.Initialize([]byte(ProtocolName))
	r.ck = crypto.Key(r.h.Bytes())
	r.h.Update([]byte(Prologue))
	r.h.Update(ls.PubKey().SerializeCompressed())
	return r
}

func (r *testResponder) readActOne(msg [ActOneSize]byte) error {
	if msg[0] != HandshakeVersion {
		return errors.New("bad version")
	}
	re, err := crypto.ParsePubkey(msg[1:34])
	if err != nil {
		return err
	}
	r.re = re
	r.h.Update(msg[1:34])

	es := crypto.ECDH(re, r.ls)
	var tempK1 crypto.Key
	r.ck, tempK1 = crypto.HKDF(r.ck, es[:])
	h := r.h.Bytes()
	if _, err := crypto.DecryptWithAd(tempK1, 0, h[:], msg[34:]); err != nil {
		return err
	}
	r.h.Update(msg[34:])
	return nil
}

func (r *testResponder) actTwo() (msg [ActTwoSize]byte, err error) {
	e := r.le.PubKey().SerializeCompressed()
	r.h.Update(e)

	ee := crypto.ECDH(r.re, r.le)
	r.ck, r.tempK2 = crypto.HKDF(r.ck, ee[:])
	h := r.h.Bytes()
	c, err := crypto.EncryptWithAd(r.tempK2, 0, h[:], nil)
	if err != nil {
		return msg, err
	}
	r.h.Update(c)

	copy(msg[1:], e)
	copy(msg[34:], c)
	return msg, nil
}

func (r *testResponder) readActThree(msg [ActThreeSize]byte) error {
	if msg[0] != HandshakeVersion {
		return errors.New("bad version")
	}
	c := msg[1:50]
	t := msg[50:]

	h := r.h.Bytes()
	rsBytes, err := crypto.DecryptWithAd(r.tempK2, 1, h[:], c)
	if err != nil {
		return err
	}
	r.h.Update(c)
	if r.rs, err = crypto.ParsePubkey(rsBytes); err != nil {
		return err
	}

	se := crypto.ECDH(r.rs, r.le)
	var tempK3 crypto.Key
	r.ck, tempK3 = crypto.HKDF(r.ck, se[:])
	h = r.h.Bytes()
	if _, err := crypto.DecryptWithAd(tempK3, 0, h[:], t); err != nil {
		return err
	}

	// the initiator sends with the first key
	r.rk, r.sk = crypto.HKDF(r.ck, nil)
	return nil
}

func (r *testResponder) communication() *Communication {
	return &Communication{sk: r.sk, rk: r.rk, sck: r.ck, rck: r.ck}
}
