package bolt8

import (
	"encoding/hex"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/malcolmseyd/bolt8-go/crypto"
)

// Every constructor below takes ownership of the previous phase. The old
// value is wiped and marked spent whether or not the transition succeeds,
// a failed handshake has to restart from NewAct0.

// Act0 is the initial handshake state, before any message is sent.
type Act0 struct {
	rs    *secp256k1.PublicKey
	ck    crypto.Key
	h     crypto.Transcript
	spent bool
}

// NewAct0 starts a handshake with the responder whose static key is rs.
func NewAct0(rs *secp256k1.PublicKey) *Act0 {
	a := &Act0{rs: rs}
	a.h.Initialize([]byte(ProtocolName))
	a.ck = crypto.Key(a.h.Bytes())
	a.h.Update([]byte(Prologue))
	a.h.Update(rs.SerializeCompressed())
	return a
}

func (a *Act0) wipe() {
	crypto.ZeroBytes(a.ck[:])
	a.h.Reset()
	a.rs = nil
	a.spent = true
}

// Act1 holds the state after the first message has been built.
type Act1 struct {
	ls    *secp256k1.PrivateKey
	le    *secp256k1.PrivateKey
	ck    crypto.Key
	c     [crypto.TagSize]byte
	h     crypto.Transcript
	spent bool
}

// NewAct1 generates an ephemeral key from rand and performs act one.
func NewAct1(a0 *Act0, ls *secp256k1.PrivateKey, rand io.Reader) (*Act1, error) {
	if a0 == nil || a0.spent {
		return nil, ErrSpentState
	}
	le, err := crypto.GenPrivkey(rand)
	if err != nil {
		a0.wipe()
		return nil, &IOError{Err: err}
	}
	return NewAct1WithEphemeral(a0, ls, le)
}

// NewAct1WithEphemeral performs act one with a caller supplied ephemeral key.
// The handshake owns le from here on and zeroes it once act two is done;
// ls stays owned by the caller.
func NewAct1WithEphemeral(a0 *Act0, ls, le *secp256k1.PrivateKey) (*Act1, error) {
	if a0 == nil || a0.spent {
		return nil, ErrSpentState
	}
	defer a0.wipe()

	a := &Act1{ls: ls, le: le, h: a0.h}
	a.h.Update(le.PubKey().SerializeCompressed())

	es := crypto.ECDH(a0.rs, le)
	ck, tempK1 := crypto.HKDF(a0.ck, es[:])
	defer crypto.ZeroBytes(es[:], tempK1[:])
	a.ck = ck

	h := a.h.Bytes()
	c, err := crypto.EncryptWithAd(tempK1, 0, h[:], nil)
	if err != nil {
		a.wipe()
		return nil, &CryptographyError{Err: err}
	}
	copy(a.c[:], c)
	a.h.Update(c)
	return a, nil
}

// Message returns the 50 byte act one message.
func (a *Act1) Message() (msg [ActOneSize]byte, err error) {
	if a.spent {
		return msg, ErrSpentState
	}
	msg[0] = HandshakeVersion
	copy(msg[1:], a.le.PubKey().SerializeCompressed())
	copy(msg[1+crypto.PubkeySize:], a.c[:])
	return msg, nil
}

func (a *Act1) wipe() {
	if a.le != nil {
		a.le.Zero()
	}
	crypto.ZeroBytes(a.ck[:])
	a.h.Reset()
	a.ls, a.le = nil, nil
	a.spent = true
}

// Act2 holds the state after the responder's act two was verified.
type Act2 struct {
	ls     *secp256k1.PrivateKey
	re     *secp256k1.PublicKey
	ck     crypto.Key
	tempK2 crypto.Key
	h      crypto.Transcript
	spent  bool
}

// NewAct2 verifies act two received from the responder.
func NewAct2(a1 *Act1, msg [ActTwoSize]byte) (*Act2, error) {
	if a1 == nil || a1.spent {
		return nil, ErrSpentState
	}
	defer a1.wipe()

	if msg[0] != HandshakeVersion {
		return nil, &UnknownHandshakeVersionError{Version: msg[0]}
	}
	reBytes := msg[1 : 1+crypto.PubkeySize]
	c := msg[1+crypto.PubkeySize:]

	re, err := crypto.ParsePubkey(reBytes)
	if err != nil {
		return nil, &InvalidPublicKeyError{Hex: hex.EncodeToString(reBytes), Err: err}
	}

	a := &Act2{ls: a1.ls, re: re, h: a1.h}
	a.h.Update(reBytes)

	ee := crypto.ECDH(re, a1.le)
	defer crypto.ZeroBytes(ee[:])
	a.ck, a.tempK2 = crypto.HKDF(a1.ck, ee[:])

	h := a.h.Bytes()
	if _, err := crypto.DecryptWithAd(a.tempK2, 0, h[:], c); err != nil {
		a.wipe()
		return nil, &CryptographyError{Err: err}
	}
	a.h.Update(c)
	return a, nil
}

func (a *Act2) wipe() {
	crypto.ZeroBytes(a.ck[:], a.tempK2[:])
	a.h.Reset()
	a.ls, a.re = nil, nil
	a.spent = true
}

// Act3 holds the final handshake message and the derived session keys.
type Act3 struct {
	c        [crypto.PubkeySize + crypto.TagSize]byte
	t        [crypto.TagSize]byte
	sk, rk   crypto.Key
	sn, rn   uint64
	sck, rck crypto.Key
	spent    bool
}

// NewAct3 encrypts our static key for the responder and derives the session keys.
func NewAct3(a2 *Act2) (*Act3, error) {
	if a2 == nil || a2.spent {
		return nil, ErrSpentState
	}
	defer a2.wipe()

	a := &Act3{}
	th := a2.h
	defer th.Reset()

	h := th.Bytes()
	c, err := crypto.EncryptWithAd(a2.tempK2, 1, h[:], a2.ls.PubKey().SerializeCompressed())
	if err != nil {
		return nil, &CryptographyError{Err: err}
	}
	copy(a.c[:], c)
	th.Update(c)

	se := crypto.ECDH(a2.re, a2.ls)
	ck, tempK3 := crypto.HKDF(a2.ck, se[:])
	defer crypto.ZeroBytes(se[:], tempK3[:], ck[:])

	h = th.Bytes()
	t, err := crypto.EncryptWithAd(tempK3, 0, h[:], nil)
	if err != nil {
		return nil, &CryptographyError{Err: err}
	}
	copy(a.t[:], t)

	a.sk, a.rk = crypto.HKDF(ck, nil)
	a.sck, a.rck = ck, ck
	return a, nil
}

// Message returns the 66 byte act three message.
func (a *Act3) Message() (msg [ActThreeSize]byte, err error) {
	if a.spent {
		return msg, ErrSpentState
	}
	msg[0] = HandshakeVersion
	copy(msg[1:], a.c[:])
	copy(msg[1+len(a.c):], a.t[:])
	return msg, nil
}

func (a *Act3) wipe() {
	crypto.ZeroBytes(a.c[:], a.t[:], a.sk[:], a.rk[:], a.sck[:], a.rck[:])
	a.sn, a.rn = 0, 0
	a.spent = true
}
