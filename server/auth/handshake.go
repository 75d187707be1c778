package auth

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/flynn/noise"
	"github.com/malcolmseyd/bolt8-go/bolt8"
	"github.com/malcolmseyd/bolt8-go/crypto"
)

// ErrHandshake is returned when an act from the initiator fails verification
var ErrHandshake = errors.New("server/auth: handshake failed")

// Session is the responder's side of an established connection. It reports
// failures with the bolt8 error types, and like bolt8.Communication the
// first failure is returned by every later call.
type Session struct {
	send, recv *CipherState
	remote     *secp256k1.PublicKey

	err error
}

// Handshake runs the responder side of the handshake over rw using the
// static key priv.
func Handshake(rw io.ReadWriter, priv *secp256k1.PrivateKey, random io.Reader) (*Session, error) {
	handshake, err := noise.NewHandshakeState(NewConfig(priv, random))
	if err != nil {
		return nil, err
	}

	var act1 [bolt8.ActOneSize]byte
	if err = readAct(rw, act1[:]); err != nil {
		return nil, err
	}
	if _, _, _, err = handshake.ReadMessage(nil, act1[1:]); err != nil {
		return nil, fmt.Errorf("%w: act one: %v", ErrHandshake, err)
	}

	act2, _, _, err := handshake.WriteMessage([]byte{bolt8.HandshakeVersion}, nil)
	if err != nil {
		return nil, err
	}
	if _, err = rw.Write(act2); err != nil {
		return nil, &bolt8.IOError{Err: err}
	}

	var act3 [bolt8.ActThreeSize]byte
	if err = readAct(rw, act3[:]); err != nil {
		return nil, err
	}
	// recv and send are opposite order from the initiator
	_, recv, send, err := handshake.ReadMessage(nil, act3[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: act three: %v", ErrHandshake, err)
	}
	remote, err := crypto.ParsePubkey(handshake.PeerStatic())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	return &Session{
		send:   NewCipherState(send.Cipher()),
		recv:   NewCipherState(recv.Cipher()),
		remote: remote,
	}, nil
}

// readAct fills act from r and checks the version byte
func readAct(r io.Reader, act []byte) error {
	if _, err := io.ReadFull(r, act); err != nil {
		return &bolt8.IOError{Err: err}
	}
	if act[0] != bolt8.HandshakeVersion {
		return &bolt8.UnknownHandshakeVersionError{Version: act[0]}
	}
	return nil
}

// RemoteStatic returns the initiator's static key
func (s *Session) RemoteStatic() *secp256k1.PublicKey {
	return s.remote
}

// WriteMessage encrypts the length of p, then p itself, and writes both to w.
func (s *Session) WriteMessage(w io.Writer, p []byte) error {
	if s.err != nil {
		return s.err
	}
	if len(p) > bolt8.MaxMessageSize {
		return bolt8.ErrMessageTooLarge
	}
	length := make([]byte, 2)
	binary.BigEndian.PutUint16(length, uint16(len(p)))

	packet := s.send.Encrypt(nil, nil, length)
	packet = s.send.Encrypt(packet, nil, p)
	if _, err := w.Write(packet); err != nil {
		s.err = &bolt8.IOError{Err: err}
		return s.err
	}
	return nil
}

// ReadMessage reads one message from r.
func (s *Session) ReadMessage(r io.Reader) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, err := s.readMessage(r)
	if err != nil {
		s.err = err
		return nil, err
	}
	return p, nil
}

func (s *Session) readMessage(r io.Reader) ([]byte, error) {
	header := make([]byte, bolt8.LengthHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, &bolt8.IOError{Err: err}
	}
	length, err := s.recv.Decrypt(nil, nil, header)
	if err != nil {
		return nil, &bolt8.CryptographyError{Err: err}
	}
	if len(length) != 2 {
		return nil, &bolt8.InvalidMessageLengthError{Want: 2, Got: len(length)}
	}

	body := make([]byte, int(binary.BigEndian.Uint16(length))+crypto.TagSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, &bolt8.IOError{Err: err}
	}
	p, err := s.recv.Decrypt(nil, nil, body)
	if err != nil {
		return nil, &bolt8.CryptographyError{Err: err}
	}
	return p, nil
}
