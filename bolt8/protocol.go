package bolt8

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// The Client* types drive the initiator over a byte stream. Each type only
// has the methods that are legal in its phase, and Next hands back the
// following phase.

// ClientAct0 is an initiator that hasn't sent anything yet.
type ClientAct0 struct {
	act *Act0
}

// NewClientProtocol prepares a handshake with the responder rs.
func NewClientProtocol(rs *secp256k1.PublicKey) *ClientAct0 {
	return &ClientAct0{act: NewAct0(rs)}
}

// Next generates an ephemeral key from rand and builds act one.
func (p *ClientAct0) Next(ls *secp256k1.PrivateKey, rand io.Reader) (*ClientAct1, error) {
	act, err := NewAct1(p.act, ls, rand)
	if err != nil {
		return nil, err
	}
	return &ClientAct1{act: act}, nil
}

// ClientAct1 is ready to send act one.
type ClientAct1 struct {
	act  *Act1
	sent bool
}

// SendMessage writes act one to w. It can only be called once.
func (p *ClientAct1) SendMessage(w io.Writer) error {
	if p.act.spent {
		return ErrSpentState
	}
	if p.sent {
		return ErrMessageSent
	}
	msg, err := p.act.Message()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg[:]); err != nil {
		p.act.wipe()
		return &IOError{Err: err}
	}
	p.sent = true
	return nil
}

// Next reads act two from r and verifies it. Act one must have been sent.
func (p *ClientAct1) Next(r io.Reader) (*ClientAct2, error) {
	if p.act.spent {
		return nil, ErrSpentState
	}
	if !p.sent {
		return nil, ErrMessageNotSent
	}
	var msg [ActTwoSize]byte
	if _, err := io.ReadFull(r, msg[:]); err != nil {
		p.act.wipe()
		return nil, &IOError{Err: err}
	}
	act, err := NewAct2(p.act, msg)
	if err != nil {
		return nil, err
	}
	return &ClientAct2{act: act}, nil
}

// ClientAct2 has verified the responder's ephemeral key.
type ClientAct2 struct {
	act *Act2
}

// Next builds act three.
func (p *ClientAct2) Next() (*ClientAct3, error) {
	act, err := NewAct3(p.act)
	if err != nil {
		return nil, err
	}
	return &ClientAct3{act: act}, nil
}

// ClientAct3 is ready to send act three.
type ClientAct3 struct {
	act  *Act3
	sent bool
}

// SendMessage writes act three to w. It can only be called once.
func (p *ClientAct3) SendMessage(w io.Writer) error {
	if p.act.spent {
		return ErrSpentState
	}
	if p.sent {
		return ErrMessageSent
	}
	msg, err := p.act.Message()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg[:]); err != nil {
		p.act.wipe()
		return &IOError{Err: err}
	}
	p.sent = true
	return nil
}

// Next finishes the handshake once act three has been sent.
func (p *ClientAct3) Next() (*ClientCommunication, error) {
	if !p.act.spent && !p.sent {
		return nil, ErrMessageNotSent
	}
	comm, err := NewCommunication(p.act)
	if err != nil {
		return nil, err
	}
	return &ClientCommunication{comm: comm}, nil
}

// ClientCommunication exchanges messages after a completed handshake.
type ClientCommunication struct {
	comm *Communication
}

// ReadMessage reads and decrypts one message from r.
func (p *ClientCommunication) ReadMessage(r io.Reader) ([]byte, error) {
	return p.comm.ReadMessage(r)
}

// WriteMessage encrypts b and writes it to w.
func (p *ClientCommunication) WriteMessage(w io.Writer, b []byte) error {
	return p.comm.WriteMessage(w, b)
}

// Handshake runs all three acts as the initiator over rw.
func Handshake(rw io.ReadWriter, rs *secp256k1.PublicKey, ls *secp256k1.PrivateKey, rand io.Reader) (*ClientCommunication, error) {
	act1, err := NewClientProtocol(rs).Next(ls, rand)
	if err != nil {
		return nil, err
	}
	if err = act1.SendMessage(rw); err != nil {
		return nil, err
	}
	act2, err := act1.Next(rw)
	if err != nil {
		return nil, err
	}
	act3, err := act2.Next()
	if err != nil {
		return nil, err
	}
	if err = act3.SendMessage(rw); err != nil {
		return nil, err
	}
	return act3.Next()
}
