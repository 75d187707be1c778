package bolt8

import (
	"errors"
	"fmt"
)

var (
	// ErrSpentState is returned when a phase value is used after it was
	// consumed by a transition
	ErrSpentState = errors.New("bolt8: handshake state already consumed")
	// ErrMessageTooLarge is returned when a payload doesn't fit the 2 byte length prefix
	ErrMessageTooLarge = errors.New("bolt8: message larger than 65535 bytes")
	// ErrMessageNotSent is returned by the driver when a phase is advanced
	// before its act was written
	ErrMessageNotSent = errors.New("bolt8: act message not sent")
	// ErrMessageSent is returned when an act is written twice
	ErrMessageSent = errors.New("bolt8: act message already sent")
)

// CryptographyError is returned when an AEAD operation fails. Under
// decryption it means wrong keys or a tampered message.
type CryptographyError struct {
	Err error
}

func (e *CryptographyError) Error() string {
	return "bolt8: a cryptography operation has failed: " + e.Err.Error()
}

func (e *CryptographyError) Unwrap() error { return e.Err }

// UnknownHandshakeVersionError is returned when an act starts with a version other than 0
type UnknownHandshakeVersionError struct {
	Version byte
}

func (e *UnknownHandshakeVersionError) Error() string {
	return fmt.Sprintf("bolt8: unknown handshake version %d", e.Version)
}

// InvalidPublicKeyError is returned when a received key isn't a compressed curve point
type InvalidPublicKeyError struct {
	Hex string
	Err error
}

func (e *InvalidPublicKeyError) Error() string {
	return fmt.Sprintf("bolt8: invalid public key %s: %v", e.Hex, e.Err)
}

func (e *InvalidPublicKeyError) Unwrap() error { return e.Err }

// IOError wraps failures of the underlying stream or randomness source
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "bolt8: io error: " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// InvalidMessageLengthError is returned when a decrypted length prefix isn't 2 bytes
type InvalidMessageLengthError struct {
	Want, Got int
}

func (e *InvalidMessageLengthError) Error() string {
	return fmt.Sprintf("bolt8: invalid message length prefix: expected %d bytes, got %d", e.Want, e.Got)
}
