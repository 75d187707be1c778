// Package bolt8 implements the initiator side of the Lightning Network
// transport handshake (Noise_XK over secp256k1) and the encrypted message
// framing that follows it.
package bolt8

import (
	"github.com/malcolmseyd/bolt8-go/crypto"
)

const (
	// ProtocolName seeds the handshake hash
	ProtocolName = "Noise_XK_secp256k1_ChaChaPoly_SHA256"
	// Prologue is mixed into the handshake hash before any key
	Prologue = "lightning"
	// HandshakeVersion is the only accepted leading byte of an act
	HandshakeVersion byte = 0

	// version + ephemeral pubkey + empty AEAD
	ActOneSize = 1 + crypto.PubkeySize + crypto.TagSize
	// ActTwoSize has the same layout as act one
	ActTwoSize = ActOneSize
	// version + encrypted static pubkey + empty AEAD
	ActThreeSize = 1 + crypto.PubkeySize + crypto.TagSize + crypto.TagSize

	// LengthHeaderSize is the encrypted 2 byte length prefix of every message
	LengthHeaderSize = 2 + crypto.TagSize
	// MaxMessageSize is the largest payload a length prefix can describe
	MaxMessageSize = 1<<16 - 1
)
