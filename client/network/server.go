package network

import (
	"encoding/hex"
	"net"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Server stores data relating to the remote node
type Server struct {
	Hostname string
	Port     uint16
	Pubkey   *secp256k1.PublicKey
}

// NewServer creates a new Server struct from the specified hostname, port, and
// public key
func NewServer(hostname string, port uint16, pubkey *secp256k1.PublicKey) Server {
	return Server{
		Hostname: hostname,
		Port:     port,
		Pubkey:   pubkey,
	}
}

// Addr returns the host:port to dial
func (s Server) Addr() string {
	return net.JoinHostPort(s.Hostname, strconv.FormatUint(uint64(s.Port), 10))
}

// String formats the Server as a node address
func (s Server) String() string {
	return hex.EncodeToString(s.Pubkey.SerializeCompressed()) + "@" + s.Addr()
}
