package network

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/malcolmseyd/bolt8-go/crypto"
	"golang.org/x/net/proxy"
)

var (
	// ErrNodeAddress is returned when a node address isn't pubkey@host:port
	ErrNodeAddress = errors.New("client/network: node address should look like <pubkey>@<host>:<port>")
	// ErrProxy is returned when the proxy dialer can't be used with a context
	ErrProxy = errors.New("client/network: proxy doesn't support contexts")
	// ErrNoSession is returned when data is sent or received before the handshake
	ErrNoSession = errors.New("client/network: handshake not completed")
)

// DialOptions controls how the TCP connection to the Server is made
type DialOptions struct {
	// Timeout bounds connection establishment only
	Timeout time.Duration
	// Proxy is the address of a SOCKS5 proxy, such as a Tor daemon
	Proxy string
}

// ParseNodeAddress parses a node address of the form <hex pubkey>@<host>:<port>
func ParseNodeAddress(addr string) (Server, error) {
	keyStr, hostport, ok := strings.Cut(addr, "@")
	if !ok {
		return Server{}, ErrNodeAddress
	}

	keyBytes, err := hex.DecodeString(keyStr)
	if err != nil {
		return Server{}, fmt.Errorf("%w: public key: %v", ErrNodeAddress, err)
	}
	pubkey, err := crypto.ParsePubkey(keyBytes)
	if err != nil {
		return Server{}, fmt.Errorf("%w: %v", ErrNodeAddress, err)
	}

	hostname, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return Server{}, fmt.Errorf("%w: %v", ErrNodeAddress, err)
	}
	if hostname == "" {
		return Server{}, fmt.Errorf("%w: missing host", ErrNodeAddress)
	}
	// ParseUint can be safely cast to uint16 because of the last argument
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Server{}, fmt.Errorf("%w: port: %v", ErrNodeAddress, err)
	}

	return NewServer(hostname, uint16(port), pubkey), nil
}

// Dial opens a TCP connection to the Server, through a SOCKS5 proxy if one is configured.
func Dial(ctx context.Context, server Server, opts DialOptions) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: opts.Timeout}
	if opts.Proxy == "" {
		return dialer.DialContext(ctx, "tcp", server.Addr())
	}

	socks, err := proxy.SOCKS5("tcp", opts.Proxy, nil, dialer)
	if err != nil {
		return nil, err
	}
	contextDialer, ok := socks.(proxy.ContextDialer)
	if !ok {
		return nil, ErrProxy
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	return contextDialer.DialContext(ctx, "tcp", server.Addr())
}
