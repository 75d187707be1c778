package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/malcolmseyd/bolt8-go/client/network"
	"go.uber.org/zap"
)

// Session connects to one node, completes the handshake and reads the
// node's first message
type Session struct {
	cfg    Config
	client network.Client
	server network.Server
	conn   *network.Conn
	log    *zap.Logger
}

// Run prints a summary to out and returns the first error encountered
func (s *Session) Run(ctx context.Context, out io.Writer) error {
	var err error
	if err = s.Init(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.Stop(); err != nil {
			s.log.Debug("error closing connection", zap.Error(err))
		}
	}()

	if err = s.conn.Handshake(s.cfg.handshakeTimeout); err != nil {
		return fmt.Errorf("failed to perform handshake: %w", err)
	}
	fmt.Fprintln(out, "Handshake completed!")

	msg, err := s.conn.RecvData()
	if err != nil {
		return fmt.Errorf("failed to read init message from the remote node: %w", err)
	}
	fmt.Fprintln(out, "Successfully read and decrypted the init message from the remote node!")
	fmt.Fprintln(out, "Decrypted message (hex):", hex.EncodeToString(msg))
	return nil
}

// Init sets up the local identity and connects to the Server
func (s *Session) Init(ctx context.Context) error {
	var err error
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.client, err = network.NewClient(s.cfg.key)
	if err != nil {
		return fmt.Errorf("failed to generate a local key: %w", err)
	}

	s.log.Info("connecting", zap.Stringer("node", s.server), zap.String("proxy", s.cfg.proxy))
	raw, err := network.Dial(ctx, s.server, network.DialOptions{
		Timeout: s.cfg.timeout,
		Proxy:   s.cfg.proxy,
	})
	if err != nil {
		return fmt.Errorf("unable to connect to the remote node: %w", err)
	}
	s.conn = network.NewConn(raw, &s.server, &s.client, s.log)
	return nil
}

func (s *Session) Stop() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
