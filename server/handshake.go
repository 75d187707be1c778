package main

import (
	"net"
	"time"

	"github.com/malcolmseyd/bolt8-go/server/auth"
)

// handshake runs the responder handshake on conn within s.handshakeTimeout
func (s *state) handshake(conn net.Conn) (*auth.Session, error) {
	start := time.Now()
	if s.handshakeTimeout > 0 {
		if err := conn.SetDeadline(start.Add(s.handshakeTimeout)); err != nil {
			return nil, err
		}
		defer conn.SetDeadline(time.Time{})
	}

	sess, err := auth.Handshake(conn, s.privKey, nil)
	s.metrics.Handshake(err, time.Since(start))
	return sess, err
}
