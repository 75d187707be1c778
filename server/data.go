package main

import (
	"encoding/hex"
	"net"

	"github.com/malcolmseyd/bolt8-go/server/auth"
	"go.uber.org/zap"
)

// serve sends the greeting, then echoes every message back until the peer
// hangs up
func (s *state) serve(conn net.Conn, sess *auth.Session, log *zap.Logger) error {
	if err := sess.WriteMessage(conn, s.greeting); err != nil {
		return err
	}
	s.metrics.Message(directionSent)

	for {
		msg, err := sess.ReadMessage(conn)
		if err != nil {
			return err
		}
		s.metrics.Message(directionReceived)
		log.Debug("message received",
			zap.Int("size", len(msg)),
			zap.String("hex", hex.EncodeToString(msg)),
		)

		if err = sess.WriteMessage(conn, msg); err != nil {
			return err
		}
		s.metrics.Message(directionSent)
	}
}
