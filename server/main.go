package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"go.uber.org/zap"
)

type state struct {
	listener         net.Listener
	privKey          *secp256k1.PrivateKey
	greeting         []byte
	handshakeTimeout time.Duration
	log              *zap.Logger
	metrics          *metrics
}

func main() {
	cfg, err := parseArgs(os.Args)
	if err != nil {
		Fatalln("Error parsing arguments:", err)
	}

	s := state{}
	s.init(cfg)
	defer s.log.Sync()

	fmt.Println("Starting BOLT-8 responder on", s.listener.Addr())
	fmt.Println("Public key:", hex.EncodeToString(s.privKey.PubKey().SerializeCompressed()))

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Error("error accepting connection", zap.Error(err))
			continue
		}
		go s.handleConnection(conn)
	}
}

// handleConnection owns conn until the peer goes away
func (s *state) handleConnection(conn net.Conn) {
	defer conn.Close()
	log := s.log.With(zap.Stringer("remote", conn.RemoteAddr()))

	sess, err := s.handshake(conn)
	if err != nil {
		log.Warn("handshake failed", zap.Error(err))
		return
	}
	log = log.With(zap.String("peer", hex.EncodeToString(sess.RemoteStatic().SerializeCompressed())))
	log.Info("handshake completed")

	err = s.serve(conn, sess, log)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Warn("session ended with error", zap.Error(err))
		return
	}
	log.Info("peer disconnected")
}
