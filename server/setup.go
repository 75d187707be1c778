package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/malcolmseyd/bolt8-go/crypto"
	"github.com/ogier/pflag"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// minimal BOLT-1 init: type 16, no global features, no features
const defaultGreeting = "001000000000"

type config struct {
	listen           string
	key              *secp256k1.PrivateKey
	greeting         []byte
	metricsAddr      string
	handshakeTimeout time.Duration
	logLevel         zapcore.Level
}

func parseArgs(args []string) (cfg config, err error) {
	flags := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	flags.Usage = func() {
		Eprintln("Usage:", args[0], "[OPTION]...")
		Eprintln("Flags:")
		flags.PrintDefaults()
	}

	listen := flags.StringP("listen", "a", ":9735", "address to accept connections on")
	key := flags.StringP("key", "k", "", "hex encoded static private key (random if empty)")
	greeting := flags.StringP("greeting", "g", defaultGreeting, "hex encoded message sent after every handshake")
	metricsAddr := flags.StringP("metrics", "m", "", "address to serve Prometheus metrics on (disabled if empty)")
	timeout := flags.Float64P("handshake-timeout", "t", 10, "time allowed for a handshake (in seconds, 0 to disable)")
	logLevel := flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")

	if err = flags.Parse(joinLongFlags(flags, args[1:])); err != nil {
		return
	}
	if len(flags.Args()) > 0 {
		flags.Usage()
		return cfg, errors.New("unexpected arguments")
	}

	cfg.listen = *listen
	cfg.metricsAddr = *metricsAddr
	cfg.handshakeTimeout = time.Duration(*timeout * float64(time.Second))

	if *key != "" {
		b, err := hex.DecodeString(*key)
		if err != nil {
			return cfg, err
		}
		if cfg.key, err = crypto.ParsePrivkey(b); err != nil {
			return cfg, err
		}
	} else if cfg.key, err = crypto.GenPrivkey(rand.Reader); err != nil {
		return
	}

	if cfg.greeting, err = hex.DecodeString(*greeting); err != nil {
		return
	}
	err = cfg.logLevel.UnmarshalText([]byte(*logLevel))
	return
}

func (s *state) init(cfg config) {
	var err error
	s.privKey = cfg.key
	s.greeting = cfg.greeting
	s.handshakeTimeout = cfg.handshakeTimeout

	s.log, err = newLogger(cfg.logLevel)
	if err != nil {
		Fatalln("Error creating logger:", err)
	}

	reg := prometheus.NewRegistry()
	s.metrics = newMetrics(reg)
	if cfg.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler(reg))
		go func() {
			err := http.ListenAndServe(cfg.metricsAddr, mux)
			s.log.Error("metrics server stopped", zap.Error(err))
		}()
	}

	s.listener, err = net.Listen("tcp", cfg.listen)
	if err != nil {
		Fatalln("Error listening on", cfg.listen+":", err)
	}
}
