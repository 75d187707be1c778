package main

import (
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/malcolmseyd/bolt8-go/client/network"
	"github.com/malcolmseyd/bolt8-go/client/util"
	"github.com/malcolmseyd/bolt8-go/crypto"
	"github.com/ogier/pflag"
	"go.uber.org/zap/zapcore"
)

var (
	errNoNodeAddress = errors.New("missing required option --node-address")
	errArguments     = errors.New("unexpected arguments")
)

// Config stores values related to program configuration
type Config struct {
	server           network.Server
	key              *secp256k1.PrivateKey
	timeout          time.Duration
	handshakeTimeout time.Duration
	proxy            string
	logLevel         zapcore.Level
}

func newConfig(args []string) (config Config, err error) {
	flags := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	flags.Usage = func() { printUsage(flags) }

	nodeAddress := flags.StringP("node-address", "n", "", "remote node as <hex pubkey>@<host>:<port>")
	timeout := flags.Float64P("timeout", "t", 10, "time to wait for the connection (in seconds)")
	handshakeTimeout := flags.Float64P("handshake-timeout", "T", 0, "time to wait for the handshake (in seconds, 0 waits forever)")
	key := flags.StringP("key", "k", "", "hex encoded static private key (random if empty)")
	proxy := flags.StringP("proxy", "p", "", "SOCKS5 proxy address, e.g. 127.0.0.1:9050 for Tor")
	logLevel := flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")

	if err = flags.Parse(util.JoinLongFlags(flags, args[1:])); err != nil {
		return
	}
	if len(flags.Args()) > 0 {
		printUsage(flags)
		return config, errArguments
	}
	if *nodeAddress == "" {
		printUsage(flags)
		return config, errNoNodeAddress
	}

	if config.server, err = network.ParseNodeAddress(*nodeAddress); err != nil {
		return
	}
	config.timeout = seconds(*timeout)
	config.handshakeTimeout = seconds(*handshakeTimeout)
	config.proxy = *proxy

	if *key != "" {
		var b []byte
		if b, err = hex.DecodeString(*key); err != nil {
			return
		}
		if config.key, err = crypto.ParsePrivkey(b); err != nil {
			return
		}
	}

	err = config.logLevel.UnmarshalText([]byte(*logLevel))
	return
}

func seconds(s float64) time.Duration {
	return time.Nanosecond * time.Duration(s*1e9)
}

func printUsage(flags *pflag.FlagSet) {
	util.Eprintln("Usage: " + os.Args[0] + " [OPTION]... --node-address PUBKEY@HOST:PORT")
	util.Eprintln("Flags:")
	flags.PrintDefaults()
	util.Eprintln("Example:")
	util.Eprintln("    " + os.Args[0] + " -n 03864ef025fde8fb587d989186ce6a4a186895ee44a926bfc370e2c366597a3f8f@3.33.236.230:9735")
}
