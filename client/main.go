package main

import (
	"context"
	"os"

	"github.com/malcolmseyd/bolt8-go/client/util"
)

func main() {
	cfg, err := newConfig(os.Args)
	if err != nil {
		util.Eprintln("Error:", err)
		os.Exit(1)
	}

	log, err := util.NewLogger(cfg.logLevel)
	if err != nil {
		util.Eprintln("Error creating logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	sess := Session{cfg: cfg, server: cfg.server, log: log}
	if err = sess.Run(context.Background(), os.Stdout); err != nil {
		util.Eprintln("Error:", err)
		log.Sync()
		os.Exit(1)
	}
}
