package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/ogier/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Eprintln prints to stderr
func Eprintln(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
}

// NewLogger builds a human readable logger that writes to stderr, leaving
// stdout for program output
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// JoinLongFlags rewrites "--name value" as "--name=value" for every
// flag in flags that takes a value, since pflag only reads the joined form.
// Arguments after "--" are left alone.
func JoinLongFlags(flags *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "--") && !strings.Contains(arg, "=") && i+1 < len(args) {
			if f := flags.Lookup(arg[2:]); f != nil && !isBoolFlag(f) {
				i++
				arg += "=" + args[i]
			}
		}
		out = append(out, arg)
	}
	return out
}

func isBoolFlag(f *pflag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
