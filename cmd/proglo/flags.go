package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

type command func(ctx context.Context, a *app, args []string) error

var errUsage = errors.New("usage")

// cmdFlags remembers which flags were given so that update commands patch only those fields.
type cmdFlags struct {
	*flag.FlagSet
	seen map[string]bool
}

func newFlags(name string, out io.Writer) *cmdFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return &cmdFlags{FlagSet: fs, seen: map[string]bool{}}
}

func (f *cmdFlags) parse(args []string) error {
	if err := f.Parse(args); err != nil {
		return err
	}
	f.Visit(func(fl *flag.Flag) { f.seen[fl.Name] = true })
	return nil
}

func (f *cmdFlags) given(name string) bool { return f.seen[name] }

// require reports a usage error unless every named flag was given.
func (f *cmdFlags) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !f.seen[n] {
			missing = append(missing, "-"+n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s needs %s", errUsage, f.Name(), strings.Join(missing, " "))
	}
	return nil
}

// opt returns v if the flag was given, nil otherwise.
func opt[T any](f *cmdFlags, name string, v *T) *T {
	if f.given(name) {
		return v
	}
	return nil
}

// group dispatches "<name> <sub> [flags]".
func group(name string, subs map[string]command) command {
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return func(ctx context.Context, a *app, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: %s needs one of: %s", errUsage, name, strings.Join(keys, ", "))
		}
		sub, ok := subs[args[0]]
		if !ok {
			return fmt.Errorf("%w: unknown %s command %q", errUsage, name, args[0])
		}
		return sub(ctx, a, args[1:])
	}
}
