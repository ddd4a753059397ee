package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv/sealed"
	"github.com/and161185/proglo/internal/model"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t    *testing.T
	args []string
}

func newCLI(t *testing.T, global ...string) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &cli{t: t, args: global}
}

func (c *cli) run(args ...string) (int, string, string) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), append(append([]string{}, c.args...), args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func (c *cli) ok(v any, args ...string) {
	c.t.Helper()
	code, out, errOut := c.run(args...)
	require.Equal(c.t, 0, code, "stderr: %s", errOut)
	if v != nil {
		require.NoError(c.t, json.Unmarshal([]byte(out), v), out)
	}
}

func TestRun_UsageAndVersion(t *testing.T) {
	c := newCLI(t)

	code, _, errOut := c.run()
	require.Equal(t, 2, code)
	require.Contains(t, errOut, "Commands:")

	code, _, _ = c.run("nope")
	require.Equal(t, 2, code)

	code, out, _ := c.run("version")
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(out, "proglo "))

	code, _, _ = c.run("-backend", "floppy", "whoami")
	require.Equal(t, 2, code)
}

func TestRun_SessionFlow(t *testing.T) {
	c := newCLI(t)

	var u model.User
	c.ok(&u, "register", "-name", "Alice", "-email", "Alice@Example.com", "-p", "secret1")
	require.Equal(t, "alice@example.com", u.Email)

	var who model.User
	c.ok(&who, "whoami")
	require.Equal(t, u.ID, who.ID)

	c.ok(nil, "logout")
	c.ok(nil, "logout")

	var state map[string]bool
	c.ok(&state, "whoami")
	require.False(t, state["logged_in"])

	code, _, errOut := c.run("sleep", "add", "-hours", "7")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "not logged in")

	code, _, errOut = c.run("login", "-email", "alice@example.com", "-p", "wrong-pw")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, errs.ErrUnauthorized.Error())

	code, _, errOut = c.run("register", "-name", "Eve", "-email", "ALICE@example.com", "-p", "secret2")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "already registered")

	c.ok(&who, "login", "-email", "ALICE@EXAMPLE.COM", "-p", "secret1")
	require.Equal(t, u.ID, who.ID)

	c.ok(&who, "profile", "-weight", "60")
	require.NotNil(t, who.Weight)
	require.Equal(t, 60.0, *who.Weight)
}

func TestRun_Tracking(t *testing.T) {
	c := newCLI(t)
	c.ok(nil, "register", "-name", "Alice", "-email", "a@x.io", "-p", "secret1")

	var s model.SleepRecord
	c.ok(&s, "sleep", "add", "-hours", "6.5", "-date", "2025-04-11")
	require.Equal(t, model.SleepFair, s.Quality)
	c.ok(&s, "sleep", "update", "-id", s.ID, "-hours", "9.5")
	require.Equal(t, model.SleepExcellent, s.Quality)

	code, _, errOut := c.run("sleep", "add", "-hours", "30")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "validation")

	var b model.BMIRecord
	c.ok(&b, "bmi", "add", "-height", "170", "-weight", "70")
	require.Equal(t, 24.2, b.BMIValue)
	require.Equal(t, model.BMIHealthy, b.Category)

	var g goalView
	c.ok(&g, "goal", "add", "-title", "Run 10k", "-category", "fitness", "-start", "0", "-target", "10", "-unit", "km")
	c.ok(&g, "goal", "progress", "-id", g.ID, "-value", "5")
	require.Equal(t, 50, g.Progress)

	var removed map[string]bool
	c.ok(&removed, "goal", "rm", "-id", g.ID)
	require.True(t, removed["removed"])
	c.ok(&removed, "goal", "rm", "-id", g.ID)
	require.False(t, removed["removed"])

	code, _, errOut = c.run("water", "update", "-id", "missing", "-ml", "100")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, errs.ErrNotFound.Error())

	var list []model.SleepRecord
	c.ok(&list, "sleep", "list")
	require.Len(t, list, 1)

	code, _, _ = c.run("activity")
	require.Equal(t, 1, code)
}

func TestRun_AdminRequiresRole(t *testing.T) {
	c := newCLI(t)
	c.ok(nil, "register", "-name", "Bob", "-email", "bob@x.io", "-p", "secret1")

	code, _, errOut := c.run("users", "list")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "admin role required")

	c.ok(nil, "register", "-name", "Root", "-email", "root@x.io", "-p", "secret1", "-role", "admin")
	var users []model.User
	c.ok(&users, "users", "list")
	require.Len(t, users, 2)
}

func TestRun_SealedStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	c := newCLI(t, "-data-dir", dir, "-seal-passphrase", "hunter22")
	c.ok(nil, "register", "-name", "Alice", "-email", "a@x.io", "-p", "secret1")

	raw, err := os.ReadFile(filepath.Join(dir, "proglo_users.json"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "a@x.io")

	wrong := &cli{t: t, args: []string{"-data-dir", dir, "-seal-passphrase", "nope"}}
	code, _, errOut := wrong.run("whoami")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "wrong seal passphrase")

	c.ok(nil, "rekey", "-new", "correct-horse")
	next := &cli{t: t, args: []string{"-data-dir", dir, "-seal-passphrase", "correct-horse"}}
	var who model.User
	next.ok(&who, "whoami")
	require.Equal(t, "a@x.io", who.Email)
}

func TestRun_SealedAndPlainDataDoNotMix(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	plain := newCLI(t, "-data-dir", dir)
	plain.ok(nil, "register", "-name", "Alice", "-email", "a@x.io", "-p", "secret1")

	seal := &cli{t: t, args: []string{"-data-dir", dir, "-seal-passphrase", "hunter22"}}
	code, _, errOut := seal.run("whoami")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "data is not sealed")
	_, err := os.Stat(filepath.Join(dir, "proglo_seal_header.json"))
	require.True(t, os.IsNotExist(err), "no seal header may be written over plain data")

	plain.ok(nil, "logout")
	var who model.User
	plain.ok(&who, "login", "-email", "a@x.io", "-p", "secret1")
	require.Equal(t, "a@x.io", who.Email)

	sealedDir := filepath.Join(t.TempDir(), "sealed")
	owner := &cli{t: t, args: []string{"-data-dir", sealedDir, "-seal-passphrase", "hunter22"}}
	owner.ok(nil, "register", "-name", "Bob", "-email", "b@x.io", "-p", "secret1")
	before, err := os.ReadFile(filepath.Join(sealedDir, "proglo_users.json"))
	require.NoError(t, err)

	bare := &cli{t: t, args: []string{"-data-dir", sealedDir}}
	code, _, errOut = bare.run("register", "-name", "Eve", "-email", "e@x.io", "-p", "secret1")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "data is sealed")

	after, err := os.ReadFile(filepath.Join(sealedDir, "proglo_users.json"))
	require.NoError(t, err)
	require.Equal(t, before, after)
	owner.ok(&who, "whoami")
	require.Equal(t, "b@x.io", who.Email)
}

func TestMessage(t *testing.T) {
	require.Equal(t, "wrong seal passphrase", message(fmt.Errorf("open: %w", sealed.ErrWrongPassphrase)))
	require.Contains(t, message(sealed.ErrSealed), "-seal-passphrase")
	require.Contains(t, message(fmt.Errorf("%w: proglo_users", sealed.ErrPlainData)), "refusing to seal")
	require.Equal(t, "too many failed logins: retry in 15m0s", message(fmt.Errorf("%w: retry in 15m0s", errs.ErrRateLimited)))
	require.Equal(t, "boom", message(errors.New("boom")))
}
