package protonate

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes an executable shell script standing in for pdb2pqr.
// The tool runs in its working directory with fixed file names.
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	path := filepath.Join(t.TempDir(), "pdb2pqr")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func newTestPDB2PQR(t *testing.T, binary string) (*PDB2PQR, string) {
	t.Helper()
	tmp := t.TempDir()

	cfg := DefaultConfig()
	cfg.Binary = binary
	cfg.TempDir = tmp

	p, err := NewPDB2PQR(cfg)
	require.NoError(t, err)
	return p, tmp
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "working directory must be removed")
}

func TestPDB2PQRAddHydrogens(t *testing.T) {
	// Copy the input and append a hydrogen bonded to N of residue 1.
	bin := fakeTool(t, `grep -v '^END' in.pdb > out.pdb
echo 'ATOM      4  H   SER A   1       0.000   1.010   0.000  1.00  0.00           H' >> out.pdb
echo 'END' >> out.pdb
: > out.pqr`)

	p, tmp := newTestPDB2PQR(t, bin)

	s := heavy()
	got, err := p.AddHydrogens(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, "heavy", got.Name())
	require.Equal(t, s.Len()+1, got.Len())
	h := got.Atom(s.Len())
	assert.True(t, h.IsHydrogen())
	assert.Equal(t, 1, h.ResidueID)

	for i, a := range s.All() {
		assert.Equal(t, a.AtomName, got.Atom(i).AtomName)
		assert.InDelta(t, a.Coord.X, got.Atom(i).Coord.X, 1e-3)
	}
	assertEmptyDir(t, tmp)
}

func TestPDB2PQRPassesArguments(t *testing.T) {
	bin := fakeTool(t, `echo "$@" > /dev/stderr
exit 2`)
	p, _ := newTestPDB2PQR(t, bin)

	_, err := p.AddHydrogens(context.Background(), heavy())
	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "--ff=AMBER --log-level CRITICAL --titration-state-method propka --pdb-output out.pdb in.pdb out.pqr", te.Output)
}

func TestPDB2PQRFailure(t *testing.T) {
	bin := fakeTool(t, `echo "ERROR: unable to assign residue" >&2
exit 3`)
	p, tmp := newTestPDB2PQR(t, bin)

	_, err := p.AddHydrogens(context.Background(), heavy())
	require.Error(t, err)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Output, "unable to assign residue")
	assert.Contains(t, err.Error(), "unable to assign residue")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assertEmptyDir(t, tmp)
}

func TestPDB2PQRMissingOutput(t *testing.T) {
	bin := fakeTool(t, `exit 0`)
	p, tmp := newTestPDB2PQR(t, bin)

	_, err := p.AddHydrogens(context.Background(), heavy())
	var te *ToolError
	assert.ErrorAs(t, err, &te)
	assertEmptyDir(t, tmp)
}

func TestPDB2PQRTimeout(t *testing.T) {
	bin := fakeTool(t, `exec sleep 10`)
	p, tmp := newTestPDB2PQR(t, bin)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.AddHydrogens(ctx, heavy())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assertEmptyDir(t, tmp)
}

func TestPDB2PQRMissingBinary(t *testing.T) {
	p, tmp := newTestPDB2PQR(t, filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := p.AddHydrogens(context.Background(), heavy())
	var te *ToolError
	assert.ErrorAs(t, err, &te)
	assertEmptyDir(t, tmp)
}

func TestNewPDB2PQRInvalid(t *testing.T) {
	_, err := NewPDB2PQR(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
