package protonate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/internal/pdbio"
	"github.com/hupe1980/protfeat/structure"
)

const (
	inputFile     = "in.pdb"
	outputPDBFile = "out.pdb"
	outputPQRFile = "out.pqr"

	// maxOutput caps the tool output kept in a ToolError.
	maxOutput = 4 << 10

	waitDelay = 2 * time.Second
)

// ToolError reports a failed PDB2PQR run.
//
// The original underlying error can be accessed via errors.Unwrap.
type ToolError struct {
	Binary string
	Args   []string
	// Output is the tail of the combined stdout and stderr.
	Output string
	cause  error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Binary, e.cause)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.cause }

// PDB2PQR is a hbond.Protonator backed by the pdb2pqr command line tool.
// It is safe for concurrent use; every call works in its own directory.
type PDB2PQR struct {
	cfg Config
}

var _ hbond.Protonator = (*PDB2PQR)(nil)

// NewPDB2PQR validates cfg and returns the protonator.
func NewPDB2PQR(cfg Config) (*PDB2PQR, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PDB2PQR{cfg: cfg}, nil
}

// Config returns the configuration.
func (p *PDB2PQR) Config() Config { return p.cfg }

// AddHydrogens writes s to a temporary directory, runs pdb2pqr under ctx and
// reads back the protonated PDB. The directory is removed on every path.
func (p *PDB2PQR) AddHydrogens(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
	dir, err := os.MkdirTemp(p.cfg.TempDir, "protfeat-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	if err := writePDB(filepath.Join(dir, inputFile), s); err != nil {
		return nil, err
	}

	args := p.cfg.Args(inputFile, outputPDBFile, outputPQRFile)
	cmd := exec.CommandContext(ctx, p.cfg.Binary, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return nil, &ToolError{Binary: p.cfg.Binary, Args: args, Output: tail(out), cause: err}
	}

	f, err := os.Open(filepath.Join(dir, outputPDBFile))
	if err != nil {
		return nil, &ToolError{Binary: p.cfg.Binary, Args: args, Output: tail(out), cause: fmt.Errorf("no PDB output: %w", err)}
	}
	defer f.Close()

	protonated, err := pdbio.Read(f, s.Name())
	if err != nil {
		return nil, fmt.Errorf("reading %s output: %w", p.cfg.Binary, err)
	}
	if protonated.Len() == 0 {
		return nil, &ToolError{Binary: p.cfg.Binary, Args: args, Output: tail(out), cause: errors.New("empty PDB output")}
	}
	return protonated, nil
}

func writePDB(path string, s *structure.Structure) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pdbio.Write(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func tail(out []byte) string {
	out = bytes.TrimSpace(out)
	if len(out) > maxOutput {
		out = out[len(out)-maxOutput:]
	}
	return strings.ToValidUTF8(string(out), "")
}
