package protonate

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("protonate: invalid config")

// Config describes a PDB2PQR invocation.
type Config struct {
	// Binary is the executable name or path.
	Binary string
	// ForceField selects the naming scheme and radii (e.g. "AMBER").
	ForceField string
	// TitrationMethod assigns protonation states (e.g. "propka").
	// Empty disables titration.
	TitrationMethod string
	// ExtraArgs are passed before the file arguments.
	ExtraArgs []string
	// TempDir is the parent of the per-call working directories.
	// Empty selects os.TempDir().
	TempDir string
}

// DefaultConfig returns AMBER naming with PROPKA titration.
func DefaultConfig() Config {
	return Config{
		Binary:          "pdb2pqr",
		ForceField:      "AMBER",
		TitrationMethod: "propka",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return fmt.Errorf("%w: binary is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ForceField) == "" {
		return fmt.Errorf("%w: force field is required", ErrInvalidConfig)
	}
	for _, a := range c.ExtraArgs {
		if a == "--pdb-output" || strings.HasPrefix(a, "--pdb-output=") {
			return fmt.Errorf("%w: --pdb-output is managed internally", ErrInvalidConfig)
		}
	}
	return nil
}

// Args returns the command line for the given file names.
func (c Config) Args(inPDB, outPDB, outPQR string) []string {
	args := []string{"--ff=" + c.ForceField, "--log-level", "CRITICAL"}
	if c.TitrationMethod != "" {
		args = append(args, "--titration-state-method", c.TitrationMethod)
	}
	args = append(args, c.ExtraArgs...)
	return append(args, "--pdb-output", outPDB, inPDB, outPQR)
}

// Digest identifies the settings that influence the output. Binary and
// TempDir are excluded so relocating the tool keeps cached results valid.
func (c Config) Digest() string {
	h := sha256.New()
	fmt.Fprintf(h, "ff=%s\x00titration=%s\x00", c.ForceField, c.TitrationMethod)
	for _, a := range c.ExtraArgs {
		fmt.Fprintf(h, "arg=%s\x00", a)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
