package pdbio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/protfeat/structure"
)

// ErrMalformedRecord matches every RecordError.
var ErrMalformedRecord = errors.New("pdbio: malformed coordinate record")

// RecordError reports an unparsable ATOM/HETATM line.
type RecordError struct {
	Line  int
	Field string
	cause error
}

func (e *RecordError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("pdbio: line %d: bad %s: %v", e.Line, e.Field, e.cause)
	}
	return fmt.Sprintf("pdbio: line %d: bad %s", e.Line, e.Field)
}

func (e *RecordError) Unwrap() error { return e.cause }

// Is makes errors.Is(e, ErrMalformedRecord) true.
func (e *RecordError) Is(target error) bool { return target == ErrMalformedRecord }

// minRecordLen covers the columns up to and including z.
const minRecordLen = 54

// Write encodes the atoms of s as ATOM records followed by END.
func Write(w io.Writer, s *structure.Structure) error {
	bw := bufio.NewWriter(w)
	for i, a := range s.All() {
		fmt.Fprintf(bw, "ATOM  %5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
			(i+1)%100000,
			atomNameField(a),
			clip(a.ResidueName, 3),
			clip(a.ChainID, 1),
			a.ResidueID%10000,
			a.Coord.X, a.Coord.Y, a.Coord.Z,
			1.0, 0.0,
			clip(a.ElementSymbol(), 2),
		)
	}
	if _, err := bw.WriteString("END\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// atomNameField aligns one-letter elements to column 14 as PDB requires.
func atomNameField(a structure.Atom) string {
	name := clip(a.AtomName, 4)
	if len(name) < 4 && len(a.ElementSymbol()) == 1 {
		return " " + name
	}
	return name
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Read decodes the ATOM and HETATM records of the first model into a
// structure named name. Atoms are indexed in file order. Of alternate
// locations only the first label seen in each residue is kept.
func Read(r io.Reader, name string) (*structure.Structure, error) {
	var atoms []structure.Atom
	altLocs := make(map[structure.ResidueKey]string)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()

		switch record := strings.TrimSpace(field(text, 0, 6)); record {
		case "ATOM", "HETATM":
			a, err := parseAtom(text, line)
			if err != nil {
				return nil, err
			}
			if alt := strings.TrimSpace(field(text, 16, 17)); alt != "" {
				if first, ok := altLocs[a.Residue()]; !ok {
					altLocs[a.Residue()] = alt
				} else if first != alt {
					continue
				}
			}
			a.Index = len(atoms)
			atoms = append(atoms, a)
		case "ENDMDL":
			return structure.New(name, atoms)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return structure.New(name, atoms)
}

func parseAtom(text string, line int) (structure.Atom, error) {
	if len(text) < minRecordLen {
		return structure.Atom{}, &RecordError{Line: line, Field: "length"}
	}

	resID, err := strconv.Atoi(strings.TrimSpace(field(text, 22, 26)))
	if err != nil {
		return structure.Atom{}, &RecordError{Line: line, Field: "residue sequence number", cause: err}
	}

	var xyz [3]float64
	for k, col := range [3]int{30, 38, 46} {
		v, err := strconv.ParseFloat(strings.TrimSpace(field(text, col, col+8)), 64)
		if err != nil {
			return structure.Atom{}, &RecordError{Line: line, Field: "coordinate", cause: err}
		}
		xyz[k] = v
	}

	return structure.Atom{
		ChainID:     strings.TrimSpace(field(text, 21, 22)),
		ResidueID:   resID,
		ResidueName: strings.TrimSpace(field(text, 17, 20)),
		AtomName:    strings.TrimSpace(field(text, 12, 16)),
		Element:     strings.TrimSpace(field(text, 76, 78)),
		Coord:       r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]},
	}, nil
}

// field returns text[from:to], clipped to the line length.
func field(text string, from, to int) string {
	if from >= len(text) {
		return ""
	}
	return text[from:min(to, len(text))]
}
