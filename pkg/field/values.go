package field

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Placeholder is the decoded form of the "*" token, used by datatypes whose
// value may be left undefined (sequences, alignments, optional identifiers).
type Placeholder struct{}

// String returns "*".
func (Placeholder) String() string { return "*" }

// IsPlaceholder reports whether v is the undefined "*" value.
func IsPlaceholder(v any) bool {
	switch p := v.(type) {
	case Placeholder:
		return true
	case *Placeholder:
		return p != nil
	}
	return false
}

// Orientation is the strand of a referenced sequence.
type Orientation byte

const (
	Forward Orientation = '+'
	Reverse Orientation = '-'
)

// Valid reports whether o is Forward or Reverse.
func (o Orientation) Valid() bool { return o == Forward || o == Reverse }

// Invert returns the opposite orientation.
func (o Orientation) Invert() Orientation {
	if o == Forward {
		return Reverse
	}
	return Forward
}

func (o Orientation) String() string { return string(o) }

// OrientedRef is a record name followed by an orientation, e.g. "11+".
type OrientedRef struct {
	Name   string
	Orient Orientation
}

func (r OrientedRef) String() string { return r.Name + string(r.Orient) }

// Position is a GFA2 sequence coordinate. Last marks the "$" suffix, which
// flags the position as the end of the sequence.
type Position struct {
	Value int64
	Last  bool
}

func (p Position) String() string {
	s := strconv.FormatInt(p.Value, 10)
	if p.Last {
		s += "$"
	}
	return s
}

// IsFirst reports whether the position is the first base of the sequence.
func (p Position) IsFirst() bool { return p.Value == 0 }

// CIGAROp is a single operation of a CIGAR string.
type CIGAROp struct {
	Len int64
	Op  byte
}

// CIGAR is a run-length encoded alignment, e.g. "4M1D3M".
type CIGAR []CIGAROp

const cigarOps = "MIDNSHPX="

func (c CIGAR) String() string {
	var b strings.Builder
	for _, op := range c {
		b.WriteString(strconv.FormatInt(op.Len, 10))
		b.WriteByte(op.Op)
	}
	return b.String()
}

// Trace is a GFA2 trace alignment: a list of trace-point distances.
type Trace []int64

func (t Trace) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}

// ByteArray is the decoded value of an H tag.
type ByteArray []byte

func (b ByteArray) String() string { return strings.ToUpper(hex.EncodeToString(b)) }

// NumericArray is the decoded value of a B tag. Subtype is one of "cCsSiIf";
// integer subtypes use Ints, the float subtype uses Floats.
type NumericArray struct {
	Subtype byte
	Ints    []int64
	Floats  []float64
}

// Len returns the number of elements.
func (n NumericArray) Len() int {
	if n.Subtype == 'f' {
		return len(n.Floats)
	}
	return len(n.Ints)
}

// numericRange holds the inclusive bounds of each integer subtype.
var numericRange = map[byte][2]int64{
	'c': {-1 << 7, 1<<7 - 1},
	'C': {0, 1<<8 - 1},
	's': {-1 << 15, 1<<15 - 1},
	'S': {0, 1<<16 - 1},
	'i': {-1 << 31, 1<<31 - 1},
	'I': {0, 1<<32 - 1},
}
