package zk100

import (
	"github.com/vybium/zk100/internal/zk100/attest"
	"github.com/vybium/zk100/internal/zk100/core"
	"github.com/vybium/zk100/internal/zk100/grid"
)

// FieldElement is the public alias for the field element type used
// throughout the commitment layer.
type FieldElement = core.FieldElement

// Instruction is the public alias for a decoded cell instruction.
type Instruction = grid.Instruction

// Score carries the run statistics reported in a PublicOutputs record.
type Score = attest.Score

// PublicOutputs is the fixed seven-element record a proving backend
// consumes as its public input.
type PublicOutputs = attest.PublicOutputs

// Challenge is the external input to a Driver run: the grid's per-cell
// programs (encoded as prog_words, decoded internally) plus the input and
// expected-output streams.
type Challenge struct {
	// ProgWords is the row-major, length-prefixed program encoding: for
	// each of the four cells, a count n followed by n encoded
	// instructions. A truncated ProgWords is tolerated - a cell whose
	// count runs past the end of the slice keeps the instructions that
	// are present, and any cell with no words left at all is treated as
	// an empty program.
	ProgWords []uint32
	Inputs    []uint32
	Expected  []uint32
}
