package zk100

import (
	"math/big"

	"github.com/vybium/zk100/internal/zk100/attest"
	"github.com/vybium/zk100/internal/zk100/core"
	"github.com/vybium/zk100/internal/zk100/grid"
)

// Driver ties the grid, core and attest packages into the public
// assembly-in, public-outputs-out pipeline.
type Driver struct {
	config DriverConfig
}

// NewDriver builds a Driver from a validated DriverConfig.
func NewDriver(config DriverConfig) (*Driver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Driver{config: config}, nil
}

// Run decodes a challenge's prog_words, executes the grid to termination
// (halt, deadlock, or this Driver's cycle cap), and returns the resulting
// public outputs record. The VM's own runtime outcomes are never errors;
// Run only returns an error for a malformed field modulus (which Validate
// should already have caught at construction) or a HashFamily other than
// Poseidon (which Validate accepts as a legal config value but Run still
// refuses to compute commitments with).
func (d *Driver) Run(challenge Challenge) (*PublicOutputs, error) {
	return d.run(challenge, nil)
}

// RunWithRecorder behaves like Run but also records a CycleSnapshot after
// every cycle into rec, for operator debugging and replay. Pass a nil
// recorder (or call Run) to skip recording entirely.
func (d *Driver) RunWithRecorder(challenge Challenge, rec *grid.CycleRecorder) (*PublicOutputs, error) {
	return d.run(challenge, rec)
}

func (d *Driver) run(challenge Challenge, rec *grid.CycleRecorder) (*PublicOutputs, error) {
	if d.config.HashFamily != HashFamilyPoseidon {
		return nil, newError(ErrInvalidConfig, "Driver.Run only computes commitments with HashFamilyPoseidon", nil)
	}
	modulus, ok := new(big.Int).SetString(d.config.FieldModulus, 10)
	if !ok {
		return nil, newError(ErrInvalidConfig, "FieldModulus must be a decimal integer", nil)
	}
	field, err := core.NewField(modulus)
	if err != nil {
		return nil, newError(ErrFieldCreation, "failed to construct commitment field", err)
	}

	programs := decodeProgWords(challenge.ProgWords)
	g := grid.NewGridState(programs, challenge.Inputs)

	var cycles uint64
	for {
		cycles++
		result := grid.RunCycle(g, int(cycles), rec)
		if result.Status != grid.Running {
			break
		}
		if cycles >= uint64(d.config.MaxCycles) {
			break
		}
	}

	nodesUsed := countUsedNodes(programs)
	solved := streamsEqual(g.OutStream, challenge.Expected)

	po := &attest.PublicOutputs{
		ChallengeCommit: attest.ChallengeCommitment(field, challenge.Inputs, challenge.Expected),
		ProgramCommit:   attest.ProgramCommitment(field, programs),
		OutputCommit:    attest.OutputCommitment(field, g.OutStream),
		Score: attest.Score{
			Cycles:    cycles,
			Msgs:      g.Msgs,
			NodesUsed: nodesUsed,
		},
		Solved: solved,
	}
	return po, nil
}

// decodeProgWords parses the row-major, length-prefixed prog_words layout
// into per-cell instruction lists. The decode never fails: a cell whose
// count runs past the end of words keeps the instructions that are present,
// and running out of words before a cell's length prefix leaves that cell
// (and every cell after it) with an empty program.
func decodeProgWords(words []uint32) [grid.GridRows][grid.GridCols][]grid.Instruction {
	var programs [grid.GridRows][grid.GridCols][]grid.Instruction
	idx := 0
	for r := 0; r < grid.GridRows; r++ {
		for c := 0; c < grid.GridCols; c++ {
			if idx >= len(words) {
				continue
			}
			n := int(words[idx])
			idx++
			if n < 0 {
				n = 0
			}
			end := idx + n
			if end > len(words) {
				end = len(words)
			}
			insts := make([]grid.Instruction, 0, end-idx)
			for ; idx < end; idx++ {
				insts = append(insts, grid.Decode(words[idx]))
			}
			programs[r][c] = insts
		}
	}
	return programs
}

func countUsedNodes(programs [grid.GridRows][grid.GridCols][]grid.Instruction) uint32 {
	var used uint32
	for r := 0; r < grid.GridRows; r++ {
		for c := 0; c < grid.GridCols; c++ {
			if len(programs[r][c]) > 0 {
				used++
			}
		}
	}
	return used
}

func streamsEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EncodeProgWords is the inverse of decodeProgWords's layout, exposed so
// callers (this repository's tests among them) can build a Challenge.ProgWords from
// per-cell instruction lists without duplicating the length-prefix format.
func EncodeProgWords(programs [grid.GridRows][grid.GridCols][]grid.Instruction) []uint32 {
	var words []uint32
	for r := 0; r < grid.GridRows; r++ {
		for c := 0; c < grid.GridCols; c++ {
			words = append(words, uint32(len(programs[r][c])))
			for _, inst := range programs[r][c] {
				words = append(words, inst.Encode())
			}
		}
	}
	return words
}
