// Package attest computes the ZK-100 commitment layer: canonical encoding
// of programs and streams into field elements, the program/challenge/output
// Merkle commitments, and the seven-element public outputs record a proving
// backend consumes as its public input.
package attest

import (
	"fmt"

	"github.com/vybium/zk100/internal/zk100/core"
	"github.com/vybium/zk100/internal/zk100/grid"
)

// ProgramCommitment hashes each cell's instruction list (row-major, (0,0),
// (0,1), (1,0), (1,1)) into a per-cell Merkle digest, then takes the Merkle
// root of those four digests. An empty cell program contributes the zero
// digest, per core.MerkleRoot's empty-leaves rule.
func ProgramCommitment(field *core.Field, programs [grid.GridRows][grid.GridCols][]grid.Instruction) *core.FieldElement {
	digests := make([]*core.FieldElement, 0, grid.GridRows*grid.GridCols)
	for r := 0; r < grid.GridRows; r++ {
		for c := 0; c < grid.GridCols; c++ {
			digests = append(digests, core.MerkleRoot(field, encodeProgram(field, programs[r][c])))
		}
	}
	return core.MerkleRoot(field, digests)
}

func encodeProgram(field *core.Field, program []grid.Instruction) []*core.FieldElement {
	leaves := make([]*core.FieldElement, len(program))
	for i, inst := range program {
		leaves[i] = field.NewElementFromUint64(uint64(inst.Encode()))
	}
	return leaves
}

// ChallengeCommitment binds a challenge's input and expected-output streams
// into a single commitment: MerkleRoot([MerkleRoot(inputs), MerkleRoot(expected)]).
func ChallengeCommitment(field *core.Field, inputs, expected []uint32) *core.FieldElement {
	inputsRoot := core.MerkleRoot(field, wordsToElements(field, inputs))
	expectedRoot := core.MerkleRoot(field, wordsToElements(field, expected))
	return core.MerkleRoot(field, []*core.FieldElement{inputsRoot, expectedRoot})
}

// OutputCommitment commits to the grid's produced output stream.
func OutputCommitment(field *core.Field, outStream []uint32) *core.FieldElement {
	return core.MerkleRoot(field, wordsToElements(field, outStream))
}

func wordsToElements(field *core.Field, words []uint32) []*core.FieldElement {
	out := make([]*core.FieldElement, len(words))
	for i, w := range words {
		out[i] = field.NewElementFromUint64(uint64(w))
	}
	return out
}

// Score carries the run statistics that feed the public outputs record.
type Score struct {
	Cycles    uint64
	Msgs      uint64
	NodesUsed uint32
}

// PublicOutputs is the fixed seven-element record a proving backend
// consumes as its public input.
type PublicOutputs struct {
	ChallengeCommit *core.FieldElement
	ProgramCommit   *core.FieldElement
	OutputCommit    *core.FieldElement
	Score           Score
	Solved          bool
}

// Serialize lays PublicOutputs out in its fixed wire order:
// [challenge_commit, program_commit, output_commit, cycles, msgs,
// nodes_used, solved].
func (p *PublicOutputs) Serialize(field *core.Field) []*core.FieldElement {
	solved := field.Zero()
	if p.Solved {
		solved = field.One()
	}
	return []*core.FieldElement{
		p.ChallengeCommit,
		p.ProgramCommit,
		p.OutputCommit,
		field.NewElementFromUint64(p.Score.Cycles),
		field.NewElementFromUint64(p.Score.Msgs),
		field.NewElementFromUint64(uint64(p.Score.NodesUsed)),
		solved,
	}
}

// DeserializePublicOutputs parses a public outputs record back from its
// seven-element wire form. It fails iff the length isn't exactly 7.
func DeserializePublicOutputs(elements []*core.FieldElement) (*PublicOutputs, error) {
	if len(elements) != 7 {
		return nil, fmt.Errorf("public outputs record must have exactly 7 elements, got %d", len(elements))
	}
	return &PublicOutputs{
		ChallengeCommit: elements[0],
		ProgramCommit:   elements[1],
		OutputCommit:    elements[2],
		Score: Score{
			Cycles:    elements[3].Big().Uint64(),
			Msgs:      elements[4].Big().Uint64(),
			NodesUsed: uint32(elements[5].Big().Uint64()),
		},
		Solved: elements[6].IsOne(),
	}, nil
}

// String renders the three commitments as 0x-prefixed hex and the score
// fields in decimal, for operator/log visibility only - it never changes the
// binary record itself.
func (p *PublicOutputs) String() string {
	return fmt.Sprintf(
		"{challenge_commit: %s, program_commit: %s, output_commit: %s, cycles: %d, msgs: %d, nodes_used: %d, solved: %v}",
		hexFelt(p.ChallengeCommit), hexFelt(p.ProgramCommit), hexFelt(p.OutputCommit),
		p.Score.Cycles, p.Score.Msgs, p.Score.NodesUsed, p.Solved,
	)
}

func hexFelt(fe *core.FieldElement) string {
	return "0x" + fe.Big().Text(16)
}
