package attest

import (
	"strings"
	"testing"

	"github.com/vybium/zk100/internal/zk100/core"
	"github.com/vybium/zk100/internal/zk100/grid"
)

func TestProgramCommitmentEmptyGridIsAllZeroDigests(t *testing.T) {
	field := core.DefaultPrimeField
	var programs [grid.GridRows][grid.GridCols][]grid.Instruction

	got := ProgramCommitment(field, programs)
	want := core.MerkleRoot(field, []*core.FieldElement{
		field.Zero(), field.Zero(), field.Zero(), field.Zero(),
	})
	if !got.Equal(want) {
		t.Fatalf("ProgramCommitment(empty grid) mismatch")
	}
}

func TestProgramCommitmentIsRowMajorAndOrderSensitive(t *testing.T) {
	field := core.DefaultPrimeField
	var a, b [grid.GridRows][grid.GridCols][]grid.Instruction
	a[0][0] = []grid.Instruction{grid.NOP()}
	b[0][1] = []grid.Instruction{grid.NOP()}

	if ProgramCommitment(field, a).Equal(ProgramCommitment(field, b)) {
		t.Fatalf("ProgramCommitment must depend on which cell the program is placed in")
	}
}

func TestChallengeCommitmentDeterministic(t *testing.T) {
	field := core.DefaultPrimeField
	a := ChallengeCommitment(field, []uint32{1, 2, 3}, []uint32{9})
	b := ChallengeCommitment(field, []uint32{1, 2, 3}, []uint32{9})
	if !a.Equal(b) {
		t.Fatalf("ChallengeCommitment is not deterministic")
	}
	c := ChallengeCommitment(field, []uint32{9}, []uint32{1, 2, 3})
	if a.Equal(c) {
		t.Fatalf("ChallengeCommitment must distinguish inputs from expected")
	}
}

func TestPublicOutputsSerializeRoundTrip(t *testing.T) {
	field := core.DefaultPrimeField
	po := &PublicOutputs{
		ChallengeCommit: field.NewElementFromInt64(11),
		ProgramCommit:   field.NewElementFromInt64(22),
		OutputCommit:    field.NewElementFromInt64(33),
		Score:           Score{Cycles: 4, Msgs: 1, NodesUsed: 3},
		Solved:          true,
	}
	elements := po.Serialize(field)
	if len(elements) != 7 {
		t.Fatalf("Serialize produced %d elements, want 7", len(elements))
	}

	back, err := DeserializePublicOutputs(elements)
	if err != nil {
		t.Fatalf("DeserializePublicOutputs: %v", err)
	}
	if !back.ChallengeCommit.Equal(po.ChallengeCommit) ||
		!back.ProgramCommit.Equal(po.ProgramCommit) ||
		!back.OutputCommit.Equal(po.OutputCommit) ||
		back.Score != po.Score ||
		back.Solved != po.Solved {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, po)
	}
}

func TestDeserializePublicOutputsRejectsWrongLength(t *testing.T) {
	field := core.DefaultPrimeField
	for _, n := range []int{0, 6, 8} {
		elements := make([]*core.FieldElement, n)
		for i := range elements {
			elements[i] = field.Zero()
		}
		if _, err := DeserializePublicOutputs(elements); err == nil {
			t.Fatalf("expected error for length %d", n)
		}
	}
}

func TestPublicOutputsStringIsHex(t *testing.T) {
	field := core.DefaultPrimeField
	po := &PublicOutputs{
		ChallengeCommit: field.NewElementFromInt64(255),
		ProgramCommit:   field.Zero(),
		OutputCommit:    field.Zero(),
	}
	s := po.String()
	if len(s) == 0 {
		t.Fatalf("String() returned empty")
	}
	if !strings.Contains(s, "challenge_commit: 0xff,") {
		t.Fatalf("String() = %q, want challenge_commit rendered as 0xff", s)
	}
}
