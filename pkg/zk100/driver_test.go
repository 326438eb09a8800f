package zk100

import (
	"testing"

	"github.com/vybium/zk100/internal/zk100/grid"
)

func TestDriverRunPassThroughConstant(t *testing.T) {
	var programs [grid.GridRows][grid.GridCols][]grid.Instruction
	programs[1][1] = []grid.Instruction{
		grid.Mov(grid.Lit(42), grid.OutDst()),
		grid.HLT(),
	}

	driver, err := NewDriver(DefaultDriverConfig())
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	out, err := driver.Run(Challenge{
		ProgWords: EncodeProgWords(programs),
		Inputs:    nil,
		Expected:  []uint32{42},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Solved {
		t.Fatal("expected solved = true")
	}
	if out.Score.Cycles != 3 {
		t.Errorf("cycles = %d, want 3", out.Score.Cycles)
	}
	if out.Score.Msgs != 1 {
		t.Errorf("msgs = %d, want 1", out.Score.Msgs)
	}
	if out.Score.NodesUsed != 1 {
		t.Errorf("nodes_used = %d, want 1", out.Score.NodesUsed)
	}
}

func TestDriverRunEmptyProgramIsTriviallySolved(t *testing.T) {
	driver, err := NewDriver(DefaultDriverConfig())
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	out, err := driver.Run(Challenge{
		ProgWords: []uint32{0, 0, 0, 0},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Solved {
		t.Fatal("expected solved = true for an empty grid with no expected output")
	}
	if out.Score.NodesUsed != 0 {
		t.Errorf("nodes_used = %d, want 0", out.Score.NodesUsed)
	}
}

func TestDriverRunRespectsCycleCap(t *testing.T) {
	var programs [grid.GridRows][grid.GridCols][]grid.Instruction
	programs[0][0] = []grid.Instruction{
		{Op: grid.OpJmp, Src: grid.Lit(0), Dst: grid.Dst{Tag: grid.DstNil}},
		grid.HLT(),
	}

	driver, err := NewDriver(DefaultDriverConfig().WithMaxCycles(50))
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	out, err := driver.Run(Challenge{ProgWords: EncodeProgWords(programs)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Score.Cycles != 50 {
		t.Errorf("cycles = %d, want 50 (cycle cap)", out.Score.Cycles)
	}
}

func TestDriverRunTruncatedProgWordsYieldsEmptyTrailingCells(t *testing.T) {
	driver, err := NewDriver(DefaultDriverConfig())
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	// Only declares (0,0)'s program length with no instructions following
	// and no words at all for the other three cells.
	out, err := driver.Run(Challenge{ProgWords: []uint32{0}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Score.NodesUsed != 0 {
		t.Errorf("nodes_used = %d, want 0", out.Score.NodesUsed)
	}
}

func TestNewDriverRejectsInvalidConfig(t *testing.T) {
	_, err := NewDriver(DefaultDriverConfig().WithMaxCycles(-1))
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestDriverRunRejectsNonPoseidonHashFamily(t *testing.T) {
	driver, err := NewDriver(DefaultDriverConfig().WithHashFamily(HashFamilyBlake2s))
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}

	_, err = driver.Run(Challenge{ProgWords: []uint32{0, 0, 0, 0}})
	if err == nil {
		t.Fatal("expected Run to reject a non-Poseidon HashFamily")
	}
}
