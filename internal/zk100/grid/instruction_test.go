package grid

import "testing"

// These golden vectors are pinned against the reference encoder so that a
// witness produced here and a commitment recomputed in a constrained proving
// environment agree bit-for-bit.
func TestEncodeGoldenVectors(t *testing.T) {
	cases := []struct {
		name string
		inst Instruction
		want uint32
	}{
		{"NOP", NOP(), 0x000C0201},
		{"MOV Lit(42), Acc", Mov(Lit(42), AccDst()), 0x2A010000},
		{"MOV Lit(42), Out", Mov(Lit(42), OutDst()), 0x2A010002},
		{"HLT", HLT(), 0x000D0201},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.inst.Encode()
			if got != c.want {
				t.Fatalf("%s.Encode() = 0x%08X, want 0x%08X", c.name, got, c.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	insts := []Instruction{
		NOP(),
		HLT(),
		Mov(Lit(42), AccDst()),
		Mov(Lit(42), OutDst()),
		Mov(AccSrc(), PortDst(PortRight)),
		Mov(PortSrc(PortLeft), AccDst()),
		Mov(InSrc(), PortDst(PortDown)),
		{Op: OpAdd, Src: Lit(10), Dst: Dst{Tag: DstNil}},
		{Op: OpSub, Src: PortSrc(PortUp), Dst: Dst{Tag: DstNil}},
		{Op: OpJmp, Src: Lit(0), Dst: Dst{Tag: DstNil}},
		{Op: OpJgz, Src: Lit(3), Dst: Dst{Tag: DstNil}},
	}
	for _, inst := range insts {
		word := inst.Encode()
		got := Decode(word)
		if got != inst {
			t.Fatalf("round trip mismatch: encoded %#v as 0x%08X, decoded as %#v", inst, word, got)
		}
	}
}

func TestDecodeFieldExtraction(t *testing.T) {
	inst := Mov(Lit(7), PortDst(PortDown))
	word := inst.Encode()

	if lit := uint8(word >> 24); lit != 7 {
		t.Errorf("lit field = %d, want 7", lit)
	}
	if dstPort := PortTag((word >> 20) & 0x3); dstPort != PortDown {
		t.Errorf("dst_port field = %v, want %v", dstPort, PortDown)
	}
	if op := Opcode((word >> 16) & 0xF); op != OpMov {
		t.Errorf("op field = %v, want %v", op, OpMov)
	}
}

func TestPortOpposite(t *testing.T) {
	cases := map[PortTag]PortTag{
		PortUp:    PortDown,
		PortDown:  PortUp,
		PortLeft:  PortRight,
		PortRight: PortLeft,
	}
	for p, want := range cases {
		if got := p.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", p, got, want)
		}
	}
}
