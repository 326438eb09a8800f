package grid

// StepStatus classifies the outcome of one StepCycle call.
type StepStatus int

const (
	// Running means at least one cell is still active and the grid made
	// progress (or halted a cell via fetch failure) this cycle.
	Running StepStatus = iota
	// Halted means every cell has permanently halted.
	Halted
	// Deadlock means every still-active cell is blocked and none of them
	// made any progress this cycle.
	Deadlock
)

func (s StepStatus) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Deadlock:
		return "Deadlock"
	default:
		return "Unknown"
	}
}

// StepResult is the outcome of a single StepCycle call.
type StepResult struct {
	Status StepStatus
}

type portKey struct {
	r, c int
	port PortTag
}

// cellCtx holds one cell's per-cycle intent, computed during the
// observation-only first pass against a frozen view of the grid.
type cellCtx struct {
	r, c int
	node *NodeState
	inst Instruction

	srcNeedsPort bool
	srcPort      PortTag
	srcImmediate bool
	srcValue     uint32
	srcBlocked   bool // Last, In at the wrong cell, or In exhausted

	dstNeedsPort bool
	dstPort      PortTag
	dstImmediate bool
	dstBlocked   bool // Last, or Out at the wrong cell

	// dstWriteValue is only meaningful when dstNeedsPort is true and
	// srcImmediate is true: the value this cell wants to send out.
	// A cell whose Src itself requires a port read cannot also supply a
	// port write in the same cycle (the value would depend on a match
	// that has not happened yet) - that combination always blocks.
	dstWriteValue uint32
}

// StepCycle advances every non-halted cell in the grid by exactly one
// cycle, using a two-pass algorithm: pass one observes a frozen snapshot of
// the grid and records each active cell's intent (what it wants to read or
// write, and from/to which port); pass two matches port reads against port
// writes between neighbors and applies every cell's effect. There is no
// buffering - an unmatched port operation blocks for the whole cycle rather
// than queuing.
func StepCycle(g *GridState) StepResult {
	var ctxs []*cellCtx
	progress := false

	// Pass 0: fetch. A cell whose program counter can no longer address an
	// instruction halts permanently; this is itself progress.
	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			n := &g.Nodes[r][c]
			if n.Halted {
				continue
			}
			if n.PC < 0 || n.PC >= len(n.Program) {
				n.Halted = true
				progress = true
				continue
			}
			ctx := &cellCtx{r: r, c: c, node: n, inst: n.Program[n.PC]}
			classifySrc(g, ctx)
			classifyDst(ctx)
			ctxs = append(ctxs, ctx)
		}
	}

	// Pass 1: collect port read/write requests from cells whose operand is
	// neither blocked-always nor already immediate.
	writes := map[portKey]uint32{}
	reads := map[portKey]bool{}
	for _, ctx := range ctxs {
		if ctx.srcBlocked || ctx.dstBlocked {
			continue
		}
		if ctx.dstNeedsPort && !ctx.srcImmediate {
			continue // port-to-port relay: always blocks, so it offers no read
		}
		if ctx.srcNeedsPort {
			reads[portKey{ctx.r, ctx.c, ctx.srcPort}] = true
		}
		if ctx.dstNeedsPort && ctx.srcImmediate {
			writes[portKey{ctx.r, ctx.c, ctx.dstPort}] = ctx.dstWriteValue
		}
	}

	// Pass 2: match writes to the opposite-facing read at the neighboring
	// cell in the write's direction, then apply every fully resolved
	// cell's effect.
	matchedReadValue := map[portKey]uint32{}
	writeMatched := map[portKey]bool{}
	for wk, value := range writes {
		nr, nc, ok := neighbor(wk.r, wk.c, wk.port)
		if !ok {
			continue
		}
		rk := portKey{nr, nc, wk.port.Opposite()}
		if reads[rk] {
			matchedReadValue[rk] = value
			writeMatched[wk] = true
		}
	}

	for _, ctx := range ctxs {
		resolvedSrc, srcVal, srcOK := resolveSrc(ctx, matchedReadValue)
		resolvedDst, dstOK := resolveDst(ctx, writeMatched)
		if !resolvedSrc || !srcOK || !resolvedDst || !dstOK {
			continue // blocked this cycle: no mutation, no pc advance
		}
		applyEffect(g, ctx, srcVal)
		progress = true
	}

	if g.AllHalted() {
		return StepResult{Status: Halted}
	}
	if !progress {
		return StepResult{Status: Deadlock}
	}
	return StepResult{Status: Running}
}

// classifySrc determines how ctx's Src operand resolves this cycle.
func classifySrc(g *GridState, ctx *cellCtx) {
	switch ctx.inst.Src.Tag {
	case SrcLit:
		ctx.srcImmediate = true
		ctx.srcValue = uint32(ctx.inst.Src.Lit)
	case SrcAcc:
		ctx.srcImmediate = true
		ctx.srcValue = ctx.node.Acc
	case SrcNil:
		ctx.srcImmediate = true
		ctx.srcValue = 0
	case SrcIn:
		if ctx.r == 0 && ctx.c == 0 && g.InCursor < len(g.InStream) {
			ctx.srcImmediate = true
			ctx.srcValue = g.InStream[g.InCursor]
		} else {
			ctx.srcBlocked = true
		}
	case SrcPort:
		ctx.srcNeedsPort = true
		ctx.srcPort = ctx.inst.Src.Port
	case SrcLast:
		ctx.srcBlocked = true
	default:
		ctx.srcImmediate = true
	}
}

// classifyDst determines how ctx's Dst operand resolves this cycle. The
// write value for a port destination is only known here when Src is
// immediate; a Port-to-Port relay in a single instruction is not supported
// and always blocks (see resolveDst).
func classifyDst(ctx *cellCtx) {
	switch ctx.inst.Dst.Tag {
	case DstAcc, DstNil:
		ctx.dstImmediate = true
	case DstOut:
		if ctx.r == GridRows-1 && ctx.c == GridCols-1 {
			ctx.dstImmediate = true
		} else {
			ctx.dstBlocked = true
		}
	case DstPort:
		ctx.dstNeedsPort = true
		ctx.dstPort = ctx.inst.Dst.Port
		if ctx.srcImmediate {
			ctx.dstWriteValue = ctx.srcValue
		}
	case DstLast:
		ctx.dstBlocked = true
	default:
		ctx.dstImmediate = true
	}
}

func resolveSrc(ctx *cellCtx, matchedReadValue map[portKey]uint32) (resolved bool, value uint32, ok bool) {
	if ctx.srcBlocked {
		return true, 0, false
	}
	if ctx.srcImmediate {
		return true, ctx.srcValue, true
	}
	if ctx.srcNeedsPort {
		v, matched := matchedReadValue[portKey{ctx.r, ctx.c, ctx.srcPort}]
		return true, v, matched
	}
	return true, 0, true
}

func resolveDst(ctx *cellCtx, writeMatched map[portKey]bool) (resolved bool, ok bool) {
	if ctx.dstBlocked {
		return true, false
	}
	if ctx.dstImmediate {
		return true, true
	}
	if ctx.dstNeedsPort {
		if !ctx.srcImmediate {
			// Port-to-port relay in one instruction: unsupported, blocks.
			return true, false
		}
		return true, writeMatched[portKey{ctx.r, ctx.c, ctx.dstPort}]
	}
	return true, true
}

// applyEffect mutates the cell and/or grid for a fully resolved instruction
// and advances its program counter.
func applyEffect(g *GridState, ctx *cellCtx, srcVal uint32) {
	n := ctx.node
	nextPC := n.PC + 1

	switch ctx.inst.Op {
	case OpMov:
		writeDst(g, ctx, srcVal)
	case OpAdd:
		n.Acc = WrapAdd(n.Acc, srcVal)
	case OpSub:
		n.Acc = WrapSub(n.Acc, srcVal)
	case OpNeg:
		n.Acc = WrapSub(0, n.Acc)
	case OpSav:
		n.Bak = n.Acc
	case OpSwp:
		n.Acc, n.Bak = n.Bak, n.Acc
	case OpJmp:
		nextPC = int(int32(srcVal))
	case OpJz:
		zero, _ := n.Flags()
		if zero {
			nextPC = int(int32(srcVal))
		}
	case OpJnz:
		zero, _ := n.Flags()
		if !zero {
			nextPC = int(int32(srcVal))
		}
	case OpJgz:
		zero, negative := n.Flags()
		if !zero && !negative {
			nextPC = int(int32(srcVal))
		}
	case OpJlz:
		_, negative := n.Flags()
		if negative {
			nextPC = int(int32(srcVal))
		}
	case OpNop, OpHlt:
		// no effect beyond advancing pc; a cell only halts via fetch
		// failure, never directly from executing HLT.
	}

	if ctx.inst.Src.Tag == SrcIn && ctx.r == 0 && ctx.c == 0 {
		g.InCursor++
	}

	n.PC = nextPC
}

// writeDst applies a MOV's destination write once its value is known.
func writeDst(g *GridState, ctx *cellCtx, value uint32) {
	switch ctx.inst.Dst.Tag {
	case DstAcc:
		ctx.node.Acc = value
	case DstNil:
		// discard
	case DstOut:
		g.OutStream = append(g.OutStream, value)
		if ctx.r == GridRows-1 && ctx.c == GridCols-1 {
			g.Msgs++
		}
	case DstPort:
		// delivered via the write/read match in pass two; nothing further
		// to do here.
	}
}
