package mir

// CFG holds the successor and predecessor maps of a body. Both are
// indexed by BlockID. The entry block has no predecessors unless some
// block jumps back to it.
type CFG struct {
	Succs [][]BlockID
	Preds [][]BlockID
}

// BuildCFG derives the CFG from block terminators. Targets outside the
// body are ignored; Validate reports them.
func BuildCFG(b *Body) *CFG {
	n := len(b.Blocks)
	g := &CFG{
		Succs: make([][]BlockID, n),
		Preds: make([][]BlockID, n),
	}
	for i := range b.Blocks {
		from := BlockID(i) //nolint:gosec // bounded by block count
		for _, to := range b.Blocks[i].Term.Successors() {
			if to < 0 || int(to) >= n {
				continue
			}
			g.Succs[i] = append(g.Succs[i], to)
			if !containsBlock(g.Preds[to], from) {
				g.Preds[to] = append(g.Preds[to], from)
			}
		}
	}
	return g
}

// Reachable marks every block reachable from the entry block.
func (g *CFG) Reachable() []bool {
	n := len(g.Succs)
	seen := make([]bool, n)
	if n == 0 {
		return seen
	}
	// ring buffer: each block is enqueued at most once
	queue := make([]BlockID, n)
	head, tail := 0, 0
	seen[EntryBlock] = true
	queue[tail] = EntryBlock
	tail++
	for head < tail {
		id := queue[head]
		head++
		for _, succ := range g.Succs[id] {
			if seen[succ] {
				continue
			}
			seen[succ] = true
			queue[tail] = succ
			tail++
		}
	}
	return seen
}

func containsBlock(list []BlockID, id BlockID) bool {
	for _, b := range list {
		if b == id {
			return true
		}
	}
	return false
}
