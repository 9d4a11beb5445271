package borrowck

import "borrowck/internal/mir"

// solve runs the forward dataflow to a fixpoint and returns how many
// block transfers it took. Entry states only grow: each new entry is
// joined with the previous one, so the lattice height bounds the work.
func (c *checker) solve() int {
	if !c.executable(mir.EntryBlock) {
		return 0
	}
	initial := entryState(c.body)
	limit := c.iterationLimit()

	queued := make([]bool, len(c.body.Blocks))
	queue := []mir.BlockID{mir.EntryBlock}
	queued[mir.EntryBlock] = true

	transfers := 0
	for len(queue) > 0 && transfers < limit {
		id := queue[0]
		queue = queue[1:]
		queued[id] = false

		in, ok := c.mergePreds(id, initial)
		if !ok {
			continue
		}
		if old := c.entries[id]; old != nil {
			in = join(*old, in)
			if in.equal(*old) {
				continue
			}
		}
		c.entries[id] = &in

		transfers++
		out := c.transfer(id, in, false)
		if prev := c.exits[id]; prev != nil && prev.equal(out) {
			continue
		}
		c.exits[id] = &out

		for _, succ := range c.cfg.Succs[id] {
			if queued[succ] || !c.executable(succ) {
				continue
			}
			queued[succ] = true
			queue = append(queue, succ)
		}
	}
	return transfers
}

// mergePreds joins the exit states of every analyzed predecessor. The
// entry block also starts from the initial state. ok is false when no
// input is known yet.
func (c *checker) mergePreds(id mir.BlockID, initial state) (state, bool) {
	var acc state
	have := false
	if id == mir.EntryBlock {
		acc = initial.clone()
		have = true
	}
	for _, pred := range c.cfg.Preds[id] {
		exit := c.exits[pred]
		if exit == nil {
			continue
		}
		if !have {
			acc = exit.clone()
			have = true
			continue
		}
		acc = join(acc, *exit)
	}
	return acc, have
}

// iterationLimit caps block transfers at
// blocks × (3·locals + borrow sites + 2), past the lattice height.
func (c *checker) iterationLimit() int {
	sites := 0
	for i := range c.body.Blocks {
		for j := range c.body.Blocks[i].Statements {
			st := &c.body.Blocks[i].Statements[j]
			if st.Kind == mir.StatementAssign && st.Assign.Src.Kind == mir.RValueRef {
				sites++
			}
		}
	}
	return len(c.body.Blocks) * (3*len(c.body.Locals) + sites + 2)
}
