package mir

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants the borrow checker relies
// on. It returns every violation found, joined.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	seen := make(map[string]bool, len(m.Bodies))
	for _, b := range m.Bodies {
		if b == nil {
			errs = append(errs, errors.New("nil body"))
			continue
		}
		if seen[b.Name] {
			errs = append(errs, fmt.Errorf("body %s: defined twice", b.Name))
		}
		seen[b.Name] = true
		if err := ValidateBody(b); err != nil {
			errs = append(errs, fmt.Errorf("body %s: %w", b.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateBody checks a single body.
func ValidateBody(b *Body) error {
	var errs []error

	if len(b.Blocks) == 0 {
		errs = append(errs, errors.New("no basic blocks"))
	}
	if len(b.Locals) < len(b.Params)+1 {
		errs = append(errs, fmt.Errorf("%d locals cannot hold the return slot and %d params", len(b.Locals), len(b.Params)))
	}
	if err := validateBlocksTerminated(b); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlockTargets(b); err != nil {
		errs = append(errs, err)
	}
	if err := validateLocalIDs(b); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(b *Body) error {
	var errs []error
	for i := range b.Blocks {
		if !b.Blocks[i].Terminated() {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

func validateBlockTargets(b *Body) error {
	var errs []error
	blockExists := func(id BlockID) bool {
		return id >= 0 && int(id) < len(b.Blocks)
	}
	for i := range b.Blocks {
		term := &b.Blocks[i].Term
		for _, target := range term.Successors() {
			if !blockExists(target) {
				errs = append(errs, fmt.Errorf("bb%d: target %s does not exist", i, target))
			}
		}
		if term.Kind == TermSwitchInt {
			seen := make(map[int64]bool, len(term.SwitchInt.Cases))
			for _, c := range term.SwitchInt.Cases {
				if seen[c.Value] {
					errs = append(errs, fmt.Errorf("bb%d: switchInt has duplicate case %d", i, c.Value))
				}
				seen[c.Value] = true
			}
		}
	}
	return errors.Join(errs...)
}

func validateLocalIDs(b *Body) error {
	var errs []error
	check := func(ctx string) func(LocalID) {
		return func(id LocalID) {
			switch {
			case !LocalPlace(id).IsValid():
				errs = append(errs, fmt.Errorf("%s: place names no local", ctx))
			case id < 0 || int(id) >= len(b.Locals):
				errs = append(errs, fmt.Errorf("%s: local %s does not exist", ctx, id))
			}
		}
	}
	for i := range b.Blocks {
		bb := &b.Blocks[i]
		for j := range bb.Statements {
			fn := check(fmt.Sprintf("bb%d stmt %d", i, j))
			StatementReads(&bb.Statements[j], fn)
			StatementWrites(&bb.Statements[j], fn)
		}
		fn := check(fmt.Sprintf("bb%d terminator", i))
		TerminatorReads(&bb.Term, fn)
		TerminatorWrites(&bb.Term, fn)
	}
	return errors.Join(errs...)
}
