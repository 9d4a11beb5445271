package borrowck

import (
	"slices"

	"borrowck/internal/mir"
)

// expire ends every borrow whose holder is dead at loc. A holder that
// is never read anywhere keeps its borrow for the rest of the body.
func (c *checker) expire(s *state, loc mir.Location) {
	for i := range s.locals {
		l := &s.locals[i]
		if len(l.borrows) == 0 {
			continue
		}
		l.borrows = slices.DeleteFunc(l.borrows, func(br borrow) bool {
			return c.live.IsRead(br.holder) && !c.live.LiveBefore(loc, br.holder)
		})
	}
}
