package diag

type Bag struct {
	items      []Diagnostic
	max        int
	dropped    int
	droppedErr bool
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means
// no limit.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		b.droppedErr = b.droppedErr || d.IsError()
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// Dropped counts diagnostics rejected by the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].IsError() {
			return true
		}
	}
	return b.droppedErr
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Report makes *Bag a Reporter. A nil bag discards everything.
func (b *Bag) Report(d Diagnostic) {
	if b == nil {
		return
	}
	b.Add(d)
}

// Merge appends the diagnostics of other, honouring the limit.
func (b *Bag) Merge(other *Bag) {
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
	b.droppedErr = b.droppedErr || other.droppedErr
}
