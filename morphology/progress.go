package morphology

import "sync"

// ProgressFunc receives the fraction of a filter run that has finished, between 0 and 1.
type ProgressFunc func(fraction float64)

// progressReporter converts finished scanlines into a fraction of the whole run. The run is
// divided into equal slots, one per axis pass, and each slot advances with the lines of its pass.
// Calls to fn are serialized and only made when the fraction grows.
type progressReporter struct {
	mu    sync.Mutex
	fn    ProgressFunc
	slots int
	slot  int
	lines int
	done  int
	last  float64
}

// newProgressReporter returns nil when fn is nil; every method is a no-op on a nil reporter.
func newProgressReporter(fn ProgressFunc, slots int) *progressReporter {
	if fn == nil || slots <= 0 {
		return nil
	}
	return &progressReporter{fn: fn, slots: slots, last: -1}
}

// startPass points following line reports at slot, which holds lines scanlines.
func (p *progressReporter) startPass(slot, lines int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slot = slot
	p.lines = lines
	p.done = 0
}

func (p *progressReporter) completeLine() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done >= p.lines {
		return
	}
	p.done++
	p.reportLocked(float64(p.slot) + float64(p.done)/float64(p.lines))
}

// finishSlot marks slot as done, including slots whose pass was skipped.
func (p *progressReporter) finishSlot(slot int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reportLocked(float64(slot + 1))
}

// reportLocked takes progress in slot units. Dividing by the slot count last keeps the end of
// one slot equal to the start of the next, and the end of the final slot exactly 1.
func (p *progressReporter) reportLocked(slotProgress float64) {
	fraction := slotProgress / float64(p.slots)
	if fraction <= p.last {
		return
	}
	p.last = fraction
	p.fn(fraction)
}
