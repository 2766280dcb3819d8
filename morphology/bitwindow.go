package morphology

// MaxLineRadius is the largest radius one pass of the line kernel can handle: the window must
// hold 2*radius bits of a 32 bit word.
const MaxLineRadius = 16

// bitWindow is a shift register recording whether each of the last 2*radius pixels pushed was
// foreground. The newest pixel enters at bit usedBits = 32-2*radius and older pixels move toward
// bit 31 until they fall off the word. Bits below usedBits are always zero.
type bitWindow struct {
	bits   uint32
	newBit uint32
	mask   uint32
}

// newBitWindow returns an empty window for 0 <= radius <= MaxLineRadius. For radius 0 the shift
// is by 32, which yields a zero newBit and mask: nothing is ever recorded.
func newBitWindow(radius int) bitWindow {
	usedBits := uint(32 - 2*radius)
	return bitWindow{
		newBit: uint32(1) << usedBits,
		mask:   ^uint32(0) << usedBits,
	}
}

// reset seeds the whole window as foreground or background.
func (w *bitWindow) reset(asForeground bool) {
	if asForeground {
		w.bits = w.mask
	} else {
		w.bits = 0
	}
}

func (w *bitWindow) push(isForeground bool) {
	w.bits <<= 1
	if isForeground {
		w.bits |= w.newBit
	}
}

// any reports whether some pixel in the window is foreground.
func (w *bitWindow) any() bool {
	return w.bits != 0
}

// full reports whether every pixel in the window is foreground.
func (w *bitWindow) full() bool {
	return w.bits^w.mask == 0
}
