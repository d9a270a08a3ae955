package lattice

import (
	"math"

	"github.com/jengzang/a5grid/internal/spatial"
)

// Quaternary is a base-4 Hilbert digit
type Quaternary uint8

// Flip records whether an axis of the curve is mirrored
type Flip int8

const (
	Yes Flip = -1
	No  Flip = 1
)

// Anchor locates a Hilbert cell in the lattice: its last digit, the lattice
// offset of its origin and the accumulated flips.
type Anchor struct {
	K      Quaternary
	Offset spatial.IJ
	Flips  [2]Flip
}

// Orientation selects one of the six ways the curve can traverse a quintant
type Orientation int

const (
	UV Orientation = iota
	VU
	UW
	WU
	VW
	WV
)

var orientationNames = [...]string{"uv", "vu", "uw", "wu", "vw", "wv"}

func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return "invalid"
	}
	return orientationNames[o]
}

func (o Orientation) reversed() bool { return o == VU || o == WU || o == VW }
func (o Orientation) invertJ() bool  { return o == WV || o == VW }
func (o Orientation) flipIJ() bool   { return o == WU || o == UW }

var (
	kPos = spatial.KJ{K: 1, J: 0}
	jPos = spatial.KJ{K: 0, J: 1}
	kNeg = spatial.KJ{K: -1, J: 0}
	jNeg = spatial.KJ{K: 0, J: -1}

	flipShift = spatial.IJ{I: -1, J: 1}

	pattern                = [8]int{0, 1, 3, 4, 5, 6, 7, 2}
	patternFlipped         = [8]int{0, 1, 2, 7, 3, 4, 5, 6}
	patternReversed        = reversePattern(pattern)
	patternFlippedReversed = reversePattern(patternFlipped)
)

func reversePattern(p [8]int) [8]int {
	var out [8]int
	for i, v := range p {
		out[v] = i
	}
	return out
}

// QuaternaryToKJ returns the KJ offset of digit n within its parent
func QuaternaryToKJ(n Quaternary, flips [2]Flip) spatial.KJ {
	var p, q spatial.KJ
	switch {
	case flips[0] == No && flips[1] == No:
		p, q = kPos, jPos
	case flips[0] == Yes && flips[1] == No:
		p, q = jNeg, kNeg
	case flips[0] == No && flips[1] == Yes:
		p, q = jPos, kPos
	default:
		p, q = kNeg, jNeg
	}

	switch n {
	case 0:
		return spatial.KJ{}
	case 1:
		return p
	case 2:
		return spatial.KJ{K: q.K + p.K, J: q.J + p.J}
	default:
		return spatial.KJ{K: q.K + 2*p.K, J: q.J + 2*p.J}
	}
}

// QuaternaryToFlips returns the flips introduced by digit n
func QuaternaryToFlips(n Quaternary) [2]Flip {
	switch n {
	case 1:
		return [2]Flip{No, Yes}
	case 3:
		return [2]Flip{Yes, No}
	default:
		return [2]Flip{No, No}
	}
}

// shiftDigits rewrites the digit pair (i, i-1) so that pentagons straddling
// two parent triangles are numbered consistently along the curve
func shiftDigits(digits []Quaternary, i int, flips [2]Flip, invertJ bool, pat *[8]int) {
	if i <= 0 {
		return
	}
	parentK := int(digits[i])
	childK := int(digits[i-1])
	f := int(flips[0]) + int(flips[1])

	var needsShift, first bool
	if invertJ != (f == 0) {
		needsShift = parentK == 1 || parentK == 2
		first = parentK == 1
	} else {
		needsShift = parentK < 2
		first = parentK == 0
	}
	if !needsShift {
		return
	}

	src := childK
	if !first {
		src += 4
	}
	dst := pat[src]
	digits[i-1] = Quaternary(dst % 4)
	digits[i] = Quaternary((parentK + 4 + dst/4 - src/4) % 4)
}

// SToAnchor converts a Hilbert index at the given curve resolution into the
// anchor of the cell it addresses
func SToAnchor(s uint64, resolution int, o Orientation) Anchor {
	input := s
	if o.reversed() {
		input = (uint64(1) << (2 * uint(resolution))) - s - 1
	}
	anchor := sToAnchorInternal(input, resolution, o.invertJ(), o.flipIJ())

	if o.flipIJ() {
		anchor.Offset = spatial.IJ{I: anchor.Offset.J, J: anchor.Offset.I}
		if anchor.Flips[0] == Yes {
			anchor.Offset = spatial.IJ{I: anchor.Offset.I + flipShift.I, J: anchor.Offset.J + flipShift.J}
		}
		if anchor.Flips[1] == Yes {
			anchor.Offset = spatial.IJ{I: anchor.Offset.I - flipShift.I, J: anchor.Offset.J - flipShift.J}
		}
	}

	if o.invertJ() {
		i, j := anchor.Offset.I, anchor.Offset.J
		anchor.Flips[0] = -anchor.Flips[0]
		anchor.Offset = spatial.IJ{I: i, J: float64(uint64(1)<<uint(resolution)) - (i + j)}
	}
	return anchor
}

func sToAnchorInternal(s uint64, resolution int, invertJ, flipIJ bool) Anchor {
	var digits []Quaternary
	for input := s; input > 0 || len(digits) < resolution; input >>= 2 {
		digits = append(digits, Quaternary(input%4))
	}

	pat := &pattern
	if flipIJ {
		pat = &patternFlipped
	}

	flips := [2]Flip{No, No}
	for i := len(digits) - 1; i >= 0; i-- {
		shiftDigits(digits, i, flips, invertJ, pat)
		next := QuaternaryToFlips(digits[i])
		flips[0] *= next[0]
		flips[1] *= next[1]
	}

	flips = [2]Flip{No, No}
	var offset spatial.KJ
	for i := len(digits) - 1; i >= 0; i-- {
		child := QuaternaryToKJ(digits[i], flips)
		offset = spatial.KJ{K: 2*offset.K + child.K, J: 2*offset.J + child.J}
		next := QuaternaryToFlips(digits[i])
		flips[0] *= next[0]
		flips[1] *= next[1]
	}

	var k Quaternary
	if len(digits) > 0 {
		k = digits[0]
	}
	return Anchor{K: k, Offset: spatial.KJToIJ(offset), Flips: flips}
}

// RequiredDigits returns the number of Hilbert digits needed to reach the
// given lattice offset
func RequiredDigits(offset spatial.IJ) int {
	sum := math.Ceil(offset.I) + math.Ceil(offset.J)
	if sum == 0 {
		return 1
	}
	return 1 + int(math.Floor(math.Log2(sum)))
}

// IJToQuaternary picks the child digit for a point given relative to the
// parent origin, in units of the child size
func IJToQuaternary(ij spatial.IJ, flips [2]Flip) Quaternary {
	u, v := ij.I, ij.J
	a, b, c := u+v, u, v
	if flips[0] == Yes {
		a, c = -(u + v), -v
	}
	if flips[1] == Yes {
		b = -u
	}

	if flips[0]+flips[1] == 0 {
		switch {
		case c < 1:
			return 0
		case b > 1:
			return 3
		case a > 1:
			return 2
		default:
			return 1
		}
	}
	switch {
	case a < 1:
		return 0
	case b > 1:
		return 3
	case c > 1:
		return 2
	default:
		return 1
	}
}

// IJToS converts a lattice position into the Hilbert index of the cell
// containing it
func IJToS(input spatial.IJ, resolution int, o Orientation) uint64 {
	ij := input
	if o.flipIJ() {
		ij = spatial.IJ{I: input.J, J: input.I}
	}
	if o.invertJ() {
		ij = spatial.IJ{I: ij.I, J: float64(uint64(1)<<uint(resolution)) - (ij.I + ij.J)}
	}

	s := ijToSInternal(ij, o.invertJ(), o.flipIJ(), resolution)
	if o.reversed() {
		return (uint64(1) << (2 * uint(resolution))) - s - 1
	}
	return s
}

func ijToSInternal(input spatial.IJ, invertJ, flipIJ bool, resolution int) uint64 {
	digits := make([]Quaternary, resolution)
	flips := [2]Flip{No, No}
	var pivot spatial.IJ

	for i := resolution - 1; i >= 0; i-- {
		size := float64(uint64(1) << uint(i))
		rel := spatial.IJ{I: (input.I - pivot.I) / size, J: (input.J - pivot.J) / size}
		digit := IJToQuaternary(rel, flips)
		digits[i] = digit

		child := spatial.KJToIJ(QuaternaryToKJ(digit, flips))
		pivot = spatial.IJ{I: pivot.I + child.I*size, J: pivot.J + child.J*size}

		next := QuaternaryToFlips(digit)
		flips[0] *= next[0]
		flips[1] *= next[1]
	}

	pat := &patternReversed
	if flipIJ {
		pat = &patternFlippedReversed
	}
	for i := range digits {
		next := QuaternaryToFlips(digits[i])
		flips[0] *= next[0]
		flips[1] *= next[1]
		shiftDigits(digits, i, flips, invertJ, pat)
	}

	var out uint64
	for i := len(digits) - 1; i >= 0; i-- {
		out += uint64(digits[i]) << (2 * uint(i))
	}
	return out
}
