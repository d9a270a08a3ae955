// Package lattice holds the planar side of the cell hierarchy: the
// dodecahedron constants, the reference pentagon and triangle, the lattice
// basis, the tiling of a face into quintants and Hilbert-curve addressing.
package lattice

import "math"

// Angles and distances of the dodecahedron with unit inscribed radius
const (
	Phi = 1.618033988749895 // golden ratio

	TwoPi      = 2 * math.Pi
	TwoPiOver5 = 2 * math.Pi / 5
	PiOver5    = math.Pi / 5
	PiOver10   = math.Pi / 10

	DihedralAngle    = 2.0344439357957027 // 2·atan(φ)
	InterhedralAngle = 1.1071487177940904 // π − dihedral
	FaceEdgeAngle    = 1.0172219678978514

	DistanceToEdge   = 0.6180339887498949 // φ − 1
	DistanceToVertex = 0.7639320225002102 // 3 − √5

	RInscribed     = 1.0
	RMidedge       = 1.1755705045849463 // √(3 − φ)
	RCircumscribed = 1.2584085723648188
)
