// Package a5 indexes the sphere with a hierarchy of equal-area pentagonal
// cells.
//
// The twelve faces of a dodecahedron form resolution 0. Each face is split
// into five quintants at resolution 1, and from resolution 2 onwards every
// cell is quadrisected along a Hilbert curve. A cell is addressed by a
// 64-bit CellID whose high bits hold the face and quintant, followed by two
// bits per Hilbert level and a single marker bit recording the resolution.
// Clearing low bits and moving the marker yields the id of any ancestor.
//
// All functions are safe for concurrent use. Lookup tables are built on
// first use and never modified afterwards.
package a5
