package amber

import (
	v3 "github.com/mdlab-go/amberio/v3"
)

//Timestep holds the data of the currently loaded frame of a Reader. There
//is exactly one Timestep per Reader, overwritten in place on every advance
//or seek, so that scanning a whole trajectory costs O(1) memory.
//
//The values returned by Coords and Box are views into that shared buffer:
//they are invalidated by the next read. Callers that need a frame to
//outlive the next advance must take CopyCoords/CopyBox.
type Timestep struct {
	frame    int
	coords   *v3.Matrix
	box      []float64 //a, b, c, alpha, beta, gamma; nil when not periodic
	periodic bool
}

func newTimestep(natoms int, periodic bool) *Timestep {
	T := &Timestep{frame: -1, coords: v3.Zeros(natoms), periodic: periodic}
	if periodic {
		T.box = make([]float64, 6)
	}
	return T
}

// Frame returns the zero-based index of the loaded frame.
func (T *Timestep) Frame() int {
	return T.frame
}

// Coords returns the positions of the loaded frame as a NAtoms×3 matrix.
// The matrix is shared with the Reader and overwritten by the next read.
func (T *Timestep) Coords() *v3.Matrix {
	return T.coords
}

// Box returns the unit cell of the loaded frame as the 6 scalars
// [a, b, c, alpha, beta, gamma], or nil if the trajectory is not
// periodic. The slice is shared with the Reader and overwritten by the
// next read.
func (T *Timestep) Box() []float64 {
	if !T.periodic {
		return nil
	}
	return T.box
}

// Periodic returns whether the trajectory carries unit-cell records.
func (T *Timestep) Periodic() bool {
	return T.periodic
}

// CopyCoords returns a copy of the positions that survives further reads.
func (T *Timestep) CopyCoords() *v3.Matrix {
	c := v3.Zeros(T.coords.NVecs())
	c.Copy(T.coords)
	return c
}

// CopyBox returns a copy of the unit cell, or nil if not periodic.
func (T *Timestep) CopyBox() []float64 {
	if !T.periodic {
		return nil
	}
	b := make([]float64, 6)
	copy(b, T.box)
	return b
}
