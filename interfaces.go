/*
 * interfaces.go, part of amberio
 *
 * Copyright 2024 The amberio authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package amberio

import v3 "github.com/mdlab-go/amberio/v3"

// Traj is an interface for any trajectory object. A trajectory is a
// sequence of frames, each with the coordinates of the same number of atoms.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into keep, or discards it if keep is nil.
	//It can also fill the (optional) box with the unit-cell information,
	//if present in the frame.
	Next(keep *v3.Matrix, box ...[]float64) error

	//Returns the number of atoms per frame
	Len() int
}

// ConcTraj is an interface for a trajectory that can be read concurrently.
type ConcTraj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	/*NextConc reads as many frames as elements the given slice has, filling
	each matrix in turn. The function returns a slice of channels through
	each of which one of the frames will be transmitted, in reading order.*/
	NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error)

	//Returns the number of atoms per frame
	Len() int
}

// Atomer is the basic interface for a topology: something that knows how
// many atoms a system has, and the static identity of each of them.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows adding and retrieving information
// from the error as it is passed up the call stack, without changing its
// type or wrapping it around something else. If passed an empty string,
// Decorate just returns the current decoration slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless
// "trajectory over" signal from real trajectory errors, so it can be
// filtered with a type switch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
