/*
 * atoms.go, part of amberio
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

import "fmt"

// Atom is the static identity of one atom in a topology. It carries no
// coordinates; those live in the trajectory frames.
type Atom struct {
	Name    string //Atom name, as in the topology file, e.g. "CA"
	MolName string //Name of the residue the atom belongs to, e.g. "ALA"
	MolID   int    //Residue serial, 1-based as in the source file
}

// Topology is the frame-independent description of a system: its atoms
// and the periodicity hint from the source file. It implements Atomer.
type Topology struct {
	atoms []*Atom
	ifbox int
}

// NewTopology builds a Topology from a slice of atoms. ifbox is the Amber
// periodic-box flag: 0 for no box, larger values for the box variants.
func NewTopology(atoms []*Atom, ifbox int) *Topology {
	return &Topology{atoms: atoms, ifbox: ifbox}
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

// Atom returns the ith atom of the topology. It panics if i is out of
// range, per the Atomer contract.
func (T *Topology) Atom(i int) *Atom {
	if i < 0 || i >= len(T.atoms) {
		panic(fmt.Sprintf("amberio: atom index %d out of range (%d atoms)", i, len(T.atoms)))
	}
	return T.atoms[i]
}

// Periodic returns true if the topology declares a periodic box
// (IFBOX > 0). This is only a hint: the trajectory itself has the
// final word on whether box records are present.
func (T *Topology) Periodic() bool {
	return T.ifbox > 0
}
