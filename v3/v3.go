/*
 * v3.go, part of amberio
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

//Package v3 handles sets of vectors in 3D space, backed by gonum dense
//matrices. Within the package it is understood that a "vector" is a row
//vector, i.e. the cartesian coordinates of a point in 3D space.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const not3xXMatrix = "v3: expected a matrix with 3 columns"

//Matrix is a set of vectors in 3D space. It embeds a gonum Dense matrix
//with 3 columns, so every gonum mat.Matrix consumer can take it directly.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

// NewMatrix generates and returns a Matrix with 3 columns from data,
// which is laid out in row-major order and must have a length divisible
// by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	if len(data)%cols != 0 {
		return nil, Error{message: fmt.Sprintf("input slice length %d not divisible by %d", len(data), cols), deco: []string{"NewMatrix"}, critical: true}
	}
	return &Matrix{mat.NewDense(len(data)/cols, cols, data)}, nil
}

// Matrix2Dense returns the gonum Dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// Dense2Matrix wraps a 3-column gonum Dense matrix into a Matrix.
// It panics if A does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(not3xXMatrix)
	}
	return &Matrix{A}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(not3xXMatrix)
	}
	return r
}

// VecView returns a view (not a copy) of the ith vector of the matrix.
// Changes through the view are seen by the original matrix.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// SwapVecs exchanges the ith and jth vectors of F in place.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic("v3: vector indexes out of range")
	}
	for k := 0; k < 3; k++ {
		vi := F.At(i, k)
		F.Set(i, k, F.At(j, k))
		F.Set(j, k, vi)
	}
}

//Errors

// Error is the v3 error type. It fulfills the amberio Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("v3 error: %s", err.message)
}

// Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }
