/*
 * crd.go, part of amberio
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

package amber

import (
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"

	v3 "github.com/mdlab-go/amberio/v3"
)

//Reader is a handle for an Amber ASCII trajectory file. It keeps one
//Timestep that is overwritten on every advance, a byte source that may
//sit on top of a decompressor, and an offset table for random access.
//A Reader must not be used from more than one goroutine at a time: the
//shared Timestep would tear. Open one Reader per goroutine instead.
type Reader struct {
	natoms    int
	nframes   int
	periodic  bool
	filename  string
	title     string
	headerLen int64
	src       *source
	index     *frameIndex
	ts        *Timestep
	cursor    int  //frame currently loaded
	readable  bool //false after Close
	scratch   [fieldsPerLine]float64
}

// New opens the trajectory in filename for reading. ats is the number of
// atoms per frame and must come from the topology: the format does not
// declare it. The optional box argument forces periodicity on or off;
// without it, the reader decides from the file itself. The first frame
// is parsed immediately, so a malformed file fails here and a fresh
// Reader always holds frame 0.
func New(filename string, ats int, box ...bool) (*Reader, error) {
	if ats <= 0 {
		return nil, Error{fmt.Sprintf("%s: atom count must be positive, got %d (Amber trajectories do not declare it; take it from the topology)", WrongFormat, ats), filename, []string{"New"}, true}
	}
	src, err := openSource(filename)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	R := &Reader{natoms: ats, filename: filename, src: src}
	title, err := src.readLine()
	if err != nil || !strings.HasSuffix(title, "\n") {
		src.close()
		return nil, Error{WrongFormat + ": missing title line", filename, []string{"New"}, true}
	}
	R.title = strings.TrimSpace(title)
	R.headerLen = int64(len(title))
	size, err := src.size()
	if err != nil {
		src.close()
		return nil, errDecorate(err, "New")
	}
	if len(box) > 0 {
		R.periodic = box[0]
	} else {
		R.periodic, err = R.detectPeriodic(size - R.headerLen)
		if err != nil {
			src.close()
			return nil, err
		}
	}
	R.index, err = newFrameIndex(ats, R.periodic, R.headerLen, size, filename)
	if err != nil {
		src.close()
		return nil, err
	}
	R.nframes = R.index.nframes
	R.ts = newTimestep(ats, R.periodic)
	R.readable = true
	if _, err := R.Seek(0); err != nil {
		src.close()
		return nil, errDecorate(err, "New")
	}
	//release the descriptor even if the caller never calls Close
	runtime.SetFinalizer(R, func(r *Reader) { r.Close() })
	return R, nil
}

//detectPeriodic decides whether frames carry a box record. The frame
//stride differs between the two layouts, so usually only one of them
//divides the data region evenly. When both do, the line right after the
//first frame's coordinates settles it: a box record is 3 fields wide,
//while a frame's first line is 3 fields wide only for 1-atom systems.
func (R *Reader) detectPeriodic(data int64) (bool, error) {
	withBox := data%frameBytes(R.natoms, true) == 0
	without := data%frameBytes(R.natoms, false) == 0
	switch {
	case withBox && without:
		if err := R.src.seek(R.headerLen + frameBytes(R.natoms, false)); err != nil {
			return false, errDecorate(err, "detectPeriodic")
		}
		line, err := R.src.readLine()
		if err != nil {
			//exactly one frame and nothing after it: no box
			return false, nil
		}
		return isBoxLine(line), nil
	case withBox:
		return true, nil
	case without:
		return false, nil
	}
	return false, Error{fmt.Sprintf("%s: file size fits no whole number of frames for %d atoms, with or without box records", WrongFormat, R.natoms), R.filename, []string{"detectPeriodic"}, true}
}

func isBoxLine(line string) bool {
	var b [boxFields]float64
	return fixedFields(line, b[:]) == nil
}

// fixedFields slices len(dst) fields of fieldWidth characters from a
// record line and parses each as a float. The line must be exactly that
// long, newline included: fixed-width fields can run together with no
// separating space, so whitespace tokenizing would mis-read valid frames.
func fixedFields(line string, dst []float64) error {
	if !strings.HasSuffix(line, "\n") {
		return fmt.Errorf("record not newline-terminated")
	}
	body := line[:len(line)-1]
	if len(body) != len(dst)*fieldWidth {
		return fmt.Errorf("record is %d characters, expected %d", len(body), len(dst)*fieldWidth)
	}
	for i := range dst {
		field := strings.TrimSpace(body[i*fieldWidth : (i+1)*fieldWidth])
		if field == "" {
			return fmt.Errorf("empty numeric field %d", i)
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("bad numeric field %d (%q)", i, field)
		}
		dst[i] = v
	}
	return nil
}

//readFrame parses one whole frame record into the shared Timestep. The
//source must be positioned at the frame's first coordinate line.
func (R *Reader) readFrame(frame int) error {
	n := 3 * R.natoms
	got := 0
	for got < n {
		line, err := R.src.readLine()
		if err != nil {
			return Error{ReadError + ": " + err.Error(), R.filename, []string{"readFrame"}, true}
		}
		want := fieldsPerLine
		if n-got < want {
			want = n - got
		}
		if err := fixedFields(line, R.scratch[:want]); err != nil {
			return Error{WrongFormat + ": " + err.Error(), R.filename, []string{"readFrame"}, true}
		}
		for _, v := range R.scratch[:want] {
			R.ts.coords.Set(got/3, got%3, v)
			got++
		}
	}
	if R.periodic {
		line, err := R.src.readLine()
		if err != nil {
			return Error{ReadError + ": " + err.Error(), R.filename, []string{"readFrame"}, true}
		}
		var b [boxFields]float64
		if err := fixedFields(line, b[:]); err != nil {
			return Error{WrongFormat + ": box record: " + err.Error(), R.filename, []string{"readFrame"}, true}
		}
		R.ts.box[0], R.ts.box[1], R.ts.box[2] = b[0], b[1], b[2]
		//the format only encodes lengths; the cell is orthorhombic
		R.ts.box[3], R.ts.box[4], R.ts.box[5] = 90, 90, 90
	}
	R.ts.frame = frame
	R.cursor = frame
	return nil
}

// Next reads the next frame of the trajectory into keep (nil discards
// the coordinates, though they still land in Current) and, if the
// trajectory is periodic, copies the unit cell into the optional box
// slice. At the end of the trajectory it returns an
// amberio.LastFrameError without touching the loaded frame. On a closed
// Reader it fails with a ClosedError: sequential reads, unlike Seek, do
// not reopen the file.
func (R *Reader) Next(keep *v3.Matrix, box ...[]float64) error {
	if !R.readable {
		return newClosedError(R.filename, "Next")
	}
	if R.cursor+1 >= R.nframes {
		return newlastFrameError(R.filename, "Next")
	}
	if err := R.readFrame(R.cursor + 1); err != nil {
		return errDecorate(err, "Next")
	}
	if keep != nil {
		if keep.NVecs() < R.natoms {
			return Error{NotEnoughSpace, R.filename, []string{"Next"}, true}
		}
		keep.Copy(R.ts.coords)
	}
	if R.periodic && len(box) > 0 {
		if len(box[0]) < 6 {
			log.Printf("Box slice for trajectory %s needs 6 elements, got %d; box not copied", R.filename, len(box[0]))
		} else {
			copy(box[0], R.ts.box)
		}
	}
	return nil
}

// NextFrame advances to the next frame and returns the shared Timestep.
// Same rules as Next: no reopening, LastFrameError at the end.
func (R *Reader) NextFrame() (*Timestep, error) {
	if err := R.Next(nil); err != nil {
		return nil, err
	}
	return R.ts, nil
}

// Seek loads the given zero-based frame and returns the shared Timestep.
// If the Reader has been closed, Seek transparently reopens the file
// first. An out-of-range frame fails with an IndexError.
func (R *Reader) Seek(frame int) (*Timestep, error) {
	off, err := R.index.offset(frame)
	if err != nil {
		return nil, errDecorate(err, "Seek")
	}
	if !R.readable {
		if err := R.reopen(); err != nil {
			return nil, errDecorate(err, "Seek")
		}
	}
	if err := R.src.seek(off); err != nil {
		return nil, errDecorate(err, "Seek")
	}
	if err := R.readFrame(frame); err != nil {
		return nil, errDecorate(err, "Seek")
	}
	return R.ts, nil
}

//reopen recreates the byte source after a Close. The offset table is
//kept: it depends only on the format parameters, not on the handle, so
//a recomputation would yield byte-identical offsets.
func (R *Reader) reopen() error {
	src, err := openSource(R.filename)
	if err != nil {
		return err
	}
	R.src = src
	R.readable = true
	return nil
}

// Rewind brings the trajectory back to frame 0.
func (R *Reader) Rewind() error {
	_, err := R.Seek(0)
	return err
}

// Close releases the underlying file. The frame cursor is retained, and
// a later Seek will reopen the file by itself; Next will not.
// Closing twice is harmless.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.src.close()
	R.readable = false
}

// Readable returns true if the object is ready to be read from,
// false otherwise. It doesn't guarantee that there is something
// to read.
func (R *Reader) Readable() bool {
	return R.readable
}

// Len returns the number of atoms per frame in the trajectory.
func (R *Reader) Len() int {
	return R.natoms
}

// NFrames returns the total number of frames in the trajectory,
// computed at open time from the file size and the frame stride.
func (R *Reader) NFrames() int {
	return R.nframes
}

// Periodic returns whether frames carry unit-cell records. It is fixed
// for the life of the Reader.
func (R *Reader) Periodic() bool {
	return R.periodic
}

// Current returns the shared Timestep holding the loaded frame. The
// view is overwritten by every advance or seek.
func (R *Reader) Current() *Timestep {
	return R.ts
}

// Title returns the title line of the trajectory file, trimmed.
func (R *Reader) Title() string {
	return R.title
}

//FrameIter walks a whole trajectory in frame order, frame 0 first. It
//rewinds the Reader on the first call, so each new FrameIter restarts
//the scan; the yielded Timestep is still the Reader's shared one.
type FrameIter struct {
	r    *Reader
	next int
}

// Frames returns an iterator over all frames of the trajectory.
func (R *Reader) Frames() *FrameIter {
	return &FrameIter{r: R}
}

// Next yields the next frame of the iteration, or an
// amberio.LastFrameError after the last one.
func (F *FrameIter) Next() (*Timestep, error) {
	if F.next >= F.r.nframes {
		return nil, newlastFrameError(F.r.filename, "FrameIter.Next")
	}
	if F.next == 0 {
		if err := F.r.Rewind(); err != nil {
			return nil, err
		}
		F.next = 1
		return F.r.ts, nil
	}
	ts, err := F.r.NextFrame()
	if err != nil {
		return nil, err
	}
	F.next++
	return ts, nil
}

// NextConc reads as many frames as elements the given slice has, filling
// each matrix in turn. The function returns a slice of channels through
// each of which one of the frames will be transmitted, in reading order.
func (R *Reader) NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error) {
	if !R.Readable() {
		return nil, newClosedError(R.filename, "NextConc")
	}
	framechans := make([]chan *v3.Matrix, len(frames))
	for key, v := range frames {
		if err := R.Next(v); err != nil {
			return nil, errDecorate(err, "NextConc")
		}
		framechans[key] = make(chan *v3.Matrix)
		go func(keep *v3.Matrix, pipe chan *v3.Matrix) {
			pipe <- keep
		}(v, framechans[key])
	}
	return framechans, nil
}
