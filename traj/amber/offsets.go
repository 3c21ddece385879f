package amber

import "fmt"

//Layout of the format, in characters. Coordinates are packed 10 per line,
//8 characters each, with no guaranteed separator between fields. The box
//record, when present, is one line of 3 fields of the same width.
const (
	fieldWidth    = 8
	fieldsPerLine = 10
	boxFields     = 3
)

// frameBytes returns the exact number of bytes one frame record occupies:
// ceil(3*natoms/10) coordinate lines plus, if periodic, one box line.
// Lines are newline-terminated, one byte each.
func frameBytes(natoms int, periodic bool) int64 {
	n := 3 * natoms
	full := n / fieldsPerLine
	rem := n % fieldsPerLine
	b := int64(full) * int64(fieldsPerLine*fieldWidth+1)
	if rem > 0 {
		b += int64(rem*fieldWidth) + 1
	}
	if periodic {
		b += int64(boxFields*fieldWidth) + 1
	}
	return b
}

//frameIndex maps frame numbers to byte offsets in the (decompressed)
//stream. It is a pure function of the format parameters, so reopening
//the same file always reproduces the same offsets.
type frameIndex struct {
	header  int64 //bytes of the title line, newline included
	stride  int64 //bytes per frame
	nframes int
	fname   string
}

// newFrameIndex validates that the data region after the title divides
// evenly into frames and returns the resulting index. A nonzero
// remainder means a truncated or corrupt trajectory, and is an error
// rather than a silent truncation.
func newFrameIndex(natoms int, periodic bool, header, size int64, fname string) (*frameIndex, error) {
	stride := frameBytes(natoms, periodic)
	data := size - header
	if data <= 0 {
		return nil, Error{WrongFormat + ": no frames after the title line", fname, []string{"newFrameIndex"}, true}
	}
	if data%stride != 0 {
		return nil, Error{fmt.Sprintf("%s: %d bytes of frame data is not a multiple of the %d-byte frame record (truncated or corrupt trajectory?)", WrongFormat, data, stride), fname, []string{"newFrameIndex"}, true}
	}
	return &frameIndex{header: header, stride: stride, nframes: int(data / stride), fname: fname}, nil
}

// offset returns the byte offset at which the given frame starts.
func (x *frameIndex) offset(frame int) (int64, error) {
	if frame < 0 || frame >= x.nframes {
		return 0, newIndexError(frame, x.nframes, x.fname, "offset")
	}
	return x.header + int64(frame)*x.stride, nil
}
