package amber

import (
	"fmt"

	chem "github.com/mdlab-go/amberio"
)

//errDecorate is a helper function that asserts that the error
//implements chem.Error and decorates the error with the caller's name
//before returning it. If used with a non-chem.Error error, it will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}

// Error is the general structure for Amber trajectory errors. It fulfills
// amberio.Error and amberio.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("Amber trajectory file %s error: %s", err.filename, err.message)
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

// FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file associated to the error
func (err Error) Format() string { return "Amber TRJ" }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIni      = "Traj object uninitialized to read"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the trajectory file or frame"
	NotEnoughSpace = "Not enough space in passed blocks"
	EOF            = "EOF"
)

// ClosedError reports an operation that needs an open trajectory and
// does not reopen one by itself (sequential reads, unlike Seek, never
// reopen a closed file).
type ClosedError struct {
	fileName string
	deco     []string
}

func (E *ClosedError) Error() string {
	return fmt.Sprintf("Amber trajectory file %s is closed", E.fileName)
}

func (E *ClosedError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *ClosedError) FileName() string { return E.fileName }

func (E *ClosedError) Format() string { return "Amber TRJ" }

func (E *ClosedError) Critical() bool { return true }

func newClosedError(filename, caller string) *ClosedError {
	return &ClosedError{fileName: filename, deco: []string{caller}}
}

// IndexError reports a frame index outside [0, NFrames).
type IndexError struct {
	frame    int
	nframes  int
	fileName string
	deco     []string
}

func (E *IndexError) Error() string {
	return fmt.Sprintf("Amber trajectory file %s: frame %d out of range (%d frames)", E.fileName, E.frame, E.nframes)
}

func (E *IndexError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *IndexError) FileName() string { return E.fileName }

func (E *IndexError) Format() string { return "Amber TRJ" }

func (E *IndexError) Critical() bool { return true }

func newIndexError(frame, nframes int, filename, caller string) *IndexError {
	return &IndexError{frame: frame, nframes: nframes, fileName: filename, deco: []string{caller}}
}

//lastFrameError implements amberio.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "Amber TRJ" }

func (E lastFrameError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
