package amber

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Supported compression layers, detected from the file's magic bytes
//rather than its name: trajectories get renamed and concatenated all
//the time, extensions are not trustworthy.
type compression int

const (
	plain compression = iota
	gzipped
	bzipped
	zstded
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

func sniffCompression(magic []byte) compression {
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		return gzipped
	case bytes.HasPrefix(magic, bzip2Magic):
		return bzipped
	case bytes.HasPrefix(magic, zstdMagic):
		return zstded
	default:
		return plain
	}
}

//This will cause additional indirections but each read takes enough
//time to make those delays irrelevant. The zstd Decoder does not
//implement io.ReadCloser (Close returns nothing), hence the wrapper.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

// Close closes the decoder. It can not be used after this call.
func (z zstdql) Close() error {
	z.closeql()
	return nil
}

// decoder layers the decompressor matching c over r. For plain input the
// reader is returned as is, behind a no-op Close.
func decoder(r io.Reader, c compression) (io.ReadCloser, error) {
	switch c {
	case gzipped:
		return gzip.NewReader(r)
	case bzipped:
		//the stdlib bzip2 reader has no Close of its own
		return io.NopCloser(bzip2.NewReader(r)), nil
	case zstded:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdql{d.Close, d}, nil
	default:
		return io.NopCloser(r), nil
	}
}

//source is the byte-level side of the reader: one open file, an optional
//decompression layer, and a line buffer. All offsets handed to seek are
//offsets in the decompressed stream.
type source struct {
	fname string
	f     *os.File
	z     io.ReadCloser //nil until layered
	buf   *bufio.Reader
	comp  compression
	usize int64 //decompressed size, -1 until computed
	open  bool
}

// openSource opens fname, sniffs its compression and positions a line
// reader at the first byte of the decompressed stream.
func openSource(fname string) (*source, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), fname, []string{"openSource"}, true}
	}
	magic := make([]byte, 4)
	n, _ := io.ReadFull(f, magic)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, Error{err.Error(), fname, []string{"openSource"}, true}
	}
	s := &source{fname: fname, f: f, comp: sniffCompression(magic[:n]), usize: -1, open: true}
	if err := s.layer(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

//layer installs the decompressor and line buffer over the raw file,
//which must be positioned at byte 0.
func (s *source) layer() error {
	z, err := decoder(bufio.NewReader(s.f), s.comp)
	if err != nil {
		return Error{err.Error(), s.fname, []string{"layer"}, true}
	}
	s.z = z
	s.buf = bufio.NewReader(z)
	return nil
}

// readLine returns the next newline-terminated record, newline included.
func (s *source) readLine() (string, error) {
	if !s.open {
		return "", newClosedError(s.fname, "readLine")
	}
	return s.buf.ReadString('\n')
}

// seek repositions the stream so that the next readLine starts at the
// given decompressed-byte offset. Plain files seek natively; compressed
// ones restart the decoder and discard. Either way the bytes that follow
// are the same a fresh sequential read would yield.
func (s *source) seek(off int64) error {
	if !s.open {
		return newClosedError(s.fname, "seek")
	}
	if s.comp == plain {
		if _, err := s.f.Seek(off, io.SeekStart); err != nil {
			return Error{err.Error(), s.fname, []string{"seek"}, true}
		}
		s.buf.Reset(s.f)
		return nil
	}
	s.z.Close()
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return Error{err.Error(), s.fname, []string{"seek"}, true}
	}
	if err := s.layer(); err != nil {
		return errDecorate(err, "seek")
	}
	if _, err := io.CopyN(io.Discard, s.buf, off); err != nil {
		return Error{err.Error(), s.fname, []string{"seek"}, true}
	}
	return nil
}

// size returns the size in bytes of the decompressed stream. For plain
// files this is a stat; for compressed ones, a one-off full scan over a
// second handle, cached for the life of the source.
func (s *source) size() (int64, error) {
	if s.usize >= 0 {
		return s.usize, nil
	}
	if !s.open {
		return 0, newClosedError(s.fname, "size")
	}
	if s.comp == plain {
		fi, err := s.f.Stat()
		if err != nil {
			return 0, Error{err.Error(), s.fname, []string{"size"}, true}
		}
		s.usize = fi.Size()
		return s.usize, nil
	}
	f, err := os.Open(s.fname)
	if err != nil {
		return 0, Error{UnableToOpen + ": " + err.Error(), s.fname, []string{"size"}, true}
	}
	defer f.Close()
	z, err := decoder(bufio.NewReader(f), s.comp)
	if err != nil {
		return 0, Error{err.Error(), s.fname, []string{"size"}, true}
	}
	defer z.Close()
	n, err := io.Copy(io.Discard, z)
	if err != nil {
		return 0, Error{err.Error(), s.fname, []string{"size"}, true}
	}
	s.usize = n
	return n, nil
}

// close releases the decoder and the file. Calling it twice is harmless.
func (s *source) close() {
	if !s.open {
		return
	}
	if s.z != nil {
		s.z.Close()
	}
	s.f.Close()
	s.open = false
}
