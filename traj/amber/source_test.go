package amber

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const sourceFixture = "title line\nsecond line\nthird line\n"

func writeSourceFixture(Te *testing.T, comp string) string {
	Te.Helper()
	path := filepath.Join(Te.TempDir(), "src_"+comp)
	f, err := os.Create(path)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	switch comp {
	case "gz":
		w := gzip.NewWriter(f)
		w.Write([]byte(sourceFixture))
		w.Close()
	case "zst":
		w, err := zstd.NewWriter(f)
		if err != nil {
			Te.Fatal(err)
		}
		w.Write([]byte(sourceFixture))
		w.Close()
	default:
		f.Write([]byte(sourceFixture))
	}
	return path
}

func TestSniffCompression(Te *testing.T) {
	cases := []struct {
		comp string
		want compression
	}{
		{"", plain},
		{"gz", gzipped},
		{"zst", zstded},
	}
	for _, c := range cases {
		s, err := openSource(writeSourceFixture(Te, c.comp))
		if err != nil {
			Te.Fatalf("%q: %v", c.comp, err)
		}
		if s.comp != c.want {
			Te.Errorf("%q: sniffed %d, expected %d", c.comp, s.comp, c.want)
		}
		s.close()
	}
}

func TestSniffBzip2Magic(Te *testing.T) {
	//no real library in reach writes bzip2, so only the detection is
	//checked here; the decode path is stdlib code
	if sniffCompression([]byte("BZh91AY")) != bzipped {
		Te.Error("bzip2 magic not recognized")
	}
	if sniffCompression([]byte("BZ")) == bzipped {
		Te.Error("two bytes are not enough to call a file bzip2")
	}
}

//After seek(off), readLine must yield the same bytes a fresh sequential
//read up to off would. That is the whole contract of the adapter.
func TestSeekMatchesSequential(Te *testing.T) {
	for _, comp := range []string{"", "gz", "zst"} {
		s, err := openSource(writeSourceFixture(Te, comp))
		if err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		first, err := s.readLine()
		if err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		if first != "title line\n" {
			Te.Fatalf("%q: read %q", comp, first)
		}
		//jump straight to the third line
		if err := s.seek(int64(len("title line\nsecond line\n"))); err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		line, err := s.readLine()
		if err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		if line != "third line\n" {
			Te.Errorf("%q: seek landed on %q", comp, line)
		}
		//and back to the very start
		if err := s.seek(0); err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		line, err = s.readLine()
		if err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		if line != first {
			Te.Errorf("%q: rewound to %q", comp, line)
		}
		s.close()
	}
}

func TestSizeIsDecompressedSize(Te *testing.T) {
	for _, comp := range []string{"", "gz", "zst"} {
		s, err := openSource(writeSourceFixture(Te, comp))
		if err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		n, err := s.size()
		if err != nil {
			Te.Fatalf("%q: %v", comp, err)
		}
		if n != int64(len(sourceFixture)) {
			Te.Errorf("%q: size %d, expected %d", comp, n, len(sourceFixture))
		}
		//cached result must survive, and reads must not disturb it
		s.readLine()
		if n2, _ := s.size(); n2 != n {
			Te.Errorf("%q: size changed from %d to %d", comp, n, n2)
		}
		s.close()
	}
}

func TestClosedSource(Te *testing.T) {
	s, err := openSource(writeSourceFixture(Te, ""))
	if err != nil {
		Te.Fatal(err)
	}
	s.close()
	s.close() //idempotent
	if _, err := s.readLine(); err == nil {
		Te.Error("readLine on a closed source should fail")
	}
	if err := s.seek(0); err == nil {
		Te.Error("seek on a closed source should fail")
	}
}
