package amberio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

//a minimal but well-formed prmtop: 3 atoms in 2 residues, periodic box.
func prmtopFixture(Te *testing.T) string {
	Te.Helper()
	pointers := make([]int, 31)
	pointers[pointerNatom] = 3
	pointers[pointerNres] = 2
	pointers[pointerIfbox] = 1
	var sb strings.Builder
	sb.WriteString("%VERSION  VERSION_STAMP = V0001.000  DATE = 01/01/24  00:00:00\n")
	sb.WriteString("%FLAG TITLE\n%FORMAT(20a4)\n")
	sb.WriteString("test\n")
	sb.WriteString("%FLAG POINTERS\n%FORMAT(10I8)\n")
	for i, p := range pointers {
		fmt.Fprintf(&sb, "%8d", p)
		if (i+1)%10 == 0 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')
	sb.WriteString("%FLAG ATOM_NAME\n%FORMAT(20a4)\n")
	sb.WriteString("N   CA  C   \n")
	sb.WriteString("%FLAG RESIDUE_LABEL\n%FORMAT(20a4)\n")
	sb.WriteString("ALA GLY \n")
	sb.WriteString("%FLAG RESIDUE_POINTER\n%FORMAT(10I8)\n")
	fmt.Fprintf(&sb, "%8d%8d\n", 1, 3)
	path := filepath.Join(Te.TempDir(), "fixture.prmtop")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		Te.Fatal(err)
	}
	return path
}

func TestPRMRead(Te *testing.T) {
	top, err := PRMRead(prmtopFixture(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if top.Len() != 3 {
		Te.Fatalf("got %d atoms, expected 3", top.Len())
	}
	names := []string{"N", "CA", "C"}
	for i, want := range names {
		if top.Atom(i).Name != want {
			Te.Errorf("atom %d named %q, expected %q", i, top.Atom(i).Name, want)
		}
	}
	if top.Atom(0).MolName != "ALA" || top.Atom(1).MolName != "ALA" {
		Te.Error("first residue should be ALA")
	}
	if top.Atom(2).MolName != "GLY" || top.Atom(2).MolID != 2 {
		Te.Error("second residue should be GLY, id 2")
	}
	if !top.Periodic() {
		Te.Error("IFBOX=1 should give a periodic hint")
	}
}

func TestPRMReadRejectsGarbage(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "not.prmtop")
	if err := os.WriteFile(path, []byte("hello\nworld\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	if _, err := PRMRead(path); err == nil {
		Te.Error("a non-topology file must be rejected")
	}
	if _, err := PRMRead(filepath.Join(Te.TempDir(), "missing")); err == nil {
		Te.Error("a missing file must be an error")
	}
}

func TestPRMReadInconsistentTables(Te *testing.T) {
	//ATOM_NAME with fewer entries than POINTERS declares
	text := "%VERSION  VERSION_STAMP = V0001.000\n" +
		"%FLAG POINTERS\n%FORMAT(10I8)\n" +
		"       2" + strings.Repeat("       0", 9) + "\n" +
		strings.Repeat("       0", 10) + "\n" +
		strings.Repeat("       0", 10) + "\n" +
		"       0\n" +
		"%FLAG ATOM_NAME\n%FORMAT(20a4)\n" +
		"N   \n" +
		"%FLAG RESIDUE_LABEL\n%FORMAT(20a4)\nALA \n" +
		"%FLAG RESIDUE_POINTER\n%FORMAT(10I8)\n       1\n"
	path := filepath.Join(Te.TempDir(), "short.prmtop")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		Te.Fatal(err)
	}
	if _, err := PRMRead(path); err == nil {
		Te.Error("a short ATOM_NAME table must be rejected")
	}
}

func TestTopologyAtomPanics(Te *testing.T) {
	top := NewTopology([]*Atom{{Name: "N"}}, 0)
	defer func() {
		if recover() == nil {
			Te.Error("Atom out of range should panic, per the Atomer contract")
		}
	}()
	top.Atom(1)
}
