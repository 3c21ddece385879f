/*
 * prmtop.go, part of amberio
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//The modern Amber topology ("prmtop") is organized in sections, each
//announced by a %FLAG line and a %FORMAT line that gives the fixed-width
//layout of the data that follows (e.g. 10I8, 20a4, 5E16.8). We only pull
//out the sections a trajectory reader cares about: the POINTERS counters
//and the atom/residue identity tables. Everything else is read and kept
//as raw fields, then ignored.

//Indices into the POINTERS section.
const (
	pointerNatom = 0  //total number of atoms
	pointerNres  = 11 //total number of residues
	pointerIfbox = 27 //periodic box flag
)

// PRMRead parses the Amber topology file in path and returns the
// Topology it describes. Only the atom count, atom names, residue
// names/limits and the periodic-box flag are interpreted.
func PRMRead(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PRMError{message: "unable to open file: " + err.Error(), filename: path, deco: []string{"PRMRead"}}
	}
	defer f.Close()
	top, err := prmRead(bufio.NewReader(f), path)
	if err != nil {
		return nil, err
	}
	return top, nil
}

//fieldWidth of a %FORMAT spec like 20a4 or 10I8. The count is not needed:
//data lines are sliced greedily by width, so short trailing lines work out.
type prmFormat struct {
	kind  byte //'a', 'I', 'E' or 'F'
	width int
}

func prmRead(r *bufio.Reader, fname string) (*Topology, error) {
	first, err := r.ReadString('\n')
	if err != nil || !strings.HasPrefix(first, "%VERSION") {
		return nil, &PRMError{message: "not an Amber topology: missing %VERSION stamp", filename: fname, deco: []string{"prmRead"}}
	}
	sections := make(map[string][]string)
	var flag string
	var format prmFormat
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF && line == "" {
			break
		}
		if err != nil && err != io.EOF {
			return nil, &PRMError{message: err.Error(), filename: fname, deco: []string{"prmRead"}}
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "%FLAG"):
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, &PRMError{message: "malformed %FLAG line: " + line, filename: fname, deco: []string{"prmRead"}}
			}
			flag = fields[1]
			format = prmFormat{}
		case strings.HasPrefix(line, "%FORMAT"):
			format, err = parsePRMFormat(line)
			if err != nil {
				return nil, &PRMError{message: err.Error(), filename: fname, deco: []string{"prmRead"}}
			}
		case strings.HasPrefix(line, "%COMMENT"):
			continue
		default:
			if flag == "" || format.width == 0 {
				continue //junk before the first section
			}
			for i := 0; i < len(line); i += format.width {
				end := i + format.width
				if end > len(line) {
					end = len(line)
				}
				field := strings.TrimSpace(line[i:end])
				if field != "" {
					sections[flag] = append(sections[flag], field)
				}
			}
		}
		if err == io.EOF {
			break
		}
	}
	return prmAssemble(sections, fname)
}

// parsePRMFormat interprets a line like "%FORMAT(10I8)" or "%FORMAT(5E16.8)".
func parsePRMFormat(line string) (prmFormat, error) {
	open := strings.IndexByte(line, '(')
	shut := strings.LastIndexByte(line, ')')
	if open < 0 || shut < open {
		return prmFormat{}, fmt.Errorf("malformed %%FORMAT line: %s", line)
	}
	spec := line[open+1 : shut]
	i := 0
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}
	if i == len(spec) {
		return prmFormat{}, fmt.Errorf("malformed format spec: %s", spec)
	}
	kind := spec[i]
	rest := spec[i+1:]
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		rest = rest[:dot]
	}
	width, err := strconv.Atoi(rest)
	if err != nil || width <= 0 {
		return prmFormat{}, fmt.Errorf("malformed format spec: %s", spec)
	}
	return prmFormat{kind: kind, width: width}, nil
}

func prmAssemble(sections map[string][]string, fname string) (*Topology, error) {
	pointers, err := prmInts(sections["POINTERS"])
	if err != nil || len(pointers) <= pointerIfbox {
		return nil, &PRMError{message: "missing or short POINTERS section", filename: fname, deco: []string{"prmAssemble"}}
	}
	natom := pointers[pointerNatom]
	nres := pointers[pointerNres]
	ifbox := pointers[pointerIfbox]
	if natom <= 0 {
		return nil, &PRMError{message: fmt.Sprintf("topology declares %d atoms", natom), filename: fname, deco: []string{"prmAssemble"}}
	}
	names := sections["ATOM_NAME"]
	if len(names) != natom {
		return nil, &PRMError{message: fmt.Sprintf("ATOM_NAME has %d entries, POINTERS declares %d atoms", len(names), natom), filename: fname, deco: []string{"prmAssemble"}}
	}
	labels := sections["RESIDUE_LABEL"]
	respointers, err := prmInts(sections["RESIDUE_POINTER"])
	if err != nil || len(labels) != nres || len(respointers) != nres {
		return nil, &PRMError{message: "inconsistent residue tables", filename: fname, deco: []string{"prmAssemble"}}
	}
	atoms := make([]*Atom, natom)
	for i := 0; i < nres; i++ {
		start := respointers[i] - 1 //1-based in the file
		end := natom
		if i+1 < nres {
			end = respointers[i+1] - 1
		}
		if start < 0 || start > end || end > natom {
			return nil, &PRMError{message: fmt.Sprintf("residue %d spans atoms %d-%d, outside the topology", i+1, start+1, end), filename: fname, deco: []string{"prmAssemble"}}
		}
		for j := start; j < end; j++ {
			atoms[j] = &Atom{Name: names[j], MolName: labels[i], MolID: i + 1}
		}
	}
	for i, at := range atoms {
		if at == nil {
			return nil, &PRMError{message: fmt.Sprintf("atom %d not covered by any residue", i+1), filename: fname, deco: []string{"prmAssemble"}}
		}
	}
	return NewTopology(atoms, ifbox), nil
}

func prmInts(fields []string) ([]int, error) {
	ret := make([]int, 0, len(fields))
	for _, v := range fields {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, i)
	}
	return ret, nil
}

// PRMError is the error type for topology parsing. It fulfills amberio.Error.
type PRMError struct {
	message  string
	filename string
	deco     []string
}

func (err *PRMError) Error() string {
	return fmt.Sprintf("Amber topology file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err *PRMError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing topology was associated
func (err *PRMError) FileName() string { return err.filename }
