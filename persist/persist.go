// Copyright © 2021 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package persist implements the on-disk State format: a fixed-size binary
// record the driver reads and writes so synthesis can resume across runs.
// It is external to crypto/circuit, built only on that package's exported
// accessors and constructors.
package persist

import (
	"bufio"
	"encoding/binary"
	"errors"
	"os"

	"github.com/getamis/sboxgates/crypto/circuit"
)

// MaxGates is the fixed number of gate records every persisted file carries,
// regardless of how many gates a State actually holds.
const MaxGates = 500

const (
	sentinel64  = ^uint64(0)
	numOutputs  = 8
	gateRecSize = 8 + 32 + 8 + 8 // kind + table + in1 + in2
	headerSize  = 8 + 8 + numOutputs*8
	fileSize    = headerSize + MaxGates*gateRecSize
)

var (
	// ErrTooManyGates is returned if a State holds more gates than MaxGates.
	ErrTooManyGates = errors.New("persist: state exceeds MaxGates")
	// ErrTruncated is returned if a file's size differs from the fixed record
	// size (shorter or longer).
	ErrTruncated = errors.New("persist: truncated state file")
)

// SaveState writes state to path in the fixed-size record format described
// in the persistence format (header, then MaxGates gate records, unused
// ones zero-filled).
func SaveState(path string, state *circuit.State) error {
	gates := state.Gates()
	if len(gates) > MaxGates {
		return ErrTooManyGates
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if err := writeUint64(w, state.MaxGates()); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(len(gates))); err != nil {
		return err
	}
	outputs := state.Outputs()
	for _, o := range outputs {
		if err := writeUint64(w, indexToDisk(o)); err != nil {
			return err
		}
	}

	for i := 0; i < MaxGates; i++ {
		var g circuit.Gate
		if i < len(gates) {
			g = gates[i]
		}
		if err := writeGate(w, g, i >= len(gates)); err != nil {
			return err
		}
	}

	return w.Flush()
}

// LoadState reads a State previously written by SaveState, reconstructing
// it bit-exactly via circuit.RestoreState.
func LoadState(path string) (*circuit.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() != fileSize {
		return nil, ErrTruncated
	}

	r := bufio.NewReader(f)

	maxGates, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	numGates, err := readUint64(r)
	if err != nil {
		return nil, err
	}

	var outputs [numOutputs]uint32
	for i := range outputs {
		raw, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		outputs[i] = diskToIndex(raw)
	}

	gates := make([]circuit.Gate, numGates)
	for i := uint64(0); i < MaxGates; i++ {
		g, err := readGate(r)
		if err != nil {
			return nil, err
		}
		if i < numGates {
			gates[i] = g
		}
	}

	return circuit.RestoreState(maxGates, gates, outputs), nil
}

func writeUint64(w *bufio.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r *bufio.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func writeGate(w *bufio.Writer, g circuit.Gate, empty bool) error {
	if empty {
		var zero [gateRecSize]byte
		_, err := w.Write(zero[:])
		return err
	}
	if err := writeUint64(w, uint64(g.Kind)); err != nil {
		return err
	}
	for _, word := range g.Table {
		if err := writeUint64(w, word); err != nil {
			return err
		}
	}
	if err := writeUint64(w, indexToDisk(g.In1)); err != nil {
		return err
	}
	return writeUint64(w, indexToDisk(g.In2))
}

func readGate(r *bufio.Reader) (circuit.Gate, error) {
	var g circuit.Gate

	kind, err := readUint64(r)
	if err != nil {
		return g, err
	}
	g.Kind = circuit.Kind(kind)

	for i := range g.Table {
		word, err := readUint64(r)
		if err != nil {
			return g, err
		}
		g.Table[i] = word
	}

	in1, err := readUint64(r)
	if err != nil {
		return g, err
	}
	in2, err := readUint64(r)
	if err != nil {
		return g, err
	}
	g.In1 = diskToIndex(in1)
	g.In2 = diskToIndex(in2)
	return g, nil
}

// indexToDisk widens a 32-bit gate index (or NilIndex) to the 64-bit
// sentinel-carrying disk representation.
func indexToDisk(idx uint32) uint64 {
	if idx == circuit.NilIndex {
		return sentinel64
	}
	return uint64(idx)
}

func diskToIndex(v uint64) uint32 {
	if v == sentinel64 {
		return circuit.NilIndex
	}
	return uint32(v)
}
