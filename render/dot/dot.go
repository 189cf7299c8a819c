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

// Package dot renders a State's gate network as a graphviz "digraph"
// description, for the driver's "-dot" CLI mode. It is external to
// crypto/circuit, built only on that package's exported accessors.
package dot

import (
	"fmt"
	"io"

	"github.com/getamis/sboxgates/crypto/circuit"
)

// Render writes a graphviz digraph description of state to w: one node per
// gate, labeled by kind and index, one edge per input wire, and a trailing
// "out_<slot>" node for every output slot that is still realized.
func Render(w io.Writer, state *circuit.State) error {
	if _, err := io.WriteString(w, "digraph circuit {\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\trankdir=TB;\n"); err != nil {
		return err
	}

	n := state.NumGates()
	for i := 0; i < n; i++ {
		g := state.Gate(uint32(i))
		if _, err := fmt.Fprintf(w, "\tg%d [label=\"%s %d\"];\n", i, g.Kind, i); err != nil {
			return err
		}
		if g.In1 != circuit.NilIndex {
			if _, err := fmt.Fprintf(w, "\tg%d -> g%d;\n", g.In1, i); err != nil {
				return err
			}
		}
		if g.In2 != circuit.NilIndex {
			if _, err := fmt.Fprintf(w, "\tg%d -> g%d;\n", g.In2, i); err != nil {
				return err
			}
		}
	}

	for slot := 0; slot < 8; slot++ {
		idx := state.Output(slot)
		if idx == circuit.NilIndex {
			continue
		}
		if _, err := fmt.Fprintf(w, "\tout_%d [label=\"out %d\", shape=doublecircle];\n", slot, slot); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\tg%d -> out_%d;\n", idx, slot); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}
