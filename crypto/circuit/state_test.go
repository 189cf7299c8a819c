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

package circuit

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("State", func() {
	It("installs eight Input gates with projection tables and Nil outputs", func() {
		s := NewState(100)
		Expect(s.NumGates()).Should(Equal(8))
		for i := 0; i < 8; i++ {
			Expect(s.Gate(uint32(i)).Kind).Should(Equal(KindInput))
			Expect(s.GateTable(uint32(i)).Equal(inputTable(i))).Should(BeTrue())
		}
		for slot := 0; slot < 8; slot++ {
			Expect(s.Output(slot)).Should(Equal(NilIndex))
		}
	})

	It("appends a gate and keeps the topological invariant (property 1)", func() {
		s := NewState(100)
		idx := andGate(s, 0, 1)
		Expect(idx).ShouldNot(Equal(NilIndex))
		g := s.Gate(idx)
		Expect(g.In1).Should(BeNumerically("<", idx))
		Expect(g.In2).Should(BeNumerically("<", idx))
	})

	It("derives the table consistently with kind and inputs (property 2)", func() {
		s := NewState(100)
		idx := xorGate(s, 0, 1)
		g := s.Gate(idx)
		Expect(g.Table.Equal(s.GateTable(0).Xor(s.GateTable(1)))).Should(BeTrue())
	})

	It("refuses to exceed max_gates and leaves num_gates unchanged (property 3)", func() {
		s := NewState(8)
		before := s.NumGates()
		idx := andGate(s, 0, 1)
		Expect(idx).Should(Equal(NilIndex))
		Expect(s.NumGates()).Should(Equal(before))
	})

	It("Clone is independent of its source", func() {
		s := NewState(100)
		c := s.Clone()
		andGate(c, 0, 1)
		Expect(c.NumGates()).ShouldNot(Equal(s.NumGates()))
	})

	It("panics when asked to append an Input gate", func() {
		s := NewState(100)
		Expect(func() { s.append(KindInput, TTable{}, NilIndex, NilIndex) }).Should(Panic())
	})

	It("panics on an out-of-range input index", func() {
		s := NewState(100)
		Expect(func() { s.append(KindAnd, TTable{}, 0, 99) }).Should(Panic())
	})
})
