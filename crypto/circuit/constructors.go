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

// The typed gate constructors below derive the child truth table from the
// parents' tables and append it to state. NilIndex propagates through every
// composite without a branch at each step: if any input is already Nil
// (e.g. because an enclosing append hit the gate budget), the whole chain
// collapses to Nil and state is left exactly as it was before the chain
// began.

func notGate(state *State, a uint32) uint32 {
	if a == NilIndex {
		return NilIndex
	}
	return state.append(KindNot, state.GateTable(a).Not(), a, NilIndex)
}

func andGate(state *State, a, b uint32) uint32 {
	if a == NilIndex || b == NilIndex {
		return NilIndex
	}
	return state.append(KindAnd, state.GateTable(a).And(state.GateTable(b)), a, b)
}

func orGate(state *State, a, b uint32) uint32 {
	if a == NilIndex || b == NilIndex {
		return NilIndex
	}
	return state.append(KindOr, state.GateTable(a).Or(state.GateTable(b)), a, b)
}

func xorGate(state *State, a, b uint32) uint32 {
	if a == NilIndex || b == NilIndex {
		return NilIndex
	}
	return state.append(KindXor, state.GateTable(a).Xor(state.GateTable(b)), a, b)
}

// nand, nor, xnor: base op plus a derived Not. Cost 2.
func nandGate(state *State, a, b uint32) uint32 { return notGate(state, andGate(state, a, b)) }
func norGate(state *State, a, b uint32) uint32  { return notGate(state, orGate(state, a, b)) }
func xnorGate(state *State, a, b uint32) uint32 { return notGate(state, xorGate(state, a, b)) }

// andNotGate computes (not a) and b. Cost 2.
func andNotGate(state *State, a, b uint32) uint32 {
	return andGate(state, notGate(state, a), b)
}

// orNotGate computes (not a) or b. Cost 2.
func orNotGate(state *State, a, b uint32) uint32 {
	return orGate(state, notGate(state, a), b)
}

// Three-input composites. Cost 2: one gate combining two of the operands,
// one gate combining the result with the third.

func and3Gate(state *State, a, b, c uint32) uint32 {
	return andGate(state, andGate(state, a, b), c)
}

func or3Gate(state *State, a, b, c uint32) uint32 {
	return orGate(state, orGate(state, a, b), c)
}

func xor3Gate(state *State, a, b, c uint32) uint32 {
	return xorGate(state, xorGate(state, a, b), c)
}

// andOrGate computes (a and b) or c.
func andOrGate(state *State, a, b, c uint32) uint32 {
	return orGate(state, andGate(state, a, b), c)
}

// andXorGate computes (a and b) xor c.
func andXorGate(state *State, a, b, c uint32) uint32 {
	return xorGate(state, andGate(state, a, b), c)
}

// orAndGate computes (a or b) and c.
func orAndGate(state *State, a, b, c uint32) uint32 {
	return andGate(state, orGate(state, a, b), c)
}

// orXorGate computes (a or b) xor c.
func orXorGate(state *State, a, b, c uint32) uint32 {
	return xorGate(state, orGate(state, a, b), c)
}

// xorAndGate computes (a xor b) and c.
func xorAndGate(state *State, a, b, c uint32) uint32 {
	return andGate(state, xorGate(state, a, b), c)
}

// xorOrGate computes (a xor b) or c.
func xorOrGate(state *State, a, b, c uint32) uint32 {
	return orGate(state, xorGate(state, a, b), c)
}
