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

import "github.com/getamis/sboxgates/logger"

// maxInbits bounds the number of nested Shannon splits a single synthesis
// path may take (§4.D).
const maxInbits = 6

// Synthesize searches for a sub-circuit of state computing target (agreeing
// with it on every assignment mask marks as required) and, on success,
// appends whatever new gates that took to state and returns the index of
// the realizing gate. On failure it returns (NilIndex, false) and state is
// left exactly as it was: every exploration runs against a private clone,
// and only a winning clone is ever merged back.
//
// inbits lists the input-bit indices already consumed by enclosing Shannon
// splits on this recursion path; callers invoking Synthesize directly
// (rather than recursively from within the synthesizer) pass nil.
func Synthesize(state *State, target, mask TTable, inbits []int) (uint32, bool) {
	if len(inbits) > maxInbits {
		panic("circuit: inbits overflow")
	}
	trial := state.Clone()
	idx, ok := synthesize(trial, target, mask, inbits)
	if !ok {
		logger.Logger().Debug("Synthesis failed within budget", "maxGates", state.MaxGates(), "depth", len(inbits))
		return NilIndex, false
	}
	*state = *trial
	logger.Logger().Debug("Synthesis succeeded", "gates", state.NumGates(), "depth", len(inbits))
	return idx, true
}

// synthesize is the recursive worker. Unlike Synthesize it mutates state
// directly: every caller (the exported entry point, and the Shannon-phase
// branches below) already owns a private trial copy of state, so there is
// no need to clone again at each recursion level — only phase 5 needs an
// extra clone per candidate, because it must compare several candidates
// before committing to one.
func synthesize(state *State, target, mask TTable, inbits []int) (uint32, bool) {
	n := state.NumGates()

	// Phase 1: single gate reuse. Cost 0.
	for i := 0; i < n; i++ {
		if target.EqualsMask(state.GateTable(uint32(i)), mask) {
			return uint32(i), true
		}
	}

	// Phase 2: inversion reuse. Cost 1.
	for i := 0; i < n; i++ {
		if target.EqualsMask(state.GateTable(uint32(i)).Not(), mask) {
			if idx := notGate(state, uint32(i)); idx != NilIndex {
				return idx, true
			}
		}
	}

	// Phase 3: one new binary gate over every ordered pair. Cost 1.
	for i := 0; i < n; i++ {
		ti := state.GateTable(uint32(i))
		for k := i + 1; k < n; k++ {
			tk := state.GateTable(uint32(k))
			if target.EqualsMask(ti.Or(tk), mask) {
				if idx := orGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(ti.And(tk), mask) {
				if idx := andGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(ti.Xor(tk), mask) {
				if idx := xorGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
		}
	}

	// Phase 4: two new gates. First the six derived-Not shapes over every
	// pair, then every three-input composite over every triple. Cost 2.
	if idx, ok := tryTwoGatePairs(state, target, mask, n); ok {
		return idx, true
	}
	if idx, ok := tryTwoGateTriples(state, target, mask, n); ok {
		return idx, true
	}

	// Phase 5: Shannon expansion with a multiplexer.
	return synthesizeShannon(state, target, mask, inbits)
}

// tryTwoGatePairs covers nor, nand, xnor, and both orderings of (not a) or b
// and (not a) and b.
func tryTwoGatePairs(state *State, target, mask TTable, n int) (uint32, bool) {
	for i := 0; i < n; i++ {
		ti := state.GateTable(uint32(i))
		ni := ti.Not()
		for k := i + 1; k < n; k++ {
			tk := state.GateTable(uint32(k))
			nk := tk.Not()

			if target.EqualsMask(ti.Or(tk).Not(), mask) {
				if idx := norGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(ti.And(tk).Not(), mask) {
				if idx := nandGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(ti.Xor(tk).Not(), mask) {
				if idx := xnorGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(ni.Or(tk), mask) {
				if idx := orNotGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(nk.Or(ti), mask) {
				if idx := orNotGate(state, uint32(k), uint32(i)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(ni.And(tk), mask) {
				if idx := andNotGate(state, uint32(i), uint32(k)); idx != NilIndex {
					return idx, true
				}
			}
			if target.EqualsMask(nk.And(ti), mask) {
				if idx := andNotGate(state, uint32(k), uint32(i)); idx != NilIndex {
					return idx, true
				}
			}
		}
	}
	return NilIndex, false
}

// tryTwoGateTriples covers and_3/or_3/xor_3 (role-symmetric, tested once
// per triple) and the six asymmetric composites and_or/and_xor/or_and/
// or_xor/xor_and/xor_or, tried with each of the three gates playing the
// "c" role in turn.
func tryTwoGateTriples(state *State, target, mask TTable, n int) (uint32, bool) {
	for i := 0; i < n; i++ {
		ti := state.GateTable(uint32(i))
		for k := i + 1; k < n; k++ {
			tk := state.GateTable(uint32(k))
			for m := k + 1; m < n; m++ {
				tm := state.GateTable(uint32(m))

				if target.EqualsMask(ti.And(tk).And(tm), mask) {
					if idx := and3Gate(state, uint32(i), uint32(k), uint32(m)); idx != NilIndex {
						return idx, true
					}
				}
				if target.EqualsMask(ti.Or(tk).Or(tm), mask) {
					if idx := or3Gate(state, uint32(i), uint32(k), uint32(m)); idx != NilIndex {
						return idx, true
					}
				}
				if target.EqualsMask(ti.Xor(tk).Xor(tm), mask) {
					if idx := xor3Gate(state, uint32(i), uint32(k), uint32(m)); idx != NilIndex {
						return idx, true
					}
				}

				roles := [3][3]uint32{
					{uint32(i), uint32(k), uint32(m)},
					{uint32(k), uint32(m), uint32(i)},
					{uint32(m), uint32(i), uint32(k)},
				}
				roleTables := [3][3]TTable{
					{ti, tk, tm},
					{tk, tm, ti},
					{tm, ti, tk},
				}
				for r := 0; r < 3; r++ {
					a, b, c := roles[r][0], roles[r][1], roles[r][2]
					ta, tb, tc := roleTables[r][0], roleTables[r][1], roleTables[r][2]

					if target.EqualsMask(ta.And(tb).Or(tc), mask) {
						if idx := andOrGate(state, a, b, c); idx != NilIndex {
							return idx, true
						}
					}
					if target.EqualsMask(ta.And(tb).Xor(tc), mask) {
						if idx := andXorGate(state, a, b, c); idx != NilIndex {
							return idx, true
						}
					}
					if target.EqualsMask(ta.Or(tb).And(tc), mask) {
						if idx := orAndGate(state, a, b, c); idx != NilIndex {
							return idx, true
						}
					}
					if target.EqualsMask(ta.Or(tb).Xor(tc), mask) {
						if idx := orXorGate(state, a, b, c); idx != NilIndex {
							return idx, true
						}
					}
					if target.EqualsMask(ta.Xor(tb).And(tc), mask) {
						if idx := xorAndGate(state, a, b, c); idx != NilIndex {
							return idx, true
						}
					}
					if target.EqualsMask(ta.Xor(tb).Or(tc), mask) {
						if idx := xorOrGate(state, a, b, c); idx != NilIndex {
							return idx, true
						}
					}
				}
			}
		}
	}
	return NilIndex, false
}

// synthesizeShannon is phase 5: split on a not-yet-used input variable s,
// synthesize both cofactors, and recombine through an XOR-based
// multiplexer. Every candidate s and mux shape is tried on its own clone;
// the smallest winning clone is merged back into state.
func synthesizeShannon(state *State, target, mask TTable, inbits []int) (uint32, bool) {
	if len(inbits) >= maxInbits {
		return NilIndex, false
	}
	logger.Logger().Debug("Entering Shannon expansion", "depth", len(inbits), "gates", state.NumGates())

	used := make(map[int]bool, len(inbits))
	for _, b := range inbits {
		used[b] = true
	}

	var bestState *State
	bestIdx := NilIndex
	bestGates := -1

	for s := 0; s < numInputs; s++ {
		if used[s] {
			continue
		}
		sTable := state.GateTable(uint32(s))
		notS := sTable.Not()
		childInbits := make([]int, len(inbits), len(inbits)+1)
		copy(childInbits, inbits)
		childInbits = append(childInbits, s)

		var candState *State
		candIdx := NilIndex
		candGates := -1

		andTrial := state.Clone()
		if idx, ok := tryAndMux(andTrial, target, mask, uint32(s), sTable, notS, childInbits); ok {
			candState, candIdx, candGates = andTrial, idx, andTrial.NumGates()
		}

		orTrial := state.Clone()
		if idx, ok := tryOrMux(orTrial, target, mask, uint32(s), sTable, notS, childInbits); ok {
			if candState == nil || orTrial.NumGates() < candGates {
				candState, candIdx, candGates = orTrial, idx, orTrial.NumGates()
			}
		}

		if candState == nil {
			continue
		}
		if bestState == nil || candGates < bestGates {
			bestState, bestIdx, bestGates = candState, candIdx, candGates
		}
	}

	if bestState == nil {
		return NilIndex, false
	}
	*state = *bestState
	return bestIdx, true
}

// tryAndMux realizes out = fb xor (fc and s), where fb agrees with target
// on s=0 and fc corrects the s=1 side.
func tryAndMux(state *State, target, mask TTable, s uint32, sTable, notS TTable, inbits []int) (uint32, bool) {
	fbIdx, ok := synthesize(state, target.And(notS), mask.And(notS), inbits)
	if !ok {
		return NilIndex, false
	}
	corrected := state.GateTable(fbIdx).Xor(target)
	fcIdx, ok := synthesize(state, corrected, mask.And(sTable), inbits)
	if !ok {
		return NilIndex, false
	}
	andIdx := andGate(state, fcIdx, s)
	if andIdx == NilIndex {
		return NilIndex, false
	}
	outIdx := xorGate(state, fbIdx, andIdx)
	if outIdx == NilIndex {
		return NilIndex, false
	}
	return outIdx, true
}

// tryOrMux realizes out = fd xor (fe or s), where fd agrees with the
// complement of target on s=1 (so fd xor 1 gives target there) and fe
// corrects the s=0 side.
func tryOrMux(state *State, target, mask TTable, s uint32, sTable, notS TTable, inbits []int) (uint32, bool) {
	fdIdx, ok := synthesize(state, target.Not().And(sTable), mask.And(sTable), inbits)
	if !ok {
		return NilIndex, false
	}
	corrected := state.GateTable(fdIdx).Xor(target)
	feIdx, ok := synthesize(state, corrected, mask.And(notS), inbits)
	if !ok {
		return NilIndex, false
	}
	orIdx := orGate(state, feIdx, s)
	if orIdx == NilIndex {
		return NilIndex, false
	}
	outIdx := xorGate(state, fdIdx, orIdx)
	if outIdx == NilIndex {
		return NilIndex, false
	}
	return outIdx, true
}
