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
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("TTable", func() {
	It("Not/And/Or/Xor are bit-identical to a per-bit reference", func() {
		a := inputTable(0)
		b := inputTable(3)
		for i := 0; i < TableWidth; i++ {
			Expect(a.Not().Bit(i)).Should(Equal(1 - a.Bit(i)))
			Expect(a.And(b).Bit(i)).Should(Equal(a.Bit(i) & b.Bit(i)))
			Expect(a.Or(b).Bit(i)).Should(Equal(a.Bit(i) | b.Bit(i)))
			Expect(a.Xor(b).Bit(i)).Should(Equal(a.Bit(i) ^ b.Bit(i)))
		}
	})

	It("Equal and EqualsMask agree on the full mask", func() {
		a := inputTable(2)
		b := inputTable(2)
		c := inputTable(5)
		Expect(a.Equal(b)).Should(BeTrue())
		Expect(a.EqualsMask(b, FullMask)).Should(BeTrue())
		Expect(a.Equal(c)).Should(BeFalse())
		Expect(a.EqualsMask(c, FullMask)).Should(BeFalse())
	})

	It("EqualsMask identity holds for any a, m (law 6)", func() {
		a := inputTable(4).Xor(inputTable(1))
		for _, m := range []TTable{FullMask, ZeroMask, inputTable(7)} {
			Expect(a.EqualsMask(a, m)).Should(BeTrue())
		}
	})

	It("EqualsMask ignores disagreement outside the mask", func() {
		a := inputTable(0)
		b := a.Not()
		Expect(a.EqualsMask(b, ZeroMask)).Should(BeTrue())
		Expect(a.EqualsMask(b, FullMask)).Should(BeFalse())
	})

	DescribeTable("input-variable tables satisfy bit i of table(j) == (i>>j)&1 (property 5)",
		func(bit int) {
			t := inputTable(bit)
			for i := 0; i < TableWidth; i++ {
				Expect(t.Bit(i)).Should(Equal(uint8((i >> uint(bit)) & 1)))
			}
		},
		Entry("bit 0", 0), Entry("bit 1", 1), Entry("bit 2", 2), Entry("bit 3", 3),
		Entry("bit 4", 4), Entry("bit 5", 5), Entry("bit 6", 6), Entry("bit 7", 7),
	)
})
