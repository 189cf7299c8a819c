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

var _ = Describe("GenerateTarget", func() {
	DescribeTable("sboxOut=false reproduces the projection table for the given bit",
		func(bit int) {
			var sbox Sbox
			Expect(GenerateTarget(sbox, bit, false).Equal(inputTable(bit))).Should(BeTrue())
		},
		Entry("bit 0", 0), Entry("bit 1", 1), Entry("bit 7", 7),
	)

	It("sboxOut=true sets bit i according to (sbox[i]>>bit)&1", func() {
		var sbox Sbox
		for i := range sbox {
			sbox[i] = byte(i)
		}
		for bit := 0; bit < 8; bit++ {
			t := GenerateTarget(sbox, bit, true)
			for i := 0; i < TableWidth; i++ {
				want := uint8((sbox[i] >> uint(bit)) & 1)
				Expect(t.Bit(i)).Should(Equal(want))
			}
		}
	})

	It("the identity S-box's output bit k equals input bit k", func() {
		var identity Sbox
		for i := range identity {
			identity[i] = byte(i)
		}
		for bit := 0; bit < 8; bit++ {
			Expect(GenerateTarget(identity, bit, true).Equal(inputTable(bit))).Should(BeTrue())
		}
	})

	It("a constant S-box yields the all-zero or all-one table", func() {
		var sbox Sbox
		for i := range sbox {
			sbox[i] = 0xff
		}
		Expect(GenerateTarget(sbox, 0, true).Equal(FullMask)).Should(BeTrue())
		var zero Sbox
		Expect(GenerateTarget(zero, 0, true).Equal(ZeroMask)).Should(BeTrue())
	})
})
