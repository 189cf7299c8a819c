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

// Package dot implements the driver's "-dot" mode: load a persisted State
// and render it as a graphviz digraph on standard output.
package dot

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/getamis/sboxgates/persist"
	rdot "github.com/getamis/sboxgates/render/dot"
)

var Cmd = &cobra.Command{
	Use:   "dot <state-file>",
	Short: "Render a persisted State as a graphviz digraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := persist.LoadState(args[0])
		if err != nil {
			return err
		}
		return rdot.Render(os.Stdout, state)
	},
}
