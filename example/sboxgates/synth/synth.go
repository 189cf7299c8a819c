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

// Package synth implements the driver's default mode (§4.F): synthesize a
// gate network realizing every output bit of an S-box, from scratch or
// resuming a persisted State, optionally spreading the per-output search
// across a worker pool.
package synth

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/getamis/sboxgates/crypto/circuit"
	"github.com/getamis/sboxgates/crypto/utils"
	"github.com/getamis/sboxgates/example/config"
	"github.com/getamis/sboxgates/logger"
	"github.com/getamis/sboxgates/persist"
)

var Cmd = &cobra.Command{
	Use:   "synth [state-file]",
	Short: "Synthesize an S-box, optionally resuming a persisted State",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.ReadConfigFile(viper.GetString("config"))
		if err != nil {
			logger.Logger().Crit("Failed to read config", "err", err)
		}

		sbox, err := loadSbox(cfg)
		if err != nil {
			return err
		}

		var state *circuit.State
		if len(args) == 1 {
			state, err = persist.LoadState(args[0])
			if err != nil {
				return err
			}
		} else {
			state = circuit.NewState(cfg.MaxGates)
		}

		if cfg.Workers > 1 {
			return runConcurrent(state, sbox, cfg)
		}
		return runSequential(state, sbox, cfg)
	},
}

// loadSbox decodes cfg.SboxHex, or, when cfg.Random is set, draws a random
// permutation of the 256 byte values via Fisher-Yates.
func loadSbox(cfg *config.Config) (circuit.Sbox, error) {
	var sbox circuit.Sbox
	if cfg.Random {
		table, err := randomSbox()
		if err != nil {
			return sbox, err
		}
		return table, nil
	}

	sboxBytes, err := hex.DecodeString(cfg.SboxHex)
	if err != nil {
		logger.Logger().Crit("Failed to decode sboxHex", "err", err)
	}
	if len(sboxBytes) != circuit.TableWidth {
		return sbox, fmt.Errorf("synth: sboxHex must encode %d bytes, got %d", circuit.TableWidth, len(sboxBytes))
	}
	copy(sbox[:], sboxBytes)
	return sbox, nil
}

// randomSbox draws a uniformly random permutation of [0, circuit.TableWidth)
// via Fisher-Yates, using utils.RandomInt for each swap index.
func randomSbox() (circuit.Sbox, error) {
	var sbox circuit.Sbox
	for i := range sbox {
		sbox[i] = byte(i)
	}
	for i := len(sbox) - 1; i > 0; i-- {
		j, err := utils.RandomInt(big.NewInt(int64(i + 1)))
		if err != nil {
			return sbox, err
		}
		sbox[i], sbox[j.Int64()] = sbox[j.Int64()], sbox[i]
	}
	logger.Logger().Info("Generated random S-box permutation")
	return sbox, nil
}

// runSequential grows one shared State across every unresolved output,
// so later outputs can reuse gates earlier ones introduced.
func runSequential(state *circuit.State, sbox circuit.Sbox, cfg *config.Config) error {
	for slot := 0; slot < 8; slot++ {
		if state.Output(slot) != circuit.NilIndex {
			continue
		}
		target := circuit.GenerateTarget(sbox, slot, true)
		idx, ok := circuit.Synthesize(state, target, circuit.FullMask, nil)
		if !ok {
			logger.Logger().Warn("Could not realize output within budget", "slot", slot, "maxGates", state.MaxGates())
			continue
		}
		state.SetOutput(slot, idx)
		tightenBudget(state)

		if err := persist.SaveState(snapshotPath(cfg.OutDir, slot, state), state); err != nil {
			return err
		}
		logger.Logger().Info("Synthesized output", "slot", slot, "gates", state.NumGates())
	}
	return nil
}

// runConcurrent gives each unresolved output its own deep copy of the seed
// State (§5): tasks never see each other's new gates, but all observe a
// monotonically non-increasing shared max_gates ceiling.
func runConcurrent(seed *circuit.State, sbox circuit.Sbox, cfg *config.Config) error {
	var (
		mu       sync.RWMutex
		maxGates = seed.MaxGates()
	)

	sem := make(chan struct{}, cfg.Workers)
	var g errgroup.Group

	for slot := 0; slot < 8; slot++ {
		slot := slot
		if seed.Output(slot) != circuit.NilIndex {
			continue
		}
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()

			mu.RLock()
			budget := maxGates
			mu.RUnlock()

			trial := seed.Clone()
			trial.SetMaxGates(budget)

			target := circuit.GenerateTarget(sbox, slot, true)
			idx, ok := circuit.Synthesize(trial, target, circuit.FullMask, nil)
			if !ok {
				logger.Logger().Warn("Could not realize output within budget", "slot", slot, "maxGates", budget)
				return nil
			}
			trial.SetOutput(slot, idx)

			mu.Lock()
			if uint64(trial.NumGates()) < maxGates {
				maxGates = uint64(trial.NumGates())
			}
			mu.Unlock()

			if err := persist.SaveState(snapshotPath(cfg.OutDir, slot, trial), trial); err != nil {
				return err
			}
			logger.Logger().Info("Synthesized output", "slot", slot, "gates", trial.NumGates())
			return nil
		})
	}

	return g.Wait()
}

// tightenBudget lowers max_gates to the current gate count once it solves an
// output more cheaply, so every subsequent output search is at least as
// tight as the cheapest one found so far.
func tightenBudget(state *circuit.State) {
	if n := uint64(state.NumGates()); n < state.MaxGates() {
		logger.Logger().Info("Tightening gate budget", "from", state.MaxGates(), "to", n)
		state.SetMaxGates(n)
	}
}

func snapshotPath(outDir string, slot int, state *circuit.State) string {
	resolved := 0
	for o := 0; o < 8; o++ {
		if state.Output(o) != circuit.NilIndex {
			resolved++
		}
	}
	name := fmt.Sprintf("%d-%d-%d.state", slot, state.NumGates(), resolved)
	return filepath.Join(outDir, name)
}
