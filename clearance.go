/*
 * Copyright 2025 xionun
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package depsfix

import (
    `github.com/xionun/depsfix/mir`
)

const (
    _D_broken = -(1 << 30)      // dependency already broken, never worth breaking again
    _D_entry  = -(1 << 20)      // defined before the block, not in the live-in set
    _D_livein = _D_entry + 1    // defined before the block, in the live-in set
)

// _DefTable tracks, per register unit, the index of the instruction that
// most recently defined it. The distance between the current instruction
// and that definition is the register's clearance: a proxy for how free
// of false dependencies the register currently is.
//
// Live-in registers are seeded one step later than the rest so that, all
// else being equal, a non-live-in register wins the tie.
type _DefTable struct {
    def []int
}

func newDefTable(nregs int) *_DefTable {
    return &_DefTable {
        def: make([]int, nregs),
    }
}

func (self *_DefTable) reset(bb *mir.BasicBlock) {
    for i := range self.def {
        self.def[i] = _D_entry
    }
    for r := range bb.LiveIn {
        self.def[r] = _D_livein
    }
}

func (self *_DefTable) define(r mir.Reg, i int) {
    self.def[r] = i
}

func (self *_DefTable) defineAll(i int) {
    for r := range self.def {
        self.def[r] = i
    }
}

func (self *_DefTable) breakdep(r mir.Reg) {
    self.def[r] = _D_broken
}

func (self *_DefTable) clearance(r mir.Reg, i int) int {
    return i - self.def[r]
}
