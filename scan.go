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
    `github.com/oleiade/lane`

    `github.com/xionun/depsfix/mir`
)

// _PendingRead is one undefined read the forward scan could not resolve,
// queued for the backward collapse of the same block.
type _PendingRead struct {
    p *mir.Instr
    i int
    k int
}

// _FuncState is the scratch state of one function's traversal. Everything
// in it is reset at block boundaries; nothing escapes the function.
type _FuncState struct {
    isa     ISA
    domains DomainTracker
    defs    *_DefTable
    pending *lane.Deque
}

func newFuncState(isa ISA, dt DomainTracker) *_FuncState {
    return &_FuncState {
        isa     : isa,
        domains : dt,
        defs    : newDefTable(isa.NumRegs()),
        pending : lane.NewDeque(),
    }
}

// process runs one block through the forward scan, then drains whatever
// the scan left pending through the backward collapse.
func (self *_FuncState) process(bb *mir.BasicBlock, primary bool, done bool) {
    self.scan(bb, primary, done)

    /* undefined reads are only queued once the block is done */
    if done {
        self.collapse(bb)
    }
}

func (self *_FuncState) scan(bb *mir.BasicBlock, primary bool, done bool) {
    self.defs.reset(bb)

    /* walk the block in program order */
    for k, p := range bb.Ins {
        if primary {
            d, soft := self.isa.ExecutionDomain(p)

            /* an instruction with no explicit domain is irrelevant to
             * domain assignment; merging itself is delegated */
            if kill := d == 0 && soft == 0; !kill && self.domains != nil {
                self.domains.Visit(p, d, soft)
            }
        }

        /* a call may use or clobber anything the caller cannot see into */
        if p.IsCall() {
            self.defs.defineAll(k)
        }

        /* evaluate the undefined reads before this instruction's own
         * definitions take effect */
        if done {
            for i := range p.Arg {
                self.visitUndef(p, i, k)
            }
        }

        /* record definitions */
        for _, d := range p.Defs() {
            self.defs.define(d.Reg, k)
        }

        /* instructions that inherently clear a dependency */
        if r, ok := self.isa.DependencyBreak(p); ok {
            self.defs.breakdep(r)
        }
    }
}

func (self *_FuncState) visitUndef(p *mir.Instr, i int, k int) {
    op := &p.Arg[i]

    /* only undefined reads with an actual clearance preference */
    if !op.IsUndefRead() {
        return
    }

    /* zero preference means "never break" */
    pref := self.isa.UndefRegClearance(p, i)
    if pref == 0 {
        return
    }

    /* prefer a register the instruction truly depends on already */
    if self.rewriteTrueDep(p, i) {
        return
    }

    /* the register is not cleared enough, leave it to the collapser */
    if self.defs.clearance(op.Reg, k) < pref {
        self.pending.Append(&_PendingRead { p: p, i: i, k: k })
    }
}

// rewriteTrueDep rebinds an undefined read to a register the same
// instruction genuinely reads elsewhere. The dependency then is a true
// one, and breaking it would accomplish nothing.
func (self *_FuncState) rewriteTrueDep(p *mir.Instr, i int) bool {
    rc := self.isa.RegisterClass(p, i)

    /* a malformed operand yields no candidates at all */
    if rc == nil {
        return false
    }

    /* scan the other operands for a genuine read of a compatible register */
    for j := range p.Arg {
        if op := &p.Arg[j]; j != i && op.IsUse() && !op.IsUndefRead() && rc.Contains(op.Reg) {
            p.Arg[i].Reg = op.Reg
            return true
        }
    }

    /* no true dependency to piggyback on */
    return false
}
