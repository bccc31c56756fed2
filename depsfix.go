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

// Package depsfix eliminates false data dependencies on machine code
// after register allocation. An operand marked as an undefined read keeps
// the processor waiting on a register whose value the instruction never
// consumes; the pass rebinds such operands to a register the instruction
// already truly depends on, or to one made independent by an injected
// dependency-breaking instruction, merging adjacent undefined reads so
// that a whole run shares a single injected instruction.
package depsfix

import (
    `github.com/oleiade/lane`

    `github.com/xionun/depsfix/mir`
)

// DomainMask is a bit set of execution domains an instruction may legally
// be assigned to.
type DomainMask uint16

// ISA is the capability interface the pass queries for everything that is
// specific to a target instruction set. Implementations must answer "no"
// whenever they cannot answer with confidence: a missed optimization costs
// one instruction, a wrong one silently corrupts emitted code.
type ISA interface {
    // NumRegs is the size of the register unit universe.
    NumRegs() int

    // ExecutionDomain reports the fixed execution domain of p, or the set
    // of domains p may be moved between. Both zero means p takes no part
    // in domain assignment.
    ExecutionDomain(p *mir.Instr) (uint8, DomainMask)

    // UndefRegClearance is the clearance an undefined-read operand wants
    // before its false dependency can be ignored. Zero means the operand
    // never wants breaking.
    UndefRegClearance(p *mir.Instr, i int) int

    // RegisterClass is the set of registers operand i may be rebound to.
    // Class identity is pointer identity: the same class must always be
    // returned as the same *mir.RegClass.
    RegisterClass(p *mir.Instr, i int) *mir.RegClass

    // DependencyBreak reports whether p, as written, inherently clears
    // every dependency on exactly one register, with all of its operands
    // referring to that register. A self-zeroing idiom is the canonical
    // example.
    DependencyBreak(p *mir.Instr) (mir.Reg, bool)

    // BreakRegDependency fabricates the dependency-breaking instruction
    // for operand i of p. The pass inserts it immediately ahead of p.
    BreakRegDependency(p *mir.Instr, i int) *mir.Instr
}

// DomainTracker receives every domain-bearing instruction seen during the
// primary pass. Execution-domain merging itself lives outside this pass.
type DomainTracker interface {
    Visit(p *mir.Instr, dom uint8, soft DomainMask)
}

// FalseDeps is the pass itself. One instance per function; instances
// share no state, so independent functions may be processed on separate
// goroutines with separate instances.
type FalseDeps struct {
    ISA     ISA
    Domains DomainTracker
    Debug   bool
}

// Apply runs the pass over fn. Blocks are visited twice at most: a
// primary pass in layout order, then a final pass over the blocks whose
// predecessors had not all been processed the first time around.
func (self *FalseDeps) Apply(fn *mir.Function) {
    if self.ISA == nil {
        panic("depsfix: missing ISA capability implementation")
    }

    /* per-function scratch state */
    redo := lane.NewQueue()
    done := make(map[int]bool, len(fn.Blocks))
    st := newFuncState(self.ISA, self.Domains)

    /* check whether every predecessor of bb has been processed */
    isdone := func(bb *mir.BasicBlock) bool {
        for _, p := range bb.Pred {
            if !done[p.Id] {
                return false
            }
        }
        return true
    }

    /* primary pass in layout order */
    for _, bb := range fn.Blocks {
        fin := isdone(bb)
        st.process(bb, true, fin)
        done[bb.Id] = true

        /* back-edge predecessors settle in the final pass */
        if !fin {
            redo.Enqueue(bb)
        }
    }

    /* final pass over the leftovers */
    for !redo.Empty() {
        st.process(redo.Dequeue().(*mir.BasicBlock), false, true)
    }

    /* dump the rewritten function if requested */
    if self.Debug {
        dumpfn(fn)
    }
}
