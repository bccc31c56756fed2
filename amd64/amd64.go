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

// Package amd64 answers the capability queries of the depsfix pass for
// x86-64 machine code. Opcodes are x86asm.Op values.
package amd64

import (
    `github.com/klauspost/cpuid/v2`
    `golang.org/x/arch/x86/x86asm`

    `github.com/xionun/depsfix`
    `github.com/xionun/depsfix/mir`
)

// ISA implements the depsfix capability interface for x86-64.
type ISA struct {
    partial int
    undef   int
}

// CreateISA builds an ISA tuned for the host CPU. Partial register
// updates stall much longer on wide out-of-order parts, so AVX-capable
// CPUs get a considerably larger clearance preference.
func CreateISA() *ISA {
    ret := &ISA { partial: 16, undef: 64 }
    if cpuid.CPU.Has(cpuid.AVX) {
        ret.undef = 128
    }
    return ret
}

func (self *ISA) NumRegs() int {
    return NumRegs
}

func (self *ISA) ExecutionDomain(p *mir.Instr) (uint8, depsfix.DomainMask) {
    if d, ok := fixedDomainTable[x86asm.Op(p.Op)]; ok {
        return d, 0
    } else {
        return 0, softDomainTable[x86asm.Op(p.Op)]
    }
}

func (self *ISA) UndefRegClearance(p *mir.Instr, i int) int {
    if !p.Arg[i].IsUndefRead() {
        return 0
    }

    /* clearance preference is a property of the opcode */
    switch op := x86asm.Op(p.Op); {
        case undefReadTable[op]     : return self.undef
        case partialUpdateTable[op] : return self.partial
        default                     : return 0
    }
}

func (self *ISA) RegisterClass(p *mir.Instr, i int) *mir.RegClass {
    switch r := p.Arg[i].Reg; {
        case r < NumGPR  : return GPR
        case r < NumRegs : return XMM
        default          : return nil
    }
}

func (self *ISA) DependencyBreak(p *mir.Instr) (mir.Reg, bool) {
    if !zeroIdiomTable[x86asm.Op(p.Op)] {
        return mir.NoReg, false
    }

    /* the idiom only holds when every operand names the same register */
    ret := mir.NoReg
    for i := range p.Arg {
        if r := p.Arg[i].Reg; ret == mir.NoReg {
            ret = r
        } else if r != ret {
            return mir.NoReg, false
        }
    }
    return ret, ret != mir.NoReg
}

func (self *ISA) BreakRegDependency(p *mir.Instr, i int) *mir.Instr {
    op := x86asm.XOR
    r := p.Arg[i].Reg

    /* vector registers are cleared in the floating point domain, the
     * encoding is one byte shorter than its integer domain equivalent */
    if r >= NumGPR {
        op = x86asm.XORPS
    }

    /* self-zeroing idiom for the operand's register */
    return &mir.Instr {
        Op  : mir.Op(op),
        Arg : []mir.Operand { mir.Def(r), mir.Use(r) },
    }
}
