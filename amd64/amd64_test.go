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

package amd64

import (
    `testing`

    `github.com/chenzhuoyu/iasm/x86_64`
    `github.com/stretchr/testify/require`
    `golang.org/x/arch/x86/x86asm`

    `github.com/xionun/depsfix`
    `github.com/xionun/depsfix/mir`
)

func TestISA_Registers(t *testing.T) {
    require.Equal(t, mir.Reg(0), GPRUnit(RAX))
    require.Equal(t, mir.Reg(NumGPR + 5), XMMUnit(x86_64.XMM5))
    require.Equal(t, RAX.String(), RegName(GPRUnit(RAX)))
    require.Equal(t, x86_64.XMM5.String(), RegName(XMMUnit(x86_64.XMM5)))

    /* the stack pointer is never a rewrite candidate */
    require.False(t, GPR.Contains(GPRUnit(RSP)))
    require.True(t, GPR.Contains(GPRUnit(R12)))
    require.Len(t, XMM.Regs, NumXMM)
}

func TestISA_Thresholds(t *testing.T) {
    isa := CreateISA()
    require.Equal(t, 16, isa.partial)
    require.Contains(t, []int { 64, 128 }, isa.undef)

    cvt := &mir.Instr {
        Op  : mir.Op(x86asm.CVTSI2SD),
        Arg : []mir.Operand { mir.Undef(XMMUnit(x86_64.XMM1)), mir.Use(GPRUnit(RCX)) },
    }
    sqr := &mir.Instr {
        Op  : mir.Op(x86asm.SQRTSS),
        Arg : []mir.Operand { mir.Undef(XMMUnit(x86_64.XMM2)), mir.Use(XMMUnit(x86_64.XMM3)) },
    }
    add := &mir.Instr {
        Op  : mir.Op(x86asm.ADDSD),
        Arg : []mir.Operand { mir.Def(XMMUnit(x86_64.XMM1)), mir.Use(XMMUnit(x86_64.XMM2)) },
    }

    require.Equal(t, isa.undef, isa.UndefRegClearance(cvt, 0))
    require.Equal(t, isa.partial, isa.UndefRegClearance(sqr, 0))
    require.Equal(t, 0, isa.UndefRegClearance(cvt, 1))
    require.Equal(t, 0, isa.UndefRegClearance(add, 0))
}

func TestISA_ExecutionDomain(t *testing.T) {
    isa := CreateISA()

    d, m := isa.ExecutionDomain(&mir.Instr { Op: mir.Op(x86asm.ADDSS) })
    require.Equal(t, uint8(DomainFloat), d)
    require.Equal(t, depsfix.DomainMask(0), m)

    d, m = isa.ExecutionDomain(&mir.Instr { Op: mir.Op(x86asm.PADDD) })
    require.Equal(t, uint8(DomainInt), d)
    require.Equal(t, depsfix.DomainMask(0), m)

    /* domain-agnostic moves and logicals are soft */
    d, m = isa.ExecutionDomain(&mir.Instr { Op: mir.Op(x86asm.MOVAPS) })
    require.Equal(t, uint8(0), d)
    require.Equal(t, _SoftAny, m)

    /* plain integer code takes no part at all */
    d, m = isa.ExecutionDomain(&mir.Instr { Op: mir.Op(x86asm.ADD) })
    require.Equal(t, uint8(0), d)
    require.Equal(t, depsfix.DomainMask(0), m)
}

func TestISA_DependencyBreak(t *testing.T) {
    isa := CreateISA()
    x3 := XMMUnit(x86_64.XMM3)

    r, ok := isa.DependencyBreak(&mir.Instr {
        Op  : mir.Op(x86asm.PXOR),
        Arg : []mir.Operand { mir.Def(x3), mir.Use(x3) },
    })
    require.True(t, ok)
    require.Equal(t, x3, r)

    /* different registers: a real xor, not an idiom */
    _, ok = isa.DependencyBreak(&mir.Instr {
        Op  : mir.Op(x86asm.XOR),
        Arg : []mir.Operand { mir.Def(GPRUnit(RAX)), mir.Use(GPRUnit(RCX)) },
    })
    require.False(t, ok)

    /* non-idiom opcodes never break anything */
    _, ok = isa.DependencyBreak(&mir.Instr {
        Op  : mir.Op(x86asm.ADDSS),
        Arg : []mir.Operand { mir.Def(x3), mir.Use(x3) },
    })
    require.False(t, ok)
}

func TestISA_BreakRegDependency(t *testing.T) {
    isa := CreateISA()

    cvt := &mir.Instr {
        Op  : mir.Op(x86asm.CVTSI2SS),
        Arg : []mir.Operand { mir.Undef(XMMUnit(x86_64.XMM7)), mir.Use(GPRUnit(RDX)) },
    }
    brk := isa.BreakRegDependency(cvt, 0)
    require.Equal(t, mir.Op(x86asm.XORPS), brk.Op)

    /* the fabricated idiom must be recognized as one */
    r, ok := isa.DependencyBreak(brk)
    require.True(t, ok)
    require.Equal(t, XMMUnit(x86_64.XMM7), r)

    /* general purpose registers get an integer xor */
    alu := &mir.Instr {
        Op  : mir.Op(x86asm.POPCNT),
        Arg : []mir.Operand { mir.Def(GPRUnit(RBX)), mir.Undef(GPRUnit(RBX)) },
    }
    brk = isa.BreakRegDependency(alu, 1)
    require.Equal(t, mir.Op(x86asm.XOR), brk.Op)
    require.Equal(t, GPRUnit(RBX), brk.Arg[0].Reg)
}

func TestISA_RegisterClass(t *testing.T) {
    isa := CreateISA()
    p := &mir.Instr {
        Op  : mir.Op(x86asm.CVTSI2SD),
        Arg : []mir.Operand { mir.Undef(XMMUnit(x86_64.XMM0)), mir.Use(GPRUnit(RSI)) },
    }

    require.Equal(t, XMM, isa.RegisterClass(p, 0))
    require.Equal(t, GPR, isa.RegisterClass(p, 1))
    require.Equal(t, NumRegs, isa.NumRegs())
}
