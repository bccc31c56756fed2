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
    `github.com/chenzhuoyu/iasm/x86_64`

    `github.com/xionun/depsfix/mir`
)

const (
    NumGPR  = 16
    NumXMM  = 16
    NumRegs = NumGPR + NumXMM
)

const (
    RAX = x86_64.RAX
    RCX = x86_64.RCX
    RDX = x86_64.RDX
    RBX = x86_64.RBX
    RSP = x86_64.RSP
    RBP = x86_64.RBP
    RSI = x86_64.RSI
    RDI = x86_64.RDI
    R8  = x86_64.R8
    R9  = x86_64.R9
    R10 = x86_64.R10
    R11 = x86_64.R11
    R12 = x86_64.R12
    R13 = x86_64.R13
    R14 = x86_64.R14
    R15 = x86_64.R15
)

var gprNames = [NumGPR]x86_64.Register64 {
    RAX, RCX, RDX, RBX, RSP, RBP, RSI, RDI,
    R8, R9, R10, R11, R12, R13, R14, R15,
}

var xmmNames = [NumXMM]x86_64.XMMRegister {
    x86_64.XMM0,  x86_64.XMM1,  x86_64.XMM2,  x86_64.XMM3,
    x86_64.XMM4,  x86_64.XMM5,  x86_64.XMM6,  x86_64.XMM7,
    x86_64.XMM8,  x86_64.XMM9,  x86_64.XMM10, x86_64.XMM11,
    x86_64.XMM12, x86_64.XMM13, x86_64.XMM14, x86_64.XMM15,
}

var (
    GPR = &mir.RegClass { Name: "gr64" }
    XMM = &mir.RegClass { Name: "xmm" }
)

func init() {
    for i := 0; i < NumGPR; i++ {
        if gprNames[i] != RSP {
            GPR.Regs = append(GPR.Regs, mir.Reg(i))
        }
    }
    for i := 0; i < NumXMM; i++ {
        XMM.Regs = append(XMM.Regs, mir.Reg(NumGPR + i))
    }
}

// GPRUnit maps a general purpose register to its register unit.
func GPRUnit(r x86_64.Register64) mir.Reg {
    for i, v := range gprNames {
        if v == r {
            return mir.Reg(i)
        }
    }
    panic("amd64: not a general purpose register: " + r.String())
}

// XMMUnit maps a vector register to its register unit.
func XMMUnit(r x86_64.XMMRegister) mir.Reg {
    for i, v := range xmmNames {
        if v == r {
            return mir.Reg(NumGPR + i)
        }
    }
    panic("amd64: not a vector register: " + r.String())
}

// RegName spells a register unit the way the assembler does.
func RegName(r mir.Reg) string {
    switch {
        case r < NumGPR  : return gprNames[r].String()
        case r < NumRegs : return xmmNames[r - NumGPR].String()
        default          : return r.String()
    }
}
