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

package mir

import (
    `fmt`
    `strings`
)

// Op is a target-defined opcode. The core never interprets opcode values,
// it only carries them; the target capability layer gives them meaning.
type Op uint32

type OperandFlags uint8

const (
    OpUse OperandFlags = 1 << iota
    OpDef

    // OpUndef marks a read whose value is immaterial to the instruction,
    // only the hardware dependency on the register matters. Such operands
    // may be rebound to any register of the same class without changing
    // program semantics.
    OpUndef
)

type Operand struct {
    Reg   Reg
    Flags OperandFlags
}

func (self *Operand) IsUse() bool {
    return self.Flags & OpUse != 0
}

func (self *Operand) IsDef() bool {
    return self.Flags & OpDef != 0
}

func (self *Operand) IsUndefRead() bool {
    return self.Flags & (OpUse | OpUndef) == OpUse | OpUndef
}

func (self *Operand) String() string {
    switch {
        case self.IsUndefRead() : return self.Reg.String() + "<undef>"
        case self.IsDef()       : return self.Reg.String() + "<def>"
        default                 : return self.Reg.String()
    }
}

type InstrFlags uint8

const (
    // InstrCall marks instructions that transfer control outside of the
    // current function, they are assumed to touch every register unit.
    InstrCall InstrFlags = 1 << iota
)

// Instr is one machine instruction, ordered by position within its
// basic block.
type Instr struct {
    Op    Op
    Arg   []Operand
    Flags InstrFlags
}

func (self *Instr) IsCall() bool {
    return self.Flags & InstrCall != 0
}

// Uses returns references to every operand read by this instruction,
// including undefined reads.
func (self *Instr) Uses() (r []*Operand) {
    for i := range self.Arg {
        if self.Arg[i].IsUse() {
            r = append(r, &self.Arg[i])
        }
    }
    return
}

// Defs returns references to every operand written by this instruction.
func (self *Instr) Defs() (r []*Operand) {
    for i := range self.Arg {
        if self.Arg[i].IsDef() {
            r = append(r, &self.Arg[i])
        }
    }
    return
}

func (self *Instr) String() string {
    nb := len(self.Arg)
    ret := make([]string, 0, nb)

    /* dump operands */
    for i := range self.Arg {
        ret = append(ret, self.Arg[i].String())
    }

    /* join them together */
    return fmt.Sprintf(
        "#%d %s",
        self.Op,
        strings.Join(ret, ", "),
    )
}
