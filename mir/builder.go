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

// Use constructs a plain register read operand.
func Use(r Reg) Operand {
    return Operand { Reg: r, Flags: OpUse }
}

// Def constructs a register write operand.
func Def(r Reg) Operand {
    return Operand { Reg: r, Flags: OpDef }
}

// Undef constructs an undefined-read operand: the register's value is
// never consumed, only its false dependency is observable.
func Undef(r Reg) Operand {
    return Operand { Reg: r, Flags: OpUse | OpUndef }
}

// Builder assembles a Function block by block, in layout order.
type Builder struct {
    i  int
    fn *Function
    bb *BasicBlock
}

func CreateBuilder(name string) *Builder {
    return &Builder {
        fn: &Function { Name: name },
    }
}

func (self *Builder) add(p *Instr) *Instr {
    if self.bb == nil {
        self.Block()
    }
    self.bb.Ins = append(self.bb.Ins, p)
    return p
}

// Block starts a new basic block, it becomes the insertion point for
// subsequent instructions. Predecessor edges are declared with Edge.
func (self *Builder) Block() *BasicBlock {
    self.bb = CreateBlock(self.i)
    self.i++
    self.fn.Blocks = append(self.fn.Blocks, self.bb)
    return self.bb
}

// Edge declares "from" as a predecessor of "to".
func (self *Builder) Edge(from *BasicBlock, to *BasicBlock) {
    to.Pred = append(to.Pred, from)
}

func (self *Builder) Instr(op Op, args ...Operand) *Instr {
    return self.add(&Instr { Op: op, Arg: args })
}

func (self *Builder) Call(op Op, args ...Operand) *Instr {
    return self.add(&Instr { Op: op, Arg: args, Flags: InstrCall })
}

func (self *Builder) Build() *Function {
    return self.fn
}
