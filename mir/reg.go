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
)

// Reg is a physical register unit. The universe of units is fixed and
// finite, and is defined by the target.
type Reg uint16

// NoReg marks the absence of a register.
const NoReg Reg = 0xffff

func (self Reg) String() string {
    if self == NoReg {
        return "?"
    } else {
        return fmt.Sprintf("r%d", uint16(self))
    }
}

// RegClass is a named set of interchangeable register units that satisfy
// the constraints of an instruction operand.
type RegClass struct {
    Name string
    Regs []Reg
}

func (self *RegClass) String() string {
    return self.Name
}

func (self *RegClass) Contains(r Reg) bool {
    for _, v := range self.Regs {
        if v == r {
            return true
        }
    }
    return false
}
