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

// BasicBlock is a straight-line run of machine instructions. LiveIn and
// LiveOut are the block-boundary liveness facts computed by the register
// allocator; LiveOut excludes pristine (never touched, callee-preserved)
// registers.
type BasicBlock struct {
    Id      int
    Ins     []*Instr
    Pred    []*BasicBlock
    LiveIn  RegSet
    LiveOut RegSet
}

func CreateBlock(id int) *BasicBlock {
    return &BasicBlock {
        Id      : id,
        LiveIn  : make(RegSet),
        LiveOut : make(RegSet),
    }
}

// InsertBefore inserts p ahead of the instruction at index i.
func (self *BasicBlock) InsertBefore(i int, p *Instr) {
    self.Ins = append(self.Ins, nil)
    copy(self.Ins[i + 1:], self.Ins[i:])
    self.Ins[i] = p
}

func (self *BasicBlock) String() string {
    nb := len(self.Ins)
    ret := make([]string, 0, nb + 1)

    /* dump every instruction */
    ret = append(ret, fmt.Sprintf("bb_%d:", self.Id))
    for _, v := range self.Ins {
        ret = append(ret, "    " + v.String())
    }

    /* join them together */
    return strings.Join(ret, "\n")
}

// Function is a layout-ordered sequence of basic blocks.
type Function struct {
    Name   string
    Blocks []*BasicBlock
}

func (self *Function) String() string {
    nb := len(self.Blocks)
    ret := make([]string, 0, nb)

    /* dump every block */
    for _, bb := range self.Blocks {
        ret = append(ret, bb.String())
    }

    /* join them together */
    return fmt.Sprintf(
        "%s {\n%s\n}",
        self.Name,
        strings.Join(ret, "\n"),
    )
}
