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

// collapse drains the pending undefined reads of one block, walking the
// instructions in reverse. Adjacent pending reads sharing a register
// class are merged into runs; each run is rewritten to one register that
// is dead across the whole span of the run, and costs exactly one
// injected dependency-breaking instruction, placed ahead of the run's
// earliest entry.
func (self *_FuncState) collapse(bb *mir.BasicBlock) {
    if self.pending.Empty() {
        return
    }

    var last *mir.RegClass
    var pick mir.RegSet
    var chosen = mir.NoReg

    /* exact liveness, seeded from the block's live-out set; pristine
     * registers never appear in it */
    live := bb.LiveOut.Clone()
    run := make([]*_PendingRead, 0, self.pending.Size())

    /* rewrite every entry of the current run to the chosen register and
     * inject one breaking instruction ahead of the run's first use */
    closerun := func() {
        if len(run) != 0 && chosen != mir.NoReg {
            for _, e := range run {
                e.p.Arg[e.i].Reg = chosen
            }
            p := run[len(run) - 1]
            bb.InsertBefore(p.k, self.isa.BreakRegDependency(p.p, p.i))
        }
        run = run[:0]
    }

    /* start from the latest queued entry */
    cur := self.pending.Pop().(*_PendingRead)

    /* walk the block in reverse */
    for i := len(bb.Ins) - 1; i >= 0 && cur != nil; i-- {
        p := bb.Ins[i]

        /* step liveness backwards; definitions stay in the set too, a
         * register touched anywhere below this point would not shorten
         * any dependency chain for a run spanning it */
        for _, d := range p.Defs() {
            live.Add(d.Reg)
        }
        for _, u := range p.Uses() {
            if !u.IsUndefRead() {
                live.Add(u.Reg)
            }
        }

        /* registers live at this point are disqualified */
        for r := range pick {
            if live.Contains(r) {
                pick.Remove(r)
            }
        }

        /* a run must not span a call: the chosen register would pick up
         * a dependency on whatever the call leaves in it */
        if p.IsCall() {
            closerun()
            pick = nil
            last, chosen = nil, mir.NoReg
        }

        /* several pending operands may share one instruction */
        for cur != nil && cur.p == p {
            rc := self.isa.RegisterClass(cur.p, cur.i)

            /* no valid register class, the entry stays as it is */
            if rc == nil {
                closerun()
                last, chosen = nil, mir.NoReg
                cur = self.next()
                continue
            }

            /* close the run on a class change or on exhaustion, then
             * reseed with every class register not currently live */
            if last != rc || len(pick) == 0 {
                closerun()
                pick = self.choosable(rc, live)
            }

            /* note the tentative choice and take the entry */
            last = rc
            chosen = self.pickreg(pick)
            run = append(run, cur)

            /* zero candidates: these entries stay unresolved, and the
             * next entry starts from a clean run */
            if len(pick) == 0 {
                run = run[:0]
                last, chosen = nil, mir.NoReg
            }

            /* move the cursor to the previous pending entry */
            cur = self.next()
        }
    }

    /* a run may still be open at the top of the block */
    closerun()

    /* pending reads never carry over to the next block */
    for !self.pending.Empty() {
        self.pending.Pop()
    }
}

func (self *_FuncState) next() *_PendingRead {
    if self.pending.Empty() {
        return nil
    } else {
        return self.pending.Pop().(*_PendingRead)
    }
}

func (self *_FuncState) choosable(rc *mir.RegClass, live mir.RegSet) (rs mir.RegSet) {
    rs = make(mir.RegSet, len(rc.Regs))
    for _, r := range rc.Regs {
        if !live.Contains(r) {
            rs.Add(r)
        }
    }
    return
}

// pickreg selects the candidate with the most clearance, which also
// prefers non-live-in registers over live-in ones at block entry; the
// lowest register number breaks the tie, deterministically.
func (self *_FuncState) pickreg(pick mir.RegSet) mir.Reg {
    ret := mir.NoReg
    for _, r := range pick.ToSlice() {
        if ret == mir.NoReg || self.defs.def[r] < self.defs.def[ret] {
            ret = r
        }
    }
    return ret
}
