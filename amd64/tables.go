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
    `golang.org/x/arch/x86/x86asm`

    `github.com/xionun/depsfix`
)

// Execution domains of the SSE units.
const (
    DomainFloat  = 1
    DomainDouble = 2
    DomainInt    = 3
)

const _SoftAny = depsfix.DomainMask(1 << DomainFloat | 1 << DomainDouble | 1 << DomainInt)

// Instructions with one fixed execution domain.
var fixedDomainTable = map[x86asm.Op]uint8 {
    x86asm.ADDSS   : DomainFloat,
    x86asm.SUBSS   : DomainFloat,
    x86asm.MULSS   : DomainFloat,
    x86asm.DIVSS   : DomainFloat,
    x86asm.MINSS   : DomainFloat,
    x86asm.MAXSS   : DomainFloat,
    x86asm.ADDPS   : DomainFloat,
    x86asm.SUBPS   : DomainFloat,
    x86asm.MULPS   : DomainFloat,
    x86asm.DIVPS   : DomainFloat,
    x86asm.UCOMISS : DomainFloat,
    x86asm.ADDSD   : DomainDouble,
    x86asm.SUBSD   : DomainDouble,
    x86asm.MULSD   : DomainDouble,
    x86asm.DIVSD   : DomainDouble,
    x86asm.MINSD   : DomainDouble,
    x86asm.MAXSD   : DomainDouble,
    x86asm.ADDPD   : DomainDouble,
    x86asm.SUBPD   : DomainDouble,
    x86asm.MULPD   : DomainDouble,
    x86asm.DIVPD   : DomainDouble,
    x86asm.UCOMISD : DomainDouble,
    x86asm.PADDB   : DomainInt,
    x86asm.PADDW   : DomainInt,
    x86asm.PADDD   : DomainInt,
    x86asm.PADDQ   : DomainInt,
    x86asm.PSUBB   : DomainInt,
    x86asm.PSUBW   : DomainInt,
    x86asm.PSUBD   : DomainInt,
    x86asm.PSUBQ   : DomainInt,
    x86asm.PMULLW  : DomainInt,
}

// Instructions that execute equally well in any domain; the scheduler may
// reassign them to avoid domain-crossing penalties.
var softDomainTable = map[x86asm.Op]depsfix.DomainMask {
    x86asm.MOVAPS : _SoftAny,
    x86asm.MOVAPD : _SoftAny,
    x86asm.MOVUPS : _SoftAny,
    x86asm.MOVUPD : _SoftAny,
    x86asm.MOVDQA : _SoftAny,
    x86asm.MOVDQU : _SoftAny,
    x86asm.ANDPS  : _SoftAny,
    x86asm.ANDPD  : _SoftAny,
    x86asm.ORPS   : _SoftAny,
    x86asm.ORPD   : _SoftAny,
    x86asm.XORPS  : _SoftAny,
    x86asm.XORPD  : _SoftAny,
    x86asm.PAND   : _SoftAny,
    x86asm.POR    : _SoftAny,
    x86asm.PXOR   : _SoftAny,
}

// Instructions that only write part of their destination register, the
// untouched lanes drag in the previous value.
var partialUpdateTable = map[x86asm.Op]bool {
    x86asm.SQRTSS   : true,
    x86asm.SQRTSD   : true,
    x86asm.RCPSS    : true,
    x86asm.RSQRTSS  : true,
    x86asm.ROUNDSS  : true,
    x86asm.ROUNDSD  : true,
    x86asm.CVTSD2SS : true,
    x86asm.CVTSS2SD : true,
}

// Instructions whose destination read is entirely spurious.
var undefReadTable = map[x86asm.Op]bool {
    x86asm.CVTSI2SS : true,
    x86asm.CVTSI2SD : true,
}

// Self-referencing forms of these opcodes produce a value independent of
// the register's prior contents.
var zeroIdiomTable = map[x86asm.Op]bool {
    x86asm.XOR     : true,
    x86asm.PXOR    : true,
    x86asm.XORPS   : true,
    x86asm.XORPD   : true,
    x86asm.PCMPEQB : true,
    x86asm.PCMPEQW : true,
    x86asm.PCMPEQD : true,
}
