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
    `github.com/davecgh/go-spew/spew`

    `github.com/xionun/depsfix/mir`
)

func dumpfn(fn *mir.Function) {
    spew.Config.SortKeys = true
    spew.Config.DisablePointerMethods = true
    println(fn.String())
    spew.Dump(fn.Blocks)
}
