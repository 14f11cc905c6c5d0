// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package effect

import (
	"github.com/zintix-labs/expedlab/sdk/wtab"
	"github.com/zintix-labs/expedlab/spec"
)

// Pipeline 依序將效果套用到一張權重表上。
//
// 合約：
//   - pipeline 在本次呼叫期間獨佔 tab；回傳的就是同一張表（唯一權威副本）。
//   - 效果順序 = effs 的順序 = 裝備欄位順序，不重排。
//   - tab 為 nil 時回傳 nil（呼叫端 bug，寬容處理）。
func Pipeline(tab *wtab.Table, ctx spec.SectorCtx, effs []Effect) *wtab.Table {
	if tab == nil {
		return nil
	}
	for _, e := range effs {
		e.Apply(tab, ctx)
	}
	return tab
}
