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

// 內建效果 key
const (
	KeyDefensiveSignal spec.EffectKey = "defensive_signal"
	KeyNavigationAid   spec.EffectKey = "navigation_aid"
	KeyScanningAid     spec.EffectKey = "scanning_aid"
)

// Builtin 回傳內建效果註冊表：
//
//	defensive_signal : INTELLIGENT 區域移除所有 FIGHT_* 事件
//	navigation_aid   : 任何區域移除 AGAIN 事件
//	scanning_aid     : INTELLIGENT 區域 ARTEFACT 權重加倍
func Builtin() *Registry {
	r := NewRegistry()
	// Register 只對空 key / nil Apply / 重複 key 失敗，內建表常數不會觸發
	_ = r.Register(
		Effect{
			Key:  KeyDefensiveSignal,
			Name: "defensive signal",
			Apply: func(t *wtab.Table, ctx spec.SectorCtx) {
				if ctx.Type == spec.SectorIntelligent {
					t.RemoveByPrefix("FIGHT_")
				}
			},
		},
		Effect{
			Key:  KeyNavigationAid,
			Name: "navigation aid",
			Apply: func(t *wtab.Table, ctx spec.SectorCtx) {
				t.Remove("AGAIN")
			},
		},
		Effect{
			Key:  KeyScanningAid,
			Name: "scanning aid",
			Apply: func(t *wtab.Table, ctx spec.SectorCtx) {
				if ctx.Type == spec.SectorIntelligent {
					t.Scale("ARTEFACT", 2)
				}
			},
		},
	)
	return r
}
