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

// Package effect 定義裝備/能力效果（modifier）與其註冊表。
//
// 一個效果是 (權重表, 區域上下文) -> 權重表 的變換：
//   - 對拿到的那張表以外的狀態保持 pure。
//   - 以裝備欄位順序（呼叫端決定）依序套用；原語會就地修改表，
//     後面的效果看得到前面效果的結果，順序必須精確保留。
//   - pipeline 在一次呼叫期間獨佔該表；跨多次計算重用 baseline 的
//     呼叫端必須先 Clone。
//
// 註冊表是開放的：內建三個效果之外，外部模組可以 Register 自己的效果，
// 多個註冊表可用 Merge 合併（重複 key 直接失敗，避免行為不確定）。
package effect

import (
	"sort"

	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/sdk/wtab"
	"github.com/zintix-labs/expedlab/spec"
)

// ApplyFn 效果本體：就地變換權重表。
type ApplyFn func(t *wtab.Table, ctx spec.SectorCtx)

// Effect 單一效果
type Effect struct {
	Key   spec.EffectKey
	Name  string
	Apply ApplyFn
}

// Registry 效果註冊表
type Registry struct {
	byKey map[spec.EffectKey]Effect
}

// NewRegistry 建立空註冊表。
func NewRegistry() *Registry {
	return &Registry{byKey: map[spec.EffectKey]Effect{}}
}

// Register 註冊一或多個效果；key 為空、Apply 為 nil 或重複 key 皆為 Fatal。
func (r *Registry) Register(effs ...Effect) error {
	for _, e := range effs {
		if e.Key == "" {
			return errs.NewFatal("effect key required")
		}
		if e.Apply == nil {
			return errs.Fatalf("effect %s: apply fn required", e.Key)
		}
		if _, ok := r.byKey[e.Key]; ok {
			return errs.Fatalf("duplicate effect key: %s", e.Key)
		}
		r.byKey[e.Key] = e
	}
	return nil
}

// Get 依 key 取得效果。
func (r *Registry) Get(key spec.EffectKey) (Effect, bool) {
	e, ok := r.byKey[key]
	return e, ok
}

// Keys 回傳所有已註冊的 key（排序後，方便穩定輸出）。
func (r *Registry) Keys() []spec.EffectKey {
	out := make([]spec.EffectKey, 0, len(r.byKey))
	for k := range r.byKey {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve 把裝備欄位順序的 key 序列解析成效果序列。
// 未知 key 回傳 Warn（呼叫端輸入問題，可恢復）。
func (r *Registry) Resolve(keys []spec.EffectKey) ([]Effect, error) {
	out := make([]Effect, 0, len(keys))
	for _, k := range keys {
		e, ok := r.byKey[k]
		if !ok {
			return nil, errs.Warnf("unknown effect key: %s", k)
		}
		out = append(out, e)
	}
	return out, nil
}

// Merge 合併多個註冊表成單一註冊表。
// 出現重複 key 直接以 error 失敗。
func Merge(regs ...*Registry) (*Registry, error) {
	merged := NewRegistry()
	for _, r := range regs {
		if r == nil {
			continue
		}
		for _, k := range r.Keys() {
			e := r.byKey[k]
			if err := merged.Register(e); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}
