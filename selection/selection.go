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

// Package selection 實作選區限制的驗證與使用量統計。
//
// 限制違規是「可預期、可恢復」的狀況：一律以帶有 current/max 的結構化
// 結果回傳給顯示層（用來 enable/disable 按鈕、畫進度條），永遠不是 error。
package selection

import (
	"fmt"
	"math"

	"github.com/zintix-labs/expedlab/spec"
)

// Selection 使用者已選的區域類型序列（依點選順序）。
// 由外部 UI 持有與變動；核心只以值接收做驗證或估算。
type Selection []spec.SectorType

// CountOf 此類型目前已選次數
func (s Selection) CountOf(ty spec.SectorType) int {
	n := 0
	for _, t := range s {
		if t == ty {
			n++
		}
	}
	return n
}

// TotalNonSpecial 非特殊區域的已選總數。
// 特殊區域（LANDING / LOST 類）不佔整體配額。
func (s Selection) TotalNonSpecial(ps *spec.PlanetSetting) int {
	n := 0
	for _, ty := range s {
		if ss, ok := ps.Sector(ty); ok && !ss.IsSpecial {
			n++
		}
	}
	return n
}

// Result 驗證結果。
// Message 只在失敗時填寫。
type Result struct {
	IsValid      bool   `json:"is_valid"`
	CurrentCount int    `json:"current_count"`
	MaxAllowed   int    `json:"max_allowed"`
	CurrentTotal int    `json:"current_total"`
	MaxTotal     int    `json:"max_total"`
	Message      string `json:"message,omitempty"`
}

// ValidateAdd 驗證「在 cur 之上再選一個 ty」是否合法。
//
// 兩階段、short-circuit：
//  1. 整體上限：非特殊區域加入後總數不得超過 MaxSectors。
//  2. 類型上限：ty 的已選次數不得達到 MaxPerPlanet。
func ValidateAdd(ty spec.SectorType, cur Selection, ps *spec.PlanetSetting) Result {
	total := cur.TotalNonSpecial(ps)
	out := Result{
		CurrentTotal: total,
		MaxTotal:     ps.MaxSectors,
	}

	ss, ok := ps.Sector(ty)
	if !ok {
		out.Message = fmt.Sprintf("unknown sector type: %s", ty)
		return out
	}
	out.CurrentCount = cur.CountOf(ty)
	out.MaxAllowed = ss.MaxPerPlanet

	// 階段 1：整體上限（特殊區域豁免）
	if !ss.IsSpecial && total >= ps.MaxSectors {
		out.Message = fmt.Sprintf("selection full: %d/%d sectors", total, ps.MaxSectors)
		return out
	}

	// 階段 2：類型上限
	if out.CurrentCount >= ss.MaxPerPlanet {
		out.Message = fmt.Sprintf("sector %s at limit: %d/%d", ty, out.CurrentCount, ss.MaxPerPlanet)
		return out
	}

	out.IsValid = true
	return out
}

// Usage 單一區域類型的使用量統計
type Usage struct {
	Type       spec.SectorType `json:"type"`
	Current    int             `json:"current"`
	Max        int             `json:"max"`
	Remaining  int             `json:"remaining"`
	IsAtLimit  bool            `json:"is_at_limit"`
	Percentage int             `json:"percentage"`
}

// UsageStats 對目錄中的每個區域類型回傳使用量統計（依目錄宣告順序）。
// 目錄保證 MaxPerPlanet >= 1，分母不會是 0。
func UsageStats(cur Selection, ps *spec.PlanetSetting) []Usage {
	out := make([]Usage, 0, len(ps.SectorSettings))
	for i := range ps.SectorSettings {
		ss := &ps.SectorSettings[i]
		ty := ss.Type()
		n := cur.CountOf(ty)
		out = append(out, Usage{
			Type:       ty,
			Current:    n,
			Max:        ss.MaxPerPlanet,
			Remaining:  ss.MaxPerPlanet - n,
			IsAtLimit:  n >= ss.MaxPerPlanet,
			Percentage: int(math.Round(float64(n) / float64(ss.MaxPerPlanet) * 100)),
		})
	}
	return out
}
