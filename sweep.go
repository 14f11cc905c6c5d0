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

package expedlab

import (
	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/expedlab/selection"
	"github.com/zintix-labs/expedlab/spec"
	"github.com/zintix-labs/expedlab/stats"
)

// SweepOptions 敏感度掃描參數。
type SweepOptions struct {
	// Effects 參與組合的效果 key；nil 表示用註冊表中全部（排序後）。
	Effects []spec.EffectKey
	// MaxCount 每類型的選取規模上限；0 表示用該類型的 MaxPerPlanet。
	MaxCount int
	// ShowProgress 在 stderr 顯示進度條（批次 CLI 用）。
	ShowProgress bool
}

// Sweep 對一顆星球做確定性的敏感度掃描：
//
//	每個非特殊區域類型 × 選取規模 1..上限 × 每個效果子集合
//
// 逐格呼叫 Estimate 並把報告交給 fn。格點順序固定（目錄宣告順序、
// 規模遞增、效果子集合以 bitmask 遞增），結果完全可重現。
// fn 回傳 error 時掃描立即中止。
func (l *Expedlab) Sweep(id spec.PID, opts SweepOptions, fn func(*stats.ExpeditionReport) error) error {
	est, err := l.NewEstimator(id)
	if err != nil {
		return err
	}

	keys := opts.Effects
	if keys == nil {
		keys = l.reg.Keys()
	}
	subsets := 1 << len(keys)

	// 算總格數給進度條
	ps := est.Setting()
	type cell struct {
		ty  spec.SectorType
		max int
	}
	cells := make([]cell, 0, len(ps.SectorSettings))
	total := 0
	for i := range ps.SectorSettings {
		ss := &ps.SectorSettings[i]
		if ss.IsSpecial {
			continue
		}
		limit := ss.MaxPerPlanet
		if limit > ps.MaxSectors {
			limit = ps.MaxSectors
		}
		if opts.MaxCount > 0 && limit > opts.MaxCount {
			limit = opts.MaxCount
		}
		cells = append(cells, cell{ty: ss.Type(), max: limit})
		total += limit * subsets
	}

	var bar *pb.ProgressBar
	if opts.ShowProgress {
		bar = pb.StartNew(total)
		defer bar.Finish()
	}

	for _, c := range cells {
		for count := 1; count <= c.max; count++ {
			sel := make(selection.Selection, count)
			for i := range sel {
				sel[i] = c.ty
			}
			for mask := 0; mask < subsets; mask++ {
				active := make([]spec.EffectKey, 0, len(keys))
				for bit, k := range keys {
					if mask&(1<<bit) != 0 {
						active = append(active, k)
					}
				}
				report, err := est.Estimate(sel, active)
				if err != nil {
					return err
				}
				if err := fn(report); err != nil {
					return err
				}
				if bar != nil {
					bar.Increment()
				}
			}
		}
	}
	return nil
}
