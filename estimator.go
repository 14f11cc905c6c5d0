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
	"math"

	"github.com/zintix-labs/expedlab/effect"
	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/event"
	"github.com/zintix-labs/expedlab/sdk/binom"
	"github.com/zintix-labs/expedlab/selection"
	"github.com/zintix-labs/expedlab/spec"
	"github.com/zintix-labs/expedlab/stats"
)

// Estimator 對單一星球執行結果估算（orchestrator）。
//
// 一次 Estimate 的流程：
//  1. 以 selection 規則重放驗證整個選區（gate）。
//  2. 對選區中每個 sector 實例：Clone baseline 權重表 -> effect pipeline ->
//     權重 / 總和 推導每事件機率（總和為 0 時機率為 0）。
//  3. 經 event.Classify 把每事件機率聚合成每類別機率。
//  4. 每個類別取 n = 貢獻非零機率質量的 sector 數、p = 代表性單 sector 機率，
//     餵進 binom.Scenarios 得到四個情境點。
//
// 同類別但不同 sector type 的 p 不一致時，改走精確摺積
// （binom.ScenariosOf），並在結果標記 Mixed。
type Estimator struct {
	PlanetName string
	PlanetID   spec.PID
	ps         *spec.PlanetSetting
	reg        *effect.Registry
}

func newEstimator(ps *spec.PlanetSetting, reg *effect.Registry) *Estimator {
	return &Estimator{
		PlanetName: ps.PlanetName,
		PlanetID:   ps.PlanetID,
		ps:         ps,
		reg:        reg,
	}
}

// Setting 回傳底層星球設定（唯讀使用）。
func (e *Estimator) Setting() *spec.PlanetSetting {
	return e.ps
}

// Validate 驗證「在 cur 之上再選一個 ty」（顯示層 enable/disable 用）。
func (e *Estimator) Validate(ty spec.SectorType, cur selection.Selection) selection.Result {
	return selection.ValidateAdd(ty, cur, e.ps)
}

// Usage 回傳每個區域類型的使用量統計。
func (e *Estimator) Usage(cur selection.Selection) []selection.Usage {
	return selection.UsageStats(cur, e.ps)
}

// catAcc 單一類別跨 sector 的累積
type catAcc struct {
	class event.Class
	ps    []float64 // 每個貢獻 sector 的類別機率（非零才收）
}

// Estimate 對一個選區與一組啟用效果（裝備欄位順序）產生估算報告。
//
// 選區不合法（超過整體/類型上限、未知類型）回傳 Warn；
// 未知效果 key 同樣回傳 Warn。兩者都是呼叫端輸入問題，可恢復。
func (e *Estimator) Estimate(sel selection.Selection, active []spec.EffectKey) (*stats.ExpeditionReport, error) {
	// 1. gate：逐一重放驗證
	replay := make(selection.Selection, 0, len(sel))
	for _, ty := range sel {
		if res := selection.ValidateAdd(ty, replay, e.ps); !res.IsValid {
			return nil, errs.Warnf("invalid selection: %s", res.Message)
		}
		replay = append(replay, ty)
	}

	effs, err := e.reg.Resolve(active)
	if err != nil {
		return nil, err
	}

	report := &stats.ExpeditionReport{
		PlanetName: e.PlanetName,
		PlanetID:   e.PlanetID,
		Sectors:    len(sel),
		Effects:    append([]spec.EffectKey(nil), active...),
	}

	// 2+3. 每 sector：pipeline -> 機率 -> 類別聚合
	order := make([]event.Category, 0, 16) // 類別首次出現順序
	acc := map[event.Category]*catAcc{}
	unknownSeen := map[string]struct{}{}

	for _, ty := range sel {
		ss, _ := e.ps.Sector(ty) // gate 已保證存在
		tab := effect.Pipeline(ss.Weights.Clone(), ss.Ctx(), effs)
		total := tab.Total()

		perCat := map[event.Category]float64{}
		for _, ent := range tab.Entries() {
			cls := event.Classify(ent.Event)
			if cls.Category == event.CatUnknown {
				if _, ok := unknownSeen[ent.Event]; !ok {
					unknownSeen[ent.Event] = struct{}{}
					report.UnknownEvents = append(report.UnknownEvents, ent.Event)
				}
			}
			p := 0.0
			if total > 0 {
				p = ent.Weight / total
			}
			if _, ok := acc[cls.Category]; !ok {
				acc[cls.Category] = &catAcc{class: cls}
				order = append(order, cls.Category)
			}
			perCat[cls.Category] += p
		}
		for cat, p := range perCat {
			if p > 0 {
				acc[cat].ps = append(acc[cat].ps, p)
			}
		}
	}

	// 選區組成摘要（首次出現順序）
	counted := map[spec.SectorType]int{}
	for _, ty := range sel {
		if _, ok := counted[ty]; !ok {
			report.SectorCounts = append(report.SectorCounts, stats.SectorCount{Type: ty})
		}
		counted[ty]++
	}
	for i := range report.SectorCounts {
		report.SectorCounts[i].Count = counted[report.SectorCounts[i].Type]
	}

	// 4. 每類別推導情境點
	for _, cat := range order {
		a := acc[cat]
		report.Results = append(report.Results, categoryResult(a))
	}
	return report, nil
}

// categoryResult 把一個類別的每 sector 機率清單總結成結果。
//
// 全部 p 一致（同質試行）走標準二項分布；不一致走精確摺積並標記 Mixed。
func categoryResult(a *catAcc) stats.CategoryResult {
	out := stats.CategoryResult{
		Category: a.class.Category,
		Severity: a.class.Severity,
		Trials:   len(a.ps),
	}
	if len(a.ps) == 0 {
		return out
	}

	homogeneous := true
	for _, p := range a.ps[1:] {
		if math.Abs(p-a.ps[0]) > 1e-12 {
			homogeneous = false
			break
		}
	}

	if homogeneous {
		out.Probability = a.ps[0]
		out.Scenario = binom.Scenarios(len(a.ps), a.ps[0])
		return out
	}

	mean := 0.0
	for _, p := range a.ps {
		mean += p
	}
	out.Probability = mean / float64(len(a.ps))
	out.Mixed = true
	out.Scenario = binom.ScenariosOf(a.ps)
	return out
}
