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

// Package expedlab 提供探勘估算引擎的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// Expedlab 把兩個必需的地基組裝在一起，並提供建立 Estimator 的入口：
//  1. Catalog：星球目錄（SSOT），定義有哪些星球、各自對應的設定檔名稱。
//  2. Effect Registry：效果註冊表，定義裝備/能力如何變換權重表。
//
// 設計重點：
//   - Expedlab 本身不綁定任何「檔案路徑」概念：設定檔來源一律以 fs.FS 注入。
//   - 全部計算是解析解（二項分布），沒有 RNG、沒有模擬、沒有持久化狀態。
//   - runtime 一旦開始（例如已對外服務），不建議再變更 Catalog/Registry。
//
// 典型使用情境：
//   - 後端服務（HTTP）：由 Expedlab 建立 Estimator，對外提供估算 API。
//   - 批次掃描（cmd/scan）：對一顆星球做效果組合 × 選區規模的敏感度掃描。
package expedlab

import (
	"io/fs"

	"github.com/zintix-labs/expedlab/catalog"
	"github.com/zintix-labs/expedlab/effect"
	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/spec"
)

// Configs 把一或多個設定檔來源（fs.FS）打包成 New() 需要的參數。
//
// 可以用 go:embed 把 configs 直接編進 binary（部署最穩定），
// 也可以用 os.DirFS 在本機開發時讀取目錄。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Effects 把一或多個效果註冊表打包成 New() 需要的參數。
// New() 會把多個 registries 合併成單一 registry；重複 key 直接以 error 失敗。
func Effects(regs ...*effect.Registry) []*effect.Registry {
	return regs
}

// Expedlab 是組裝器與運行入口。
//
// 使用流程分成兩階段：
//   - 註冊/組裝階段：建立 catalog、合併 registries、檢查重複與缺漏。
//   - 執行階段：依星球 ID 產生 Estimator，並在其上執行估算。
type Expedlab struct {
	cat *catalog.Catalog
	reg *effect.Registry
}

// New 建立一個 Expedlab instance（組裝階段入口）。
//
// 參數要求（合約的一部分）：
//   - cfgs 至少一個：沒有設定檔來源，Catalog 無法解析 PlanetSetting。
//   - regs 至少一個：沒有效果註冊表就無法解析啟用中的裝備（可用 effect.Builtin()）。
func New(cfgs []fs.FS, regs []*effect.Registry) (*Expedlab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	if len(regs) == 0 {
		return nil, errs.NewFatal("effect registry required")
	}
	cata, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	reg, err := effect.Merge(regs...)
	if err != nil {
		return nil, err
	}
	return &Expedlab{cat: cata, reg: reg}, nil
}

// NewAuto 建立一個直接進入執行階段的 Expedlab instance：
// 掃描所有設定檔來源、批次註冊並凍結目錄。
func NewAuto(cfgs []fs.FS, regs []*effect.Registry) (*Expedlab, error) {
	lab, err := New(cfgs, regs)
	if err != nil {
		return nil, err
	}
	if err := lab.RegisterAll(); err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

func (l *Expedlab) Register(ents ...catalog.Entry) error {
	return l.cat.Register(ents...)
}

// RegisterAll 掃描設定檔來源並批次註冊所有星球（fail-fast、原子性）。
func (l *Expedlab) RegisterAll() error {
	return l.cat.RegisterAll()
}

// Freeze 凍結目錄；之後的 Register 都會失敗。
func (l *Expedlab) Freeze() {
	l.cat.Freeze()
}

func (l *Expedlab) EntryByID(id spec.PID) (catalog.Entry, bool) {
	return l.cat.GetByID(id)
}

func (l *Expedlab) EntryByName(name string) (catalog.Entry, bool) {
	return l.cat.GetByName(name)
}

// Summaries 回傳目錄摘要（顯示層列表用）。
func (l *Expedlab) Summaries() ([]catalog.Summary, error) {
	ents := l.cat.All()
	out := make([]catalog.Summary, 0, len(ents))
	for _, e := range ents {
		ps, err := l.cat.PlanetSettingByID(e.PID)
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.Summary{
			PID:        e.PID,
			Name:       e.Name,
			MaxSectors: ps.MaxSectors,
			Sectors:    ps.SectorTypes(),
		})
	}
	return out, nil
}

// Registry 回傳合併後的效果註冊表。
func (l *Expedlab) Registry() *effect.Registry {
	return l.reg
}

// NewEstimator 依星球 ID 建立 Estimator。
// 設定檔每次重新解析，Estimator 之間不共享可變狀態。
func (l *Expedlab) NewEstimator(id spec.PID) (*Estimator, error) {
	ps, err := l.cat.PlanetSettingByID(id)
	if err != nil {
		return nil, err
	}
	return newEstimator(ps, l.reg), nil
}

// NewEstimatorByName 依星球名稱建立 Estimator。
func (l *Expedlab) NewEstimatorByName(name string) (*Estimator, error) {
	ps, err := l.cat.PlanetSettingByName(name)
	if err != nil {
		return nil, err
	}
	return newEstimator(ps, l.reg), nil
}
