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

package spec

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/sdk/wtab"
)

// SectorSetting 單一區域類型的目錄定義。
//
//   - IsSpecial：特殊區域（LANDING / LOST 類）不計入整體選取上限。
//   - MaxPerPlanet：此類型在一顆星球上最多可選次數，目錄保證 >= 1
//     （usage 統計以此為分母，不允許除以 0）。
//   - Weights：baseline 權重表。estimator 每次計算都會先 Clone 再交給
//     effect pipeline，baseline 本身永不被修改。
type SectorSetting struct {
	TypeStr      string      `yaml:"sector_type"    json:"sector_type"`
	IsSpecial    bool        `yaml:"is_special"     json:"is_special"`
	MaxPerPlanet int         `yaml:"max_per_planet" json:"max_per_planet"`
	Weights      *wtab.Table `yaml:"weights"        json:"weights"`
}

// Type 正規化後的區域類型
func (ss *SectorSetting) Type() SectorType {
	return SectorType(strings.ToUpper(strings.TrimSpace(ss.TypeStr)))
}

// Ctx 回傳效果 pipeline 需要的區域上下文。
func (ss *SectorSetting) Ctx() SectorCtx {
	return SectorCtx{Type: ss.Type(), IsSpecial: ss.IsSpecial}
}

// init 正規化並執行最基本的檢查。
func (ss *SectorSetting) init() error {
	ss.TypeStr = string(ss.Type())
	return ss.valid()
}

func (ss *SectorSetting) valid() error {
	if ss.TypeStr == "" {
		return errs.NewFatal("sector setting: empty sector_type")
	}
	if ss.MaxPerPlanet < 1 {
		return errs.Fatalf("sector %s: max_per_planet must be >= 1, got %d", ss.TypeStr, ss.MaxPerPlanet)
	}
	if ss.Weights == nil || ss.Weights.Len() == 0 {
		return errs.NewFatal(fmt.Sprintf("sector %s: empty weight table", ss.TypeStr))
	}
	return nil
}
