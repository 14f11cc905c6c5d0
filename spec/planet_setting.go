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

	"github.com/zintix-labs/expedlab/errs"
)

// PlanetSetting 一顆星球的完整探勘設定（Single Source of Truth）。
//
// 一份設定檔對應一顆星球：它宣告有哪些區域類型、各類型的選取限制、
// 以及各類型的 baseline 事件權重表。
type PlanetSetting struct {
	PlanetID       PID             `yaml:"planet_id"       json:"planet_id"`
	PlanetName     string          `yaml:"planet_name"     json:"planet_name"`
	MaxSectors     int             `yaml:"max_sectors"     json:"max_sectors"`
	SectorSettings []SectorSetting `yaml:"sector_settings" json:"sector_settings"`
	Fixed          map[string]any  `yaml:"fixed"           json:"fixed"`
}

// init
func (ps *PlanetSetting) init() error {
	if ps.MaxSectors == 0 {
		ps.MaxSectors = DefaultMaxSectors
	}
	for i := range ps.SectorSettings {
		if err := ps.SectorSettings[i].init(); err != nil {
			return err
		}
	}
	return ps.valid()
}

// valid 執行最基本的設定檔檢查，如需更多驗證可在此擴充。
func (ps *PlanetSetting) valid() error {
	if ps.PlanetName == "" {
		return errs.NewFatal("empty planet_name")
	}
	if ps.MaxSectors < 1 {
		return errs.Fatalf("planet_name: %s err:invalid max_sectors %d", ps.PlanetName, ps.MaxSectors)
	}
	if len(ps.SectorSettings) == 0 {
		return errs.NewFatal(fmt.Sprintf("planet_name: %s err:empty sector_settings", ps.PlanetName))
	}

	// 區域類型不可重複
	seen := map[SectorType]struct{}{}
	for i := range ps.SectorSettings {
		ty := ps.SectorSettings[i].Type()
		if _, ok := seen[ty]; ok {
			return errs.Fatalf("planet_name: %s err:duplicate sector type %s", ps.PlanetName, ty)
		}
		seen[ty] = struct{}{}
	}
	return nil
}

// Sector 依類型取得區域設定。
func (ps *PlanetSetting) Sector(ty SectorType) (*SectorSetting, bool) {
	for i := range ps.SectorSettings {
		if ps.SectorSettings[i].Type() == ty {
			return &ps.SectorSettings[i], true
		}
	}
	return nil, false
}

// SectorTypes 依宣告順序回傳所有區域類型。
func (ps *PlanetSetting) SectorTypes() []SectorType {
	out := make([]SectorType, 0, len(ps.SectorSettings))
	for i := range ps.SectorSettings {
		out = append(out, ps.SectorSettings[i].Type())
	}
	return out
}
