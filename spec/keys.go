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

// Package spec 定義由設定檔（YAML/JSON）解碼出的星球/區域設定結構，
// 以及跨套件共用的識別型別。
package spec

// PID 星球設定唯一識別碼
type PID uint

// SectorType 區域類型代號（目錄定義，皆為大寫蛇形）
type SectorType string

// 效果條件會引用的內建區域類型。
// 其餘類型（FOREST、DESERT、OCEAN…）由設定檔自由宣告，引擎不需列舉。
const (
	SectorIntelligent SectorType = "INTELLIGENT"
	SectorLanding     SectorType = "LANDING"
	SectorLost        SectorType = "LOST"
)

// EffectKey 效果（裝備/能力）識別碼
type EffectKey string

// SectorCtx 是修飾效果可見的區域上下文。
// 效果只依 ctx 與它拿到的那張權重表決定行為，不觸及任何外部狀態。
type SectorCtx struct {
	Type      SectorType
	IsSpecial bool
}

// DefaultMaxSectors 非特殊區域的預設選取上限
const DefaultMaxSectors = 20
