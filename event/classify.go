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

// Package event 提供事件代號 -> {類別, 嚴重度} 的純函數分類。
//
// Classify 是 total function：任何字串都有分類結果，未知事件落到
// {CatUnknown, SevNeutral}，不會失敗。規則表有序，first match wins。
package event

import "strings"

// Category 事件類別
type Category string

const (
	CatFight      Category = "fight"
	CatTired      Category = "tired"
	CatAccident   Category = "accident"
	CatDisaster   Category = "disaster"
	CatKillAll    Category = "killAll"
	CatKillOne    Category = "killOne"
	CatDisease    Category = "disease"
	CatPlayerLost Category = "playerLost"
	CatItemLost   Category = "itemLost"
	CatMushTrap   Category = "mushTrap"
	CatAgain      Category = "again"
	CatNothing    Category = "nothing"
	CatResource   Category = "resource"
	CatBack       Category = "back"
	CatUnknown    Category = "unknown"
)

// Severity 嚴重度（顯示層用於著色）
type Severity string

const (
	SevDanger   Severity = "danger"
	SevWarning  Severity = "warning"
	SevNeutral  Severity = "neutral"
	SevPositive Severity = "positive"
)

// Class 分類結果
type Class struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
}

// rule 單條分類規則。
// prefix=true 時比對代號前綴，否則要求完整相等。
type rule struct {
	pattern string
	prefix  bool
	class   Class
}

// 規則表有序：前面的規則優先。
var rules = []rule{
	{"FIGHT_", true, Class{CatFight, SevDanger}},
	{"TIRED_", true, Class{CatTired, SevWarning}},
	{"ACCIDENT_", true, Class{CatAccident, SevWarning}},
	{"DISASTER_", true, Class{CatDisaster, SevDanger}},
	{"KILL_ALL", false, Class{CatKillAll, SevDanger}},
	{"KILL_RANDOM", false, Class{CatKillOne, SevDanger}},
	{"KILL_LOST", false, Class{CatKillOne, SevDanger}},
	{"DISEASE", false, Class{CatDisease, SevWarning}},
	{"PLAYER_LOST", false, Class{CatPlayerLost, SevDanger}},
	{"ITEM_LOST", false, Class{CatItemLost, SevWarning}},
	{"MUSH_TRAP", false, Class{CatMushTrap, SevDanger}},
	{"AGAIN", false, Class{CatAgain, SevNeutral}},
	{"NOTHING_TO_REPORT", false, Class{CatNothing, SevNeutral}},
	{"HARVEST_", true, Class{CatResource, SevPositive}},
	{"PROVISION_", true, Class{CatResource, SevPositive}},
	{"FUEL_", true, Class{CatResource, SevPositive}},
	{"OXYGEN_", true, Class{CatResource, SevPositive}},
	{"ARTEFACT", false, Class{CatResource, SevPositive}},
	{"STARMAP", false, Class{CatResource, SevPositive}},
	{"FIND_LOST", false, Class{CatResource, SevPositive}},
	{"BACK", false, Class{CatBack, SevNeutral}},
}

var unknown = Class{CatUnknown, SevNeutral}

// Classify 回傳事件代號的類別與嚴重度。
func Classify(eventID string) Class {
	for _, r := range rules {
		if r.prefix {
			if strings.HasPrefix(eventID, r.pattern) {
				return r.class
			}
			continue
		}
		if eventID == r.pattern {
			return r.class
		}
	}
	return unknown
}

// IsUnknown 判斷事件是否落入 unknown 類別。
// Orchestrator 用來回報內容飄移（新事件出現但規則表還沒跟上）。
func IsUnknown(eventID string) bool {
	return Classify(eventID).Category == CatUnknown
}
