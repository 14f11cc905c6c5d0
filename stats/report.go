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

// Package stats 定義探勘估算報告結構與其輸出（text / JSON / YAML / 快照）。
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/expedlab/event"
	"github.com/zintix-labs/expedlab/sdk/binom"
	"github.com/zintix-labs/expedlab/spec"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// CategoryResult 單一事件類別的估算結果
type CategoryResult struct {
	Category    event.Category `json:"category"`
	Severity    event.Severity `json:"severity"`
	Trials      int            `json:"trials"`          // n：貢獻非零機率質量的 sector 數
	Probability float64        `json:"p"`               // 代表性單 sector 機率
	Mixed       bool           `json:"mixed,omitempty"` // true 表示 bands 來自異質摺積
	Scenario    binom.Scenario `json:"scenario"`
}

// SectorCount 選區中某類型的數量
type SectorCount struct {
	Type  spec.SectorType `json:"type"`
	Count int             `json:"count"`
}

// ExpeditionReport 一次估算的完整報告
type ExpeditionReport struct {
	PlanetName    string           `json:"planet"`
	PlanetID      spec.PID         `json:"pid"`
	Sectors       int              `json:"sectors"`
	SectorCounts  []SectorCount    `json:"sector_counts"`
	Effects       []spec.EffectKey `json:"effects,omitempty"`
	UnknownEvents []string         `json:"unknown_events,omitempty"`
	Results       []CategoryResult `json:"results"`
}

// Result 依類別取得結果。
func (r *ExpeditionReport) Result(cat event.Category) (CategoryResult, bool) {
	for _, cr := range r.Results {
		if cr.Category == cat {
			return cr, true
		}
	}
	return CategoryResult{}, false
}

// WriteWith 以指定的 Render 輸出報告。
func (r *ExpeditionReport) WriteWith(w io.Writer, rep Render) error {
	if rep == nil {
		rep = &TextRender{}
	}
	return rep.Write(w, r)
}

// StdOut

func (r *ExpeditionReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	effects := "-"
	if len(r.Effects) > 0 {
		strs := make([]string, len(r.Effects))
		for i, e := range r.Effects {
			strs[i] = string(e)
		}
		effects = strings.Join(strs, ", ")
	}
	basic := map[string]string{
		"Planet":     r.PlanetName,
		"Planet ID":  fmt.Sprintf("%d", r.PlanetID),
		"Sectors":    p.Sprintf("%d", r.Sectors),
		"Effects":    effects,
		"Categories": p.Sprintf("%d", len(r.Results)),
		"Unknown":    p.Sprintf("%d", len(r.UnknownEvents)),
	}
	keys := []string{"Planet", "Planet ID", "Sectors", "Effects", "Categories", "Unknown"}
	return keys, basic
}

func (r *ExpeditionReport) fmtScenarioRows() ([]string, [][]string) {
	p := message.NewPrinter(lang)
	header := []string{"Category", "Severity", "n", "p", "Optimist", "Average", "Pessimist", "Worst"}
	rows := make([][]string, 0, len(r.Results))
	for _, cr := range r.Results {
		cat := string(cr.Category)
		if cr.Mixed {
			cat += " *"
		}
		rows = append(rows, []string{
			cat,
			string(cr.Severity),
			p.Sprintf("%d", cr.Trials),
			p.Sprintf("%.4f", cr.Probability),
			p.Sprintf("%d", cr.Scenario.Optimist),
			p.Sprintf("%.2f", cr.Scenario.Average),
			p.Sprintf("%d", cr.Scenario.Pessimist),
			p.Sprintf("%d", cr.Scenario.WorstCase),
		})
	}
	return header, rows
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

// fmtGrid 多欄表格（情境結果用）
func fmtGrid(header []string, rows [][]string) string {
	cols := len(header)
	width := make([]int, cols)
	for c, h := range header {
		width[c] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for c, cell := range row {
			if w := runewidth.StringWidth(cell); w > width[c] {
				width[c] = w
			}
		}
	}

	var b strings.Builder
	divider := "+"
	for _, w := range width {
		divider += strings.Repeat("-", w+2) + "+"
	}
	divider += "\n"

	writeRow := func(cells []string) {
		b.WriteString("|")
		for c, cell := range cells {
			pad := width[c] - runewidth.StringWidth(cell)
			b.WriteString(" " + cell + blank(pad) + " |")
		}
		b.WriteString("\n")
	}

	b.WriteString(divider)
	writeRow(header)
	b.WriteString(divider)
	for _, row := range rows {
		writeRow(row)
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
