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

// Package wtab 定義事件權重表（WeightTable）與其變換原語。
//
// 權重表是「事件代號 -> 相對權重」的有序映射：
//   - 權重必須是有限且 >= 0 的浮點數。
//   - 順序保留設定檔中的宣告順序（機率推導與輸出都依此順序，確保 determinism）。
//   - 一張表在套用修飾效果後合法地可能總和為 0；此時所有事件機率視為 0，不是錯誤。
//
// 變換原語（RemoveByPrefix / Scale）會就地修改表本身。
// 需要跨多次運算重用 baseline 的呼叫端，必須先 Clone()。
package wtab

import (
	"fmt"
	"math"
	"strings"

	"github.com/zintix-labs/expedlab/errs"
	"gopkg.in/yaml.v3"
)

// Entry 權重表中的一筆事件
type Entry struct {
	Event  string
	Weight float64
}

// Table 有序權重表
type Table struct {
	entries []Entry
	index   map[string]int // event -> entries 下標
}

// New 以宣告順序建立權重表。
// 重複事件或非法權重（負數、NaN、Inf）回傳 Fatal。
func New(ents ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(ents)),
		index:   make(map[string]int, len(ents)),
	}
	for _, e := range ents {
		if err := t.put(e.Event, e.Weight); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) put(event string, w float64) error {
	if event == "" {
		return errs.NewFatal("weight table: empty event id")
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return errs.Fatalf("weight table: invalid weight for %s: %v", event, w)
	}
	if _, ok := t.index[event]; ok {
		return errs.Fatalf("weight table: duplicate event id: %s", event)
	}
	t.index[event] = len(t.entries)
	t.entries = append(t.entries, Entry{Event: event, Weight: w})
	return nil
}

// Len 表中事件數
func (t *Table) Len() int { return len(t.entries) }

// Get 回傳事件權重；不存在回傳 (0, false)。
func (t *Table) Get(event string) (float64, bool) {
	i, ok := t.index[event]
	if !ok {
		return 0, false
	}
	return t.entries[i].Weight, true
}

// Entries 依宣告順序回傳所有事件（copy，呼叫端可自由持有）。
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Clone 深拷貝一張表。
// baseline 重用的唯一合法方式：先 Clone 再交給 pipeline。
func (t *Table) Clone() *Table {
	c := &Table{
		entries: append([]Entry(nil), t.entries...),
		index:   make(map[string]int, len(t.entries)),
	}
	for i, e := range c.entries {
		c.index[e.Event] = i
	}
	return c
}

// Total 權重總和
func (t *Table) Total() float64 {
	var sum float64
	for _, e := range t.entries {
		sum += e.Weight
	}
	return sum
}

// Probability 事件權重 / 權重總和。
// 總和為 0 或事件不存在時回傳 0。
func (t *Table) Probability(event string) float64 {
	w, ok := t.Get(event)
	if !ok {
		return 0
	}
	total := t.Total()
	if total == 0 {
		return 0
	}
	return w / total
}

// RemoveByPrefix 刪除所有事件代號以 prefix 開頭的事件，回傳刪除筆數。
func (t *Table) RemoveByPrefix(prefix string) int {
	kept := t.entries[:0]
	removed := 0
	for _, e := range t.entries {
		if strings.HasPrefix(e.Event, prefix) {
			delete(t.index, e.Event)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	t.entries = kept
	for i, e := range t.entries {
		t.index[e.Event] = i
	}
	return removed
}

// Remove 刪除單一事件，僅比對完整代號。
// 代號互為前綴的事件（AGAIN / AGAIN_EXTRA）互不影響。
func (t *Table) Remove(event string) bool {
	i, ok := t.index[event]
	if !ok {
		return false
	}
	delete(t.index, event)
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	for j := i; j < len(t.entries); j++ {
		t.index[t.entries[j].Event] = j
	}
	return true
}

// Scale 將單一事件的權重乘上 factor；事件不存在時為 no-op。
// 連續套用會複合（x2 再 x2 => x4），順序由呼叫端決定。
func (t *Table) Scale(event string, factor float64) bool {
	i, ok := t.index[event]
	if !ok {
		return false
	}
	t.entries[i].Weight *= factor
	return true
}

// -----------------------------------------------------------------------------
//  設定檔序列化
// -----------------------------------------------------------------------------

// UnmarshalYAML 由 YAML mapping node 解析權重表。
// 走 node 層而不是 map[string]float64，才能保留設定檔的宣告順序。
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errs.NewFatal("weight table: expected a mapping of event -> weight")
	}
	t.entries = t.entries[:0]
	t.index = make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		var w float64
		if err := val.Decode(&w); err != nil {
			return errs.Wrap(err, fmt.Sprintf("weight table: bad weight for %s", key.Value))
		}
		if err := t.put(key.Value, w); err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML 以宣告順序輸出 mapping。
func (t *Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range t.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Event},
			&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%g", e.Weight)},
		)
	}
	return node, nil
}

// MarshalJSON 輸出為有序的 JSON object。
func (t *Table) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%g", e.Event, e.Weight)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// UnmarshalJSON 由 JSON object 解析權重表。
// 經由 yaml.v3 decode（yaml 是 JSON 的超集合）以重用順序保留邏輯。
func (t *Table) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return errs.Wrap(err, "weight table: invalid json")
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return t.UnmarshalYAML(node.Content[0])
	}
	return t.UnmarshalYAML(&node)
}
