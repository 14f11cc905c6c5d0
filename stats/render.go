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

package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Render 報告輸出介面
type Render interface {
	Write(w io.Writer, r *ExpeditionReport) error
}

// Text 渲染：摘要 key/value 表 + 類別情境表
type TextRender struct{}

func (tr *TextRender) Write(w io.Writer, r *ExpeditionReport) error {
	keys, basic := r.fmtBasic()
	if _, err := io.WriteString(w, fmtTable("Expedition Estimate", keys, basic)); err != nil {
		return err
	}
	header, rows := r.fmtScenarioRows()
	if len(rows) == 0 {
		_, err := io.WriteString(w, "(no event mass in selection)\n")
		return err
	}
	if _, err := io.WriteString(w, fmtGrid(header, rows)); err != nil {
		return err
	}
	if hasMixed(r) {
		if _, err := io.WriteString(w, "* bands from exact convolution of heterogeneous sectors\n"); err != nil {
			return err
		}
	}
	for _, id := range r.UnknownEvents {
		if _, err := fmt.Fprintf(w, "! unknown event id: %s\n", id); err != nil {
			return err
		}
	}
	return nil
}

func hasMixed(r *ExpeditionReport) bool {
	for _, cr := range r.Results {
		if cr.Mixed {
			return true
		}
	}
	return false
}

// Json渲染
type JsonRender struct{}

func (jr *JsonRender) Write(w io.Writer, r *ExpeditionReport) error {
	return json.NewEncoder(w).Encode(r)
}

// YAML渲染
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, r *ExpeditionReport) error {
	// 不管欄位，只要是陣列（YAML Sequence），就維持外層預設展開；
	// 只有「最內層的一維陣列」或「本身就是一維陣列」時才輸出成 flow style：[..., ...]
	return forceReadableList(w, r)
}

// YAML 內層方法
func forceReadableList[T any](w io.Writer, t *T) error {
	var node yaml.Node
	if err := node.Encode(t); err != nil {
		return err
	}

	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

// 自頂向下調整所有 sequence node 的 style：
// - 若該 sequence 內部「沒有子 sequence」，代表它是最內層的一維 => 用 flow style: [...]
// - 若該 sequence 內部「有子 sequence」，代表它是外層維度 => 保持預設 block（展開）
func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		return

	case yaml.SequenceNode:
		hasChildSeq := false
		for _, c := range n.Content {
			if c != nil && c.Kind == yaml.SequenceNode {
				hasChildSeq = true
				break
			}
		}

		for _, c := range n.Content {
			styleReadableSequences(c)
		}

		if !hasChildSeq {
			n.Style = yaml.FlowStyle
		}
		return

	default:
		return
	}
}
