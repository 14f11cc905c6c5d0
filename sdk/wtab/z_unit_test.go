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

package wtab

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func mustTable(t *testing.T, ents ...Entry) *Table {
	t.Helper()
	tab, err := New(ents...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tab
}

func TestRemoveByPrefix(t *testing.T) {
	tab := mustTable(t,
		Entry{Event: "FIGHT_1", Weight: 2},
		Entry{Event: "FIGHT_2", Weight: 3},
		Entry{Event: "AGAIN", Weight: 1},
	)
	if got := tab.RemoveByPrefix("FIGHT_"); got != 2 {
		t.Fatalf("removed %d entries, want 2", got)
	}
	if tab.Len() != 1 {
		t.Fatalf("len %d, want 1", tab.Len())
	}
	if w, ok := tab.Get("AGAIN"); !ok || w != 1 {
		t.Fatalf("AGAIN = (%v,%v), want (1,true)", w, ok)
	}
	if _, ok := tab.Get("FIGHT_1"); ok {
		t.Fatal("FIGHT_1 should be gone")
	}
}

func TestRemoveMatchesExactIdOnly(t *testing.T) {
	tab := mustTable(t,
		Entry{Event: "AGAIN", Weight: 1},
		Entry{Event: "AGAIN_EXTRA", Weight: 2},
		Entry{Event: "BACK", Weight: 3},
	)
	if !tab.Remove("AGAIN") {
		t.Fatal("AGAIN should be removable")
	}
	if _, ok := tab.Get("AGAIN"); ok {
		t.Fatal("AGAIN should be gone")
	}
	if w, ok := tab.Get("AGAIN_EXTRA"); !ok || w != 2 {
		t.Fatalf("AGAIN_EXTRA = (%v,%v), want (2,true): exact removal must not touch prefixed ids", w, ok)
	}
	// 移除後 index 必須重排；後續依 id 的操作仍要命中。
	if !tab.Scale("BACK", 2) {
		t.Fatal("BACK should still be addressable after the removal")
	}
	if w, _ := tab.Get("BACK"); w != 6 {
		t.Fatalf("BACK = %v, want 6", w)
	}
	if tab.Remove("AGAIN") {
		t.Fatal("removing an absent event must report false")
	}
}

func TestScaleCompounds(t *testing.T) {
	tab := mustTable(t, Entry{Event: "ARTEFACT", Weight: 3})
	tab.Scale("ARTEFACT", 2)
	tab.Scale("ARTEFACT", 2)
	if w, _ := tab.Get("ARTEFACT"); w != 12 {
		t.Fatalf("ARTEFACT weight %v, want 12 (x2 twice compounds to x4)", w)
	}
	if tab.Scale("MISSING", 2) {
		t.Fatal("scaling an absent event must be a no-op")
	}
}

func TestZeroTotalIsProbabilityZero(t *testing.T) {
	tab := mustTable(t, Entry{Event: "FIGHT_8", Weight: 5})
	tab.RemoveByPrefix("FIGHT_")
	if got := tab.Probability("FIGHT_8"); got != 0 {
		t.Fatalf("probability on emptied table = %v, want 0", got)
	}
	tab2 := mustTable(t, Entry{Event: "AGAIN", Weight: 0})
	if got := tab2.Probability("AGAIN"); got != 0 {
		t.Fatalf("probability with zero total = %v, want 0", got)
	}
}

func TestCloneIsolation(t *testing.T) {
	base := mustTable(t, Entry{Event: "FIGHT_8", Weight: 2}, Entry{Event: "AGAIN", Weight: 1})
	c := base.Clone()
	c.RemoveByPrefix("FIGHT_")
	c.Scale("AGAIN", 10)
	if w, _ := base.Get("FIGHT_8"); w != 2 {
		t.Fatalf("baseline mutated: FIGHT_8 = %v", w)
	}
	if w, _ := base.Get("AGAIN"); w != 1 {
		t.Fatalf("baseline mutated: AGAIN = %v", w)
	}
}

func TestNewRejectsBadWeights(t *testing.T) {
	if _, err := New(Entry{Event: "A", Weight: -1}); err == nil {
		t.Fatal("negative weight must fail")
	}
	if _, err := New(Entry{Event: "A", Weight: math.NaN()}); err == nil {
		t.Fatal("NaN weight must fail")
	}
	if _, err := New(Entry{Event: "A", Weight: 1}, Entry{Event: "A", Weight: 2}); err == nil {
		t.Fatal("duplicate event must fail")
	}
}

func TestYAMLRoundTripKeepsOrder(t *testing.T) {
	src := "ZULU: 3\nALPHA: 1\nMIKE: 2\n"
	var tab Table
	if err := yaml.Unmarshal([]byte(src), &tab); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	ents := tab.Entries()
	want := []string{"ZULU", "ALPHA", "MIKE"}
	for i, w := range want {
		if ents[i].Event != w {
			t.Fatalf("order[%d] = %s, want %s", i, ents[i].Event, w)
		}
	}
	out, err := json.Marshal(&tab)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if string(out) != `{"ZULU":3,"ALPHA":1,"MIKE":2}` {
		t.Fatalf("json order lost: %s", out)
	}
}

func TestJSONDecode(t *testing.T) {
	var tab Table
	if err := json.Unmarshal([]byte(`{"FIGHT_8":2,"AGAIN":1}`), &tab); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w, _ := tab.Get("FIGHT_8"); w != 2 {
		t.Fatalf("FIGHT_8 = %v, want 2", w)
	}
	if tab.Total() != 3 {
		t.Fatalf("total = %v, want 3", tab.Total())
	}
}
