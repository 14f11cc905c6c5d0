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

package stats_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/zintix-labs/expedlab/event"
	"github.com/zintix-labs/expedlab/sdk/binom"
	"github.com/zintix-labs/expedlab/spec"
	"github.com/zintix-labs/expedlab/stats"
)

func sampleReport() *stats.ExpeditionReport {
	return &stats.ExpeditionReport{
		PlanetName: "otarie",
		PlanetID:   7,
		Sectors:    5,
		SectorCounts: []stats.SectorCount{
			{Type: "FOREST", Count: 4},
			{Type: "INTELLIGENT", Count: 1},
		},
		Effects:       []spec.EffectKey{"navigation_aid"},
		UnknownEvents: []string{"GLITTER_9"},
		Results: []stats.CategoryResult{
			{
				Category:    event.CatFight,
				Severity:    event.SevDanger,
				Trials:      5,
				Probability: 0.3,
				Scenario:    binom.Scenarios(5, 0.3),
			},
			{
				Category:    event.CatResource,
				Severity:    event.SevPositive,
				Trials:      5,
				Probability: 0.42,
				Mixed:       true,
				Scenario:    binom.ScenariosOf([]float64{0.5, 0.5, 0.5, 0.5, 0.1}),
			},
		},
	}
}

func TestTextRender(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().WriteWith(&buf, &stats.TextRender{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Expedition Estimate", "otarie", "fight", "resource *", "convolution", "unknown event id: GLITTER_9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestJsonRenderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().WriteWith(&buf, &stats.JsonRender{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	var back stats.ExpeditionReport
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got, ok := back.Result(event.CatFight); !ok || got.Scenario.Pessimist != 3 {
		t.Fatalf("fight result lost: %+v", got)
	}
}

func TestYAMLRenderFlowStyle(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().WriteWith(&buf, &stats.YAMLRender{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "planet: otarie") {
		t.Fatalf("yaml output malformed:\n%s", buf.String())
	}
}

func TestSnapshotStream(t *testing.T) {
	var buf bytes.Buffer
	r1 := sampleReport()
	r2 := sampleReport()
	r2.PlanetName = "polyphemus"
	if err := stats.WriteSnapshot(&buf, r1); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := stats.WriteSnapshot(&buf, r2); err != nil {
		t.Fatalf("write: %v", err)
	}

	br := bufio.NewReader(&buf)
	got1, err := stats.ReadSnapshot(br)
	if err != nil {
		t.Fatalf("read 1: %v", err)
	}
	got2, err := stats.ReadSnapshot(br)
	if err != nil {
		t.Fatalf("read 2: %v", err)
	}
	if got1.PlanetName != "otarie" || got2.PlanetName != "polyphemus" {
		t.Fatalf("snapshots out of order: %s / %s", got1.PlanetName, got2.PlanetName)
	}
}

func TestSnapshotStringRoundTrip(t *testing.T) {
	s, err := stats.SnapshotString(sampleReport())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.ContainsAny(s, "\n ") {
		t.Fatalf("snapshot string must be a single token: %q", s)
	}
	got, err := stats.ParseSnapshotString(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PlanetName != "otarie" || len(got.Results) != len(sampleReport().Results) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestParseSnapshotStringRejectsGarbage(t *testing.T) {
	if _, err := stats.ParseSnapshotString("not-base64!!"); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}
