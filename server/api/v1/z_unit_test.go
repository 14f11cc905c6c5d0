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

package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/expedlab"
	"github.com/zintix-labs/expedlab/dto"
	"github.com/zintix-labs/expedlab/effect"
	v1 "github.com/zintix-labs/expedlab/server/api/v1"
)

const testPlanet = `
planet_id: 42
planet_name: otarie
sector_settings:
  - sector_type: FOREST
    max_per_planet: 2
    weights:
      FIGHT_8: 2
      HARVEST_1: 2
  - sector_type: INTELLIGENT
    max_per_planet: 1
    weights:
      FIGHT_15: 3
      ARTEFACT: 1
      AGAIN: 1
  - sector_type: LANDING
    is_special: true
    max_per_planet: 1
    weights:
      NOTHING_TO_REPORT: 1
`

func newLab(t *testing.T) *expedlab.Expedlab {
	t.Helper()
	src := fstest.MapFS{"otarie.yaml": {Data: []byte(testPlanet)}}
	lab, err := expedlab.NewAuto(
		expedlab.Configs(src),
		expedlab.Effects(effect.Builtin()),
	)
	if err != nil {
		t.Fatalf("NewAuto: %v", err)
	}
	return lab
}

func TestEstimateHandlerGET(t *testing.T) {
	h, err := v1.NewEstimateHandler(newLab(t))
	if err != nil {
		t.Fatalf("NewEstimateHandler: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/v1/estimate?pid=42&sectors=FOREST,FOREST", nil)
	w := httptest.NewRecorder()
	h.Estimate(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp dto.EstimateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Report == nil || resp.Report.PlanetName != "otarie" || resp.Report.Sectors != 2 {
		t.Fatalf("unexpected report: %+v", resp.Report)
	}
}

func TestEstimateHandlerUnknownPlanet(t *testing.T) {
	h, _ := v1.NewEstimateHandler(newLab(t))
	r := httptest.NewRequest(http.MethodGet, "/v1/estimate?pid=99&sectors=FOREST", nil)
	w := httptest.NewRecorder()
	h.Estimate(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestValidateHandlerPerTypeLimit(t *testing.T) {
	h, err := v1.NewSelectHandler(newLab(t))
	if err != nil {
		t.Fatalf("NewSelectHandler: %v", err)
	}
	body := strings.NewReader(`{"pid":42,"type":"INTELLIGENT","sectors":["INTELLIGENT"]}`)
	r := httptest.NewRequest(http.MethodPost, "/v1/validate", body)
	w := httptest.NewRecorder()
	h.Validate(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp dto.ValidateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.IsValid {
		t.Fatalf("expected invalid: INTELLIGENT is capped at 1")
	}
	if resp.Result.CurrentCount != 1 || resp.Result.MaxAllowed != 1 {
		t.Fatalf("unexpected result: %+v", resp.Result)
	}
}

func TestUsageHandler(t *testing.T) {
	h, _ := v1.NewSelectHandler(newLab(t))
	body := strings.NewReader(`{"planet":"otarie","sectors":["FOREST"]}`)
	r := httptest.NewRequest(http.MethodPost, "/v1/usage", body)
	w := httptest.NewRecorder()
	h.Usage(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp dto.UsageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// one row per catalog sector type, declaration order
	if len(resp.Usage) != 3 {
		t.Fatalf("expected 3 usage rows, got %+v", resp.Usage)
	}
	if resp.Usage[0].Type != "FOREST" || resp.Usage[0].Current != 1 || resp.Usage[0].Remaining != 1 {
		t.Fatalf("unexpected usage: %+v", resp.Usage[0])
	}
}

func TestClassifyHandler(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/classify?event=FIGHT_12", nil)
	w := httptest.NewRecorder()
	v1.Classify(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Event   string `json:"event"`
		IsKnown bool   `json:"is_known"`
		Class   struct {
			Category string `json:"category"`
			Severity string `json:"severity"`
		} `json:"class"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsKnown || resp.Class.Category != "fight" || resp.Class.Severity != "danger" {
		t.Fatalf("unexpected class: %+v", resp)
	}
}

func TestDistributionHandlerBadParams(t *testing.T) {
	for _, q := range []string{"", "n=5", "p=0.5", "n=0&p=0.5", "n=5&p=1.5"} {
		r := httptest.NewRequest(http.MethodGet, "/v1/distribution?"+q, nil)
		w := httptest.NewRecorder()
		v1.Distribution(w, r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", q, w.Code)
		}
	}
}

func TestDistributionHandlerOK(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/distribution?n=5&p=0.3", nil)
	w := httptest.NewRecorder()
	v1.Distribution(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Points []struct {
			K          int     `json:"k"`
			Cumulative float64 `json:"cum"`
		} `json:"points"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(resp.Points))
	}
	last := resp.Points[len(resp.Points)-1]
	if last.K != 5 || last.Cumulative < 1-1e-9 || last.Cumulative > 1 {
		t.Fatalf("unexpected tail point: %+v", last)
	}
}
