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

package dto

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDecodeEstimateRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/estimate?pid=7&sectors=forest,forest,desert&effects=scanning_aid", nil)
	req, err := DecodeEstimateRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.PID == nil || *req.PID != 7 {
		t.Fatalf("unexpected pid: %+v", req.PID)
	}
	sel := req.Selection()
	if len(sel) != 3 || sel[0] != "FOREST" || sel[2] != "DESERT" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	if len(req.Effects) != 1 || req.Effects[0] != "scanning_aid" {
		t.Fatalf("unexpected effects: %+v", req.Effects)
	}
}

func TestDecodeEstimateRequestPOST(t *testing.T) {
	payload := map[string]any{
		"planet":  "otarie",
		"sectors": []string{"FOREST", "INTELLIGENT"},
		"effects": []string{"defensive_signal"},
	}
	data, _ := json.Marshal(payload)
	r := httptest.NewRequest(http.MethodPost, "/estimate", bytes.NewReader(data))
	req, err := DecodeEstimateRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Planet != "otarie" || req.PID != nil {
		t.Fatalf("unexpected planet ref: %+v", req)
	}
	if !req.HasPlanet() {
		t.Fatalf("expected HasPlanet true")
	}
	if len(req.Selection()) != 2 {
		t.Fatalf("unexpected selection: %+v", req.Selection())
	}
}

func TestDecodeEstimateRequestRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"pid":1,"sectors":["FOREST"],"unknown":true}`)
	r := httptest.NewRequest(http.MethodPost, "/estimate", bytes.NewReader(data))
	if _, err := DecodeEstimateRequest(r); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestDecodeEstimateRequestBadPID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/estimate?pid=abc", nil)
	if _, err := DecodeEstimateRequest(r); err == nil {
		t.Fatalf("expected error for invalid pid")
	}
}

func TestDecodeValidateRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/validate?planet=otarie&type=forest&sectors=FOREST,DESERT", nil)
	req, err := DecodeValidateRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.NormalizeType() != "FOREST" {
		t.Fatalf("unexpected type: %q", req.NormalizeType())
	}
	if len(req.Selection()) != 2 {
		t.Fatalf("unexpected selection: %+v", req.Selection())
	}
}

func TestDecodeUsageRequestEmptySelection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/usage?pid=1", nil)
	req, err := DecodeUsageRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Selection() != nil {
		t.Fatalf("expected nil selection, got %+v", req.Selection())
	}
}
