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

package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/expedlab/catalog"
	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/server/httperr"
	"github.com/zintix-labs/expedlab/spec"
)

// Planets 回傳 catalog summary 與可用 effect keys，供前端下拉選單使用。
func (eh *EstimateHandler) Planets(w http.ResponseWriter, r *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type PlanetsResponse struct {
		Planets []catalog.Summary `json:"planets"`
		Effects []spec.EffectKey  `json:"effects"`
	}
	// ---
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sums, err := eh.Lab.Summaries()
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "catalog summary err"))
		return
	}

	resp := PlanetsResponse{
		Planets: sums,
		Effects: eh.Lab.Registry().Keys(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
