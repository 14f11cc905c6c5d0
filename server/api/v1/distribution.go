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
	"strconv"

	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/sdk/binom"
	"github.com/zintix-labs/expedlab/server/httperr"
)

// 避免單一請求生成過長的分佈表
const maxDistTrials = 10000

// Distribution 是無狀態端點：回傳 Binomial(n, p) 的完整 pmf/cdf 點列與情境帶。
func Distribution(w http.ResponseWriter, r *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type DistributionResponse struct {
		Trials      int               `json:"n"`
		Probability float64           `json:"p"`
		Points      []binom.PointMass `json:"points"`
		Scenario    binom.Scenario    `json:"scenario"`
	}
	// ---
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()

	// n
	var n int
	if s := q.Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			httperr.Errs(w, errs.NewWarn("n must be integer"))
			return
		}
		n = v
	} else {
		httperr.Errs(w, errs.NewWarn("n is required"))
		return
	}

	// p
	var p float64
	if s := q.Get("p"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			httperr.Errs(w, errs.NewWarn("p must be number"))
			return
		}
		p = v
	} else {
		httperr.Errs(w, errs.NewWarn("p is required"))
		return
	}

	// 業務檢驗
	if n < 1 || n > maxDistTrials {
		httperr.Errs(w, errs.NewWarn("n must be between 1 and 10,000"))
		return
	}
	if p < 0 || p > 1 {
		httperr.Errs(w, errs.NewWarn("p must be within [0, 1]"))
		return
	}

	resp := DistributionResponse{
		Trials:      n,
		Probability: p,
		Points:      binom.Distribution(n, p),
		Scenario:    binom.Scenarios(n, p),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
