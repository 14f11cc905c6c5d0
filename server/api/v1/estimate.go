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
	"time"

	"github.com/zintix-labs/expedlab"
	"github.com/zintix-labs/expedlab/dto"
	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/server/httperr"
	"github.com/zintix-labs/expedlab/spec"
)

type EstimateHandler struct {
	Lab *expedlab.Expedlab
}

func NewEstimateHandler(lab *expedlab.Expedlab) (*EstimateHandler, error) {
	if lab == nil {
		return nil, errs.NewFatal("expedlab is required")
	}
	return &EstimateHandler{Lab: lab}, nil
}

// estimatorFor 依 pid 或 planet 名稱取得 Estimator；pid 優先。
func estimatorFor(lab *expedlab.Expedlab, pid *spec.PID, planet string) (*expedlab.Estimator, error) {
	if pid != nil {
		if _, ok := lab.EntryByID(*pid); !ok {
			return nil, errs.NewWarn("pid not found")
		}
		return lab.NewEstimator(*pid)
	}
	if planet != "" {
		if _, ok := lab.EntryByName(planet); !ok {
			return nil, errs.NewWarn("planet not found")
		}
		return lab.NewEstimatorByName(planet)
	}
	return nil, errs.NewWarn("pid or planet is required")
}

func (eh *EstimateHandler) Estimate(w http.ResponseWriter, q *http.Request) {
	// 請求方法、結構體校驗
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := dto.DecodeEstimateRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 業務檢驗
	if !req.HasPlanet() {
		httperr.Errs(w, errs.NewWarn("pid or planet is required"))
		return
	}
	sel := req.Selection()
	if len(sel) == 0 {
		httperr.Errs(w, errs.NewWarn("sectors is required"))
		return
	}

	est, err := estimatorFor(eh.Lab, req.PID, req.Planet)
	if err != nil {
		// 這裡的錯誤來自 expedlab 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "build estimator err"))
		return
	}

	start := time.Now()
	rep, err := est.Estimate(sel, req.Effects)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "estimate err"))
		return
	}

	resp, err := dto.NewEstimateResponse(rep, time.Since(start).Milliseconds())
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
