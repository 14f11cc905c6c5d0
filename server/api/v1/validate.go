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

	"github.com/zintix-labs/expedlab"
	"github.com/zintix-labs/expedlab/dto"
	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/server/httperr"
)

type SelectHandler struct {
	Lab *expedlab.Expedlab
}

func NewSelectHandler(lab *expedlab.Expedlab) (*SelectHandler, error) {
	if lab == nil {
		return nil, errs.NewFatal("expedlab is required")
	}
	return &SelectHandler{Lab: lab}, nil
}

func (sh *SelectHandler) Validate(w http.ResponseWriter, q *http.Request) {
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := dto.DecodeValidateRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 業務檢驗
	if !req.HasPlanet() {
		httperr.Errs(w, errs.NewWarn("pid or planet is required"))
		return
	}
	ty := req.NormalizeType()
	if ty == "" {
		httperr.Errs(w, errs.NewWarn("type is required"))
		return
	}

	est, err := estimatorFor(sh.Lab, req.PID, req.Planet)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "build estimator err"))
		return
	}

	result := est.Validate(ty, req.Selection())
	resp := dto.ValidateResponse{Result: result}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
