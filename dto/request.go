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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/selection"
	"github.com/zintix-labs/expedlab/spec"
)

// EstimateRequest 是 /v1/estimate 的輸入。
//
// 星球可用 pid 或 planet（名稱）擇一指定；兩者都給時以 pid 為準。
// sectors 為玩家目前勾選的 sector type 清單（順序保留，重複代表多顆）。
// effects 為啟用的探險加成（專案道具/技能），缺省代表裸跑。
type EstimateRequest struct {
	PID     *spec.PID         `json:"pid,omitempty"`
	Planet  string            `json:"planet,omitempty"`
	Sectors []spec.SectorType `json:"sectors"`
	Effects []spec.EffectKey  `json:"effects,omitempty"`
}

// ValidateRequest 是 /v1/validate 的輸入：
// 在 current 選擇下，詢問「再加一顆 type」是否合法。
type ValidateRequest struct {
	PID     *spec.PID         `json:"pid,omitempty"`
	Planet  string            `json:"planet,omitempty"`
	Type    spec.SectorType   `json:"type"`
	Sectors []spec.SectorType `json:"sectors,omitempty"`
}

// UsageRequest 是 /v1/usage 的輸入：回報每個 sector type 的額度使用狀況。
type UsageRequest struct {
	PID     *spec.PID         `json:"pid,omitempty"`
	Planet  string            `json:"planet,omitempty"`
	Sectors []spec.SectorType `json:"sectors,omitempty"`
}

// HasPlanet 回報請求是否指定了星球（pid 或名稱至少其一）。
func (er *EstimateRequest) HasPlanet() bool {
	return er != nil && (er.PID != nil || er.Planet != "")
}

func (vr *ValidateRequest) HasPlanet() bool {
	return vr != nil && (vr.PID != nil || vr.Planet != "")
}

func (ur *UsageRequest) HasPlanet() bool {
	return ur != nil && (ur.PID != nil || ur.Planet != "")
}

// Selection 將 sectors 正規化成 selection.Selection（大寫、去空白）。
func (er *EstimateRequest) Selection() selection.Selection {
	return normalizeSelection(er.Sectors)
}

func (vr *ValidateRequest) Selection() selection.Selection {
	return normalizeSelection(vr.Sectors)
}

func (ur *UsageRequest) Selection() selection.Selection {
	return normalizeSelection(ur.Sectors)
}

func normalizeSelection(in []spec.SectorType) selection.Selection {
	if len(in) == 0 {
		return nil
	}
	sel := make(selection.Selection, 0, len(in))
	for _, ty := range in {
		s := strings.ToUpper(strings.TrimSpace(string(ty)))
		if s == "" {
			continue
		}
		sel = append(sel, spec.SectorType(s))
	}
	return sel
}

// NormalizeType 回傳正規化後要新增的 sector type。
func (vr *ValidateRequest) NormalizeType() spec.SectorType {
	return spec.SectorType(strings.ToUpper(strings.TrimSpace(string(vr.Type))))
}

// DecodeEstimateRequest 會把 HTTP 請求解碼成 EstimateRequest。
//
// 支援：
//   - GET：從 query string 讀取參數（pid/planet/sectors/effects；清單用逗號分隔）。
//   - POST：從 JSON body 反序列化。
//
// 注意：
//   - 這裡只負責「解碼（decode）」與基本型別轉換，不做任何業務合法性校驗；
//     合法性（星球是否存在、選擇是否超額）應由上層（Estimator）決定。
//   - 為避免過大 body 影響服務，POST 會對 body 做大小限制（預設 1MiB）。
//   - POST 會開啟 DisallowUnknownFields()，對未知欄位採用嚴格拒絕，以避免靜默丟資料。
func DecodeEstimateRequest(r *http.Request) (*EstimateRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(EstimateRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		pid, planet, err := decodePlanetRef(q.Get("pid"), q.Get("planet"))
		if err != nil {
			return nil, err
		}
		req.PID = pid
		req.Planet = planet
		req.Sectors = splitTypes(q.Get("sectors"))
		for _, k := range splitList(q.Get("effects")) {
			req.Effects = append(req.Effects, spec.EffectKey(k))
		}
		return req, nil

	case http.MethodPost:
		if err := decodeBody(r, req); err != nil {
			return nil, err
		}
		return req, nil

	default:
		return nil, errs.NewWarn("method not allowed")
	}
}

// DecodeValidateRequest 同 DecodeEstimateRequest，針對 /v1/validate。
func DecodeValidateRequest(r *http.Request) (*ValidateRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(ValidateRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		pid, planet, err := decodePlanetRef(q.Get("pid"), q.Get("planet"))
		if err != nil {
			return nil, err
		}
		req.PID = pid
		req.Planet = planet
		req.Type = spec.SectorType(q.Get("type"))
		req.Sectors = splitTypes(q.Get("sectors"))
		return req, nil

	case http.MethodPost:
		if err := decodeBody(r, req); err != nil {
			return nil, err
		}
		return req, nil

	default:
		return nil, errs.NewWarn("method not allowed")
	}
}

// DecodeUsageRequest 同 DecodeEstimateRequest，針對 /v1/usage。
func DecodeUsageRequest(r *http.Request) (*UsageRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(UsageRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		pid, planet, err := decodePlanetRef(q.Get("pid"), q.Get("planet"))
		if err != nil {
			return nil, err
		}
		req.PID = pid
		req.Planet = planet
		req.Sectors = splitTypes(q.Get("sectors"))
		return req, nil

	case http.MethodPost:
		if err := decodeBody(r, req); err != nil {
			return nil, err
		}
		return req, nil

	default:
		return nil, errs.NewWarn("method not allowed")
	}
}

func decodePlanetRef(pidStr, planet string) (*spec.PID, string, error) {
	if pidStr == "" {
		return nil, planet, nil
	}
	u, err := strconv.ParseUint(pidStr, 10, 0)
	if err != nil {
		return nil, "", errs.NewWarn(fmt.Sprintf("invalid pid: %v", err))
	}
	pid := spec.PID(u)
	return &pid, planet, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitTypes(s string) []spec.SectorType {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil
	}
	out := make([]spec.SectorType, len(parts))
	for i, p := range parts {
		out[i] = spec.SectorType(p)
	}
	return out
}

func decodeBody(r *http.Request, dst any) error {
	// 防止 body 過大（預設 1MiB）
	const maxBody = 1 << 20
	body := io.LimitReader(r.Body, maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.NewWarn("invalid json: " + err.Error())
	}
	return nil
}
