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
	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/selection"
	"github.com/zintix-labs/expedlab/stats"
)

// EstimateResponse 對外輸出一次完整估算。
type EstimateResponse struct {
	Report   *stats.ExpeditionReport `json:"report"`
	UsedTime int64                   `json:"used_ms"`
}

// ValidateResponse 對外輸出加選判定。
type ValidateResponse struct {
	Result selection.Result `json:"result"`
}

// UsageResponse 對外輸出每個 sector type 的額度使用狀況。
type UsageResponse struct {
	Usage []selection.Usage `json:"usage"`
}

func NewEstimateResponse(rep *stats.ExpeditionReport, usedMs int64) (EstimateResponse, error) {
	if rep == nil {
		return EstimateResponse{}, errs.NewWarn("expedition report is nil")
	}
	return EstimateResponse{Report: rep, UsedTime: usedMs}, nil
}
