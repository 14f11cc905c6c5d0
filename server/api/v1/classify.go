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
	"strings"

	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/event"
	"github.com/zintix-labs/expedlab/server/httperr"
)

// Classify 是無狀態端點：把 event id 映成 {category, severity}。
// 分類表是程式內建的，不依賴任何星球設定檔。
func Classify(w http.ResponseWriter, r *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type ClassifyResponse struct {
		Event   string      `json:"event"`
		Class   event.Class `json:"class"`
		IsKnown bool        `json:"is_known"`
	}
	// ---
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("event"))
	if id == "" {
		httperr.Errs(w, errs.NewWarn("event is required"))
		return
	}

	resp := ClassifyResponse{
		Event:   id,
		Class:   event.Classify(id),
		IsKnown: !event.IsUnknown(id),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
