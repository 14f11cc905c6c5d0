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

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	v1 "github.com/zintix-labs/expedlab/server/api/v1"
	"github.com/zintix-labs/expedlab/server/netsvr"
	"github.com/zintix-labs/expedlab/server/netsvr/middleware"
	"github.com/zintix-labs/expedlab/server/svrcfg"
)

// RegisterRoutes 註冊
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) {
	registerMiddleware(svr, sCfg.Log) // 1. 註冊 middleware
	registerIndex(svr)                // 2. 註冊主頁
	registerV1API(svr, sCfg)          // 3. 註冊 v1 api
}

// 註冊 middleware
func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}

// 註冊主頁
func registerIndex(svr netsvr.NetSvr) {
	svr.Get("/", indexHandlerFn)
}

// indexHandlerFn 回傳服務名稱與可用路由，當作最小的健康檢查頁。
func indexHandlerFn(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"service": "expedlab",
		"routes": []string{
			"GET  /v1/planets",
			"GET  /v1/estimate",
			"POST /v1/estimate",
			"POST /v1/validate",
			"POST /v1/usage",
			"GET  /v1/classify",
			"GET  /v1/distribution",
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	e, err := v1.NewEstimateHandler(sCfg.Expedlab)
	if err != nil {
		return err
	}
	s, err := v1.NewSelectHandler(sCfg.Expedlab)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/planets", e.Planets)
		vOne.Get("/estimate", e.Estimate)
		vOne.Get("/classify", v1.Classify)
		vOne.Get("/distribution", v1.Distribution)

		vOne.Post("/estimate", e.Estimate)
		vOne.Post("/validate", s.Validate)
		vOne.Post("/usage", s.Usage)
	})
	return nil
}
