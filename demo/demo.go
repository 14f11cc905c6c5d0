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

// Package demo 提供內嵌的展示行星設定與最短組裝路徑，
// 讓使用者 import 後立即可跑（cmd/svr、cmd/scan 也用它）。
package demo

import (
	"github.com/zintix-labs/expedlab"
	"github.com/zintix-labs/expedlab/catalog"
	"github.com/zintix-labs/expedlab/demo/demo_configs"
	"github.com/zintix-labs/expedlab/effect"
	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/server/logger"
	"github.com/zintix-labs/expedlab/server/svrcfg"
)

func New() (*catalog.Catalog, error) {
	return catalog.New(demo_configs.FS)
}

func NewServerConfig() (*svrcfg.SvrCfg, error) {
	lab, err := NewExpedLab()
	if err != nil {
		return nil, errs.NewFatal("new expedlab failed:" + err.Error())
	}
	scfg := &svrcfg.SvrCfg{
		Log:      logger.NewDefaultAsyncLogger(logger.ModeDev),
		Expedlab: lab,
	}
	return scfg, nil
}

func NewExpedLab() (*expedlab.Expedlab, error) {
	return expedlab.NewAuto(
		expedlab.Configs(demo_configs.FS),
		expedlab.Effects(effect.Builtin()),
	)
}
