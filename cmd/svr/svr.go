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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zintix-labs/expedlab"
	"github.com/zintix-labs/expedlab/demo"
	"github.com/zintix-labs/expedlab/effect"
	"github.com/zintix-labs/expedlab/server"
	"github.com/zintix-labs/expedlab/server/logger"
	"github.com/zintix-labs/expedlab/server/svrcfg"
)

// This command is intentionally a "lab server" entrypoint for the expedlab repo.
// It serves the embedded demo planets by default.
// For production deployments, use a separate scaffold project and run ModeProd.
func main() {
	cfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Println(err)
		return
	}
	server.Run(cfg)
}

type config struct {
	LogMode   string
	ConfigDir string
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.StringVar(&cfg.ConfigDir, "config", "", "planet config dir (default: embedded demo planets)")

	flag.Parse()

	log, _ := logger.NewAsync(4096, cfg.norm())

	lab, err := cfg.buildLab()
	if err != nil {
		return nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:      log,
		Expedlab: lab,
	}
	return sCfg, nil
}

// buildLab 依 -config 決定設定檔來源：目錄或內嵌 demo 行星。
func (cfg *config) buildLab() (*expedlab.Expedlab, error) {
	if cfg.ConfigDir == "" {
		return demo.NewExpedLab()
	}
	return expedlab.NewAuto(
		expedlab.Configs(os.DirFS(cfg.ConfigDir)),
		expedlab.Effects(effect.Builtin()),
	)
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
