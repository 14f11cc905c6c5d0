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

// Package catalog 管理星球設定目錄（Single Source of Truth / SSOT）。
//
// 目錄不綁定任何「檔案路徑」概念：設定檔來源一律以 fs.FS 注入
// （go:embed、os.DirFS、或自組 multi-source 皆可），並以 ConfigName
// （檔名）取得內容。ID/Name/檔名 的唯一性只保證在同一個目錄實例內。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/expedlab/errs"
	"github.com/zintix-labs/expedlab/spec"
)

var (
	ErrDupID   = errs.NewFatal("duplicate planet id")
	ErrDupName = errs.NewFatal("duplicate planet name")
)

// Entry 目錄中的一顆星球
type Entry struct {
	PID        spec.PID
	Name       string
	ConfigName string
}

// Summary 對外的目錄摘要（顯示層列表用）
type Summary struct {
	PID        spec.PID          `json:"pid"`
	Name       string            `json:"name"`
	MaxSectors int               `json:"max_sectors"`
	Sectors    []spec.SectorType `json:"sectors"`
}

// Catalog 星球目錄
type Catalog struct {
	byID   map[spec.PID]Entry
	byName map[string]Entry
	ids    []spec.PID          // 用來穩定排序
	unique map[string]struct{} // 一組星球，檔名需唯一
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	multFS, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byID:   map[spec.PID]Entry{},
		byName: map[string]Entry{},
		ids:    make([]spec.PID, 0, 16),
		unique: map[string]struct{}{},
		config: multFS,
	}, nil
}

// Register 批次註冊星球。
// 先對整批做重複/存在性檢查，全部通過才寫入（原子性：不會註冊到一半）。
func (c *Catalog) Register(metas ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenID := map[spec.PID]struct{}{}
	seenName := map[string]struct{}{}
	seenCfg := map[string]struct{}{}
	for i := range metas {
		meta := &metas[i]
		meta.Name = strings.ToLower(strings.TrimSpace(meta.Name))
		if meta.Name == "" {
			return errs.NewFatal("planet name required")
		}
		if err := validFileName(meta.ConfigName); err != nil {
			return err
		}
		if _, ok := c.config.index[meta.ConfigName]; !ok {
			return errs.Fatalf("config file not found: %s", meta.ConfigName)
		}
		if _, ok := c.byID[meta.PID]; ok {
			return ErrDupID
		}
		if _, ok := seenID[meta.PID]; ok {
			return ErrDupID
		}
		if _, ok := c.byName[meta.Name]; ok {
			return ErrDupName
		}
		if _, ok := seenName[meta.Name]; ok {
			return ErrDupName
		}
		if _, ok := c.unique[meta.ConfigName]; ok {
			return errs.Fatalf("duplicate config name: %s", meta.ConfigName)
		}
		if _, ok := seenCfg[meta.ConfigName]; ok {
			return errs.Fatalf("duplicate config name: %s", meta.ConfigName)
		}
		seenID[meta.PID] = struct{}{}
		seenName[meta.Name] = struct{}{}
		seenCfg[meta.ConfigName] = struct{}{}
	}
	for _, meta := range metas {
		meta.Name = strings.ToLower(strings.TrimSpace(meta.Name))
		c.unique[meta.ConfigName] = struct{}{}
		c.byID[meta.PID] = meta
		c.byName[meta.Name] = meta
		c.ids = append(c.ids, meta.PID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return nil
}

// RegisterAll 掃描所有設定檔來源，把可辨識的設定檔（.yaml/.yml/.json）
// 解析成 *spec.PlanetSetting，並以檔內宣告的 PlanetID/PlanetName 批次註冊。
//
// 行為特性：
//  1. Fail-fast：任何一個檔案讀取/解析失敗立即回傳 error。
//  2. 原子性：全部成功才 Register 一次性寫入。
//  3. 穩定性：依檔名排序後處理，確保 determinism。
func (c *Catalog) RegisterAll() error {
	names := make([]string, 0, len(c.config.index))
	for name := range c.config.index {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return errs.NewFatal("no config files found")
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		src, _ := c.config.GetFS(name)
		raw, err := fs.ReadFile(src, name)
		if err != nil {
			return errs.Wrap(err, fmt.Sprintf("read config %s", name))
		}
		ps, err := parsePlanetSettingByExt(name, raw)
		if err != nil {
			return errs.Wrap(err, fmt.Sprintf("parse config %s", name))
		}
		entries = append(entries, Entry{
			PID:        ps.PlanetID,
			Name:       ps.PlanetName,
			ConfigName: name,
		})
	}
	return c.Register(entries...)
}

func (c *Catalog) GetByID(id spec.PID) (Entry, bool) {
	m, ok := c.byID[id]
	return m, ok
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	m, ok := c.byName[name]
	return m, ok
}

func (c *Catalog) IDs() []spec.PID {
	if len(c.ids) == 0 {
		return nil
	}
	return append([]spec.PID(nil), c.ids...)
}

func (c *Catalog) All() []Entry {
	m := make([]Entry, 0, len(c.ids))
	for _, id := range c.IDs() {
		if meta, ok := c.GetByID(id); ok {
			m = append(m, meta)
		}
	}
	return m
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

// PlanetSettingByID
//
// 會讀取 fs.FS 中的 YAML/JSON 設定、初始化各子設定並執行基本檢查後回傳
func (c *Catalog) PlanetSettingByID(id spec.PID) (*spec.PlanetSetting, error) {
	e, ok := c.GetByID(id)
	if !ok {
		return nil, errs.NewWarn("id does not exist in catalog")
	}
	return c.load(e)
}

// PlanetSettingByName 同 PlanetSettingByID，但以名稱查找。
func (c *Catalog) PlanetSettingByName(name string) (*spec.PlanetSetting, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.NewWarn("name does not exist in catalog")
	}
	return c.load(e)
}

func (c *Catalog) load(e Entry) (*spec.PlanetSetting, error) {
	src, ok := c.config.GetFS(e.ConfigName)
	if !ok {
		return nil, errs.NewWarn("file name does not exist in catalog")
	}
	raw, err := fs.ReadFile(src, e.ConfigName)
	if err != nil {
		return nil, errs.Wrap(err, "catalog parse file error")
	}
	return parsePlanetSettingByExt(e.ConfigName, raw)
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	if strings.ContainsAny(file, `/\:`) {
		return errs.Fatalf("invalid config filename: %q (must be a basename)", file)
	}
	lower := strings.ToLower(file)
	if !(strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")) {
		return errs.Fatalf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file)
	}
	if strings.HasPrefix(file, ".") {
		return errs.Fatalf("invalid config filename: %q (cannot start with '.')", file)
	}
	return nil
}

func parsePlanetSettingByExt(filename string, raw []byte) (*spec.PlanetSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return spec.GetPlanetSettingByYAML(raw)
	case ".json":
		return spec.GetPlanetSettingByJSON(raw)
	default:
		return nil, errs.Fatalf("unsupported config format: %q", filename)
	}
}

// -----------------------------------------------------------------------------
//  multiFS：多來源扁平設定檔索引
// -----------------------------------------------------------------------------

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.Fatalf("fs[%d] is nil", i)
		}
	}

	m := &multiFS{
		src:   src,
		index: make(map[string]int, 64),
	}

	// eager validate: 建索引、抓跨來源重複
	for i := 0; i < len(src); i++ {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				// 設定檔目錄必須是扁平的，任何子目錄都是合約違規
				return errs.Fatalf("config FS must be flat (no subdirectories): %q", path)
			}
			lower := strings.ToLower(path)
			if !(strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.Fatalf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i)
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.src[i], true
}

func (m *multiFS) Sources() []fs.FS {
	return append([]fs.FS(nil), m.src...)
}
