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

package catalog_test

import (
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/expedlab/catalog"
	"github.com/zintix-labs/expedlab/spec"
)

func planetYAML(id int, name string) []byte {
	return []byte(`
planet_id: ` + string(rune('0'+id)) + `
planet_name: ` + name + `
sector_settings:
  - {sector_type: FOREST, max_per_planet: 5, weights: {HARVEST_1: 1, AGAIN: 1}}
`)
}

func TestRegisterAllAndLoad(t *testing.T) {
	src := fstest.MapFS{
		"alpha.yaml": {Data: planetYAML(1, "alpha")},
		"beta.yaml":  {Data: planetYAML(2, "beta")},
		"notes.txt":  {Data: []byte("ignored")},
	}
	c, err := catalog.New(src)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.RegisterAll(); err != nil {
		t.Fatalf("register all: %v", err)
	}
	if got := len(c.All()); got != 2 {
		t.Fatalf("entries = %d, want 2 (txt must be ignored)", got)
	}
	ps, err := c.PlanetSettingByID(spec.PID(1))
	if err != nil {
		t.Fatalf("load by id: %v", err)
	}
	if ps.PlanetName != "alpha" {
		t.Fatalf("name = %q", ps.PlanetName)
	}
	if _, err := c.PlanetSettingByName("BETA"); err != nil {
		t.Fatalf("lookup is case-insensitive: %v", err)
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	src := fstest.MapFS{
		"a.yaml": {Data: planetYAML(1, "a")},
		"b.yaml": {Data: planetYAML(1, "b")},
	}
	c, err := catalog.New(src)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.RegisterAll(); err == nil {
		t.Fatal("duplicate planet id across configs must fail")
	}
	// atomic: nothing was registered
	if len(c.All()) != 0 {
		t.Fatalf("catalog must stay empty after failed batch, got %d", len(c.All()))
	}
}

func TestFrozenCatalogRejectsRegister(t *testing.T) {
	src := fstest.MapFS{"a.yaml": {Data: planetYAML(1, "a")}}
	c, _ := catalog.New(src)
	if err := c.RegisterAll(); err != nil {
		t.Fatalf("register all: %v", err)
	}
	c.Freeze()
	if !c.IsFrozen() {
		t.Fatal("freeze flag lost")
	}
	if err := c.Register(catalog.Entry{PID: 9, Name: "x", ConfigName: "a.yaml"}); err == nil {
		t.Fatal("frozen catalog must reject register")
	}
}

func TestFlatFSContract(t *testing.T) {
	src := fstest.MapFS{
		"sub/a.yaml": {Data: planetYAML(1, "a")},
	}
	if _, err := catalog.New(src); err == nil {
		t.Fatal("subdirectories must violate the flat-FS contract")
	}
}
