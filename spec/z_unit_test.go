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

package spec_test

import (
	"testing"

	"github.com/zintix-labs/expedlab/spec"
)

const demoYAML = `
planet_id: 7
planet_name: otarie
sector_settings:
  - sector_type: forest
    max_per_planet: 5
    weights:
      HARVEST_1: 3
      FIGHT_8: 2
      AGAIN: 1
  - sector_type: INTELLIGENT
    max_per_planet: 1
    weights:
      ARTEFACT: 1
      FIGHT_15: 2
  - sector_type: LANDING
    is_special: true
    max_per_planet: 1
    weights:
      NOTHING_TO_REPORT: 1
`

func TestGetPlanetSettingByYAML(t *testing.T) {
	ps, err := spec.GetPlanetSettingByYAML([]byte(demoYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ps.PlanetID != 7 || ps.PlanetName != "otarie" {
		t.Fatalf("identity = %d %q", ps.PlanetID, ps.PlanetName)
	}
	if ps.MaxSectors != spec.DefaultMaxSectors {
		t.Fatalf("max_sectors default = %d, want %d", ps.MaxSectors, spec.DefaultMaxSectors)
	}
	// sector_type is normalized to upper case
	ss, ok := ps.Sector("FOREST")
	if !ok {
		t.Fatal("FOREST not found after normalization")
	}
	if ss.MaxPerPlanet != 5 || ss.IsSpecial {
		t.Fatalf("FOREST setting = %+v", ss)
	}
	// declaration order of weights survives the decode
	ents := ss.Weights.Entries()
	if ents[0].Event != "HARVEST_1" || ents[2].Event != "AGAIN" {
		t.Fatalf("weight order lost: %+v", ents)
	}
	landing, _ := ps.Sector(spec.SectorLanding)
	if !landing.IsSpecial {
		t.Fatal("LANDING must be special")
	}
}

func TestGetPlanetSettingByJSON(t *testing.T) {
	raw := []byte(`{
		"planet_id": 3, "planet_name": "polyphemus", "max_sectors": 20,
		"sector_settings": [
			{"sector_type": "DESERT", "max_per_planet": 2, "weights": {"TIRED_2": 1}}
		]
	}`)
	ps, err := spec.GetPlanetSettingByJSON(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := ps.Sector("DESERT"); !ok {
		t.Fatal("DESERT not decoded")
	}
}

func TestPlanetSettingValidation(t *testing.T) {
	bad := []string{
		// empty name
		"planet_id: 1\nsector_settings:\n  - {sector_type: A, max_per_planet: 1, weights: {X: 1}}\n",
		// no sectors
		"planet_id: 1\nplanet_name: x\n",
		// zero max_per_planet (usage stats divide by it)
		"planet_id: 1\nplanet_name: x\nsector_settings:\n  - {sector_type: A, max_per_planet: 0, weights: {X: 1}}\n",
		// duplicate sector type after normalization
		"planet_id: 1\nplanet_name: x\nsector_settings:\n  - {sector_type: a, max_per_planet: 1, weights: {X: 1}}\n  - {sector_type: A, max_per_planet: 1, weights: {X: 1}}\n",
		// negative weight
		"planet_id: 1\nplanet_name: x\nsector_settings:\n  - {sector_type: A, max_per_planet: 1, weights: {X: -2}}\n",
		// empty weight table
		"planet_id: 1\nplanet_name: x\nsector_settings:\n  - {sector_type: A, max_per_planet: 1, weights: {}}\n",
	}
	for i, src := range bad {
		if _, err := spec.GetPlanetSettingByYAML([]byte(src)); err == nil {
			t.Fatalf("case %d: expected validation failure", i)
		}
	}
}
