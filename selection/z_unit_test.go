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

package selection_test

import (
	"testing"

	"github.com/zintix-labs/expedlab/selection"
	"github.com/zintix-labs/expedlab/spec"
)

func planet(t *testing.T) *spec.PlanetSetting {
	t.Helper()
	ps, err := spec.GetPlanetSettingByYAML([]byte(`
planet_id: 1
planet_name: test
sector_settings:
  - {sector_type: FOREST,  max_per_planet: 25, weights: {HARVEST_1: 1}}
  - {sector_type: CAVE,    max_per_planet: 2,  weights: {ACCIDENT_3_5: 1}}
  - {sector_type: LANDING, max_per_planet: 1,  is_special: true, weights: {NOTHING_TO_REPORT: 1}}
  - {sector_type: LOST,    max_per_planet: 1,  is_special: true, weights: {FIND_LOST: 1}}
`))
	if err != nil {
		t.Fatalf("planet setting: %v", err)
	}
	return ps
}

func TestValidateAddTotalLimit(t *testing.T) {
	ps := planet(t)
	cur := make(selection.Selection, 0, 20)
	for i := 0; i < 20; i++ {
		cur = append(cur, "FOREST")
	}

	res := selection.ValidateAdd("FOREST", cur, ps)
	if res.IsValid {
		t.Fatal("21st non-special sector must be rejected")
	}
	if res.CurrentTotal != 20 || res.MaxTotal != 20 {
		t.Fatalf("totals = %d/%d, want 20/20", res.CurrentTotal, res.MaxTotal)
	}
	if res.Message == "" {
		t.Fatal("message must be populated on failure")
	}

	// special sectors are exempt from the total gate
	for _, ty := range []spec.SectorType{spec.SectorLanding, spec.SectorLost} {
		if res := selection.ValidateAdd(ty, cur, ps); !res.IsValid {
			t.Fatalf("special %s must still be addable at full selection: %+v", ty, res)
		}
	}
}

func TestValidateAddPerTypeLimit(t *testing.T) {
	ps := planet(t)
	cur := selection.Selection{"CAVE", "CAVE", "FOREST"}

	res := selection.ValidateAdd("CAVE", cur, ps)
	if res.IsValid {
		t.Fatal("CAVE beyond max_per_planet must fail")
	}
	if res.CurrentCount != 2 || res.MaxAllowed != 2 {
		t.Fatalf("counts = %d/%d, want 2/2", res.CurrentCount, res.MaxAllowed)
	}

	if res := selection.ValidateAdd("FOREST", cur, ps); !res.IsValid {
		t.Fatalf("FOREST should pass: %+v", res)
	}
	if res := selection.ValidateAdd("VOLCANO", cur, ps); res.IsValid {
		t.Fatal("unknown sector type must fail")
	}
}

func TestValidateAddSuccessHasNoMessage(t *testing.T) {
	ps := planet(t)
	res := selection.ValidateAdd("FOREST", nil, ps)
	if !res.IsValid || res.Message != "" {
		t.Fatalf("clean add: %+v", res)
	}
}

func TestUsageStats(t *testing.T) {
	ps := planet(t)
	cur := selection.Selection{"CAVE", "FOREST", "CAVE"}

	stats := selection.UsageStats(cur, ps)
	if len(stats) != 4 {
		t.Fatalf("got %d rows, want one per catalog type", len(stats))
	}
	byType := map[spec.SectorType]selection.Usage{}
	for _, u := range stats {
		byType[u.Type] = u
	}

	cave := byType["CAVE"]
	if cave.Current != 2 || cave.Remaining != 0 || !cave.IsAtLimit || cave.Percentage != 100 {
		t.Fatalf("CAVE usage = %+v", cave)
	}
	forest := byType["FOREST"]
	if forest.Current != 1 || forest.IsAtLimit || forest.Percentage != 4 {
		t.Fatalf("FOREST usage = %+v (1/25 rounds to 4%%)", forest)
	}
	landing := byType["LANDING"]
	if landing.Current != 0 || landing.Percentage != 0 {
		t.Fatalf("LANDING usage = %+v", landing)
	}
}
