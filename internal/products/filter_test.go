package products

import (
	"testing"

	"github.com/google/uuid"

	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

func sampleCatalog() []ProductResponse {
	return []ProductResponse{
		{ID: uuid.New(), Name: "City Tote", Category: enums.BagCategoryTote, Material: "Cork"},
		{ID: uuid.New(), Name: "Trail Pack", Category: enums.BagCategoryBackpack, Material: "Pinatex"},
		{ID: uuid.New(), Name: "Evening Clutch", Category: enums.BagCategoryClutches, Material: "Cork"},
		{ID: uuid.New(), Name: "Market Tote", Category: enums.BagCategoryTote, Material: "Recycled Canvas"},
	}
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	got := Filter(items, FilterParams{Category: "Tote"})
	if len(got) != 2 {
		t.Fatalf("expected 2 totes, got %d", len(got))
	}
	if got[0].Name != "City Tote" || got[1].Name != "Market Tote" {
		t.Fatalf("expected input order preserved, got %q then %q", got[0].Name, got[1].Name)
	}
}

func TestFilterByMaterialCaseInsensitive(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	got := Filter(items, FilterParams{Material: "cork"})
	if len(got) != 2 {
		t.Fatalf("expected 2 cork bags, got %d", len(got))
	}
}

func TestFilterCombined(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	got := Filter(items, FilterParams{Category: "Tote", Material: "Cork"})
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Name != "City Tote" {
		t.Fatalf("unexpected match %q", got[0].Name)
	}
}

func TestFilterAllMeansNoConstraint(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	got := Filter(items, FilterParams{Category: "All", Material: "ALL"})
	if len(got) != len(items) {
		t.Fatalf("expected full snapshot, got %d of %d", len(got), len(items))
	}

	if !(FilterParams{Category: "all"}).IsZero() {
		t.Fatal("expected params with only 'all' values to be zero")
	}
}

func TestFilterNoMatches(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	got := Filter(items, FilterParams{Category: "Tote", Material: "Pinatex"})
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	first := items[0].Name
	_ = Filter(items, FilterParams{Category: "Backpack"})
	if items[0].Name != first {
		t.Fatal("input slice was mutated")
	}
}

func TestMaterialsDistinctFirstSeen(t *testing.T) {
	t.Parallel()

	items := sampleCatalog()
	got := Materials(items)
	want := []string{"Cork", "Pinatex", "Recycled Canvas"}
	if len(got) != len(want) {
		t.Fatalf("expected %d materials, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
