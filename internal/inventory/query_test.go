package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleCars() []Car {
	return []Car{
		{ID: 1, Make: "Toyota", Model: "Aqua", Year: 2019, Package: "G", Color: "Pearl", Fuel: "Hybrid", ReferenceNo: "F24TCR.AB12-01", Price: price("1650000")},
		{ID: 2, Make: "Toyota", Model: "Axio", Year: 2017, Color: "Silver", Fuel: "Petrol", ReferenceNo: "F23TCR.CD34-02", Price: price("1450000")},
		{ID: 3, Make: "Honda", Model: "Vezel", Year: 2018, Color: "Black", Fuel: "Hybrid", ReferenceNo: "F23TCR.EF56-03"},
		{ID: 4, Make: "Nissan", Model: "Note", Year: 2019, Color: "pearl", Fuel: "petrol", ReferenceNo: "F24TCR.GH78-04", Price: price("1200000")},
	}
}

func TestFilterIdempotent(t *testing.T) {
	cars := sampleCars()
	p := Params{Fuel: "hybrid"}
	once := Filter(cars, p)
	twice := Filter(once, p)
	require.Equal(t, once, twice)
	require.Len(t, once, 2)
}

func TestFiltersAreANDComposed(t *testing.T) {
	cars := sampleCars()
	got := Filter(cars, Params{Fuel: "Hybrid", Year: 2019})
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
}

func TestSearchMatchesReferenceNumberOnly(t *testing.T) {
	cars := sampleCars()
	got := Filter(cars, Params{Search: "ef56"})
	require.Len(t, got, 1)
	require.Equal(t, "F23TCR.EF56-03", got[0].ReferenceNo)
}

func TestSearchCaseInsensitiveAnyField(t *testing.T) {
	cars := sampleCars()
	require.Len(t, Filter(cars, Params{Search: "TOYOTA"}), 2)
	require.Len(t, Filter(cars, Params{Search: "2018"}), 1)
	require.Len(t, Filter(cars, Params{Search: "no-such"}), 0)
}

func TestColorFilterCaseInsensitive(t *testing.T) {
	cars := sampleCars()
	require.Len(t, Filter(cars, Params{Color: "PEARL"}), 2)
}

func TestMakeModelFilterMatchesCollapsedOptionCasing(t *testing.T) {
	cars := []Car{
		{ID: 1, Make: "Toyota", Model: "Aqua"},
		{ID: 2, Make: "toyota", Model: "AQUA"},
	}
	// The dropdown offers the first-seen casing only; selecting it must still
	// match the other-cased records.
	opts := Options(cars)
	require.Equal(t, []string{"Toyota"}, opts.Makes)
	require.Len(t, Filter(cars, Params{Make: opts.Makes[0]}), 2)
	require.Len(t, Filter(cars, Params{Model: "Aqua"}), 2)
}

func TestSortNullsAlwaysLast(t *testing.T) {
	cars := sampleCars()

	SortCars(cars, "price", false)
	require.Equal(t, int64(3), cars[len(cars)-1].ID, "nil price must sort last ascending")

	SortCars(cars, "price", true)
	require.Equal(t, int64(3), cars[len(cars)-1].ID, "nil price must sort last descending")
	require.Equal(t, int64(1), cars[0].ID)
}

func TestSortReversalReversesNonNull(t *testing.T) {
	cars := []Car{
		{ID: 1, Make: "Toyota", Model: "Aqua", Year: 2019},
		{ID: 2, Make: "Toyota", Model: "Axio", Year: 2017},
		{ID: 3, Make: "Honda", Model: "Vezel", Year: 2018},
		{ID: 4, Make: "Nissan", Model: "Note", Year: 2021},
	}

	SortCars(cars, "year", false)
	asc := make([]int64, 0, len(cars))
	for _, c := range cars {
		asc = append(asc, c.ID)
	}
	require.Equal(t, []int64{2, 3, 1, 4}, asc)

	SortCars(cars, "year", true)
	desc := make([]int64, 0, len(cars))
	for _, c := range cars {
		desc = append(desc, c.ID)
	}
	require.Equal(t, []int64{4, 1, 3, 2}, desc)
}

func TestSortTiedKeysKeepEncounterOrder(t *testing.T) {
	cars := []Car{
		{ID: 1, Make: "Toyota", Model: "Aqua", Year: 2019},
		{ID: 2, Make: "Toyota", Model: "Axio", Year: 2017},
		{ID: 3, Make: "Nissan", Model: "Note", Year: 2019},
	}
	// Tied keys compare equal, so the stable sort keeps them in encounter
	// order in either direction.
	SortCars(cars, "year", false)
	require.Equal(t, []int64{2, 1, 3}, []int64{cars[0].ID, cars[1].ID, cars[2].ID})

	SortCars(cars, "year", true)
	require.Equal(t, []int64{1, 3, 2}, []int64{cars[0].ID, cars[1].ID, cars[2].ID})
}

func TestSortBothMissingStable(t *testing.T) {
	cars := []Car{
		{ID: 1, Make: "A"},
		{ID: 2, Make: "B"},
		{ID: 3, Make: "C", Price: price("10")},
	}
	SortCars(cars, "price", false)
	require.Equal(t, []int64{3, 1, 2}, []int64{cars[0].ID, cars[1].ID, cars[2].ID})
}

func TestPaginationReconstruction(t *testing.T) {
	cars := make([]Car, 0, 25)
	for i := 1; i <= 25; i++ {
		cars = append(cars, Car{ID: int64(i), Make: "Toyota", Model: "Aqua", Year: 2000 + i})
	}

	var all []int64
	for page := 1; page <= 3; page++ {
		res := Query(cars, Params{Page: page, PageSize: 10})
		require.Equal(t, 3, res.Pagination.TotalPages)
		require.Equal(t, 25, res.Pagination.Total)
		for _, c := range res.Items {
			all = append(all, c.ID)
		}
	}
	require.Len(t, all, 25)
	seen := map[int64]bool{}
	for _, id := range all {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestPageThreeOfTwentyFive(t *testing.T) {
	cars := make([]Car, 0, 25)
	for i := 1; i <= 25; i++ {
		cars = append(cars, Car{ID: int64(i), Make: "Toyota", Model: "Aqua", Year: 2020})
	}
	res := Query(cars, Params{Page: 3, PageSize: 10})
	require.Len(t, res.Items, 5)
	require.Equal(t, 3, res.Pagination.TotalPages)
}

func TestPageClampsInsteadOfFailing(t *testing.T) {
	cars := sampleCars()
	res := Query(cars, Params{Page: -4, PageSize: 10})
	require.Equal(t, 1, res.Pagination.Page)

	res = Query(cars, Params{Page: 99, PageSize: 10})
	require.Equal(t, res.Pagination.TotalPages, res.Pagination.Page)

	empty := Query(nil, Params{Page: 1, PageSize: 10})
	require.Equal(t, 1, empty.Pagination.TotalPages)
	require.Empty(t, empty.Items)
}

func TestOptionsDerivedFromUnfilteredSet(t *testing.T) {
	cars := sampleCars()
	res := Query(cars, Params{Make: "Honda"})
	require.Len(t, res.Items, 1)
	// Options still cover every make, not just the filtered subset.
	require.Equal(t, []string{"Honda", "Nissan", "Toyota"}, res.Options.Makes)
	require.Equal(t, []int{2019, 2018, 2017}, res.Options.Years)
	require.Equal(t, []string{"Hybrid", "Petrol"}, res.Options.Fuels)
	// Case variants collapse onto the first-seen casing.
	require.Equal(t, []string{"Black", "Pearl", "Silver"}, res.Options.Colors)
}

func TestMissingLinkedFieldsFailFilters(t *testing.T) {
	// A record with no chassis or reference data still matches when no
	// car-dependent filters are active, and fails the search otherwise.
	bare := []Car{{ID: 9}}
	require.Len(t, Filter(bare, Params{}), 1)
	require.Len(t, Filter(bare, Params{Search: "toyota"}), 0)
}
