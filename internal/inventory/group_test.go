package inventory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupingCaseInsensitive(t *testing.T) {
	cars := []Car{
		{ID: 1, Make: "Toyota", Model: "Aqua", Package: "G"},
		{ID: 2, Make: "toyota", Model: "aqua", Package: "g"},
	}
	groups := GroupByProductLine(cars)
	require.Len(t, groups, 1)
	require.Equal(t, []int64{1, 2}, groups[0].MemberIDs)
	require.Equal(t, "Toyota Aqua - G (2 cars)", groups[0].Label())
}

func TestGroupingEveryCarInExactlyOneGroup(t *testing.T) {
	cars := []Car{
		{ID: 1, Make: "Toyota", Model: "Aqua", Package: "G"},
		{ID: 2, Make: "Toyota", Model: "Aqua", Package: "S"},
		{ID: 3, Make: "Toyota", Model: "Axio"},
		{ID: 4, Make: "toyota", Model: "AXIO"},
		{ID: 5, Make: "Honda", Model: "Vezel"},
	}
	groups := GroupByProductLine(cars)
	require.Len(t, groups, 4)

	seen := map[int64]int{}
	for _, g := range groups {
		for _, id := range g.MemberIDs {
			seen[id]++
		}
	}
	require.Len(t, seen, len(cars))
	for id, n := range seen {
		require.Equal(t, 1, n, "car %d", id)
	}
}

func TestLabelWithoutPackageAndSingleMember(t *testing.T) {
	g := GroupByProductLine([]Car{{ID: 7, Make: "Honda", Model: "Vezel"}})[0]
	require.Equal(t, "Honda Vezel", g.Label())
}

func TestResolveGroupFindsExisting(t *testing.T) {
	cars := []Car{
		{ID: 1, Make: "Toyota", Model: "Aqua", Package: "G"},
		{ID: 2, Make: "TOYOTA", Model: "AQUA", Package: "g"},
	}
	groups := GroupByProductLine(cars)
	got := ResolveGroup(groups, Car{ID: 2, Make: "TOYOTA", Model: "AQUA", Package: "g"})
	require.Equal(t, []int64{1, 2}, got.MemberIDs)
}

func TestResolveGroupFallsBackToSingleRecord(t *testing.T) {
	groups := GroupByProductLine([]Car{{ID: 1, Make: "Toyota", Model: "Aqua"}})
	orphan := Car{ID: 42, Make: "Suzuki", Model: "Swift"}
	got := ResolveGroup(groups, orphan)
	require.Equal(t, []int64{42}, got.MemberIDs)
	require.Equal(t, orphan, got.Representative)
}
