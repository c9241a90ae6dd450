package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	pg := NewPagination(3, 10, 25)
	require.Equal(t, 3, pg.Page)
	require.Equal(t, 3, pg.TotalPages)
	require.Equal(t, 25, pg.Total)

	from, to := pg.Bounds()
	require.Equal(t, 20, from)
	require.Equal(t, 25, to)
}

func TestPaginationEmptyResultStillHasOnePage(t *testing.T) {
	pg := NewPagination(1, 10, 0)
	require.Equal(t, 1, pg.TotalPages)
	from, to := pg.Bounds()
	require.Equal(t, 0, from)
	require.Equal(t, 0, to)
}

func TestPaginationClampsPage(t *testing.T) {
	pg := NewPagination(99, 10, 25)
	require.Equal(t, 3, pg.Page)

	pg = NewPagination(-4, 10, 25)
	require.Equal(t, 1, pg.Page)
}
