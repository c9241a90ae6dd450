package stock

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/shared"
)

// Result is the page produced by QueryRows.
type Result struct {
	Items      []Row
	Pagination shared.Pagination
}

// QueryRows filters, sorts and paginates stock rows. Car-level predicates and
// sort fields use the "car." path prefix and resolve through the linked car;
// a missing car fails every car-dependent filter.
func QueryRows(rows []Row, p inventory.Params) Result {
	if p.PageSize <= 0 {
		p.PageSize = inventory.DefaultPageSize
	}

	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matches(row, p) {
			filtered = append(filtered, row)
		}
	}

	sortRows(filtered, p.SortField, p.SortDesc)

	pg := shared.NewPagination(p.Page, p.PageSize, len(filtered))
	from, to := pg.Bounds()
	return Result{Items: filtered[from:to], Pagination: pg}
}

func matches(row Row, p inventory.Params) bool {
	carFiltersActive := strings.TrimSpace(p.Search) != "" || p.Year != 0 ||
		p.Make != "" || p.Model != "" || p.Color != "" || p.Fuel != ""
	if row.Car == nil {
		return !carFiltersActive
	}
	return inventory.Matches(row.Car, p)
}

func sortValue(row Row, field string) (inventory.SortKey, bool) {
	if car, ok := strings.CutPrefix(field, "car."); ok {
		if row.Car == nil {
			return inventory.SortKey{}, false
		}
		return inventory.SortValue(row.Car, car)
	}
	switch field {
	case "quantity":
		return inventory.NumericKey(float64(row.Quantity)), true
	case "price":
		if row.Price == nil {
			return inventory.SortKey{}, false
		}
		f, _ := row.Price.Float64()
		return inventory.NumericKey(f), true
	case "status":
		return inventory.StringKey(string(row.Status)), row.Status != ""
	case "created_at":
		return inventory.NumericKey(float64(row.CreatedAt.UnixMilli())), !row.CreatedAt.IsZero()
	case "updated_at":
		return inventory.NumericKey(float64(row.UpdatedAt.UnixMilli())), !row.UpdatedAt.IsZero()
	default:
		return inventory.SortKey{}, false
	}
}

func sortRows(rows []Row, field string, desc bool) {
	if field == "" {
		return
	}
	coll := collate.New(language.English)
	sort.SliceStable(rows, func(i, j int) bool {
		ka, aok := sortValue(rows[i], field)
		kb, bok := sortValue(rows[j], field)
		return inventory.LessKeys(coll, ka, aok, kb, bok, desc)
	})
}
