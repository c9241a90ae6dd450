package inventory

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tcr-trading/backoffice/internal/shared"
)

// DefaultPageSize is the fixed page size used by the listing endpoints.
const DefaultPageSize = 10

// Params drives one evaluation of the query engine. Filters compose with
// logical AND; zero values switch the corresponding predicate off.
type Params struct {
	Search    string
	Year      int
	Make      string
	Model     string
	Color     string
	Fuel      string
	SortField string
	SortDesc  bool
	Page      int
	PageSize  int
}

// Result is the page produced by Query.
type Result struct {
	Items      []Car
	Pagination shared.Pagination
	Options    FilterOptions
}

// FilterOptions holds the distinct value sets offered by the filter
// dropdowns. They are always derived from the unfiltered collection.
type FilterOptions struct {
	Years  []int    `json:"years"`
	Makes  []string `json:"makes"`
	Models []string `json:"models"`
	Colors []string `json:"colors"`
	Fuels  []string `json:"fuels"`
}

// Query filters, sorts and paginates the full in-memory collection. It is a
// pure function of its inputs; malformed page numbers clamp instead of
// erroring.
func Query(cars []Car, p Params) Result {
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}

	filtered := Filter(cars, p)
	SortCars(filtered, p.SortField, p.SortDesc)

	pg := shared.NewPagination(p.Page, p.PageSize, len(filtered))
	from, to := pg.Bounds()

	return Result{
		Items:      filtered[from:to],
		Pagination: pg,
		Options:    Options(cars),
	}
}

// Filter applies the AND-composed predicates and returns a fresh slice.
func Filter(cars []Car, p Params) []Car {
	out := make([]Car, 0, len(cars))
	for i := range cars {
		if Matches(&cars[i], p) {
			out = append(out, cars[i])
		}
	}
	return out
}

// Matches reports whether one car passes every active predicate.
func Matches(c *Car, p Params) bool {
	if term := strings.TrimSpace(p.Search); term != "" && !searchMatch(c, term) {
		return false
	}
	if p.Year != 0 && c.Year != p.Year {
		return false
	}
	if p.Make != "" && !strings.EqualFold(c.Make, p.Make) {
		return false
	}
	if p.Model != "" && !strings.EqualFold(c.Model, p.Model) {
		return false
	}
	if p.Color != "" && !strings.EqualFold(c.Color, p.Color) {
		return false
	}
	if p.Fuel != "" && !strings.EqualFold(c.Fuel, p.Fuel) {
		return false
	}
	return true
}

// searchMatch checks the free-text term against the fixed field set; a car
// matches when any field contains the term.
func searchMatch(c *Car, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{
		c.Make,
		c.Model,
		strconv.Itoa(c.Year),
		c.ChassisNo,
		c.ChassisNoMasked,
		c.ReferenceNo,
		c.Package,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// SortKey is a comparable projection of one sortable field. The stock,
// purchase and payment listings build their own keys for entry-level fields
// and delegate car-level fields here.
type SortKey struct {
	Str     string
	Num     float64
	Numeric bool
}

// StringKey builds a collated string sort key.
func StringKey(s string) SortKey { return SortKey{Str: s} }

// NumericKey builds a numeric sort key.
func NumericKey(f float64) SortKey { return SortKey{Num: f, Numeric: true} }

// SortValue resolves a sort field on a car. The second return value is false
// when the field is missing on this record; missing values always sort last.
func SortValue(c *Car, field string) (SortKey, bool) {
	switch field {
	case "make":
		return SortKey{Str: c.Make}, c.Make != ""
	case "model":
		return SortKey{Str: c.Model}, c.Model != ""
	case "package":
		return SortKey{Str: c.Package}, c.Package != ""
	case "color":
		return SortKey{Str: c.Color}, c.Color != ""
	case "fuel":
		return SortKey{Str: c.Fuel}, c.Fuel != ""
	case "status":
		return SortKey{Str: string(c.Status)}, c.Status != ""
	case "reference_no":
		return SortKey{Str: c.ReferenceNo}, c.ReferenceNo != ""
	case "chassis_no":
		return SortKey{Str: c.Chassis()}, c.Chassis() != ""
	case "year":
		return SortKey{Num: float64(c.Year), Numeric: true}, c.Year != 0
	case "mileage":
		return SortKey{Num: float64(c.Mileage), Numeric: true}, true
	case "engine_cc":
		return SortKey{Num: float64(c.EngineCC), Numeric: true}, true
	case "price":
		if c.Price == nil {
			return SortKey{Numeric: true}, false
		}
		f, _ := c.Price.Float64()
		return SortKey{Num: f, Numeric: true}, true
	case "created_at":
		return SortKey{Num: float64(c.CreatedAt.UnixMilli()), Numeric: true}, !c.CreatedAt.IsZero()
	case "updated_at":
		return SortKey{Num: float64(c.UpdatedAt.UnixMilli()), Numeric: true}, !c.UpdatedAt.IsZero()
	default:
		return SortKey{}, false
	}
}

// SortCars orders the slice in place by one field. Records whose sort value
// is missing land after every present value in either direction; two missing
// values compare equal, keeping the sort stable and total.
func SortCars(cars []Car, field string, desc bool) {
	if field == "" {
		return
	}
	coll := collate.New(language.English)
	sort.SliceStable(cars, func(i, j int) bool {
		ka, aok := SortValue(&cars[i], field)
		kb, bok := SortValue(&cars[j], field)
		return LessKeys(coll, ka, aok, kb, bok, desc)
	})
}

// LessKeys implements the shared comparison policy: missing values after
// every present value in either direction, two missing values equal.
func LessKeys(coll *collate.Collator, ka SortKey, aok bool, kb SortKey, bok, desc bool) bool {
	switch {
	case !aok && !bok:
		return false
	case !aok:
		return false
	case !bok:
		return true
	}
	cmp := compareKeys(coll, ka, kb)
	if desc {
		cmp = -cmp
	}
	return cmp < 0
}

func compareKeys(coll *collate.Collator, a, b SortKey) int {
	if a.Numeric || b.Numeric {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}
	return coll.CompareString(a.Str, b.Str)
}

// Options derives dropdown option sets from the unfiltered collection: years
// descending numeric, everything else ascending lexical. Values differing
// only in case collapse onto the first-seen casing, matching the
// case-insensitive filters.
func Options(cars []Car) FilterOptions {
	var opts FilterOptions
	years := map[int]struct{}{}
	seen := map[string]struct{}{}

	add := func(dst *[]string, kind, value string) {
		if value == "" {
			return
		}
		key := kind + ":" + strings.ToLower(value)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		*dst = append(*dst, value)
	}

	for i := range cars {
		c := &cars[i]
		if c.Year != 0 {
			years[c.Year] = struct{}{}
		}
		add(&opts.Makes, "make", c.Make)
		add(&opts.Models, "model", c.Model)
		add(&opts.Colors, "color", c.Color)
		add(&opts.Fuels, "fuel", c.Fuel)
	}

	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))

	coll := collate.New(language.English)
	for _, list := range [][]string{opts.Makes, opts.Models, opts.Colors, opts.Fuels} {
		coll.SortStrings(list)
	}
	return opts
}
