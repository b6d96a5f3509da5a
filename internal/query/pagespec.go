package query

import (
	"net/url"
	"strconv"
	"strings"
)

const DefaultItemCount int64 = 20

type RangeKind int

const (
	KindAll RangeKind = iota
	KindSingle
	KindRange
)

// PageRange selects all rows, a single page, or an inclusive span of pages.
// Single pages use Start only.
type PageRange struct {
	Kind  RangeKind
	Start int64
	End   int64
}

func All() PageRange { return PageRange{Kind: KindAll} }
func Single(i int64) PageRange { return PageRange{Kind: KindSingle, Start: i} }
func Range(start, end int64) PageRange { return PageRange{Kind: KindRange, Start: start, End: end} }

func (r PageRange) String() string {
	switch r.Kind {
	case KindSingle:
		return strconv.FormatInt(r.Start, 10)
	case KindRange:
		return strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10)
	}
	return "all"
}

// ParsePageRange accepts "all", "<i>" or "<start>-<end>". The string is split
// at the first '-', so a negative single page such as "-3" is rejected.
func ParsePageRange(s string) (PageRange, error) {
	if s == "all" {
		return All(), nil
	}
	if left, right, ok := strings.Cut(s, "-"); ok {
		start, err1 := strconv.ParseInt(left, 10, 64)
		end, err2 := strconv.ParseInt(right, 10, 64)
		if err1 != nil || err2 != nil {
			return PageRange{}, ErrInvalidPageRange
		}
		return Range(start, end), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return PageRange{}, ErrInvalidPageRange
	}
	return Single(i), nil
}

type SortOrder int

const (
	Asc SortOrder = iota
	Desc
)

func (o SortOrder) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, ErrInvalidSortOrder
}

type PageSpec struct {
	Range PageRange
	Items *int64
	Sort  *string
	Order *SortOrder
}

// ParsePageSpec reads range, items, sort and order from query parameters.
// A present but malformed or negative items value falls back to
// DefaultItemCount.
func ParsePageSpec(values url.Values) (PageSpec, error) {
	rng, err := ParsePageRange(values.Get("range"))
	if err != nil {
		return PageSpec{}, err
	}
	spec := PageSpec{Range: rng}

	if values.Has("items") {
		items, err := strconv.ParseInt(values.Get("items"), 10, 64)
		if err != nil || items < 0 {
			items = DefaultItemCount
		}
		spec.Items = &items
	}
	if values.Has("sort") {
		sort := values.Get("sort")
		spec.Sort = &sort
	}
	if values.Has("order") {
		order, err := ParseSortOrder(values.Get("order"))
		if err != nil {
			return PageSpec{}, err
		}
		spec.Order = &order
	}
	return spec, nil
}
