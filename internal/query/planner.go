package query

import (
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Order struct {
	Column string
	Desc   bool
}

type Page struct {
	Limit  int64
	Offset int64
}

// Plan is the ordering and paging derived from a PageSpec. Nil parts are
// not applied.
type Plan struct {
	Order *Order
	Page  *Page
}

// BuildPlan validates spec against the registry. Sorting needs both sort and
// order, paging needs items and a range other than all.
func BuildPlan(spec PageSpec, registry *Registry) (Plan, error) {
	var plan Plan

	if spec.Sort != nil && spec.Order != nil {
		column, ok := registry.Column(*spec.Sort)
		if !ok {
			return Plan{}, &InvalidColumnError{Column: *spec.Sort}
		}
		plan.Order = &Order{Column: column, Desc: *spec.Order == Desc}
	}

	if spec.Items != nil && spec.Range.Kind != KindAll {
		page, err := pageFor(spec.Range, *spec.Items)
		if err != nil {
			return Plan{}, err
		}
		plan.Page = page
	}
	return plan, nil
}

func pageFor(r PageRange, items int64) (*Page, error) {
	pages := int64(1)
	if r.Kind == KindRange && r.End > r.Start {
		span, ok := sub(r.End, r.Start)
		if !ok {
			return nil, ErrPageOutOfBounds
		}
		if pages, ok = add(span, 1); !ok {
			return nil, ErrPageOutOfBounds
		}
	}
	limit, ok := mul(items, pages)
	if !ok {
		return nil, ErrPageOutOfBounds
	}
	var offset int64
	if r.Start > 0 {
		if offset, ok = mul(items, r.Start); !ok {
			return nil, ErrPageOutOfBounds
		}
	}
	return &Page{Limit: limit, Offset: offset}, nil
}

// Apply adds ORDER BY and then LIMIT/OFFSET to db. A zero offset is omitted.
func (p Plan) Apply(db *gorm.DB) *gorm.DB {
	if p.Order != nil {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: p.Order.Column},
			Desc:   p.Order.Desc,
		})
	}
	if p.Page != nil {
		db = db.Limit(int(p.Page.Limit))
		if p.Page.Offset > 0 {
			db = db.Offset(int(p.Page.Offset))
		}
	}
	return db
}

func add(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt-b {
		return 0, false
	}
	return a + b, true
}

func sub(a, b int64) (int64, bool) {
	if b < 0 && a > math.MaxInt+b {
		return 0, false
	}
	if b > 0 && a < math.MinInt+b {
		return 0, false
	}
	return a - b, true
}

// mul reports false when a*b overflows or does not fit in an int.
func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a < 0 || b < 0 {
		return 0, false
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}
