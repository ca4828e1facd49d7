package catalog

import (
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
)

// Sort keys accepted by listings. Anything else falls back to SortRateDesc.
const (
	SortPriceDesc = "PHTL"
	SortPriceAsc  = "PLTH"
	SortRateDesc  = "RHTL"
	SortRateAsc   = "RLTH"
)

// ListQuery is the canonical form of a listing request: free-text search,
// category intersection, sort key and zero-based page.
type ListQuery struct {
	Search     string
	Categories []string
	Order      string
	Page       int
}

// ParseListQuery builds a ListQuery from raw query parameters, mirroring the
// lenient parsing of the public listing endpoint: a non-numeric or negative
// page becomes 0 and an unrecognized sort key falls back to the default.
func ParseListQuery(search, order, page string, categories []string) ListQuery {
	q := ListQuery{
		Search:     search,
		Categories: categories,
		Order:      normalizeOrder(order),
	}
	if p, err := strconv.Atoi(page); err == nil && p > 0 {
		q.Page = p
	}
	return q
}

func normalizeOrder(order string) string {
	switch order {
	case SortPriceDesc, SortPriceAsc, SortRateDesc, SortRateAsc:
		return order
	default:
		return SortRateDesc
	}
}

// escapeLike neutralizes LIKE metacharacters so user input can only ever
// match as a literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// orderClause translates the sort key into SQL. Ties are broken by id so
// pagination is stable across pages.
func (q ListQuery) orderClause() string {
	switch q.Order {
	case SortPriceDesc:
		return "price DESC, id"
	case SortPriceAsc:
		return "price ASC, id"
	case SortRateAsc:
		return "rate ASC, id"
	default:
		return "rate DESC, id"
	}
}

// apply attaches the filter predicate (name substring, category intersection)
// to a products query.
func (q ListQuery) apply(db *gorm.DB) *gorm.DB {
	tx := db.Model(&models.Product{})
	if q.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}
	if len(q.Categories) > 0 {
		tx = tx.Where(
			"id IN (SELECT product_id FROM product_categories WHERE category IN ?)",
			q.Categories,
		)
	}
	return tx
}

// List returns one page of matching products together with the total match
// count. The count is computed independently of pagination; zero matches is a
// normal result, not an error.
func List(db *gorm.DB, q ListQuery) ([]models.Product, int64, error) {
	var count int64
	if err := q.apply(db).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	products := []models.Product{}
	err := q.apply(db).
		Select("*, " + rateExpr + " AS rate").
		Order(q.orderClause()).
		Offset(q.Page * PageSize).
		Limit(PageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}
