// Package catalog implements the product catalog queries and guarded product
// mutations: filtered/sorted/paginated listings, product detail with owner
// resolution, the seller order rollup, stock edits and rating upserts.
package catalog

import (
	"errors"
)

// PageSize is the fixed listing page size.
const PageSize = 10

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("unauthorized")
	ErrValue          = errors.New("value error")
	ErrUnknownMode    = errors.New("unknown stock mode")
	ErrUnlimitedStock = errors.New("cannot edit, only set")
	ErrNotEligible    = errors.New("cannot rate product")
)

// rateExpr derives the displayed rating from the persisted aggregates. The
// derived value is never stored on the row.
const rateExpr = "CASE WHEN total_rating_count = 0 THEN 0 ELSE total_rating * 1.0 / total_rating_count END"
