package types

import (
	"github.com/samber/lo"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
)

const (
	filterDefaultLimit = 50
	filterMaxLimit     = 1000
)

// SortOrder is the direction of a sort condition
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// QueryFilter contains pagination and ordering parameters shared by all
// list operations. Structured filters are translated by the store layer
// into parameterized statements; queries are never assembled from raw
// strings.
type QueryFilter struct {
	Limit  *int      `json:"limit,omitempty" form:"limit"`
	Offset *int      `json:"offset,omitempty" form:"offset"`
	Sort   *string   `json:"sort,omitempty" form:"sort"`
	Order  SortOrder `json:"order,omitempty" form:"order"`
}

// NewDefaultQueryFilter returns a filter with sane pagination defaults
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(filterDefaultLimit),
		Offset: lo.ToPtr(0),
		Sort:   lo.ToPtr("created_at"),
		Order:  SortOrderDesc,
	}
}

// NewNoLimitQueryFilter returns a filter without pagination, for internal
// scans
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Sort:  lo.ToPtr("created_at"),
		Order: SortOrderDesc,
	}
}

// Validate checks the pagination parameters
func (f *QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit < 0 || *f.Limit > filterMaxLimit) {
		return ierr.NewErrorf("limit must be between 0 and %d", filterMaxLimit).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must not be negative").
			Mark(ierr.ErrValidation)
	}
	if f.Order != "" && f.Order != SortOrderAsc && f.Order != SortOrderDesc {
		return ierr.NewError("order must be asc or desc").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit implements the BaseFilter interface
func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return 0
	}
	return *f.Limit
}

// GetOffset implements the BaseFilter interface
func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// GetSort returns the sort column, defaulting to created_at
func (f *QueryFilter) GetSort() string {
	if f == nil || f.Sort == nil || *f.Sort == "" {
		return "created_at"
	}
	return *f.Sort
}

// GetOrder returns the sort order, defaulting to desc
func (f *QueryFilter) GetOrder() SortOrder {
	if f == nil || f.Order == "" {
		return SortOrderDesc
	}
	return f.Order
}
