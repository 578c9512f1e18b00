// Package condition holds the structured result of parsing a query: a tree of ValuesGroup
// nodes with one ValuesBag per field, and an optional SearchOrder.
package condition

import (
	clone "github.com/huandu/go-clone"
)

// SearchCondition is a parsed query.
type SearchCondition struct {
	Values *ValuesGroup `json:"values"`
	Order  *SearchOrder `json:"order,omitempty"`
}

// NewSearchCondition returns a condition; a nil values group becomes an empty AND group.
func NewSearchCondition(values *ValuesGroup, order *SearchOrder) *SearchCondition {
	if values == nil {
		values = NewValuesGroup(LogicalAnd)
	}

	if order != nil && order.Len() == 0 {
		order = nil
	}

	return &SearchCondition{Values: values, Order: order}
}

// IsEmpty reports whether the condition has neither values nor order.
func (cond *SearchCondition) IsEmpty() bool {
	return cond.Values.IsEmpty() && cond.Order.Len() == 0
}

// Clone returns a deep copy.
func (cond *SearchCondition) Clone() *SearchCondition {
	return clone.Clone(cond).(*SearchCondition)
}
