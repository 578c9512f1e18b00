package condition

import (
	clone "github.com/huandu/go-clone"
)

// Builder constructs a SearchCondition fluently:
//
//	cond := condition.NewBuilder(condition.LogicalAnd).
//		Field("name").SimpleValue("foo").End().
//		Group(condition.LogicalOr).
//			Field("age").Compare(">", "18").End().
//		End().
//		Order("@id", condition.DirectionDesc).
//		SearchCondition()
type Builder struct {
	group  *ValuesGroup
	parent *Builder
	order  *SearchOrder
}

// NewBuilder returns a builder for a root group with the given logical.
func NewBuilder(logical Logical) *Builder {
	return &Builder{
		group: NewValuesGroup(logical),
		order: NewSearchOrder(),
	}
}

// Extend returns a builder that starts from a copy of cond.
func Extend(cond *SearchCondition) *Builder {
	cond = cond.Clone()

	order := cond.Order
	if order == nil {
		order = NewSearchOrder()
	}

	return &Builder{group: cond.Values, order: order}
}

// Group adds a subgroup and returns its builder. End returns to the parent.
func (b *Builder) Group(logical Logical) *Builder {
	sub := &Builder{group: NewValuesGroup(logical), parent: b}
	b.group.AddGroup(sub.group)

	return sub
}

// Field returns a builder for the values of name, appending to the existing values when the
// field was already added to this group.
func (b *Builder) Field(name string) *BagBuilder {
	bag, ok := b.group.Field(name)
	if !ok {
		bag = NewValuesBag()
		b.group.AddField(name, bag)
	}

	return &BagBuilder{bag: bag, builder: b}
}

// OverwriteField is Field but drops any values previously added for name.
func (b *Builder) OverwriteField(name string) *BagBuilder {
	bag := NewValuesBag()
	b.group.AddField(name, bag)

	return &BagBuilder{bag: bag, builder: b}
}

// Order sets the direction of an order field on the root condition.
func (b *Builder) Order(field string, dir Direction) *Builder {
	b.root().order.Set(field, dir)
	return b
}

// End returns the parent builder, or b itself at the root.
func (b *Builder) End() *Builder {
	if b.parent == nil {
		return b
	}

	return b.parent
}

// ValuesGroup returns the group under construction.
func (b *Builder) ValuesGroup() *ValuesGroup {
	return b.group
}

// SearchCondition returns a copy of the whole condition, whichever level b is at.
func (b *Builder) SearchCondition() *SearchCondition {
	root := b.root()

	return NewSearchCondition(
		clone.Clone(root.group).(*ValuesGroup),
		clone.Clone(root.order).(*SearchOrder),
	)
}

func (b *Builder) root() *Builder {
	for b.parent != nil {
		b = b.parent
	}

	return b
}

// BagBuilder adds values to one field.
type BagBuilder struct {
	bag     *ValuesBag
	builder *Builder
}

func (bb *BagBuilder) SimpleValue(value string) *BagBuilder {
	bb.bag.AddSimpleValue(value)
	return bb
}

func (bb *BagBuilder) ExcludedSimpleValue(value string) *BagBuilder {
	bb.bag.AddExcludedSimpleValue(value)
	return bb
}

func (bb *BagBuilder) Range(r Range) *BagBuilder {
	bb.bag.AddRange(r)
	return bb
}

func (bb *BagBuilder) ExcludedRange(r Range) *BagBuilder {
	bb.bag.AddExcludedRange(r)
	return bb
}

func (bb *BagBuilder) Compare(operator, value string) *BagBuilder {
	bb.bag.AddComparison(Compare{Operator: operator, Value: value})
	return bb
}

func (bb *BagBuilder) PatternMatch(patternType PatternType, value string, caseInsensitive bool) *BagBuilder {
	bb.bag.AddPatternMatch(PatternMatch{Type: patternType, Value: value, CaseInsensitive: caseInsensitive})
	return bb
}

// ValuesBag returns the bag under construction.
func (bb *BagBuilder) ValuesBag() *ValuesBag {
	return bb.bag
}

// End returns the builder of the group the field belongs to.
func (bb *BagBuilder) End() *Builder {
	return bb.builder
}
