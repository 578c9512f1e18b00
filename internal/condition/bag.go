package condition

// ValuesBag holds the values of one field within one group. Every kind keeps insertion order,
// error paths address values by their index.
type ValuesBag struct {
	SimpleValues         []string       `json:"simple_values,omitempty"`
	ExcludedSimpleValues []string       `json:"excluded_simple_values,omitempty"`
	Ranges               []Range        `json:"ranges,omitempty"`
	ExcludedRanges       []Range        `json:"excluded_ranges,omitempty"`
	Comparisons          []Compare      `json:"comparisons,omitempty"`
	PatternMatchers      []PatternMatch `json:"pattern_matchers,omitempty"`
}

// NewValuesBag returns an empty bag.
func NewValuesBag() *ValuesBag {
	return &ValuesBag{}
}

func (bag *ValuesBag) AddSimpleValue(value string) *ValuesBag {
	bag.SimpleValues = append(bag.SimpleValues, value)
	return bag
}

func (bag *ValuesBag) AddExcludedSimpleValue(value string) *ValuesBag {
	bag.ExcludedSimpleValues = append(bag.ExcludedSimpleValues, value)
	return bag
}

func (bag *ValuesBag) AddRange(r Range) *ValuesBag {
	bag.Ranges = append(bag.Ranges, r)
	return bag
}

func (bag *ValuesBag) AddExcludedRange(r Range) *ValuesBag {
	bag.ExcludedRanges = append(bag.ExcludedRanges, r)
	return bag
}

func (bag *ValuesBag) AddComparison(c Compare) *ValuesBag {
	bag.Comparisons = append(bag.Comparisons, c)
	return bag
}

func (bag *ValuesBag) AddPatternMatch(p PatternMatch) *ValuesBag {
	bag.PatternMatchers = append(bag.PatternMatchers, p)
	return bag
}

// Count returns the number of values of all kinds.
func (bag *ValuesBag) Count() int {
	if bag == nil {
		return 0
	}

	return len(bag.SimpleValues) +
		len(bag.ExcludedSimpleValues) +
		len(bag.Ranges) +
		len(bag.ExcludedRanges) +
		len(bag.Comparisons) +
		len(bag.PatternMatchers)
}

// IsEmpty reports whether the bag holds no values.
func (bag *ValuesBag) IsEmpty() bool {
	return bag.Count() == 0
}

// Merge appends all values of other to bag.
func (bag *ValuesBag) Merge(other *ValuesBag) *ValuesBag {
	if other == nil {
		return bag
	}

	bag.SimpleValues = append(bag.SimpleValues, other.SimpleValues...)
	bag.ExcludedSimpleValues = append(bag.ExcludedSimpleValues, other.ExcludedSimpleValues...)
	bag.Ranges = append(bag.Ranges, other.Ranges...)
	bag.ExcludedRanges = append(bag.ExcludedRanges, other.ExcludedRanges...)
	bag.Comparisons = append(bag.Comparisons, other.Comparisons...)
	bag.PatternMatchers = append(bag.PatternMatchers, other.PatternMatchers...)

	return bag
}
