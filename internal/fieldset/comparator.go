package fieldset

import (
	"strings"
	"sync"
	"time"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ValueComparator orders raw field values, it is used to reject ranges whose lower bound is
// not lower than the upper bound. Comparisons involving a value for which Accepts is false
// are meaningless and must not be relied upon.
type ValueComparator interface {
	Accepts(value string) bool
	IsHigher(higher, lower string) bool
	IsLower(lower, higher string) bool
	IsEqual(value, nextValue string) bool
}

const (
	ComparatorNone   = "none"
	ComparatorNumber = "number"
	ComparatorText   = "text"
	ComparatorDate   = "date"
)

// DefaultTextLanguage is the collation used by the "text" comparator.
var DefaultTextLanguage = language.Und

// ComparatorByName returns a builtin comparator. "none" and "" return nil.
func ComparatorByName(name string) (ValueComparator, error) {
	switch strings.ToLower(name) {
	case "", ComparatorNone:
		return nil, nil
	case ComparatorNumber:
		return NumberComparator{}, nil
	case ComparatorText:
		return NewTextComparator(DefaultTextLanguage), nil
	case ComparatorDate:
		return DateComparator{}, nil
	}

	return nil, errors.Errorf("unknown comparator %q, supported comparators: none, number, text, date", name)
}

// NumberComparator compares decimal numbers of any size and precision.
type NumberComparator struct{}

func (NumberComparator) Accepts(value string) bool {
	_, err := cty.ParseNumberVal(value)
	return err == nil
}

func (cmp NumberComparator) IsHigher(higher, lower string) bool {
	a, b, ok := parseNumbers(higher, lower)
	return ok && a.GreaterThan(b).True()
}

func (cmp NumberComparator) IsLower(lower, higher string) bool {
	a, b, ok := parseNumbers(lower, higher)
	return ok && a.LessThan(b).True()
}

func (cmp NumberComparator) IsEqual(value, nextValue string) bool {
	a, b, ok := parseNumbers(value, nextValue)
	return ok && a.Equals(b).True()
}

func parseNumbers(a, b string) (cty.Value, cty.Value, bool) {
	first, err := cty.ParseNumberVal(a)
	if err != nil {
		return cty.NilVal, cty.NilVal, false
	}

	second, err := cty.ParseNumberVal(b)
	if err != nil {
		return cty.NilVal, cty.NilVal, false
	}

	return first, second, true
}

// TextComparator orders text by the collation rules of a language.
type TextComparator struct {
	collator *collate.Collator
	mu       sync.Mutex
}

func NewTextComparator(tag language.Tag) *TextComparator {
	return &TextComparator{collator: collate.New(tag)}
}

func (cmp *TextComparator) Accepts(string) bool {
	return true
}

func (cmp *TextComparator) IsHigher(higher, lower string) bool {
	return cmp.compare(higher, lower) > 0
}

func (cmp *TextComparator) IsLower(lower, higher string) bool {
	return cmp.compare(lower, higher) < 0
}

func (cmp *TextComparator) IsEqual(value, nextValue string) bool {
	return cmp.compare(value, nextValue) == 0
}

func (cmp *TextComparator) compare(a, b string) int {
	// collate.Collator keeps internal buffers
	cmp.mu.Lock()
	defer cmp.mu.Unlock()

	return cmp.collator.CompareString(a, b)
}

// DateLayouts are the formats accepted by DateComparator, tried in order.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-2006",
}

// DateComparator compares dates and timestamps written in one of DateLayouts.
type DateComparator struct{}

func (DateComparator) Accepts(value string) bool {
	_, ok := parseDate(value)
	return ok
}

func (DateComparator) IsHigher(higher, lower string) bool {
	a, b, ok := parseDates(higher, lower)
	return ok && a.After(b)
}

func (DateComparator) IsLower(lower, higher string) bool {
	a, b, ok := parseDates(lower, higher)
	return ok && a.Before(b)
}

func (DateComparator) IsEqual(value, nextValue string) bool {
	a, b, ok := parseDates(value, nextValue)
	return ok && a.Equal(b)
}

func parseDates(a, b string) (time.Time, time.Time, bool) {
	first, ok := parseDate(a)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	second, ok := parseDate(b)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	return first, second, true
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
