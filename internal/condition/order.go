package condition

import (
	"encoding/json"
	"slices"

	"github.com/fieldquery/fieldquery/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Direction is the sort direction of an order field.
type Direction string

const (
	DirectionAsc  Direction = "ASC"
	DirectionDesc Direction = "DESC"
)

// ParseDirection resolves "asc"/"desc" in any letter case.
func ParseDirection(str string) (Direction, error) {
	switch dir := Direction(cases.Upper(language.Und).String(str)); dir {
	case DirectionAsc, DirectionDesc:
		return dir, nil
	}

	return "", errors.Errorf("unknown order direction %q, expected ASC or DESC", str)
}

// SearchOrder maps order fields to directions in the order they were given.
type SearchOrder struct {
	fields     []string
	directions map[string]Direction
}

func NewSearchOrder() *SearchOrder {
	return &SearchOrder{directions: make(map[string]Direction)}
}

// Set sets the direction of field, keeping its position when it was set before.
func (order *SearchOrder) Set(field string, dir Direction) *SearchOrder {
	if _, ok := order.directions[field]; !ok {
		order.fields = append(order.fields, field)
	}

	order.directions[field] = dir

	return order
}

func (order *SearchOrder) Direction(field string) (Direction, bool) {
	dir, ok := order.directions[field]
	return dir, ok
}

func (order *SearchOrder) Fields() []string {
	return slices.Clone(order.fields)
}

func (order *SearchOrder) Len() int {
	if order == nil {
		return 0
	}

	return len(order.fields)
}

type orderJSON struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

func (order *SearchOrder) MarshalJSON() ([]byte, error) {
	out := make([]orderJSON, 0, len(order.fields))

	for _, field := range order.fields {
		out = append(out, orderJSON{Field: field, Direction: order.directions[field]})
	}

	return json.Marshal(out)
}

func (order *SearchOrder) UnmarshalJSON(data []byte) error {
	var in []orderJSON

	if err := json.Unmarshal(data, &in); err != nil {
		return errors.New(err)
	}

	*order = *NewSearchOrder()

	for _, entry := range in {
		order.Set(entry.Field, entry.Direction)
	}

	return nil
}
