package condition

import (
	"encoding/json"
	"slices"

	"github.com/fieldquery/fieldquery/internal/errors"
)

// Logical is the operator joining the fields and subgroups of a ValuesGroup.
type Logical string

const (
	LogicalAnd Logical = "AND"
	LogicalOr  Logical = "OR"
)

// ParseLogical resolves "AND"/"OR" as well as the query markers "&" and "*".
func ParseLogical(str string) (Logical, error) {
	switch str {
	case "", "&", string(LogicalAnd):
		return LogicalAnd, nil
	case "*", string(LogicalOr):
		return LogicalOr, nil
	}

	return "", errors.Errorf("unknown group logical %q", str)
}

// ValuesGroup is a node of the condition tree. Field names are unique within a group and keep
// the order in which they were first added.
type ValuesGroup struct {
	logical Logical
	names   []string
	fields  map[string]*ValuesBag
	groups  []*ValuesGroup
}

// NewValuesGroup returns an empty group; an empty logical means AND.
func NewValuesGroup(logical Logical) *ValuesGroup {
	if logical == "" {
		logical = LogicalAnd
	}

	return &ValuesGroup{
		logical: logical,
		fields:  make(map[string]*ValuesBag),
	}
}

func (group *ValuesGroup) Logical() Logical {
	return group.logical
}

func (group *ValuesGroup) SetLogical(logical Logical) *ValuesGroup {
	group.logical = logical
	return group
}

// AddField sets the bag of a field. Replacing a field keeps its position.
func (group *ValuesGroup) AddField(name string, bag *ValuesBag) *ValuesGroup {
	if _, ok := group.fields[name]; !ok {
		group.names = append(group.names, name)
	}

	group.fields[name] = bag

	return group
}

// Field returns the bag of a field.
func (group *ValuesGroup) Field(name string) (*ValuesBag, bool) {
	bag, ok := group.fields[name]
	return bag, ok
}

func (group *ValuesGroup) HasField(name string) bool {
	_, ok := group.fields[name]
	return ok
}

// RemoveField drops a field, the order of the others is kept.
func (group *ValuesGroup) RemoveField(name string) *ValuesGroup {
	if _, ok := group.fields[name]; !ok {
		return group
	}

	delete(group.fields, name)
	group.names = slices.DeleteFunc(group.names, func(n string) bool { return n == name })

	return group
}

// FieldNames returns field names in insertion order.
func (group *ValuesGroup) FieldNames() []string {
	return slices.Clone(group.names)
}

func (group *ValuesGroup) HasFields() bool {
	return len(group.names) > 0
}

func (group *ValuesGroup) AddGroup(sub *ValuesGroup) *ValuesGroup {
	group.groups = append(group.groups, sub)
	return group
}

// Group returns the subgroup at index or nil.
func (group *ValuesGroup) Group(index int) *ValuesGroup {
	if index < 0 || index >= len(group.groups) {
		return nil
	}

	return group.groups[index]
}

func (group *ValuesGroup) Groups() []*ValuesGroup {
	return slices.Clone(group.groups)
}

func (group *ValuesGroup) HasGroups() bool {
	return len(group.groups) > 0
}

// CountValues returns the number of values in the group and all of its subgroups.
func (group *ValuesGroup) CountValues() int {
	count := 0

	for _, name := range group.names {
		count += group.fields[name].Count()
	}

	for _, sub := range group.groups {
		count += sub.CountValues()
	}

	return count
}

// IsEmpty reports whether the group has neither fields nor subgroups.
func (group *ValuesGroup) IsEmpty() bool {
	return !group.HasFields() && !group.HasGroups()
}

type fieldJSON struct {
	Name   string     `json:"name"`
	Values *ValuesBag `json:"values"`
}

type groupJSON struct {
	Logical Logical        `json:"logical"`
	Fields  []fieldJSON    `json:"fields,omitempty"`
	Groups  []*ValuesGroup `json:"groups,omitempty"`
}

// MarshalJSON keeps the field order, which a JSON object would lose.
func (group *ValuesGroup) MarshalJSON() ([]byte, error) {
	out := groupJSON{Logical: group.logical, Groups: group.groups}

	for _, name := range group.names {
		out.Fields = append(out.Fields, fieldJSON{Name: name, Values: group.fields[name]})
	}

	return json.Marshal(out)
}

func (group *ValuesGroup) UnmarshalJSON(data []byte) error {
	var in groupJSON

	if err := json.Unmarshal(data, &in); err != nil {
		return errors.New(err)
	}

	*group = *NewValuesGroup(in.Logical)

	for _, field := range in.Fields {
		values := field.Values
		if values == nil {
			values = NewValuesBag()
		}

		group.AddField(field.Name, values)
	}

	group.groups = in.Groups

	return nil
}
