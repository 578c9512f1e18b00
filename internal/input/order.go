package input

import (
	"github.com/fieldquery/fieldquery/internal/condition"
)

// orderField reads `@name: direction`. The order clause only exists at the root and each
// order field takes exactly one plain direction value.
func (p *parser) orderField(name string, level int, discard bool) error {
	bag := condition.NewValuesBag()

	if discard {
		return p.valueList(name, nil, bag, "", true)
	}

	if level > rootLevel {
		p.addError(orderNoGroupingError())
		return p.valueList(name, nil, bag, "", true)
	}

	p.orderSeen = true

	fieldName, known := p.labels[name]
	if !known {
		p.addError(unknownFieldError("", name))
		return p.valueList(name, nil, bag, "", true)
	}

	field, err := p.cfg.FieldSet.Get(fieldName)
	if err != nil {
		return err
	}

	if err := p.valueList(fieldName, nil, bag, "", false); err != nil {
		return err
	}

	if bag.Count() != 1 || len(bag.SimpleValues) != 1 {
		p.addError(orderInvalidValueError(fieldName))
		return nil
	}

	dir, ok := field.ResolveDirection(bag.SimpleValues[0])
	if !ok {
		p.addError(orderInvalidValueError(fieldName))
		return nil
	}

	p.order.Set(fieldName, dir)

	return nil
}

// applyDefaultOrder sets the default direction of every order field that declares one.
func (p *parser) applyDefaultOrder() {
	for _, field := range p.cfg.FieldSet.All() {
		if field.IsOrder() && field.DefaultDirection != "" {
			p.order.Set(field.Name, field.DefaultDirection)
		}
	}
}
