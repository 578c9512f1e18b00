package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/lexer"
)

// Message templates of the path-addressed errors. Placeholders are written `{{ name }}`.
const (
	MessageNoDefaultField    = "No default field configured. Please provide a field name."
	MessageUnknownField      = `The field "{{ field }}" is not registered in the field set.`
	MessagePrivateField      = `The field "{{ field }}" is private and cannot be used in a query.`
	MessageUnsupportedValue  = `Field "{{ field }}" does not accept {{ type }} values.`
	MessageValuesOverflow    = `Field "{{ field }}" accepts no more than {{ max }} values.`
	MessageGroupsOverflow    = "Only {{ max }} groups are allowed within one group."
	MessageNestingExceeded   = "Groups cannot be nested deeper than {{ max }} levels."
	MessageInvalidRange      = "Lower range-value {{ lower }} should be lower than upper range-value {{ upper }}."
	MessageOrderNoGrouping   = "Order clause supports no grouping."
	MessageOrderInvalidValue = "Order field {{ field }} must have exactly one value, either ASC or DESC."
)

// ConditionErrorMessage is one error found in the input. Path locates the offending node, e.g.
// `[0][1][name][3]` for the fourth value of field name in the second subgroup of the first
// group. Errors raised while scanning have an empty path and carry line and column parameters.
type ConditionErrorMessage struct {
	Cause           error             `json:"-"`
	Parameters      map[string]string `json:"parameters,omitempty"`
	Path            string            `json:"path"`
	MessageTemplate string            `json:"message_template"`
	Message         string            `json:"message"`
}

// NewConditionErrorMessage renders template with params.
func NewConditionErrorMessage(path, template string, params map[string]string) ConditionErrorMessage {
	return ConditionErrorMessage{
		Path:            path,
		MessageTemplate: template,
		Message:         Render(template, params),
		Parameters:      params,
	}
}

func (msg ConditionErrorMessage) Error() string {
	if msg.Path == "" {
		return msg.Message
	}

	return msg.Path + ": " + msg.Message
}

func (msg ConditionErrorMessage) Unwrap() error {
	return msg.Cause
}

// Render replaces the `{{ name }}` placeholders of template.
func Render(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}

	oldnew := make([]string, 0, len(params)*2)

	for name, value := range params {
		oldnew = append(oldnew, "{{ "+name+" }}", value)
	}

	return strings.NewReplacer(oldnew...).Replace(template)
}

// InvalidSearchConditionError lists every error found in one input.
type InvalidSearchConditionError struct {
	Input  string
	Errors []ConditionErrorMessage
}

func (err InvalidSearchConditionError) Error() string {
	if len(err.Errors) == 1 {
		return "invalid search condition: " + err.Errors[0].Error()
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "invalid search condition, %d errors occurred:", len(err.Errors))

	for _, msg := range err.Errors {
		sb.WriteString("\n  * " + msg.Error())
	}

	return sb.String()
}

func (err InvalidSearchConditionError) Unwrap() []error {
	errs := make([]error, len(err.Errors))

	for i, msg := range err.Errors {
		errs[i] = msg
	}

	return errs
}

// templated is implemented by lexer.SyntaxError and lexer.FormatError.
type templated interface {
	Template() string
	Parameters() map[string]string
}

func scanErrorMessage(err error) ConditionErrorMessage {
	var (
		syntaxErr lexer.SyntaxError
		formatErr lexer.FormatError
		tmpl      templated
	)

	switch {
	case errors.As(err, &syntaxErr):
		tmpl = syntaxErr
	case errors.As(err, &formatErr):
		tmpl = formatErr
	default:
		return ConditionErrorMessage{MessageTemplate: err.Error(), Message: err.Error(), Cause: err}
	}

	msg := NewConditionErrorMessage("", tmpl.Template(), tmpl.Parameters())
	msg.Cause = err

	return msg
}

func indexPath(path string, index int) string {
	return path + "[" + strconv.Itoa(index) + "]"
}

func fieldPath(path, field string) string {
	return path + "[" + field + "]"
}

func noDefaultFieldError() ConditionErrorMessage {
	return NewConditionErrorMessage("", MessageNoDefaultField, nil)
}

func unknownFieldError(path, field string) ConditionErrorMessage {
	return NewConditionErrorMessage(fieldPath(path, field), MessageUnknownField, map[string]string{"field": field})
}

func privateFieldError(path, field string) ConditionErrorMessage {
	return NewConditionErrorMessage(fieldPath(path, field), MessagePrivateField, map[string]string{"field": field})
}

func unsupportedValueError(path, field string, valueType lexer.ValueType) ConditionErrorMessage {
	return NewConditionErrorMessage(path, MessageUnsupportedValue, map[string]string{
		"field": field,
		"type":  string(valueType),
	})
}

func valuesOverflowError(path, field string, limit int) ConditionErrorMessage {
	return NewConditionErrorMessage(path, MessageValuesOverflow, map[string]string{
		"field": field,
		"max":   strconv.Itoa(limit),
	})
}

func groupsOverflowError(path string, limit int) ConditionErrorMessage {
	return NewConditionErrorMessage(path, MessageGroupsOverflow, map[string]string{"max": strconv.Itoa(limit)})
}

func nestingExceededError(path string, limit int) ConditionErrorMessage {
	return NewConditionErrorMessage(path, MessageNestingExceeded, map[string]string{"max": strconv.Itoa(limit)})
}

func invalidRangeError(path, lower, upper string) ConditionErrorMessage {
	return NewConditionErrorMessage(path, MessageInvalidRange, map[string]string{"lower": lower, "upper": upper})
}

func orderNoGroupingError() ConditionErrorMessage {
	return NewConditionErrorMessage("", MessageOrderNoGrouping, nil)
}

func orderInvalidValueError(field string) ConditionErrorMessage {
	return NewConditionErrorMessage(fieldPath("", field), MessageOrderInvalidValue, map[string]string{"field": field})
}
