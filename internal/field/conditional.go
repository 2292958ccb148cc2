package field

import (
	"fmt"
)

// Condition compares a row column, or the output of a nested field, with a
// literal value or another column using a named operator.
type Condition struct {
	name       string
	subject    any
	op         Operator
	opName     string
	value      any
	otherField string
}

// NewCondition builds a condition. subject is a column name or a Field;
// when otherField is set the right operand is that column instead of value.
func NewCondition(name string, subject any, operator string, value any, otherField string) (*Condition, error) {
	op, err := LookupOperator(operator)
	if err != nil {
		return nil, err
	}
	switch subject.(type) {
	case string, Field:
	default:
		return nil, fmt.Errorf("condition field must be a column name or a field, got %T", subject)
	}
	return &Condition{name: name, subject: subject, op: op, opName: operator, value: value, otherField: otherField}, nil
}

func (c *Condition) Name() string { return c.name }

// Init initialises a nested subject field.
func (c *Condition) Init(fs Fieldset) error {
	return initOperands(fs, c.subject)
}

// IsTrue evaluates the condition against row.
func (c *Condition) IsTrue(owner string, row Row) (bool, error) {
	var left any
	switch s := c.subject.(type) {
	case Field:
		v, err := s.NextValue(row)
		if err != nil {
			return false, err
		}
		left = v
	case string:
		v, ok := row[s]
		if !ok {
			return false, &UnresolvedReferenceError{Field: owner, Column: s}
		}
		left = v
	}

	right := c.value
	if c.otherField != "" {
		v, ok := row[c.otherField]
		if !ok {
			return false, &UnresolvedReferenceError{Field: owner, Column: c.otherField}
		}
		right = v
	}

	out, err := c.op(left, right)
	if err != nil {
		return false, fmt.Errorf("condition %s: %w", c.opName, err)
	}
	return truthy(out), nil
}

// IfElseField generates one of two branches depending on a condition. Each
// branch is a literal or a field, including another IfElseField.
type IfElseField struct {
	*Base
	cond    *Condition
	ifTrue  any
	ifFalse any
}

func NewIfElseField(opts Options, cond *Condition, trueValue, falseValue any) *IfElseField {
	f := &IfElseField{Base: newBase(opts), cond: cond, ifTrue: trueValue, ifFalse: falseValue}
	f.bind(f, f.generate)
	return f
}

func (f *IfElseField) Init(fs Fieldset) error {
	if err := f.cond.Init(fs); err != nil {
		return err
	}
	return initOperands(fs, f.ifTrue, f.ifFalse)
}

func (f *IfElseField) generate(row Row) (any, error) {
	ok, err := f.cond.IsTrue(f.Name(), row)
	if err != nil {
		return nil, err
	}
	if ok {
		return resolveAny(f.ifTrue, row)
	}
	return resolveAny(f.ifFalse, row)
}

// OperationField applies a binary operator to two operands, each a literal
// or a field.
type OperationField struct {
	*Base
	op            Operator
	first, second any
}

func NewOperationField(opts Options, operator string, first, second any) (*OperationField, error) {
	op, err := LookupOperator(operator)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", opts.Name, err)
	}
	f := &OperationField{Base: newBase(opts), op: op, first: first, second: second}
	f.bind(f, f.generate)
	return f, nil
}

func (f *OperationField) Init(fs Fieldset) error {
	return initOperands(fs, f.first, f.second)
}

func (f *OperationField) generate(row Row) (any, error) {
	a, err := resolveAny(f.first, row)
	if err != nil {
		return nil, err
	}
	b, err := resolveAny(f.second, row)
	if err != nil {
		return nil, err
	}
	return f.op(a, b)
}
