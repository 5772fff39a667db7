package codemodel

import (
	"fmt"
	"strings"

	"update-object-generator/internal/model"
)

// Statement is a statement of a function body.
type Statement interface {
	fmt.Stringer
	statement()
}

// Let binds a new local.
type Let struct {
	Name  string
	Value Expr
}

func (*Let) statement() {}

func (l *Let) String() string { return "let " + l.Name + " = " + l.Value.String() }

// Return returns a value.
type Return struct {
	Value Expr
}

func (*Return) statement() {}

func (r *Return) String() string { return "return " + r.Value.String() }

// Expr is an expression.
type Expr interface {
	fmt.Stringer
	expr()
}

// Absent is the host's absent value (null, nil).
type Absent struct{}

func (*Absent) expr() {}

func (*Absent) String() string { return "absent" }

// Literal is verbatim host source text.
type Literal struct {
	Text string
}

func (*Literal) expr() {}

func (l *Literal) String() string { return l.Text }

// Local refers to a local bound by Let.
type Local struct {
	Name string
}

func (*Local) expr() {}

func (l *Local) String() string { return l.Name }

// Owner selects whose field a FieldRef reads.
type Owner int

const (
	// OwnerReceiver is the source record the function is attached to.
	OwnerReceiver Owner = iota
	// OwnerParam is the generated object passed to a merge.
	OwnerParam
)

// FieldRef reads a field. Type is the type of the read value, including nullability.
type FieldRef struct {
	Owner Owner
	Field string
	Type  model.SemanticType
}

func (*FieldRef) expr() {}

func (f *FieldRef) String() string {
	if f.Owner == OwnerParam {
		return "param." + f.Field
	}

	return "this." + f.Field
}

// Coalesce yields Value when it is present and Fallback otherwise.
type Coalesce struct {
	Value    Expr
	Fallback Expr
}

func (*Coalesce) expr() {}

func (c *Coalesce) String() string { return c.Value.String() + " ?: " + c.Fallback.String() }

// Wrap lifts a present value into its nullable type.
type Wrap struct {
	Value Expr
}

func (*Wrap) expr() {}

func (w *Wrap) String() string { return "wrap(" + w.Value.String() + ")" }

// AssertPresent yields Value, failing with Message when it is absent.
type AssertPresent struct {
	Value   Expr
	Message string
}

func (*AssertPresent) expr() {}

func (a *AssertPresent) String() string {
	return fmt.Sprintf("checkNotNull(%s, %q)", a.Value, a.Message)
}

// Convert converts a collection value into To, typically its mutable counterpart.
type Convert struct {
	Value Expr
	To    model.SemanticType
}

func (*Convert) expr() {}

func (c *Convert) String() string { return c.Value.String() + " as " + c.To.String() }

// Arg is a named argument.
type Arg struct {
	Name  string
	Value Expr
}

// Construct builds a new value of Type from every named argument, in declaration order.
type Construct struct {
	Type model.SemanticType
	Args []Arg
}

func (*Construct) expr() {}

func (c *Construct) String() string { return c.Type.Name + "(" + argsString(c.Args) + ")" }

// CopyWith copies the receiver, replacing the named fields.
type CopyWith struct {
	Args []Arg
}

func (*CopyWith) expr() {}

func (c *CopyWith) String() string { return "copy(" + argsString(c.Args) + ")" }

func argsString(args []Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Name + " = " + a.Value.String()
	}

	return strings.Join(parts, ", ")
}
