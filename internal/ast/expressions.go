package ast

import (
	"strconv"
	"strings"
)

// NumberLiteral is an integer digit run (spec.md §9 note 2: no decimals
// at the lexer level — the parser is responsible for synthesizing unary
// minus where needed).
type NumberLiteral struct {
	Base
	Value float64
}

func (n *NumberLiteral) exprNode()    {}
func (n *NumberLiteral) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// StringLiteral is a double-quoted literal with no escape sequences
// (spec.md §9 note 3).
type StringLiteral struct {
	Base
	Value string
}

func (s *StringLiteral) exprNode()    {}
func (s *StringLiteral) String() string { return strconv.Quote(s.Value) }

// BinaryExpr is any binary operator application: arithmetic, comparison,
// or logical (spec.md §4.6 precedence table).
type BinaryExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// AssignExpr is `=`, right-associative, whose left operand must resolve
// to an identifier path (spec.md §4.6).
type AssignExpr struct {
	Base
	Target *IdentifierPath
	Value  Expr
}

func (a *AssignExpr) exprNode() {}
func (a *AssignExpr) String() string {
	return a.Target.String() + " = " + a.Value.String()
}

// IncDecExpr is `++`/`--` applied to an identifier path, in either prefix
// or postfix position (spec.md §4.7 "Increment/decrement"). The
// reference encodes postfix with a sentinel Empty operand internally
// (§9 note 4); here Postfix is a plain bool so that encoding never leaks.
type IncDecExpr struct {
	Base
	Op      string // "++" or "--"
	Target  *IdentifierPath
	Postfix bool
}

func (i *IncDecExpr) exprNode() {}
func (i *IncDecExpr) String() string {
	if i.Postfix {
		return i.Target.String() + i.Op
	}
	return i.Op + i.Target.String()
}

// AddressOfExpr is `&NAME`: pushes the string NAME (spec.md §4.7). The
// language has no first-class functions; this is a name handle.
type AddressOfExpr struct {
	Base
	Name string
}

func (a *AddressOfExpr) exprNode()    {}
func (a *AddressOfExpr) String() string { return "&" + a.Name }

// ExpandExpr is the postfix `...` operator: at a call site it replaces
// itself with the operand array's elements (spec.md §4.6, §4.7).
type ExpandExpr struct {
	Base
	Value Expr
}

func (e *ExpandExpr) exprNode()    {}
func (e *ExpandExpr) String() string { return e.Value.String() + "..." }

// CallExpr applies a named function to evaluated arguments. Spread marks
// which arguments end in the expand operator.
type CallExpr struct {
	Base
	Name   string
	Args   []Expr
	Spread []bool
}

func (c *CallExpr) exprNode() {}
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
		if i < len(c.Spread) && c.Spread[i] {
			parts[i] += "..."
		}
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// FieldInit is one `NAME = EXPR` entry of an initializer list (spec.md
// §4.6 "Initializer lists").
type FieldInit struct {
	Name  string
	Value Expr
}

// NewBlobExpr is `new { NAME = EXPR, ... }`.
type NewBlobExpr struct {
	Base
	Fields []FieldInit
}

func (n *NewBlobExpr) exprNode() {}
func (n *NewBlobExpr) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.Name + " = " + f.Value.String()
	}
	return "new { " + strings.Join(parts, ", ") + " }"
}

// NewArrayExpr is `new [ EXPR, ... ]`.
type NewArrayExpr struct {
	Base
	Elements []Expr
}

func (n *NewArrayExpr) exprNode() {}
func (n *NewArrayExpr) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "new [" + strings.Join(parts, ", ") + "]"
}

// NewInstanceExpr is `new TYPE { NAME = EXPR, ... }`.
type NewInstanceExpr struct {
	Base
	Type   string
	Fields []FieldInit
}

func (n *NewInstanceExpr) exprNode() {}
func (n *NewInstanceExpr) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.Name + " = " + f.Value.String()
	}
	return "new " + n.Type + " { " + strings.Join(parts, ", ") + " }"
}
