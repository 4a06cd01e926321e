// Package ast defines the node types an expression is parsed into.
//
// Nodes form a pure value tree: every node is immutable once built, holds
// no back-edges, and may be shared read-only across repeated evaluations.
// Chained property access, filters, and transforms are right-nested: in
// a.b[e.f].c the outermost node is the trailing identifier and its From /
// Subject links point back toward the head of the chain.
package ast

// Node is implemented by every expression node type. The set of
// implementations is closed; consumers dispatch with a type switch.
type Node interface {
	node()
}

// Literal is a constant value: a bool, a float64, or a string.
type Literal struct {
	Value any
}

// Identifier is a property lookup. When From is nil the name is resolved
// against the top-level context, or against the current filter element
// when Relative is set. When From is non-nil the name is resolved against
// the value of From.
type Identifier struct {
	Name     string
	From     Node
	Relative bool
}

// Unary applies a prefix operator to a single operand.
type Unary struct {
	Operator string
	Operand  Node
}

// Binary applies an infix operator to two operands. Operator metadata
// (precedence, associativity, evaluation) lives in the grammar, not here.
type Binary struct {
	Operator string
	Left     Node
	Right    Node
}

// Conditional is the ternary test ? consequent : alternate. A nil
// Consequent marks the elvis form test ?: alternate, which yields the
// test value itself when truthy.
type Conditional struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

// ArrayLiteral is an ordered list of element expressions.
type ArrayLiteral struct {
	Elements []Node
}

// ObjectEntry is one key/value pair of an object literal.
type ObjectEntry struct {
	Key   string
	Value Node
}

// ObjectLiteral is an ordered list of entries. Insertion order is
// significant for serialization.
type ObjectLiteral struct {
	Entries []ObjectEntry
}

// Filter applies a bracketed expression to a subject. Relative filters
// evaluate the expression once per element of the subject sequence and
// keep the elements for which it is truthy. Static filters evaluate the
// expression once and use it as a boolean gate or as an index/property
// accessor into the subject.
type Filter struct {
	Subject    Node
	Expression Node
	Relative   bool
}

// Transform applies a named host-registered function to a subject value,
// with optional extra arguments.
type Transform struct {
	Name    string
	Subject Node
	Args    []Node
}

func (*Literal) node()       {}
func (*Identifier) node()    {}
func (*Unary) node()         {}
func (*Binary) node()        {}
func (*Conditional) node()   {}
func (*ArrayLiteral) node()  {}
func (*ObjectLiteral) node() {}
func (*Filter) node()        {}
func (*Transform) node()     {}
