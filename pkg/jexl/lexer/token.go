package lexer

// Kind classifies a token.
type Kind int

const (
	// EOF marks the end of the input. Every token stream ends with one.
	EOF Kind = iota
	// Literal is a number, string, or boolean constant. Value holds the
	// decoded value (float64, string, or bool).
	Literal
	// Identifier is a name: a context property, transform name, or
	// object key.
	Identifier
	// Operator is a symbol registered in the grammar's operator tables.
	Operator
	// Punctuation is structural syntax: ( ) [ ] { } , : ? . |
	Punctuation
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of expression"
	case Literal:
		return "literal"
	case Identifier:
		return "identifier"
	case Operator:
		return "operator"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Token is one lexed unit of the input. Text is the significant source
// text; Value carries the decoded value for Literal tokens (with string
// quoting and delimiter escapes already resolved). Pos is the byte
// offset of the token's start.
type Token struct {
	Kind  Kind
	Text  string
	Value any
	Pos   int
}
