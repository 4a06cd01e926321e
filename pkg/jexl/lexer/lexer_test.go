package lexer

import (
	"testing"

	"github.com/firehammersolutions/jexl/pkg/jexl/grammar"
)

// scan drains the lexer into a token slice, excluding the EOF token.
func scan(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input, grammar.Default())
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func TestNext_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []Kind
		texts []string
	}{
		{
			name:  "identifier chain",
			input: "foo.bar",
			kinds: []Kind{Identifier, Punctuation, Identifier},
			texts: []string{"foo", ".", "bar"},
		},
		{
			name:  "binary expression",
			input: "a + b",
			kinds: []Kind{Identifier, Operator, Identifier},
			texts: []string{"a", "+", "b"},
		},
		{
			name:  "longest match wins",
			input: "a == b",
			kinds: []Kind{Identifier, Operator, Identifier},
			texts: []string{"a", "==", "b"},
		},
		{
			name:  "double pipe is an operator single pipe is punctuation",
			input: "a || b | upper",
			kinds: []Kind{Identifier, Operator, Identifier, Punctuation, Identifier},
			texts: []string{"a", "||", "b", "|", "upper"},
		},
		{
			name:  "word operator",
			input: "x in list",
			kinds: []Kind{Identifier, Operator, Identifier},
			texts: []string{"x", "in", "list"},
		},
		{
			name:  "word operator prefix stays an identifier",
			input: "inside",
			kinds: []Kind{Identifier},
			texts: []string{"inside"},
		},
		{
			name:  "not versus not-equals",
			input: "!a != b",
			kinds: []Kind{Operator, Identifier, Operator, Identifier},
			texts: []string{"!", "a", "!=", "b"},
		},
		{
			name:  "whitespace is insignificant",
			input: "  a\t+\n b ",
			kinds: []Kind{Identifier, Operator, Identifier},
			texts: []string{"a", "+", "b"},
		},
		{
			name:  "object literal punctuation",
			input: "{ a: 1 }",
			kinds: []Kind{Punctuation, Identifier, Punctuation, Literal, Punctuation},
			texts: []string{"{", "a", ":", "1", "}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := scan(t, tt.input)
			if len(tokens) != len(tt.kinds) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.kinds), tokens)
			}
			for i, tok := range tokens {
				if tok.Kind != tt.kinds[i] {
					t.Errorf("token %d kind = %v, want %v", i, tok.Kind, tt.kinds[i])
				}
				if tok.Text != tt.texts[i] {
					t.Errorf("token %d text = %q, want %q", i, tok.Text, tt.texts[i])
				}
			}
		})
	}
}

func TestNext_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{".5", 0.5},
		{"1e3", 1000},
		{"2.5e-2", 0.025},
		{"1E6", 1e6},
		// Very large integers become the nearest representable double.
		{"123456789101112131415161718", 1.2345678910111214e26},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := scan(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1: %v", len(tokens), tokens)
			}
			if tokens[0].Kind != Literal {
				t.Fatalf("kind = %v, want Literal", tokens[0].Kind)
			}
			if got := tokens[0].Value.(float64); got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNext_NumberBoundaries(t *testing.T) {
	// A dot not followed by a digit belongs to the next token.
	tokens := scan(t, "1.foo")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(tokens), tokens)
	}
	if tokens[0].Value.(float64) != 1 || tokens[1].Text != "." || tokens[2].Text != "foo" {
		t.Errorf("unexpected tokens: %v", tokens)
	}

	// An 'e' not followed by digits is not an exponent.
	tokens = scan(t, "2e")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(tokens), tokens)
	}
	if tokens[0].Value.(float64) != 2 || tokens[1].Text != "e" {
		t.Errorf("unexpected tokens: %v", tokens)
	}
}

func TestNext_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double quoted", `"hello"`, "hello"},
		{"single quoted", `'hello'`, "hello"},
		{"empty", `""`, ""},
		{"escaped delimiter", `"say \"hi\""`, `say "hi"`},
		{"escaped single quote", `'it\'s'`, "it's"},
		{"escaped backslash", `"a\\b"`, `a\b`},
		{"other backslash passes through", `"a\nb"`, `a\nb`},
		{"embedded other quote", `"it's"`, "it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := scan(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1: %v", len(tokens), tokens)
			}
			if got := tokens[0].Value.(string); got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNext_Booleans(t *testing.T) {
	tokens := scan(t, "true false truthy")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(tokens), tokens)
	}
	if tokens[0].Value != true || tokens[1].Value != false {
		t.Errorf("boolean values = %v, %v", tokens[0].Value, tokens[1].Value)
	}
	if tokens[2].Kind != Identifier {
		t.Errorf("'truthy' should lex as an identifier, got %v", tokens[2].Kind)
	}
}

func TestNext_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   int
	}{
		{"unterminated string", `"abc`, 0},
		{"unterminated string after tokens", `a + "abc`, 4},
		{"unrecognized character", "a # b", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input, grammar.Default())
			for {
				tok, err := l.Next()
				if err != nil {
					lexErr, ok := err.(*LexError)
					if !ok {
						t.Fatalf("error type = %T, want *LexError", err)
					}
					if lexErr.Pos != tt.pos {
						t.Errorf("error position = %d, want %d", lexErr.Pos, tt.pos)
					}
					return
				}
				if tok.Kind == EOF {
					t.Fatal("expected a lex error, got EOF")
				}
			}
		})
	}
}

func TestNext_EOFIsSticky(t *testing.T) {
	l := New("a", grammar.Default())
	if tok, _ := l.Next(); tok.Kind != Identifier {
		t.Fatalf("first token = %v", tok)
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil || tok.Kind != EOF {
			t.Fatalf("call %d after end: token %v err %v", i, tok, err)
		}
	}
}

func TestNext_Positions(t *testing.T) {
	tokens := scan(t, "ab + cd")
	wantPos := []int{0, 3, 5}
	for i, tok := range tokens {
		if tok.Pos != wantPos[i] {
			t.Errorf("token %d pos = %d, want %d", i, tok.Pos, wantPos[i])
		}
	}
}
