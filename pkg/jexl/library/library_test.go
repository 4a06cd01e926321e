package library

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firehammersolutions/jexl/pkg/jexl"
)

func TestCatalogNames(t *testing.T) {
	c := Catalog{"zulu": "1", "alpha": "2", "mike": "3"}
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, c.Names())

	assert.Empty(t, Catalog{}.Names())
}

func TestCatalogCompile(t *testing.T) {
	j := jexl.New()
	c := Catalog{
		"sum":    "a + b",
		"adults": "users[.age >= 18]",
	}

	compiled, err := c.Compile(j)
	require.NoError(t, err)
	require.Len(t, compiled, 2)

	got, err := compiled["sum"].Evaluate(context.Background(), map[string]any{
		"a": float64(1), "b": float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(3), got)
}

func TestCatalogCompileJoinsErrors(t *testing.T) {
	j := jexl.New()
	c := Catalog{
		"good":      "1 + 1",
		"bad-one":   "1 +",
		"bad-two":   "(a",
		"also-good": "x",
	}

	compiled, err := c.Compile(j)
	require.Error(t, err)
	assert.Nil(t, compiled)

	// Both failures report, each tagged with its name.
	assert.Contains(t, err.Error(), `"bad-one"`)
	assert.Contains(t, err.Error(), `"bad-two"`)
	assert.NotContains(t, err.Error(), `"good"`)
}

func TestCatalogSaveAndFromStore(t *testing.T) {
	c := Catalog{
		"sum":  "a + b",
		"name": "user.name",
	}

	store := NewMemoryStore()
	defer store.Close()

	require.NoError(t, c.Save(store))

	loaded, err := FromStore(store)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestCatalogCompileUsesInstanceGrammar(t *testing.T) {
	j := jexl.New(jexl.WithTransform("upper", func(ctx context.Context, value any, args ...any) (any, error) {
		return strings.ToUpper(value.(string)), nil
	}))

	compiled, err := Catalog{"shout": "word | upper"}.Compile(j)
	require.NoError(t, err)

	got, err := compiled["shout"].Evaluate(context.Background(), map[string]any{"word": "go"})
	require.NoError(t, err)
	assert.Equal(t, "GO", got)
}
