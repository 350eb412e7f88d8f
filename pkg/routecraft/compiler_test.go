package routecraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileString(t *testing.T, pattern string) *CompiledRoute {
	t.Helper()
	ast, errs := Parse(Tokenize(pattern))
	require.Emptyf(t, errs, "Parse(%q)", pattern)
	route, err := Compile(ast)
	require.NoErrorf(t, err, "Compile(%q)", pattern)
	return route
}

func TestCompileSpecificityOrdering(t *testing.T) {
	literal := compileString(t, "status")
	typedParam := compileString(t, "{id:int}")
	untypedParam := compileString(t, "{id}")
	optionalParam := compileString(t, "{id?}")
	catchAll := compileString(t, "{*rest}")

	assert.Greater(t, literal.Specificity, typedParam.Specificity)
	assert.Greater(t, typedParam.Specificity, untypedParam.Specificity)
	assert.Greater(t, untypedParam.Specificity, optionalParam.Specificity)
	assert.Greater(t, optionalParam.Specificity, catchAll.Specificity)
}

func TestCompileOptionIndexCoversBothForms(t *testing.T) {
	route := compileString(t, "deploy {env} --force,-f")
	long, ok := route.OptionIndex["--force"]
	require.True(t, ok)
	short, ok := route.OptionIndex["-f"]
	require.True(t, ok)
	assert.Same(t, long, short)
	assert.False(t, long.ExpectsValue)
	assert.True(t, long.IsOptional)
}

func TestCompileRequiredValueOptionIsRequired(t *testing.T) {
	route := compileString(t, "deploy --replicas {n:int}")
	om := route.OptionIndex["--replicas"]
	assert.False(t, om.IsOptional)
	assert.Equal(t, "int", om.TypeConstraint)
}

func TestCompileOptionalValueOptionIsOptional(t *testing.T) {
	route := compileString(t, "deploy --replicas {n:int?}")
	om := route.OptionIndex["--replicas"]
	assert.True(t, om.IsOptional)
}

func TestCompileBindKeyPrefersLongForm(t *testing.T) {
	route := compileString(t, "deploy --force,-f")
	om := route.OptionIndex["--force"]
	assert.Equal(t, "force", om.BindKey())
}

func TestCompileBindKeyFallsBackToShortForm(t *testing.T) {
	route := compileString(t, "greet -a")
	om := route.OptionIndex["-a"]
	assert.Equal(t, "a", om.BindKey())
}
