package routecraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, patterns ...string) *EndpointTable {
	t.Helper()
	table := NewEndpointTable()
	for i, p := range patterns {
		_, errs := table.Register(p, i, EndpointMetadata{})
		require.Emptyf(t, errs, "Register(%q)", p)
	}
	return table
}

func TestResolveDeployBindsEnvForceAndReplicas(t *testing.T) {
	table := newTestTable(t, "deploy {env} --force,-f --replicas {n:int?}")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"deploy", "prod", "-f", "--replicas", "3"}, table, registry)
	require.Nil(t, noMatch)
	want := map[string]any{"env": "prod", "force": true, "replicas": 3}
	assert.Equal(t, want, res.Bound.Values)
}

func TestResolveOptionsAreOrderIndependent(t *testing.T) {
	table := newTestTable(t, "deploy {env} --force,-f --replicas {n:int?}")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"deploy", "--replicas", "3", "prod", "-f"}, table, registry)
	require.Nil(t, noMatch)
	assert.Equal(t, "prod", res.Bound.Values["env"])
	assert.Equal(t, 3, res.Bound.Values["replicas"])
	assert.Equal(t, true, res.Bound.Values["force"])
}

func TestResolveShortFlagAlone(t *testing.T) {
	table := newTestTable(t, "greet {name} -a")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"greet", "alice", "-a"}, table, registry)
	require.Nil(t, noMatch)
	assert.Equal(t, "alice", res.Bound.Values["name"])
	assert.Equal(t, true, res.Bound.Values["a"])
}

func TestResolveEndOfOptionsStopsOptionParsing(t *testing.T) {
	table := newTestTable(t, "exec {*args}")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"exec", "--", "--other", "thing"}, table, registry)
	require.Nil(t, noMatch)
	assert.Equal(t, []string{"--other", "thing"}, res.Bound.CatchAll)
}

func TestResolveDefaultRouteIgnoresLeftoverArguments(t *testing.T) {
	table := newTestTable(t, "", "help")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"other"}, table, registry)
	require.Nil(t, noMatch)
	assert.Equal(t, "", res.Endpoint.Pattern)
}

func TestResolveHelpLiteralBeatsDefaultRoute(t *testing.T) {
	table := newTestTable(t, "", "help")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"help"}, table, registry)
	require.Nil(t, noMatch)
	assert.Equal(t, "help", res.Endpoint.Pattern)
}

func TestResolveMissingRequiredOption(t *testing.T) {
	table := newTestTable(t, "deploy {env} --replicas {n:int}")
	registry := NewConverterRegistry()

	_, noMatch := Resolve([]string{"deploy", "prod"}, table, registry)
	require.NotNil(t, noMatch)
	assert.Equal(t, ReasonMissingRequiredArgument, noMatch.Reason)
}

func TestResolveConversionFailureDemotesCandidate(t *testing.T) {
	table := newTestTable(t, "deploy {env} --replicas {n:int?}")
	registry := NewConverterRegistry()

	_, noMatch := Resolve([]string{"deploy", "prod", "--replicas", "not-a-number"}, table, registry)
	require.NotNil(t, noMatch)
	assert.Equal(t, ReasonConversionFailure, noMatch.Reason)
}

func TestResolveNegativeNumberIsNotMistakenForOption(t *testing.T) {
	table := newTestTable(t, "set {x:int}")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"set", "-5"}, table, registry)
	require.Nil(t, noMatch)
	assert.Equal(t, -5, res.Bound.Values["x"])
}

func TestResolveOptionalParameterSkippedWhenFollowedByOption(t *testing.T) {
	table := newTestTable(t, "test {other?} --verbose,-v")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"test", "--verbose"}, table, registry)
	require.Nil(t, noMatch)
	_, bound := res.Bound.Values["other"]
	assert.False(t, bound)
	assert.Equal(t, true, res.Bound.Values["verbose"])
}

func TestResolveUnknownCommand(t *testing.T) {
	table := newTestTable(t, "status")
	registry := NewConverterRegistry()

	_, noMatch := Resolve([]string{"bogus"}, table, registry)
	require.NotNil(t, noMatch)
	assert.Equal(t, ReasonUnknownCommand, noMatch.Reason)
}

func TestResolveSpecificityPrefersLiteralOverParameter(t *testing.T) {
	table := newTestTable(t, "status {id}", "status active")
	registry := NewConverterRegistry()

	res, noMatch := Resolve([]string{"status", "active"}, table, registry)
	require.Nil(t, noMatch)
	assert.Equal(t, "status active", res.Endpoint.Pattern)
}
