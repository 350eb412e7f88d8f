package routecraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []Token, want ...TokenKind) {
	t.Helper()
	require.Len(t, got, len(want))
	assert.Equal(t, want, kinds(got))
}

func TestTokenizeLiteralsAndParameter(t *testing.T) {
	toks := Tokenize("deploy {env}")
	assertKinds(t, toks,
		TokenIdentifier, TokenLeftBrace, TokenIdentifier, TokenRightBrace, TokenEndOfInput)
}

func TestTokenizeTypedOptionalParameter(t *testing.T) {
	toks := Tokenize("{n:int?}")
	assertKinds(t, toks,
		TokenLeftBrace, TokenIdentifier, TokenColon, TokenIdentifier, TokenQuestionMark,
		TokenRightBrace, TokenEndOfInput)
}

func TestTokenizeCatchAll(t *testing.T) {
	toks := Tokenize("exec {*args}")
	assertKinds(t, toks,
		TokenIdentifier, TokenLeftBrace, TokenAsterisk, TokenIdentifier, TokenRightBrace, TokenEndOfInput)
}

func TestTokenizeLongAndShortOption(t *testing.T) {
	toks := Tokenize("--force,-f")
	assertKinds(t, toks,
		TokenLongDash, TokenIdentifier, TokenComma, TokenShortDash, TokenIdentifier, TokenEndOfInput)
}

func TestTokenizeEndOfOptions(t *testing.T) {
	toks := Tokenize("exec -- {*args}")
	assertKinds(t, toks,
		TokenIdentifier, TokenEndOfOptions, TokenLeftBrace, TokenAsterisk, TokenIdentifier, TokenRightBrace, TokenEndOfInput)
}

func TestTokenizeDescriptionInsideBraceStopsAtBrace(t *testing.T) {
	toks := Tokenize("{env|target environment} rest")
	assertKinds(t, toks,
		TokenLeftBrace, TokenIdentifier, TokenPipe, TokenDescriptionText, TokenRightBrace,
		TokenIdentifier, TokenEndOfInput)
	assert.Equal(t, "target environment", toks[3].Lexeme)
}

func TestTokenizeOptionDescriptionRunsToEnd(t *testing.T) {
	toks := Tokenize("--force,-f|skip confirmation prompts")
	last := toks[len(toks)-2] // before EndOfInput
	require.Equal(t, TokenDescriptionText, last.Kind)
	assert.Equal(t, "skip confirmation prompts", last.Lexeme)
}

func TestTokenizeInvalidIdentifierShapes(t *testing.T) {
	cases := []string{"foo--bar", "foo-", "-foobar", "--3x"}
	for _, c := range cases {
		toks := Tokenize(c)
		assert.Truef(t, containsKind(toks, TokenInvalid), "Tokenize(%q) = %v, want an Invalid token", c, kinds(toks))
	}
}

func containsKind(toks []Token, k TokenKind) bool {
	for _, t := range toks {
		if t.Kind == k {
			return true
		}
	}
	return false
}

func TestTokenizeAlwaysTerminatesWithEndOfInput(t *testing.T) {
	inputs := []string{"", "   ", "{{{", "}}}", "---", "a b c", "<name>"}
	for _, in := range inputs {
		toks := Tokenize(in)
		require.NotEmpty(t, toks)
		assert.Equalf(t, TokenEndOfInput, toks[len(toks)-1].Kind, "Tokenize(%q) did not terminate with EndOfInput: %v", in, kinds(toks))
	}
}
