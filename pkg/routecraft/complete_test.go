package routecraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hasCandidate(cands []CompletionCandidate, text string) bool {
	for _, c := range cands {
		if c.Text == text {
			return true
		}
	}
	return false
}

func TestCompleteEmptyBufferListsTopLevelCommands(t *testing.T) {
	table := newTestTable(t, "deploy {env}", "status")
	cands := Complete("", table)
	assert.True(t, hasCandidate(cands, "deploy"))
	assert.True(t, hasCandidate(cands, "status"))
}

func TestCompletePartialWordFiltersByPrefix(t *testing.T) {
	table := newTestTable(t, "deploy {env}", "status")
	cands := Complete("dep", table)
	assert.True(t, hasCandidate(cands, "deploy"))
	assert.False(t, hasCandidate(cands, "status"))
}

func TestCompleteTrailingSpaceSuggestsNextToken(t *testing.T) {
	table := newTestTable(t, "deploy {env} --force,-f")
	cands := Complete("deploy ", table)
	assert.True(t, hasCandidate(cands, "{env}"))
}

func TestCompleteExcludesAlreadyUsedOption(t *testing.T) {
	table := newTestTable(t, "deploy {env} --force,-f")
	cands := Complete("deploy prod --force ", table)
	assert.False(t, hasCandidate(cands, "--force"))
	assert.True(t, hasCandidate(cands, "--help"))
}

func TestCompleteAlwaysOffersHelp(t *testing.T) {
	table := newTestTable(t, "status")
	cands := Complete("status ", table)
	assert.True(t, hasCandidate(cands, "--help"))
	assert.True(t, hasCandidate(cands, "-h"))
}

func TestCompleteOrdersCommandsAlphabetically(t *testing.T) {
	table := newTestTable(t, "git status", "git commit", "greet {name}")
	cands := Complete("g", table)

	var commands []string
	for _, c := range cands {
		if c.Kind == KindCommand {
			commands = append(commands, c.Text)
		}
	}
	assert.Equal(t, []string{"git", "greet"}, commands)
}

func TestCompleteGroupsByKindBeforeAlphabetizing(t *testing.T) {
	table := newTestTable(t, "deploy {env} --zone,-z {z} --apply,-a")
	cands := Complete("deploy prod ", table)

	var kinds []CandidateKind
	for _, c := range cands {
		kinds = append(kinds, c.Kind)
	}
	for i := 1; i < len(kinds); i++ {
		assert.LessOrEqualf(t, candidateGroupOrder[kinds[i-1]], candidateGroupOrder[kinds[i]],
			"candidate %d (%v) out of kind-group order relative to %d (%v)", i, kinds[i], i-1, kinds[i-1])
	}

	var longOptions []string
	for _, c := range cands {
		if c.Kind == KindLongOption {
			longOptions = append(longOptions, c.Text)
		}
	}
	assert.Equal(t, []string{"--apply", "--zone"}, longOptions)
}

func TestCompleteMatchesCaseInsensitively(t *testing.T) {
	table := newTestTable(t, "deploy {env}", "status")
	cands := Complete("DEP", table)
	assert.True(t, hasCandidate(cands, "deploy"))
	assert.False(t, hasCandidate(cands, "status"))
}

func TestCompleteLiteralSegmentMatchIsCaseInsensitive(t *testing.T) {
	table := newTestTable(t, "deploy {env} --force,-f")
	cands := Complete("DEPLOY prod ", table)
	assert.True(t, hasCandidate(cands, "--force"))
	assert.True(t, hasCandidate(cands, "--help"))
}

func TestCompleteDedupesCaseInsensitively(t *testing.T) {
	table := newTestTable(t, "Status", "status")
	cands := Complete("stat", table)

	count := 0
	for _, c := range cands {
		if c.Kind == KindCommand {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
