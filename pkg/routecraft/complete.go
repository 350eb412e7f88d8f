package routecraft

import (
	"sort"
	"strings"
)

// CandidateKind classifies a CompletionCandidate so callers can group and
// order suggestions (commands before options, options before help, and so
// on) and so a line editor can tell a flag from a parameter placeholder.
type CandidateKind int

const (
	KindCommand CandidateKind = iota
	KindSubcommand
	KindParameter
	KindLongOption
	KindShortOption
	KindEnumValue
	KindHelp
)

// CompletionCandidate is one suggestion returned by Complete: the text to
// insert, a short label describing what it completes, its kind (for
// grouping/ordering), and whether accepting it still requires a value to
// follow (e.g. a value-expecting option).
type CompletionCandidate struct {
	Text          string
	Description   string
	Kind          CandidateKind
	RequiresValue bool
}

// InputTokenizer splits a REPL input buffer the same way the lexer
// splits pattern text for positional/option boundaries, but over raw
// user input rather than pattern syntax: whitespace-separated tokens,
// with an explicit flag for whether buffer ends in trailing whitespace
// (meaning the user has finished the last token and is starting a new,
// as-yet-empty one).
type InputTokenizer struct {
	Tokens         []string
	EndsWithSpace  bool
	PartialWord    string // the token being typed, "" if EndsWithSpace
	TokensForMatch []string
}

// TokenizeInput splits buffer into whitespace-separated tokens for the
// completion engine. Unlike the pattern lexer this never reports errors:
// any input is valid to complete against.
func TokenizeInput(buffer string) InputTokenizer {
	fields := strings.Fields(buffer)
	endsWithSpace := len(buffer) > 0 && isSpace(rune(buffer[len(buffer)-1]))

	it := InputTokenizer{Tokens: fields, EndsWithSpace: endsWithSpace}
	if endsWithSpace || len(fields) == 0 {
		it.TokensForMatch = fields
		it.PartialWord = ""
	} else {
		it.TokensForMatch = fields[:len(fields)-1]
		it.PartialWord = fields[len(fields)-1]
	}
	return it
}

// candidateGroupOrder ranks kinds for display: commands, subcommands,
// parameters, long options, short options, enum values, then help.
var candidateGroupOrder = map[CandidateKind]int{
	KindCommand:     0,
	KindSubcommand:  1,
	KindParameter:   2,
	KindLongOption:  3,
	KindShortOption: 4,
	KindEnumValue:   5,
	KindHelp:        6,
}

// Complete returns completion candidates for buffer against every
// endpoint in table. It tokenizes buffer, relaxes the resolver's strict
// matching into a partial "how far did this endpoint get" state per
// candidate endpoint, and for every endpoint that is still viable emits
// the next token(s) it would accept. Matching against the partial word
// and de-duplication are both case-insensitive; the result is grouped by
// kind and alphabetical within each group.
func Complete(buffer string, table *EndpointTable) []CompletionCandidate {
	it := TokenizeInput(buffer)

	// Unlike Resolve, completion can't narrow the pool by an exact,
	// case-sensitive first-literal lookup: the first token the user typed
	// may not yet match an endpoint's canonical case. Every endpoint is a
	// candidate; candidatesForEndpoint's own case-insensitive replay and
	// the prefix filter below narrow the result.
	pool := table.allCandidates()

	partial := strings.ToLower(it.PartialWord)
	seen := map[string]bool{}
	var out []CompletionCandidate

	for _, ep := range pool {
		for _, cand := range candidatesForEndpoint(ep, it) {
			if partial != "" && !strings.HasPrefix(strings.ToLower(cand.Text), partial) {
				continue
			}
			key := strings.ToLower(cand.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, cand)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		gi, gj := candidateGroupOrder[out[i].Kind], candidateGroupOrder[out[j].Kind]
		if gi != gj {
			return gi < gj
		}
		return strings.ToLower(out[i].Text) < strings.ToLower(out[j].Text)
	})

	return out
}

// candidatesForEndpoint relaxes matchEndpoint into a completion walk: it
// advances through ep's compiled route consuming TokensForMatch exactly
// as the resolver would, but instead of failing outright when a token
// doesn't fit, it stops and reports what would have come next. Literal
// comparisons are case-insensitive here, matching completion's case
// tolerance even though the resolver's own matching stays case-sensitive.
func candidatesForEndpoint(ep *Endpoint, it InputTokenizer) []CompletionCandidate {
	route := ep.compiled
	tokens := it.TokensForMatch
	n := len(tokens)
	consumed := make([]bool, n)
	harvested := map[string]bool{}

	// Replay the option harvest against the already-typed tokens so that
	// options already supplied are excluded from suggestions.
	for i := 0; i < n; i++ {
		if consumed[i] {
			continue
		}
		t := tokens[i]
		if !looksLikeOption(t) {
			continue
		}
		om, ok := route.OptionIndex[t]
		if !ok {
			continue
		}
		consumed[i] = true
		harvested[om.BindKey()] = true
		if om.ExpectsValue && i+1 < n && !consumed[i+1] {
			consumed[i+1] = true
		}
	}

	cursor := 0
	advance := func() {
		for cursor < n && consumed[cursor] {
			cursor++
		}
	}

	segIdx := 0
	for segIdx < len(route.Segments) {
		advance()
		seg := route.Segments[segIdx]
		kind := KindCommand
		if segIdx > 0 {
			kind = KindSubcommand
		}

		switch m := seg.(type) {
		case LiteralMatcher:
			if cursor >= n {
				// Nothing left to consume: the literal itself is the
				// suggestion.
				return []CompletionCandidate{{Text: m.Value, Description: ep.Description, Kind: kind}}
			}
			if !strings.EqualFold(tokens[cursor], m.Value) {
				// A completed word doesn't match this endpoint: no
				// suggestions from it. The partial word is never in
				// tokens; it is handled by the cursor >= n case above
				// together with the caller's prefix filter.
				return nil
			}
			consumed[cursor] = true
			cursor++
			segIdx++

		case ParameterMatcher:
			if m.IsCatchAll {
				// A catch-all accepts anything from here on; nothing
				// specific to suggest beyond option completions.
				return optionCandidates(route, harvested)
			}
			if cursor >= n {
				// Next token would bind this parameter: no literal
				// suggestion, only the options still available, plus a
				// placeholder so callers can render "<name>" if desired.
				placeholder := CompletionCandidate{
					Text:          "{" + m.Name + "}",
					Description:   parameterDescription(m),
					Kind:          KindParameter,
					RequiresValue: true,
				}
				return append([]CompletionCandidate{placeholder}, optionCandidates(route, harvested)...)
			}
			consumed[cursor] = true
			cursor++
			segIdx++
		}
	}

	// Every positional segment consumed; remaining suggestions are
	// unused options (plus --help, -h, always offered).
	return optionCandidates(route, harvested)
}

func optionCandidates(route *CompiledRoute, harvested map[string]bool) []CompletionCandidate {
	seen := map[*OptionMatcher]bool{}
	var out []CompletionCandidate
	for _, om := range route.OptionIndex {
		if seen[om] || harvested[om.BindKey()] {
			continue
		}
		seen[om] = true
		if om.LongForm != "" {
			out = append(out, CompletionCandidate{
				Text: om.LongForm, Description: optionDescription(om),
				Kind: KindLongOption, RequiresValue: om.ExpectsValue,
			})
		}
		if om.ShortForm != "" {
			out = append(out, CompletionCandidate{
				Text: om.ShortForm, Description: optionDescription(om),
				Kind: KindShortOption, RequiresValue: om.ExpectsValue,
			})
		}
	}
	out = append(out, CompletionCandidate{Text: "--help", Description: "show help", Kind: KindHelp})
	out = append(out, CompletionCandidate{Text: "-h", Description: "show help", Kind: KindHelp})
	return out
}

func parameterDescription(m ParameterMatcher) string {
	if m.TypeConstraint != "" {
		return "parameter (" + m.TypeConstraint + ")"
	}
	return "parameter"
}

func optionDescription(om *OptionMatcher) string {
	if om.ExpectsValue {
		return "option, expects a value"
	}
	return "flag"
}
