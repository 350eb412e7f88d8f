package routecraft

import "strings"

// Tokenize produces a token stream for pattern. The stream is always
// finite and always terminated by a TokenEndOfInput token.
//
// Description text (everything following a `|`) is the one place where
// whitespace is significant: inside an open `{...}` it runs to the next
// unescaped `}`, since a parameter description is bounded by its own
// brace; outside any brace — an option description — there is no later
// structural boundary to stop at, so it runs to the end of the pattern.
// A pattern author who wants an option description must therefore put it
// last, which matches how every pattern in practice is written.
func Tokenize(pattern string) []Token {
	l := &lexer{runes: []rune(pattern)}
	return l.run()
}

type lexer struct {
	runes      []rune
	pos        int
	braceDepth int
	toks       []Token
}

func (l *lexer) run() []Token {
	for l.pos < len(l.runes) {
		c := l.runes[l.pos]

		switch {
		case isSpace(c):
			l.pos++
		case c == '{':
			l.emit(TokenLeftBrace, "{", l.pos, 1)
			l.braceDepth++
			l.pos++
		case c == '}':
			l.emit(TokenRightBrace, "}", l.pos, 1)
			if l.braceDepth > 0 {
				l.braceDepth--
			}
			l.pos++
		case c == ':':
			l.emit(TokenColon, ":", l.pos, 1)
			l.pos++
		case c == '?':
			l.emit(TokenQuestionMark, "?", l.pos, 1)
			l.pos++
		case c == ',':
			l.emit(TokenComma, ",", l.pos, 1)
			l.pos++
		case c == '*':
			l.emit(TokenAsterisk, "*", l.pos, 1)
			l.pos++
		case c == '|':
			l.lexDescription()
		case c == '-':
			l.lexDash()
		case isIdentStart(c):
			l.lexIdentifier()
		default:
			// Unknown punctuation: a single-rune Invalid token keeps the
			// stream finite without swallowing the rest of the pattern.
			l.emit(TokenInvalid, string(c), l.pos, 1)
			l.pos++
		}
	}

	l.emit(TokenEndOfInput, "", l.pos, 0)
	return l.toks
}

func (l *lexer) emit(kind TokenKind, lexeme string, pos, length int) {
	l.toks = append(l.toks, Token{Kind: kind, Lexeme: lexeme, Position: pos, Length: length})
}

func (l *lexer) lexDescription() {
	l.emit(TokenPipe, "|", l.pos, 1)
	l.pos++
	start := l.pos
	if l.braceDepth > 0 {
		for l.pos < len(l.runes) && l.runes[l.pos] != '}' {
			l.pos++
		}
	} else {
		l.pos = len(l.runes)
	}
	if l.pos > start {
		l.emit(TokenDescriptionText, string(l.runes[start:l.pos]), start, l.pos-start)
	}
}

// lexDash handles every token shape that begins with '-': "--name"
// (LongDash + Identifier), bare "--" (EndOfOptions), "-x" (ShortDash +
// single-letter Identifier), and the malformed shapes — "-foobar",
// "---x", "--3x" — that must surface as one Invalid token rather than a
// misleading valid pair. Runs that start with a letter ("foo--bar",
// "foo-") are lexed by lexIdentifier.
func (l *lexer) lexDash() {
	start := l.pos
	runes := l.runes

	if start+1 < len(runes) && runes[start+1] == '-' {
		// "--" prefix.
		after := start + 2
		if after >= len(runes) || isSpace(runes[after]) {
			l.emit(TokenEndOfOptions, "--", start, 2)
			l.pos = after
			return
		}
		if isIdentStart(runes[after]) {
			end := scanIdentRun(runes, after)
			name := string(runes[after:end])
			if isValidIdentifier(name) {
				l.emit(TokenLongDash, "--", start, 2)
				l.emit(TokenIdentifier, name, after, end-after)
				l.pos = end
				return
			}
		}
		// Anything else ("---x", "--3x", "--"+invalid name) is ambiguous
		// between option syntax and a malformed name: one Invalid token
		// covering the whole run.
		end := scanIdentRun(runes, start)
		l.emit(TokenInvalid, string(runes[start:end]), start, end-start)
		l.pos = end
		return
	}

	// Single '-' prefix.
	if start+1 < len(runes) && isIdentStart(runes[start+1]) {
		afterLetter := start + 2
		if afterLetter >= len(runes) || !isIdentChar(runes[afterLetter]) {
			// Exactly one letter follows: a short option.
			l.emit(TokenShortDash, "-", start, 1)
			l.emit(TokenIdentifier, string(runes[start+1]), start+1, 1)
			l.pos = afterLetter
			return
		}
		// "-foobar": single dash followed by a multi-character identifier.
		end := scanIdentRun(runes, start+1)
		l.emit(TokenInvalid, string(runes[start:end]), start, end-start)
		l.pos = end
		return
	}

	// Lone '-' with nothing identifier-like after it (end of input, a
	// digit, punctuation, or whitespace). Not valid option syntax.
	l.emit(TokenInvalid, "-", start, 1)
	l.pos = start + 1
}

func (l *lexer) lexIdentifier() {
	end := scanIdentRun(l.runes, l.pos)
	lexeme := string(l.runes[l.pos:end])
	if isValidIdentifier(lexeme) {
		l.emit(TokenIdentifier, lexeme, l.pos, end-l.pos)
	} else {
		l.emit(TokenInvalid, lexeme, l.pos, end-l.pos)
	}
	l.pos = end
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-'
}

// scanIdentRun extends the maximal run of [A-Za-z0-9_-] starting at pos,
// whether or not that run is a valid identifier.
func scanIdentRun(runes []rune, pos int) int {
	end := pos
	for end < len(runes) && isIdentChar(runes[end]) {
		end++
	}
	return end
}

func isValidIdentifier(s string) bool {
	if s == "" || !isIdentStart(rune(s[0])) {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	return !strings.HasSuffix(s, "-")
}
