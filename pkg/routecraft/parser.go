package routecraft

import "fmt"

// Parse performs a recursive-descent parse of tokens into a PatternAST.
// Success is signalled by an empty error slice; the parser recovers
// after each error by skipping the offending token(s) and continuing, so
// a single call reports as many problems as it can rather than bailing
// at the first one.
func Parse(tokens []Token) (*PatternAST, []*ParseError) {
	p := &parser{tokens: tokens, seenLong: map[string]bool{}, seenShort: map[string]bool{}}
	for p.peek().Kind != TokenEndOfInput {
		before := p.pos
		p.parseSegment()
		if p.pos == before {
			// Safety net: every branch of parseSegment must advance, but
			// guard against an infinite loop if one doesn't.
			p.consume()
		}
	}
	return &PatternAST{Segments: p.segments}, p.errors
}

type parser struct {
	tokens     []Token
	pos        int
	segments   []SegmentNode
	errors     []*ParseError
	sawCatchAll bool
	seenLong   map[string]bool
	seenShort  map[string]bool
}

func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EndOfInput
	}
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) consume() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) err(kind ParseErrorKind, pos, length int, msg, suggestion string) {
	p.errors = append(p.errors, newParseError(kind, pos, length, msg, suggestion))
}

func (p *parser) parseSegment() {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdentifier:
		p.consume()
		p.addSegment(LiteralSegment{Value: tok.Lexeme, Position: tok.Position})
	case TokenLeftBrace:
		if seg, ok := p.parseParameter(); ok {
			p.addSegment(seg)
		}
	case TokenLongDash, TokenShortDash:
		if seg, ok := p.parseOption(); ok {
			p.addSegment(seg)
		}
	case TokenEndOfOptions:
		p.err(InvalidIdentifier, tok.Position, tok.Length,
			"'--' is reserved for end-of-options at match time and cannot appear as a pattern literal", "")
		p.consume()
	case TokenRightBrace:
		p.err(UnmatchedBrace, tok.Position, tok.Length, "unmatched '}'", "")
		p.consume()
	case TokenInvalid:
		p.parseInvalidToken(tok)
	default:
		p.err(MissingRequiredToken, tok.Position, maxInt(tok.Length, 1),
			fmt.Sprintf("unexpected token %s", tok.Kind), "")
		p.consume()
	}
}

// parseInvalidToken recognizes "<name>" (common shell-usage-line typo
// for "{name}") as a special case with a helpful suggestion, and falls
// back to a generic malformed-identifier error otherwise.
func (p *parser) parseInvalidToken(tok Token) {
	if tok.Lexeme == "<" {
		save := p.pos
		p.consume()
		if p.peek().Kind == TokenIdentifier {
			nameTok := p.peek()
			p.consume()
			if p.peek().Kind == TokenInvalid && p.peek().Lexeme == ">" {
				endTok := p.peek()
				p.consume()
				length := endTok.Position + endTok.Length - tok.Position
				p.err(InvalidParameterSyntax, tok.Position, length,
					fmt.Sprintf("'<%s>' is not a parameter", nameTok.Lexeme),
					fmt.Sprintf("use `{%s}`", nameTok.Lexeme))
				return
			}
		}
		p.pos = save
	}
	p.err(InvalidIdentifier, tok.Position, maxInt(tok.Length, 1),
		fmt.Sprintf("%q is not a valid identifier", tok.Lexeme), "")
	p.consume()
}

// parseParameter parses "{" ["*"] Identifier ["?"] [":" type ["?"]]
// ["|" DescriptionText] "}". The opening brace is the current token.
func (p *parser) parseParameter() (ParameterSegment, bool) {
	openPos := p.peek().Position
	p.consume() // '{'

	var seg ParameterSegment
	seg.Position = openPos

	if p.peek().Kind == TokenAsterisk {
		seg.IsCatchAll = true
		p.consume()
	}

	if p.peek().Kind != TokenIdentifier {
		p.err(MissingRequiredToken, p.peek().Position, maxInt(p.peek().Length, 1),
			"expected a parameter name", "use `{name}`")
		p.recoverToBraceOrSegment()
		return seg, false
	}
	seg.Name = p.peek().Lexeme
	p.consume()

	if p.peek().Kind == TokenQuestionMark {
		seg.IsOptional = true
		p.consume()
	}

	if p.peek().Kind == TokenColon {
		p.consume()
		typeTok := p.peek()
		if typeTok.Kind != TokenIdentifier {
			p.err(InvalidTypeConstraint, typeTok.Position, maxInt(typeTok.Length, 1),
				fmt.Sprintf("%q is not a valid type name", typeTok.Lexeme),
				fmt.Sprintf("register a custom type converter for '%s'", typeTok.Lexeme))
		} else {
			seg.Type = typeTok.Lexeme
			p.consume()
		}
		// "{x:int?}" — a '?' after the type also marks the parameter
		// optional (or null-capable); it does not require a preceding
		// name-level '?'.
		if p.peek().Kind == TokenQuestionMark {
			seg.IsOptional = true
			p.consume()
		}
	}

	if p.peek().Kind == TokenPipe {
		p.consume()
		if p.peek().Kind == TokenDescriptionText {
			seg.Description = p.peek().Lexeme
			p.consume()
		}
	}

	if p.peek().Kind != TokenRightBrace {
		p.err(UnmatchedBrace, openPos, 1, "'{' is never closed", "")
		p.recoverToBraceOrSegment()
		return seg, true
	}
	p.consume() // '}'
	return seg, true
}

// recoverToBraceOrSegment advances past tokens until a plausible
// resynchronization point: a closing brace (consumed, since it likely
// belongs to the malformed parameter) or the start of a new segment.
func (p *parser) recoverToBraceOrSegment() {
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEndOfInput:
			return
		case TokenRightBrace:
			p.consume()
			return
		case TokenIdentifier, TokenLeftBrace, TokenLongDash, TokenShortDash:
			return
		default:
			p.consume()
		}
	}
}

// parseOption parses ("--" Identifier | "-" Identifier) ("," "-"
// Identifier)? [parameter] ["|" DescriptionText].
func (p *parser) parseOption() (OptionSegment, bool) {
	start := p.peek()
	var seg OptionSegment
	seg.Position = start.Position

	switch start.Kind {
	case TokenLongDash:
		p.consume()
		if p.peek().Kind != TokenIdentifier {
			p.err(MissingRequiredToken, p.peek().Position, maxInt(p.peek().Length, 1),
				"expected an option name after '--'", "")
			return seg, false
		}
		seg.LongName = p.peek().Lexeme
		p.consume()
	case TokenShortDash:
		p.consume()
		if p.peek().Kind != TokenIdentifier {
			p.err(MissingRequiredToken, p.peek().Position, maxInt(p.peek().Length, 1),
				"expected an option name after '-'", "")
			return seg, false
		}
		seg.ShortName = p.peek().Lexeme
		p.consume()
	}

	if p.peek().Kind == TokenComma {
		p.consume()
		if p.peek().Kind != TokenShortDash {
			p.err(MissingRequiredToken, p.peek().Position, maxInt(p.peek().Length, 1),
				"expected '-' after ','", "")
		} else {
			p.consume()
			if p.peek().Kind != TokenIdentifier {
				p.err(MissingRequiredToken, p.peek().Position, maxInt(p.peek().Length, 1),
					"expected a short option name", "")
			} else {
				seg.ShortName = p.peek().Lexeme
				p.consume()
			}
		}
	}

	if p.peek().Kind == TokenLeftBrace {
		if param, ok := p.parseParameter(); ok {
			if param.IsCatchAll {
				p.err(CatchAllNotLast, param.Position, 1,
					"an option's value parameter cannot be a catch-all", "")
			}
			v := param
			seg.ValueParam = &v
		}
	}

	if p.peek().Kind == TokenPipe {
		p.consume()
		if p.peek().Kind == TokenDescriptionText {
			seg.Description = p.peek().Lexeme
			p.consume()
		}
	}

	if seg.LongName != "" {
		if p.seenLong[seg.LongName] {
			p.err(DuplicateOptionAlias, seg.Position, 1,
				fmt.Sprintf("option '--%s' is declared more than once", seg.LongName), "")
		}
		p.seenLong[seg.LongName] = true
	}
	if seg.ShortName != "" {
		if p.seenShort[seg.ShortName] {
			p.err(DuplicateOptionAlias, seg.Position, 1,
				fmt.Sprintf("option '-%s' is declared more than once", seg.ShortName), "")
		}
		p.seenShort[seg.ShortName] = true
	}

	return seg, true
}

func (p *parser) addSegment(seg SegmentNode) {
	isPositional := false
	isCatchAll := false
	switch s := seg.(type) {
	case LiteralSegment:
		isPositional = true
	case ParameterSegment:
		isPositional = true
		isCatchAll = s.IsCatchAll
	}
	if isPositional && p.sawCatchAll {
		p.err(CatchAllNotLast, seg.Pos(), 1,
			"the catch-all parameter must be the last positional segment", "")
	}
	if isCatchAll {
		p.sawCatchAll = true
	}
	p.segments = append(p.segments, seg)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
