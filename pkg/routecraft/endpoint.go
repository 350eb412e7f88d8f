package routecraft

import "sync"

// MessageType classifies an endpoint for collaborators such as
// telemetry or help rendering; the core never inspects it itself.
type MessageType int

const (
	Unspecified MessageType = iota
	Query
	IdempotentCommand
	Command
)

// EndpointMetadata is supplied at registration and copied onto the
// resulting Endpoint.
type EndpointMetadata struct {
	Description string
	MessageType MessageType
}

// Endpoint is a registered (pattern, handler, metadata) triple. Its
// compiled route is immutable for the lifetime of the process; only the
// core's resolver and completion engine read it, and only at dispatch
// time.
type Endpoint struct {
	Pattern     string
	Description string
	MessageType MessageType

	// HandlerRef is opaque to the core. It is handed back to the caller
	// unchanged on a successful match.
	HandlerRef any

	compiled       *CompiledRoute
	registrationID int
}

// Compiled exposes the endpoint's CompiledRoute to the resolver and
// completion engine. Collaborators outside the core (help rendering,
// introspection) should prefer Pattern, Description, and MessageType —
// the compiled form is not part of the introspection surface.
func (e *Endpoint) Compiled() *CompiledRoute { return e.compiled }

// EndpointTable is an ordered, immutable-after-construction collection
// of endpoints. A first-literal index accelerates resolution: most
// invocations narrow to a handful of candidates before any matcher ever
// runs. Completion does not use the index; it considers every endpoint.
type EndpointTable struct {
	mu sync.RWMutex // write-locked by Register; read-locked by Endpoints and candidatesFor

	endpoints []*Endpoint
	byFirst   map[string][]*Endpoint // keyed by the first literal segment
	defaults  []*Endpoint            // empty positional + options-only endpoints
	nextID    int
}

// NewEndpointTable returns an empty table ready for registration.
func NewEndpointTable() *EndpointTable {
	return &EndpointTable{byFirst: map[string][]*Endpoint{}}
}

// Register parses and compiles pattern, appends the resulting Endpoint
// to the table, and returns it. Registration order is preserved and is
// the final tiebreaker during resolution. On a parse failure the table
// is left unchanged and the parse errors are returned.
func (t *EndpointTable) Register(pattern string, handlerRef any, meta EndpointMetadata) (*Endpoint, []*ParseError) {
	ast, errs := Parse(Tokenize(pattern))
	if len(errs) > 0 {
		return nil, errs
	}
	compiled, err := Compile(ast)
	if err != nil {
		return nil, []*ParseError{newParseError(MissingRequiredToken, 0, len(pattern), err.Error(), "")}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ep := &Endpoint{
		Pattern:        pattern,
		Description:    meta.Description,
		MessageType:    meta.MessageType,
		HandlerRef:     handlerRef,
		compiled:       compiled,
		registrationID: t.nextID,
	}
	t.nextID++
	t.endpoints = append(t.endpoints, ep)

	if firstLiteral, ok := firstLiteralOf(compiled); ok {
		t.byFirst[firstLiteral] = append(t.byFirst[firstLiteral], ep)
	} else {
		t.defaults = append(t.defaults, ep)
	}

	return ep, nil
}

// Endpoints returns every registered endpoint in registration order, for
// help rendering and other introspection.
func (t *EndpointTable) Endpoints() []*Endpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Endpoint, len(t.endpoints))
	copy(out, t.endpoints)
	return out
}

// candidatesFor returns the endpoints worth trying against an argument
// vector whose first eligible token is firstArg: every endpoint whose
// pattern starts with that literal, plus every default-route endpoint
// (empty positional segments, or options-only).
func (t *EndpointTable) candidatesFor(firstArg string) []*Endpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*Endpoint
	out = append(out, t.byFirst[firstArg]...)
	out = append(out, t.defaults...)
	return out
}

// allCandidates returns every endpoint; the completion engine uses it
// for every buffer, since its literal matching is case-insensitive and
// the first-literal index is keyed by exact text.
func (t *EndpointTable) allCandidates() []*Endpoint {
	return t.Endpoints()
}

func firstLiteralOf(route *CompiledRoute) (string, bool) {
	if len(route.Segments) == 0 {
		return "", false
	}
	if lit, ok := route.Segments[0].(LiteralMatcher); ok {
		return lit.Value, true
	}
	return "", false
}
