package routecraft

// Matcher is the sealed set of compiled segment shapes. Concrete types
// are LiteralMatcher, ParameterMatcher, and OptionMatcher.
type Matcher interface {
	matcher()
}

// LiteralMatcher requires the next unconsumed argument to equal Value
// exactly (case-sensitive).
type LiteralMatcher struct {
	Value string
}

func (LiteralMatcher) matcher() {}

// ParameterMatcher binds a positional argument to Name, optionally
// converting it via TypeConstraint.
type ParameterMatcher struct {
	Name           string
	TypeConstraint string // empty when untyped
	IsCatchAll     bool
	IsOptional     bool
}

func (ParameterMatcher) matcher() {}

// OptionMatcher recognizes a long and/or short flag and, if
// ExpectsValue, consumes the following argument as its value.
type OptionMatcher struct {
	LongForm       string // e.g. "--force"; empty if short-only
	ShortForm      string // e.g. "-f"; empty if long-only
	ParameterName  string // the value parameter's own name, as written in the pattern (a metavar)
	TypeConstraint string // empty when the value parameter is untyped
	ExpectsValue   bool
	IsOptional     bool
	IsRepeated     bool
}

// BindKey is the name a successfully matched option is bound under in
// BoundParameters: the option's own long name if it has one, else its
// short name. The value parameter's own name (ParameterName) is a
// metavar for documentation and completion only — "--replicas {n:int?}"
// binds the key "replicas", not "n".
func (o OptionMatcher) BindKey() string {
	if o.LongForm != "" {
		return o.LongForm[2:]
	}
	return o.ShortForm[1:]
}

func (OptionMatcher) matcher() {}

func (o OptionMatcher) specificity() int {
	if o.IsOptional {
		return 25
	}
	return 50
}

// parameterSpecificity combines the four positional contribution rules
// into a single value per parameter. A typed parameter's type
// contribution (+20) takes priority over the optional discount (+5):
// for a parameter that is both typed and optional, this favors the
// stronger, more informative signal (type).
func parameterSpecificity(p ParameterMatcher) int {
	switch {
	case p.IsCatchAll:
		return 1
	case p.TypeConstraint != "":
		return 20
	case p.IsOptional:
		return 5
	default:
		return 10
	}
}
