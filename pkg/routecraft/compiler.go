package routecraft

import "fmt"

// CompiledRoute is the lowered form of a PatternAST: an ordered sequence
// of positional matchers, an index of options keyed by both their long
// and short forms, the name of the catch-all parameter (if any), and a
// specificity score used to rank candidates during resolution.
type CompiledRoute struct {
	Segments     []Matcher // positional matchers only: literals, parameters, catch-all
	OptionIndex  map[string]*OptionMatcher
	CatchAllName string
	Specificity  int

	// segmentCount is the number of positional and option segments. The
	// resolver does not use it: routes that share a specificity score are
	// ordered by the segments their match left unused, then by
	// registration order.
	segmentCount int
}

// Compile lowers ast into a CompiledRoute. It is pure and independently
// revalidates the cross-segment invariants the parser already enforces
// (single catch-all, unique option aliases, no catch-all as an option's
// value parameter) so that a CompiledRoute can never be built from an
// inconsistent AST, regardless of how the AST was produced.
func Compile(ast *PatternAST) (*CompiledRoute, error) {
	route := &CompiledRoute{OptionIndex: map[string]*OptionMatcher{}}

	seenLong := map[string]bool{}
	seenShort := map[string]bool{}
	sawCatchAll := false

	for _, seg := range ast.Segments {
		switch s := seg.(type) {
		case LiteralSegment:
			route.Segments = append(route.Segments, LiteralMatcher{Value: s.Value})
			route.Specificity += 100
			route.segmentCount++

		case ParameterSegment:
			if s.IsCatchAll {
				if sawCatchAll {
					return nil, fmt.Errorf("routecraft: pattern has more than one catch-all parameter")
				}
				sawCatchAll = true
				route.CatchAllName = s.Name
			}
			pm := ParameterMatcher{
				Name:           s.Name,
				TypeConstraint: s.Type,
				IsCatchAll:     s.IsCatchAll,
				IsOptional:     s.IsOptional,
			}
			route.Segments = append(route.Segments, pm)
			route.Specificity += parameterSpecificity(pm)
			route.segmentCount++

		case OptionSegment:
			if s.LongName == "" && s.ShortName == "" {
				return nil, fmt.Errorf("routecraft: option at position %d has neither a long nor a short form", s.Position)
			}
			if s.LongName != "" {
				if seenLong[s.LongName] {
					return nil, fmt.Errorf("routecraft: duplicate option alias '--%s'", s.LongName)
				}
				seenLong[s.LongName] = true
			}
			if s.ShortName != "" {
				if seenShort[s.ShortName] {
					return nil, fmt.Errorf("routecraft: duplicate option alias '-%s'", s.ShortName)
				}
				seenShort[s.ShortName] = true
			}

			om := &OptionMatcher{IsOptional: true, IsRepeated: s.IsRepeated}
			if s.LongName != "" {
				om.LongForm = "--" + s.LongName
			}
			if s.ShortName != "" {
				om.ShortForm = "-" + s.ShortName
			}
			if s.ValueParam != nil {
				if s.ValueParam.IsCatchAll {
					return nil, fmt.Errorf("routecraft: option '%s' value parameter cannot be a catch-all", optionLabel(s))
				}
				om.ExpectsValue = true
				om.ParameterName = s.ValueParam.Name
				om.TypeConstraint = s.ValueParam.Type
				// A required value parameter (no '?') makes the option
				// itself required: it must be harvested for the route to
				// match at all.
				om.IsOptional = s.ValueParam.IsOptional
			}

			if om.LongForm != "" {
				route.OptionIndex[om.LongForm] = om
			}
			if om.ShortForm != "" {
				route.OptionIndex[om.ShortForm] = om
			}
			route.Specificity += om.specificity()
			route.segmentCount++
		}
	}

	return route, nil
}

func optionLabel(s OptionSegment) string {
	if s.LongName != "" {
		return "--" + s.LongName
	}
	return "-" + s.ShortName
}
