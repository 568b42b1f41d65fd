package middleware

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// Access is the authorization requirement of a route.
type Access uint8

const (
	// Authenticated is the zero value so that unmatched paths require a caller.
	Authenticated Access = iota
	Public
	RoleRestricted
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case RoleRestricted:
		return "role_restricted"
	default:
		return "authenticated"
	}
}

const prefixSuffix = "/**"

// Rule binds a path pattern to an access requirement. A pattern is either an
// exact path or a prefix ending in "/**", which matches the prefix itself and
// everything below it.
type Rule struct {
	Pattern string
	Access  Access
	Role    domain.Role
}

func PublicRoute(pattern string) Rule { return Rule{Pattern: pattern, Access: Public} }

func AuthenticatedRoute(pattern string) Rule { return Rule{Pattern: pattern, Access: Authenticated} }

func RoleRoute(pattern string, role domain.Role) Rule {
	return Rule{Pattern: pattern, Access: RoleRestricted, Role: role}
}

type compiledRule struct {
	Rule
	base   string
	prefix bool
	weight int
}

func (r compiledRule) matches(path string) bool {
	if !r.prefix {
		return path == r.base
	}
	return path == r.base || strings.HasPrefix(path, r.base+"/")
}

// Policy is an immutable route table. The most specific matching rule wins;
// paths no rule matches are Authenticated.
type Policy struct {
	rules []compiledRule
}

// NewPolicy validates and compiles rules.
func NewPolicy(rules ...Rule) (*Policy, error) {
	compiled := make([]compiledRule, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))

	for _, r := range rules {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("policy: pattern %q must start with /", r.Pattern)
		}
		if _, dup := seen[r.Pattern]; dup {
			return nil, fmt.Errorf("policy: duplicate pattern %q", r.Pattern)
		}
		seen[r.Pattern] = struct{}{}

		if r.Access == RoleRestricted {
			if _, err := domain.ParseRole(r.Role.String()); err != nil {
				return nil, fmt.Errorf("policy: pattern %q: %w", r.Pattern, err)
			}
		}

		cr := compiledRule{Rule: r, base: r.Pattern}
		if strings.HasSuffix(r.Pattern, prefixSuffix) {
			cr.prefix = true
			cr.base = strings.TrimSuffix(r.Pattern, prefixSuffix)
		}
		if strings.Contains(cr.base, "*") {
			return nil, fmt.Errorf("policy: pattern %q: wildcard only allowed as trailing /**", r.Pattern)
		}

		// An exact pattern outranks a prefix pattern with the same base.
		cr.weight = 2 * len(cr.base)
		if !cr.prefix {
			cr.weight++
		}
		compiled = append(compiled, cr)
	}

	sort.SliceStable(compiled, func(i, j int) bool { return compiled[i].weight > compiled[j].weight })
	return &Policy{rules: compiled}, nil
}

// MustPolicy is NewPolicy for static tables.
func MustPolicy(rules ...Rule) *Policy {
	p, err := NewPolicy(rules...)
	if err != nil {
		panic(err)
	}
	return p
}

// Match returns the rule governing path.
func (p *Policy) Match(path string) Rule {
	path = normalizePath(path)
	for _, r := range p.rules {
		if r.matches(path) {
			return r.Rule
		}
	}
	return Rule{Pattern: "", Access: Authenticated}
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
