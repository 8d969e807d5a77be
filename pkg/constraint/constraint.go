package constraint

import "strings"

// DefaultGroup is the group applied when nothing more specific is configured.
const DefaultGroup = "Default"

// Constraint identifies a rule. Constraints that can evaluate a value
// implement Checker as well.
type Constraint interface {
	Name() string
}

// Checker evaluates a value and returns the violations it produced. Returned
// violations only need Message, MessageTemplate, Parameters and Code; callers
// fill in path, invalid value and constraint attribution.
type Checker interface {
	Constraint
	Check(value any) []Violation
}

// Provider is implemented by data that declares its own constraints. These
// form the implicit constraint set validated under the resolved groups.
type Provider interface {
	ValidationConstraints() []Grouped
}

// Grouped binds a constraint to the single validation group it is evaluated
// under.
type Grouped struct {
	Constraint Constraint
	Group      string
}

// InGroup pairs c with group. An empty group falls back to DefaultGroup.
func InGroup(c Constraint, group string) Grouped {
	group = strings.TrimSpace(group)
	if group == "" {
		group = DefaultGroup
	}
	return Grouped{Constraint: c, Group: group}
}

// InGroups expands c into one Grouped pair per group, preserving order.
func InGroups(c Constraint, groups ...string) []Grouped {
	if len(groups) == 0 {
		return []Grouped{InGroup(c, DefaultGroup)}
	}
	out := make([]Grouped, 0, len(groups))
	for _, group := range groups {
		out = append(out, InGroup(c, group))
	}
	return out
}
