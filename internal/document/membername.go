package document

import (
	"strconv"
	"strings"
	"unicode"

	"compedit/internal/tree"
)

// makeIdentifier normalizes s into a usable C++ identifier: invalid
// characters are dropped, a leading digit gets an underscore prefix and the
// first letter's case is forced per capitalize. An empty result becomes
// "component" (or "Component").
func makeIdentifier(s string, capitalize bool) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "component"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	if capitalize {
		return strings.ToUpper(out[:1]) + out[1:]
	}
	return strings.ToLower(out[:1]) + out[1:]
}

// MakeValidIdentifier normalizes s for member naming style: the first letter
// is lowercased.
func MakeValidIdentifier(s string) string {
	return makeIdentifier(s, false)
}

// MakeValidClassName normalizes s for type naming style: the first letter is
// uppercased.
func MakeValidClassName(s string) string {
	return makeIdentifier(s, true)
}

// UniqueMemberName turns suggested into a member name no existing component
// uses. The candidate's trailing digits are stripped to find its base; if
// any component already uses that base (bare, or with a numeric suffix),
// the result is the base with the next free numeric suffix, so adding
// "button" next to button1 and button2 yields button3. A name whose family
// is entirely unused comes back unchanged.
//
// One pass over the component group, so it terminates after at most
// NumComponents()+1 steps.
func (d *Document) UniqueMemberName(suggested string) string {
	name := MakeValidIdentifier(suggested)
	base := strings.TrimRight(name, "0123456789")
	if base == "" {
		base = "component"
	}

	// An explicitly numbered request keeps its number if nothing uses it.
	if name != base && d.ComponentWithMemberName(name) == nil {
		return name
	}

	// Highest numeric suffix already used for this base; the bare base
	// counts as suffix 0.
	max := -1
	group := d.ComponentGroup()
	for i := 0; i < group.NumChildren(); i++ {
		m := group.ChildAt(i).PropertyText(tree.PropMemberName)
		if !strings.HasPrefix(m, base) {
			continue
		}
		rest := m[len(base):]
		if rest == "" {
			if max < 0 {
				max = 0
			}
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	if max < 0 {
		return name
	}
	return base + strconv.Itoa(max+1)
}
