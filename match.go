package vinex

import "github.com/vinex/vinex/internal/core"

// Match holds one match result. The zero value is not usable; Matches are
// only produced by Pattern.Search, Pattern.Entire and Scanner.Match.
type Match struct {
	src    string
	groups *core.CaptureStore
	names  map[string]int
	start  int
	end    int
}

// Get returns the overall matched substring (group 0).
func (m *Match) Get() string { return m.src[m.start:m.end] }

// Offset returns the byte range of the overall match within the searched
// string.
func (m *Match) Offset() (int, int) { return m.start, m.end }

// NumGroups returns the number of capture slots, including group 0.
func (m *Match) NumGroups() int { return m.groups.Len() }

// Group returns the substring captured by group i, and whether that group
// participated in the match. Group 0 is always the overall match.
func (m *Match) Group(i int) (string, bool) {
	if i < 0 || i >= m.groups.Len() {
		return "", false
	}
	c := m.groups.Get(i)
	if c.Begin < 0 {
		return "", false
	}
	return m.src[c.Begin:c.End], true
}

// NamedGroup returns the substring captured by the named group, and
// whether it participated in the match. It reports false for an unknown
// name as well as for a group that did not participate.
func (m *Match) NamedGroup(name string) (string, bool) {
	i, ok := m.names[name]
	if !ok {
		return "", false
	}
	return m.Group(i)
}
