package replay

import (
	"fmt"
	"regexp"

	"github.com/san-kum/replaylab/internal/osim"
)

// Subscription is one selected output: its path and its evaluator handle.
type Subscription struct {
	Path   string
	Output osim.Output
}

// Catalog is the deduplicated, ordered list of subscribed outputs. Its order
// is first-match order and becomes the report's column order.
type Catalog struct {
	subs []Subscription
}

func (c *Catalog) Len() int { return len(c.subs) }

func (c *Catalog) Subscriptions() []Subscription { return c.subs }

func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.subs))
	for i, s := range c.subs {
		labels[i] = s.Path
	}
	return labels
}

// MaxStage is the deepest realization stage any subscribed output depends on.
func (c *Catalog) MaxStage() osim.Stage {
	max := osim.StageInstantiated
	for _, s := range c.subs {
		if s.Output.Stage > max {
			max = s.Output.Stage
		}
	}
	return max
}

// BuildCatalog traverses every node's outputs and subscribes those whose full
// path matches one of the patterns (whole-string regular expressions) and
// whose declared type equals want. A matched output of the wrong type is
// skipped with a diagnostic through warnf; callers routinely request one type
// across a heterogeneous tree, so this is not an error. An output matched by
// several patterns is subscribed once.
func BuildCatalog(m *osim.Model, patterns []string, want osim.ValueType, warnf func(format string, args ...any)) (*Catalog, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	// Compile once; entries are tested against the compiled set in a single
	// traversal pass.
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, fmt.Errorf("replay: bad output pattern %q: %w", p, err)
		}
		res[i] = re
	}

	cat := &Catalog{}
	seen := make(map[string]bool)
	for _, n := range m.Nodes() {
		for _, out := range n.Outputs() {
			path := n.OutputPath(out.Name)
			for _, re := range res {
				if !re.MatchString(path) {
					continue
				}
				if out.Type != want {
					warnf("%v", &TypeError{Path: path, Declared: out.Type, Want: want})
				} else if !seen[path] {
					seen[path] = true
					cat.subs = append(cat.subs, Subscription{Path: path, Output: out})
				}
				break
			}
		}
	}
	return cat, nil
}
