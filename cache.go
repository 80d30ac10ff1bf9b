package clculator

import (
	"sort"
	"strings"

	"github.com/advskel/clculator/bigcomplex"
)

// cacheNode is one level of a result trie keyed by ordered argument values.
// Each level corresponds to one positional argument; a terminating node holds
// the stored result. Both a function's base-case table and its memoization
// cache use this structure, so stored tuples share prefixes and lookup walks
// at most arity levels.
type cacheNode struct {
	next  map[string]*cacheNode
	arg   *bigcomplex.Complex // the argument value keying this node in its parent
	value *bigcomplex.Complex
}

func newCache() *cacheNode {
	return &cacheNode{}
}

// get returns the stored result for the exact argument tuple, or nil if any
// level lacks the required key.
func (c *cacheNode) get(args []*bigcomplex.Complex) *bigcomplex.Complex {
	for _, a := range args {
		n, ok := c.next[a.Key()]
		if !ok {
			return nil
		}
		c = n
	}
	return c.value
}

// add stores a result under the exact argument tuple, creating levels as
// needed.
func (c *cacheNode) add(args []*bigcomplex.Complex, value *bigcomplex.Complex) {
	for _, a := range args {
		if c.next == nil {
			c.next = make(map[string]*cacheNode)
		}
		n, ok := c.next[a.Key()]
		if !ok {
			n = &cacheNode{arg: a}
			c.next[a.Key()] = n
		}
		c = n
	}
	c.value = value
}

// entries returns one "[a1,a2] = v" line per stored tuple, formatted with
// format and sorted for stable listings.
func (c *cacheNode) entries(format func(*bigcomplex.Complex) string) []string {
	var out []string
	var walk func(n *cacheNode, args []string)
	walk = func(n *cacheNode, args []string) {
		if n.value != nil {
			out = append(out, "["+strings.Join(args, ",")+"] = "+format(n.value))
		}
		for _, child := range n.next {
			walk(child, append(args, format(child.arg)))
		}
	}
	walk(c, nil)
	sort.Strings(out)
	return out
}
