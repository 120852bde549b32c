package ldgraph

import (
	"fmt"
	"strings"

	"github.com/reoring/ldgraph/internal/text"
)

// inversePairs lists vocabulary relations declared as inverses of each other.
var inversePairs = [][2]string{
	{"hasPart", "isPartOf"},
	{"about", "subjectOf"},
	{"workExample", "exampleOfWork"},
	{"hasVariant", "isVariantOf"},
	{"mainEntity", "mainEntityOfPage"},
	{"translationOfWork", "workTranslation"},
	{"containsPlace", "containedInPlace"},
	{"subOrganization", "parentOrganization"},
	{"alumni", "alumniOf"},
	{"member", "memberOf"},
	{"hasOfferCatalog", "offeredBy"},
	{"hasDefinedTerm", "inDefinedTermSet"},
	{"hasMenuSection", "isMenuSectionOf"},
	{"episode", "partOfEpisode"},
	{"hasCourseInstance", "courseOf"},
}

var inverses = func() map[string]string {
	m := make(map[string]string, 2*len(inversePairs))
	for _, p := range inversePairs {
		m[p[0]] = p[1]
		m[p[1]] = p[0]
	}
	return m
}()

// InverseOf returns the declared inverse of a vocabulary term.
func InverseOf(term string) (string, bool) {
	inv, ok := inverses[term]
	return inv, ok
}

// inverseKey maps a property key to its inverse key. Keys expanded against
// vocab ("https://schema.org/hasPart") map to expanded inverses.
func inverseKey(key, vocab string) (string, bool) {
	if inv, ok := inverses[key]; ok {
		return inv, true
	}
	if vocab != "" && strings.HasPrefix(key, vocab) {
		if inv, ok := inverses[strings.TrimPrefix(key, vocab)]; ok {
			return vocab + inv, true
		}
	}
	return "", false
}

// Link runs one linking pass over every stored node, in insertion order:
//
//   - for each property with a declared inverse, every target that resolves to
//     a node receives the inverse property pointing back at the source;
//   - for each @reverse block, every target that resolves to a node receives
//     the block's property pointing back at the enclosing node.
//
// A target that already links back, directly or through a container, is left
// alone, so running Link again adds nothing new. Link returns the number of back-links added.
func (c *Corpus) Link() (int, error) {
	added := 0
	vocab := c.opt.Vocabulary
	for node := range c.Values() {
		id, ok := node.ID()
		if !ok {
			continue
		}
		for _, key := range node.Keys() {
			if key == KeywordReverse {
				continue
			}
			inv, ok := inverseKey(key, vocab)
			if !ok {
				continue
			}
			n, err := c.linkBack(node, key, inv, id)
			added += n
			if err != nil {
				return added, err
			}
		}
		rv, _ := node.Get(KeywordReverse)
		block, ok := rv.(*Object)
		if !ok {
			continue
		}
		for _, key := range block.Keys() {
			n, err := c.linkBack(block, key, key, id)
			added += n
			if err != nil {
				return added, err
			}
		}
	}
	c.log.Debug("linked corpus", "added", added, "nodes", c.Len())
	return added, nil
}

// linkBack adds backKey -> id on every node target of holder[key] that does
// not already link back, directly or through a container.
func (c *Corpus) linkBack(holder *Object, key, backKey, id string) (int, error) {
	added := 0
	var err error
	ForEachPropertyValue(holder, key, func(v any, _ int) {
		if err != nil {
			return
		}
		c.eachResolvedNode(v, func(target *Object) {
			if err != nil || c.linksTo(target, backKey, id) {
				return
			}
			if e := AddPropertyValue(target, backKey, NewReference(id)); e != nil {
				err = fmt.Errorf("linking %s: %w", text.Quote(id), e)
				return
			}
			added++
		})
	})
	return added, err
}

// linksTo reports whether o[key] already resolves to the node id.
func (c *Corpus) linksTo(o *Object, key, id string) bool {
	found := false
	ForEachPropertyValue(o, key, func(v any, _ int) {
		if found {
			return
		}
		if ref, ok := v.(*Object); ok && KindOf(ref) == KindReference {
			if rid, _ := ref.ID(); rid == id {
				found = true
				return
			}
		}
		c.eachResolvedNode(v, func(n *Object) {
			if nid, _ := n.ID(); nid == id {
				found = true
			}
		})
	})
	return found
}

// eachResolvedNode resolves v and calls fn for the node it denotes; a
// resolved list or set payload is descended one level.
func (c *Corpus) eachResolvedNode(v any, fn func(*Object)) {
	r := c.Resolve(v)
	if arr, ok := r.([]any); ok {
		for _, e := range arr {
			if n, isNode := c.Resolve(e).(*Object); isNode && KindOf(n) == KindNode {
				fn(n)
			}
		}
		return
	}
	if n, ok := r.(*Object); ok && KindOf(n) == KindNode {
		fn(n)
	}
}
