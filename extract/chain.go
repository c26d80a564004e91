package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy is one extraction rule in a field's fallback chain: a query plus
// an extraction step. Run returns the raw value or "" for a non-match;
// a non-match is a valid, silent outcome, never an error.
type Strategy struct {
	Name string
	Run  func(d *Document) string
}

// Chain is an ordered list of strategies for one field.
//
// The order is load-bearing: the most specific, most current markup pattern
// comes first and older or more generic patterns degrade behind it. Run
// evaluates strategies strictly in declared order and returns the first
// non-empty trimmed result — no scoring, no parallelism, first success wins.
type Chain []Strategy

// Run executes the chain against the document.
func (c Chain) Run(d *Document) string {
	for _, s := range c {
		if v := strings.TrimSpace(s.Run(d)); v != "" {
			return v
		}
	}
	return ""
}

// selText matches a selector and extracts the trimmed text of the first
// matched element. With multiple matches, first in document order wins.
func selText(name, selector string) Strategy {
	return Strategy{
		Name: name,
		Run: func(d *Document) string {
			return strings.TrimSpace(d.Find(selector).First().Text())
		},
	}
}

// selAttr matches a selector and extracts an attribute of the first matched
// element (e.g. the content of a metadata tag).
func selAttr(name, selector, attr string) Strategy {
	return Strategy{
		Name: name,
		Run: func(d *Document) string {
			v, _ := d.Find(selector).First().Attr(attr)
			return strings.TrimSpace(v)
		},
	}
}

// fromSpec builds a strategy from a declarative selector spec.
func fromSpec(name string, spec SelectorSpec) Strategy {
	if spec.Attr != "" {
		return selAttr(name, spec.Sel, spec.Attr)
	}
	return selText(name, spec.Sel)
}

// pairedValue is the shared "find node by label, read paired node"
// primitive behind the definition-list and table EAN lookups.
//
// It scans the elements matching labelSel in document order for the first
// whose text matches the label (case-insensitive containment, see
// labelMatches) and returns the text of its next sibling matching valueSel.
// Only the first labelled node is used; multiple matches are not expected.
func pairedValue(labelSel, valueSel, label string) func(d *Document) string {
	return func(d *Document) string {
		var out string
		d.Find(labelSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if !labelMatches(s.Text(), label) {
				return true
			}
			out = strings.TrimSpace(s.NextAllFiltered(valueSel).First().Text())
			return false
		})
		return out
	}
}

// labelMatches reports whether a label cell refers to the wanted label.
// Matching is case-insensitive containment: "EAN specificatie" matches
// "EAN". This mirrors how the spec-label rows drift on real pages.
func labelMatches(text, label string) bool {
	return strings.Contains(
		strings.ToUpper(strings.TrimSpace(text)),
		strings.ToUpper(label),
	)
}
