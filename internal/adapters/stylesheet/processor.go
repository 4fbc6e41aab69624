// Package stylesheet implements the post-compilation CSS passes on a douceur
// syntax tree.
package stylesheet

import (
	"context"
	"slices"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"go.trai.ch/kiln/internal/core/domain"
)

// Processor implements ports.StylesheetProcessor.
type Processor struct{}

// NewProcessor creates a new Processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Purge drops qualified rules whose selectors reference a class, id or element
// that never occurs in content. At-rules that end up empty are dropped too.
func (p *Processor) Purge(ctx context.Context, src []byte, content [][]byte) ([]byte, error) {
	return transform(ctx, src, func(sheet *css.Stylesheet) {
		used := NewTokenSet(content...)
		sheet.Rules = purgeRules(sheet.Rules, used)
	})
}

func purgeRules(rules []*css.Rule, used TokenSet) []*css.Rule {
	kept := rules[:0]
	for _, rule := range rules {
		if rule.Kind == css.AtRule {
			if !isConditionalGroup(rule.Name) {
				kept = append(kept, rule)
				continue
			}
			rule.Rules = purgeRules(rule.Rules, used)
			if len(rule.Rules) > 0 {
				kept = append(kept, rule)
			}
			continue
		}

		// douceur splits the prelude on every comma, including those inside :not().
		var selectors []string
		for _, sel := range SplitSelectors(rule.Prelude) {
			if used.Matches(sel) {
				selectors = append(selectors, sel)
			}
		}
		if len(selectors) > 0 {
			rule.Selectors = selectors
			rule.Prelude = strings.Join(selectors, ", ")
			kept = append(kept, rule)
		}
	}
	return kept
}

// Prefix inserts vendor-prefixed copies of declarations whose properties or
// values still need them, unless the stylesheet already provides them.
func (p *Processor) Prefix(ctx context.Context, src []byte) ([]byte, error) {
	return transform(ctx, src, func(sheet *css.Stylesheet) {
		walkDeclarations(sheet.Rules, func(rule *css.Rule) {
			rule.Declarations = prefixDeclarations(rule.Declarations)
		})
	})
}

// SortDeclarations orders the declarations of every rule alphabetically by
// property. Vendor prefixes are ignored for ordering so prefixed declarations
// stay directly before their standard counterpart.
func (p *Processor) SortDeclarations(ctx context.Context, src []byte) ([]byte, error) {
	return transform(ctx, src, func(sheet *css.Stylesheet) {
		walkDeclarations(sheet.Rules, func(rule *css.Rule) {
			slices.SortStableFunc(rule.Declarations, func(a, b *css.Declaration) int {
				return strings.Compare(unprefixed(a.Property), unprefixed(b.Property))
			})
		})
	})
}

// CombineMediaQueries merges @media blocks with identical queries and moves
// them after all other rules, in order of first appearance.
func (p *Processor) CombineMediaQueries(ctx context.Context, src []byte) ([]byte, error) {
	return transform(ctx, src, func(sheet *css.Stylesheet) {
		var (
			rest    []*css.Rule
			media   []*css.Rule
			byQuery = make(map[string]*css.Rule)
		)
		for _, rule := range sheet.Rules {
			if rule.Kind != css.AtRule || rule.Name != "@media" {
				rest = append(rest, rule)
				continue
			}
			query := strings.Join(strings.Fields(rule.Prelude), " ")
			if combined, ok := byQuery[query]; ok {
				combined.Rules = append(combined.Rules, rule.Rules...)
				continue
			}
			byQuery[query] = rule
			media = append(media, rule)
		}
		sheet.Rules = append(rest, media...)
	})
}

func transform(ctx context.Context, src []byte, fn func(sheet *css.Stylesheet)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, err := parser.Parse(string(src))
	if err != nil {
		return nil, &domain.SourceError{Class: domain.ClassStyles, Message: err.Error()}
	}

	fn(sheet)
	return []byte(sheet.String() + "\n"), nil
}

func walkDeclarations(rules []*css.Rule, fn func(rule *css.Rule)) {
	for _, rule := range rules {
		if len(rule.Declarations) > 0 {
			fn(rule)
		}
		walkDeclarations(rule.Rules, fn)
	}
}

func isConditionalGroup(name string) bool {
	switch name {
	case "@media", "@supports", "@document", "@layer", "@container":
		return true
	}
	return false
}
