package stylesheet

import (
	"strings"

	"github.com/aymerick/douceur/css"
)

// propertyPrefixes lists properties that current browser targets still only
// support, fully or partially, behind a vendor prefix.
var propertyPrefixes = map[string][]string{
	"appearance":              {"-webkit-", "-moz-"},
	"backdrop-filter":         {"-webkit-"},
	"background-clip":         {"-webkit-"},
	"box-decoration-break":    {"-webkit-"},
	"clip-path":               {"-webkit-"},
	"hyphens":                 {"-webkit-", "-ms-"},
	"mask":                    {"-webkit-"},
	"mask-image":              {"-webkit-"},
	"mask-position":           {"-webkit-"},
	"mask-repeat":             {"-webkit-"},
	"mask-size":               {"-webkit-"},
	"tab-size":                {"-moz-"},
	"text-decoration-skip":    {"-webkit-"},
	"text-emphasis":           {"-webkit-"},
	"text-size-adjust":        {"-webkit-", "-moz-", "-ms-"},
	"user-select":             {"-webkit-", "-moz-", "-ms-"},
	"print-color-adjust":      {"-webkit-"},
	"initial-letter":          {"-webkit-"},
	"scroll-snap-type":        {"-ms-"},
	"text-orientation":        {"-webkit-"},
	"writing-mode":            {"-ms-"},
	"column-count":            {"-webkit-"},
	"column-gap":              {"-webkit-"},
	"columns":                 {"-webkit-"},
	"text-decoration-line":    {"-webkit-"},
	"text-decoration-style":   {"-webkit-"},
	"text-decoration-color":   {"-webkit-"},
	"text-underline-position": {"-ms-"},
}

// valuePrefixes lists property values that need a prefixed variant.
var valuePrefixes = map[string]map[string][]string{
	"position": {"sticky": {"-webkit-"}},
	"width":    {"fit-content": {"-moz-"}, "max-content": {"-moz-"}, "min-content": {"-moz-"}},
	"height":   {"fit-content": {"-moz-"}, "max-content": {"-moz-"}, "min-content": {"-moz-"}},
}

func prefixDeclarations(decls []*css.Declaration) []*css.Declaration {
	present := make(map[string]bool, len(decls))
	for _, d := range decls {
		present[d.Property+":"+d.Value] = true
		present[d.Property] = true
	}

	out := make([]*css.Declaration, 0, len(decls))
	for _, d := range decls {
		for _, prefix := range propertyPrefixes[d.Property] {
			prop := prefix + d.Property
			if present[prop] {
				continue
			}
			out = append(out, &css.Declaration{Property: prop, Value: d.Value, Important: d.Important})
		}

		for _, prefix := range valuePrefixes[d.Property][strings.ToLower(d.Value)] {
			value := prefix + d.Value
			if present[d.Property+":"+value] {
				continue
			}
			out = append(out, &css.Declaration{Property: d.Property, Value: value, Important: d.Important})
		}

		out = append(out, d)
	}
	return out
}

func unprefixed(property string) string {
	if !strings.HasPrefix(property, "-") || strings.HasPrefix(property, "--") {
		return property
	}
	if i := strings.IndexByte(property[1:], '-'); i >= 0 {
		return property[i+2:]
	}
	return property
}
