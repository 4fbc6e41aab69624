package svg

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/xml"
)

var (
	urlRef = regexp.MustCompile(`url\(\s*["']?#([^"')\s]+)`)

	// presentation lists the properties convertStyleToAttrs may turn into attributes.
	presentation = setOf(
		"alignment-baseline", "baseline-shift", "clip", "clip-path", "clip-rule", "color",
		"color-interpolation", "color-interpolation-filters", "color-profile", "color-rendering",
		"cursor", "direction", "display", "dominant-baseline", "enable-background", "fill",
		"fill-opacity", "fill-rule", "filter", "flood-color", "flood-opacity", "font-family",
		"font-size", "font-size-adjust", "font-stretch", "font-style", "font-variant",
		"font-weight", "glyph-orientation-horizontal", "glyph-orientation-vertical",
		"image-rendering", "letter-spacing", "lighting-color", "marker-end", "marker-mid",
		"marker-start", "mask", "opacity", "overflow", "paint-order", "pointer-events",
		"shape-rendering", "stop-color", "stop-opacity", "stroke", "stroke-dasharray",
		"stroke-dashoffset", "stroke-linecap", "stroke-linejoin", "stroke-miterlimit",
		"stroke-opacity", "stroke-width", "text-anchor", "text-decoration", "text-rendering",
		"unicode-bidi", "vector-effect", "visibility", "word-spacing", "writing-mode",
	)

	// inheritable attributes on a group may yield to the same attribute on its child.
	inheritable = setOf(
		"clip-rule", "color", "color-interpolation", "color-interpolation-filters",
		"color-profile", "color-rendering", "cursor", "direction", "dominant-baseline", "fill",
		"fill-opacity", "fill-rule", "font", "font-family", "font-size", "font-size-adjust",
		"font-stretch", "font-style", "font-variant", "font-weight", "image-rendering",
		"letter-spacing", "marker", "marker-end", "marker-mid", "marker-start", "paint-order",
		"pointer-events", "shape-rendering", "stroke", "stroke-dasharray", "stroke-dashoffset",
		"stroke-linecap", "stroke-linejoin", "stroke-miterlimit", "stroke-opacity",
		"stroke-width", "text-anchor", "text-rendering", "visibility", "word-spacing",
		"writing-mode",
	)

	containers = setOf(
		"a", "defs", "g", "glyph", "marker", "mask", "missing-glyph", "pattern", "switch", "symbol",
	)
)

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// rewrite applies the enabled plugins to doc in a fixed order. Attribute
// plugins run first so the structural passes see the final attribute set.
func (o *Optimizer) rewrite(doc *node) {
	doc.filter(func(n *node) bool { return !o.dropNode(n) })

	root := doc.root()
	doc.walk(func(n *node) { o.rewriteAttrs(n, n == root) })

	if o.enabled("cleanUpEnableBackground") && !doc.contains("filter") {
		doc.walk(func(n *node) { n.remove("enable-background") })
	}

	refs := references(doc)

	if o.enabled("removeHiddenElems") {
		doc.filter(func(n *node) bool { return !hidden(n, refs) })
	}
	if o.enabled("removeEmptyText") {
		doc.filter(func(n *node) bool { return !emptyText(n) })
	}
	if o.enabled("convertShapeToPath") {
		doc.walk(convertShape)
	}
	if o.enabled("cleanupIDs") && !doc.contains("style") && !doc.contains("script") {
		doc.walk(func(n *node) {
			if id, ok := n.get("id"); ok && !refs[id] {
				n.remove("id")
			}
		})
	}
	if o.enabled("removeUselessDefs") {
		doc.walk(removeUselessDefs)
	}
	if o.enabled("removeEmptyContainers") {
		doc.prune(func(n *node) bool { return emptyContainer(n, refs) })
	}
	if o.enabled("collapseGroups") {
		collapseGroups(doc)
	}
	if root != nil && o.enabled("removeUnusedNS") {
		removeUnusedNS(root)
	}
	if o.enabled("sortAttrs") {
		doc.walk(func(n *node) {
			slices.SortStableFunc(n.attrs, func(a, b attr) int { return strings.Compare(a.name, b.name) })
		})
	}
}

func (o *Optimizer) dropNode(n *node) bool {
	switch n.kind {
	case rawNode:
		switch n.rawType {
		case xml.CommentToken:
			return o.enabled("removeComments")
		case xml.DOCTYPEToken:
			return o.enabled("removeDoctype")
		case xml.StartTagPIToken:
			return o.enabled("removeXMLProcInst")
		}
	case elementNode:
		switch n.name {
		case "metadata":
			return o.enabled("removeMetadata")
		case "title":
			return o.enabled("removeTitle")
		case "desc":
			return o.enabled("removeDesc")
		}
		return o.enabled("removeEditorsNSData") && hasEditorPrefix(n.name)
	}
	return false
}

func (o *Optimizer) rewriteAttrs(n *node, root bool) {
	if o.enabled("cleanupAttrs") {
		for i := range n.attrs {
			n.attrs[i].value = strings.Join(strings.Fields(n.attrs[i].value), " ")
		}
	}
	if o.enabled("convertStyleToAttrs") {
		convertStyle(n)
	}

	hasViewBox := n.has("viewBox")
	n.attrs = slices.DeleteFunc(n.attrs, func(a attr) bool {
		switch {
		case o.removeAttrs != nil && o.removeAttrs.MatchString(a.name):
			return true
		case o.enabled("removeEditorsNSData") && hasEditorPrefix(a.name):
			return true
		case o.enabled("removeEmptyAttrs") && strings.TrimSpace(a.value) == "":
			return true
		case root && hasViewBox && o.enabled("removeDimensions") && (a.name == "width" || a.name == "height"):
			return true
		}
		return false
	})
}

// convertStyle moves presentation properties out of the style attribute.
// Declarations marked !important stay in style.
func convertStyle(n *node) {
	style, ok := n.get("style")
	if !ok {
		return
	}

	var rest []string
	for _, decl := range splitTopLevel(style, ';') {
		prop, val, ok := strings.Cut(decl, ":")
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if !ok || prop == "" {
			continue
		}
		if presentation[prop] && !strings.Contains(val, "!important") {
			n.set(prop, val)
			continue
		}
		rest = append(rest, prop+":"+val)
	}

	if len(rest) == 0 {
		n.remove("style")
		return
	}
	n.set("style", strings.Join(rest, ";"))
}

// splitTopLevel splits s at sep outside parentheses and quotes.
func splitTopLevel(s string, sep byte) []string {
	var (
		out   []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth = max(depth-1, 0)
		case c == sep && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// references collects the ids targeted by url(#id) values, href fragments and
// style sheets.
func references(doc *node) map[string]bool {
	refs := make(map[string]bool)
	addURLs := func(s string) {
		for _, m := range urlRef.FindAllStringSubmatch(s, -1) {
			refs[m[1]] = true
		}
	}

	doc.walk(func(n *node) {
		for _, a := range n.attrs {
			if (a.name == "href" || a.name == "xlink:href") && strings.HasPrefix(a.value, "#") {
				refs[a.value[1:]] = true
			}
			addURLs(a.value)
		}
		if n.name == "style" {
			for _, c := range n.children {
				addURLs(string(c.raw))
			}
		}
	})
	return refs
}

func referenced(n *node, refs map[string]bool) bool {
	id, ok := n.get("id")
	return ok && refs[id]
}

func hidden(n *node, refs map[string]bool) bool {
	if n.kind != elementNode || referenced(n, refs) {
		return false
	}
	if v, _ := n.get("display"); v == "none" {
		return true
	}
	if zeroAttr(n, "opacity") && !n.inside("clipPath") {
		return true
	}

	switch n.name {
	case "circle":
		return zeroAttr(n, "r") && n.empty()
	case "ellipse":
		return (zeroAttr(n, "rx") || zeroAttr(n, "ry")) && n.empty()
	case "rect":
		return (zeroAttr(n, "width") || zeroAttr(n, "height")) && n.empty()
	case "pattern", "image":
		return zeroAttr(n, "width") || zeroAttr(n, "height")
	case "path":
		d, _ := n.get("d")
		return strings.TrimSpace(d) == ""
	case "polyline", "polygon":
		points, _ := n.get("points")
		return strings.TrimSpace(points) == ""
	}
	return false
}

func zeroAttr(n *node, name string) bool {
	v, ok := n.get(name)
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	return err == nil && f == 0
}

func emptyText(n *node) bool {
	switch {
	case n.isElement("text"), n.isElement("tspan"):
		return n.empty()
	case n.isElement("tref"):
		return !n.has("xlink:href") && !n.has("href")
	}
	return false
}

// convertShape rewrites rect, line, polyline and polygon elements with plain
// numeric geometry as paths. Rounded rects and values with units are kept.
func convertShape(n *node) {
	var (
		d    string
		drop []string
	)

	switch n.name {
	case "rect":
		if n.has("rx") || n.has("ry") {
			return
		}
		x, okX := number(n, "x", false)
		y, okY := number(n, "y", false)
		w, okW := number(n, "width", true)
		h, okH := number(n, "height", true)
		if !okX || !okY || !okW || !okH {
			return
		}
		d = "M" + num(x) + " " + num(y) + "H" + num(x+w) + "V" + num(y+h) + "H" + num(x) + "z"
		drop = []string{"x", "y", "width", "height"}

	case "line":
		x1, ok1 := number(n, "x1", false)
		y1, ok2 := number(n, "y1", false)
		x2, ok3 := number(n, "x2", false)
		y2, ok4 := number(n, "y2", false)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return
		}
		d = "M" + num(x1) + " " + num(y1) + "L" + num(x2) + " " + num(y2)
		drop = []string{"x1", "y1", "x2", "y2"}

	case "polyline", "polygon":
		points, _ := n.get("points")
		coords, ok := parsePoints(points)
		if !ok || len(coords) < 4 {
			return
		}
		var b strings.Builder
		for i := 0; i+1 < len(coords); i += 2 {
			if i == 0 {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			b.WriteString(num(coords[i]) + " " + num(coords[i+1]))
		}
		if n.name == "polygon" {
			b.WriteByte('z')
		}
		d = b.String()
		drop = []string{"points"}

	default:
		return
	}

	n.remove(drop...)
	n.name = "path"
	n.set("d", d)
}

func number(n *node, name string, required bool) (float64, bool) {
	v, ok := n.get(name)
	if !ok {
		return 0, !required
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return f, err == nil
}

func parsePoints(s string) ([]float64, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	coords := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		coords = append(coords, v)
	}
	return coords, len(coords)%2 == 0
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// removeUselessDefs keeps only the defs children that carry an id somewhere
// in their subtree, plus style sheets.
func removeUselessDefs(n *node) {
	if n.name != "defs" {
		return
	}
	n.children = slices.DeleteFunc(n.children, func(c *node) bool {
		switch c.kind {
		case elementNode:
			return c.name != "style" && !c.subtreeHasID()
		case textNode:
			return true
		}
		return false
	})
}

func emptyContainer(n *node, refs map[string]bool) bool {
	switch {
	case n.kind != elementNode || !containers[n.name] || !n.empty():
		return false
	case n.name == "pattern" && len(n.attrs) > 0:
		return false
	case n.name == "g" && n.has("filter"):
		return false
	}
	return !referenced(n, refs)
}

// collapseGroups hoists the attributes of single-child groups onto the child
// and replaces attribute-less groups with their children.
func collapseGroups(n *node) {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		collapseGroups(c)
		if c.isElement("g") && !n.isElement("switch") {
			moveAttrsToChild(c)
			if len(c.attrs) == 0 {
				for _, gc := range c.children {
					gc.parent = n
				}
				out = append(out, c.children...)
				continue
			}
		}
		out = append(out, c)
	}
	n.children = out
}

func moveAttrsToChild(g *node) {
	if len(g.attrs) == 0 {
		return
	}

	var inner *node
	for _, c := range g.children {
		switch {
		case c.kind == elementNode && inner == nil:
			inner = c
		case c.kind == textNode && len(strings.TrimSpace(string(c.raw))) == 0:
		default:
			return
		}
	}
	if inner == nil || inner.has("id") {
		return
	}
	for _, blocked := range []string{"id", "filter", "clip-path", "mask", "style"} {
		if g.has(blocked) {
			return
		}
	}
	if g.has("class") && inner.has("class") {
		return
	}
	for _, a := range g.attrs {
		if inner.has(a.name) && a.name != "transform" && !inheritable[a.name] {
			return
		}
	}

	for _, a := range g.attrs {
		v, ok := inner.get(a.name)
		switch {
		case !ok:
			inner.set(a.name, a.value)
		case a.name == "transform":
			inner.set("transform", a.value+" "+v)
		}
	}
	g.attrs = nil
}

// removeUnusedNS drops namespace declarations on the root element whose prefix
// no element or attribute uses.
func removeUnusedNS(root *node) {
	used := func(prefix string) bool {
		found := hasPrefix(root.name, prefix)
		for _, a := range root.attrs {
			found = found || hasPrefix(a.name, prefix)
		}
		root.walk(func(n *node) {
			if found {
				return
			}
			found = hasPrefix(n.name, prefix)
			for _, a := range n.attrs {
				found = found || hasPrefix(a.name, prefix)
			}
		})
		return found
	}

	root.attrs = slices.DeleteFunc(root.attrs, func(a attr) bool {
		prefix, ok := strings.CutPrefix(a.name, "xmlns:")
		return ok && !used(prefix)
	})
}
