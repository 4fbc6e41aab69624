package domain

// SVGPlugin is one step of the vector optimisation plugin list.
type SVGPlugin struct {
	Name    string
	Enabled bool
	// Attrs is the attribute name pattern for removeAttrs.
	Attrs string
}

// DefaultSVGPlugins returns the fixed optimisation contract for vector assets.
// viewBox and embedded raster images are preserved, stroke and fill attributes are removed.
// Transform rewriting, default removal and attribute hoisting between groups and
// their children are not implemented and stay off.
func DefaultSVGPlugins() []SVGPlugin {
	on := func(name string) SVGPlugin { return SVGPlugin{Name: name, Enabled: true} }
	off := func(name string) SVGPlugin { return SVGPlugin{Name: name} }
	return []SVGPlugin{
		on("cleanupAttrs"),
		on("removeDoctype"),
		on("removeXMLProcInst"),
		on("removeComments"),
		on("removeMetadata"),
		on("removeTitle"),
		on("removeDesc"),
		on("removeUselessDefs"),
		on("removeEditorsNSData"),
		on("removeEmptyAttrs"),
		on("removeHiddenElems"),
		on("removeEmptyText"),
		on("removeEmptyContainers"),
		off("removeViewBox"),
		on("cleanUpEnableBackground"),
		on("convertStyleToAttrs"),
		on("convertColors"),
		on("convertPathData"),
		off("convertTransform"),
		off("removeUnknownsAndDefaults"),
		off("removeNonInheritableGroupAttrs"),
		off("removeUselessStrokeAndFill"),
		on("removeUnusedNS"),
		on("cleanupIDs"),
		on("cleanupNumericValues"),
		off("moveElemsAttrsToGroup"),
		off("moveGroupAttrsToElems"),
		on("collapseGroups"),
		off("removeRasterImages"),
		off("mergePaths"),
		on("convertShapeToPath"),
		on("sortAttrs"),
		off("transformsWithOnePath"),
		on("removeDimensions"),
		{Name: "removeAttrs", Enabled: true, Attrs: "(stroke|fill)"},
	}
}

// SVGPluginEnabled reports whether the named plugin is enabled in plugins.
func SVGPluginEnabled(plugins []SVGPlugin, name string) bool {
	for _, p := range plugins {
		if p.Name == name {
			return p.Enabled
		}
	}
	return false
}
