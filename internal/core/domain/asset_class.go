package domain

import "go.trai.ch/zerr"

// AssetClass names one of the five asset pipelines.
type AssetClass string

const (
	// ClassPages processes HTML pages.
	ClassPages AssetClass = "pages"
	// ClassStyles compiles the SCSS entry stylesheet.
	ClassStyles AssetClass = "styles"
	// ClassScripts bundles and transpiles the JavaScript entry.
	ClassScripts AssetClass = "scripts"
	// ClassImages copies and optionally optimises raster images.
	ClassImages AssetClass = "images"
	// ClassVectors optimises top-level SVG files.
	ClassVectors AssetClass = "vectors"
)

// AllClasses returns every asset class in plan order.
func AllClasses() []AssetClass {
	return []AssetClass{ClassPages, ClassImages, ClassScripts, ClassStyles, ClassVectors}
}

// ParseAssetClass validates a pipeline name.
func ParseAssetClass(s string) (AssetClass, error) {
	for _, c := range AllClasses() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", zerr.With(ErrUnknownAssetClass, "class", s)
}

func (c AssetClass) String() string {
	return string(c)
}
