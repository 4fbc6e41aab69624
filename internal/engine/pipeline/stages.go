package pipeline

import (
	"context"
	"encoding/base64"
)

// Each returns a Transform applying fn to every asset in place.
func Each(fn func(ctx context.Context, a *Asset) error) Transform {
	return func(ctx context.Context, assets []*Asset) ([]*Asset, error) {
		for _, a := range assets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := fn(ctx, a); err != nil {
				return nil, err
			}
		}
		return assets, nil
	}
}

// Filter returns a Transform keeping only the assets for which keep reports true.
func Filter(keep func(a *Asset) (bool, error)) Transform {
	return func(_ context.Context, assets []*Asset) ([]*Asset, error) {
		kept := assets[:0:0]
		for _, a := range assets {
			ok, err := keep(a)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, a)
			}
		}
		return kept, nil
	}
}

// InitSourceMaps starts source-map recording on every asset.
func InitSourceMaps() Transform {
	return Each(func(_ context.Context, a *Asset) error {
		a.Mapping = true
		return nil
	})
}

// CommentStyle selects how an inline source map is attached.
type CommentStyle int

const (
	// BlockComment attaches the map as /*# ... */, for stylesheets.
	BlockComment CommentStyle = iota
	// LineComment attaches the map as //# ..., for scripts.
	LineComment
)

// WriteSourceMaps embeds each recorded source map into its asset as a base64 data URL.
// Assets without a map are left untouched.
func WriteSourceMaps(style CommentStyle) Transform {
	return Each(func(_ context.Context, a *Asset) error {
		if !a.Mapping || len(a.SourceMap) == 0 {
			return nil
		}

		data, err := a.Bytes()
		if err != nil {
			return err
		}

		url := "sourceMappingURL=data:application/json;charset=utf-8;base64," +
			base64.StdEncoding.EncodeToString(a.SourceMap)

		out := make([]byte, 0, len(data)+len(url)+16)
		out = append(out, data...)
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		if style == LineComment {
			out = append(out, "//# "+url+"\n"...)
		} else {
			out = append(out, "/*# "+url+" */\n"...)
		}

		a.SetBytes(out)
		a.SourceMap = nil
		return nil
	})
}
