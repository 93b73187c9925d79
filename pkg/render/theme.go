package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the renderer-facing projection of a go-theme selection:
// resolved partials, design tokens, derived CSS custom properties, and an
// asset URL resolver.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Partials map[string]string
	Tokens   map[string]string
	CSSVars  map[string]string
	AssetURL func(name string) string
}

// ResolveTheme asks the selector for the named theme/variant and flattens the
// manifest (base plus variant overrides) into a ThemeConfig. Fallback partials
// fill any template slot the manifest leaves empty.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*ThemeConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is required")
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: theme selector returned no selection for %q", name)
	}

	cfg := &ThemeConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: copyStringMap(fallbacks),
		Tokens:   map[string]string{},
	}

	assetPrefix := ""
	assetFiles := map[string]string{}

	if manifest := selection.Manifest; manifest != nil {
		mergeStringMap(cfg.Partials, manifest.Templates)
		mergeStringMap(cfg.Tokens, manifest.Tokens)
		assetPrefix = manifest.Assets.Prefix
		mergeStringMap(assetFiles, manifest.Assets.Files)

		if override, ok := manifest.Variants[selection.Variant]; ok {
			mergeStringMap(cfg.Partials, override.Templates)
			mergeStringMap(cfg.Tokens, override.Tokens)
			if override.Assets.Prefix != "" {
				assetPrefix = override.Assets.Prefix
			}
			mergeStringMap(assetFiles, override.Assets.Files)
		}
	}

	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for token, value := range cfg.Tokens {
		cfg.CSSVars["--"+token] = value
	}

	cfg.AssetURL = func(name string) string {
		file, ok := assetFiles[name]
		if !ok {
			return ""
		}
		return joinAssetPath(assetPrefix, file)
	}

	return cfg, nil
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMap(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func joinAssetPath(prefix, file string) string {
	if prefix == "" {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}
