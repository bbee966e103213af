package project

import (
	"net/url"
	"strings"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
)

// ParseFragment applies a builder navigation fragment of the form
// "#/builder?u=<url>&n=<name>&c=<hex>" onto base. When none of u, n or c is
// present base is returned unchanged. Otherwise the URL is taken from u (empty
// when u is absent), the name from n and the primary color from c.
func ParseFragment(fragment string, base types.ProjectConfig) types.ProjectConfig {
	_, query, found := strings.Cut(fragment, "?")
	if !found {
		return base
	}

	params, _ := url.ParseQuery(query)
	u, n, c := params.Get("u"), params.Get("n"), params.Get("c")
	if u == "" && n == "" && c == "" {
		return base
	}

	cfg := base
	cfg.URL = NormalizeURL(decodeComponent(u))
	if n != "" {
		cfg.Name = SanitizeText(decodeComponent(n))
	}
	if c != "" {
		cfg.PrimaryColor = "#" + c
	}
	return cfg
}

// BuildFragment is the inverse of ParseFragment, used for share links
func BuildFragment(cfg types.ProjectConfig) string {
	params := url.Values{}
	if cfg.URL != "" {
		params.Set("u", cfg.URL)
	}
	if cfg.Name != "" {
		params.Set("n", cfg.Name)
	}
	if c := strings.TrimPrefix(cfg.PrimaryColor, "#"); c != "" {
		params.Set("c", c)
	}
	return "#/builder?" + params.Encode()
}

// decodeComponent undoes a second layer of percent-encoding. Values that
// are not valid escapes are kept as they are.
func decodeComponent(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}
