package project

import (
	"html"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultDescription = "Native WebView Application"
	DefaultIcon        = "https://cdn-icons-png.flaticon.com/512/1006/1006771.png"
	DefaultUserAgent   = "Mozilla/5.0 (Linux; Android 13; AppCoPro Engine) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"

	DefaultPrimaryColor   = "#2563eb"
	DefaultSecondaryColor = "#3b82f6"
	DefaultAccentColor    = "#60a5fa"
)

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	textPolicy    = bluemonday.StrictPolicy()
)

// Defaults returns the config a fresh builder workspace starts from
func Defaults() types.ProjectConfig {
	return types.ProjectConfig{
		Description:    DefaultDescription,
		Icon:           DefaultIcon,
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		AccentColor:    DefaultAccentColor,
		NavStyle:       types.NavBottomNav,
		Platform:       types.PlatformAndroid,
		Orientation:    types.OrientationPortrait,
		UserAgent:      DefaultUserAgent,
		Features: types.Features{
			PushNotifications: true,
			OfflineMode:       true,
			AdMob:             false,
			SocialSharing:     true,
			CameraAccess:      true,
			MicAccess:         true,
			LocationAccess:    true,
		},
	}
}

// NormalizeURL prefixes https:// unless the input already carries an http(s)
// scheme in any letter case. Empty input stays empty.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if schemePattern.MatchString(raw) {
		return raw
	}
	return "https://" + raw
}

// maxSanitizePasses bounds the unescape and sanitize rounds of SanitizeText
const maxSanitizePasses = 8

// SanitizeText strips markup from user-entered display text. Entities are
// decoded back to plain text, and the policy runs again on the decoded text
// until nothing changes, so escaped markup cannot come back as tags.
func SanitizeText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(textPolicy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// Entity nesting deeper than the pass budget stays escaped
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// Normalize prepares a client-submitted config for a build: the URL is
// normalized, display text is sanitized and empty enum fields fall back to
// their defaults. Colors are free-form and left alone.
func Normalize(cfg types.ProjectConfig) types.ProjectConfig {
	def := Defaults()

	cfg.URL = NormalizeURL(cfg.URL)
	cfg.Name = SanitizeText(cfg.Name)
	cfg.Description = SanitizeText(cfg.Description)

	if !validPlatform(cfg.Platform) {
		cfg.Platform = def.Platform
	}
	if !validOrientation(cfg.Orientation) {
		cfg.Orientation = def.Orientation
	}
	if !validNavStyle(cfg.NavStyle) {
		cfg.NavStyle = def.NavStyle
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	return cfg
}

func validPlatform(p types.Platform) bool {
	switch p {
	case types.PlatformAndroid, types.PlatformIOS, types.PlatformBoth:
		return true
	}
	return false
}

func validOrientation(o types.Orientation) bool {
	switch o {
	case types.OrientationPortrait, types.OrientationLandscape, types.OrientationBoth:
		return true
	}
	return false
}

func validNavStyle(n types.NavStyle) bool {
	switch n {
	case types.NavTabBar, types.NavSideMenu, types.NavBottomNav:
		return true
	}
	return false
}
