package types

// Platform selects the mobile targets of a project
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformBoth    Platform = "both"
)

// Orientation selects the allowed screen orientations
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	OrientationBoth      Orientation = "both"
)

// NavStyle selects the native navigation chrome around the web view
type NavStyle string

const (
	NavTabBar    NavStyle = "tab_bar"
	NavSideMenu  NavStyle = "side_menu"
	NavBottomNav NavStyle = "bottom_nav"
)

// Features holds the native capability toggles of a project
type Features struct {
	PushNotifications bool `json:"pushNotifications"`
	OfflineMode       bool `json:"offlineMode"`
	AdMob             bool `json:"admob"`
	SocialSharing     bool `json:"socialSharing"`
	CameraAccess      bool `json:"cameraAccess"`
	MicAccess         bool `json:"micAccess"`
	LocationAccess    bool `json:"locationAccess"`
}

// ProjectConfig describes the app being built in a builder workspace
type ProjectConfig struct {
	URL            string      `json:"url"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Icon           string      `json:"icon"` // data URL or remote image URL
	SplashScreen   string      `json:"splashScreen,omitempty"`
	PrimaryColor   string      `json:"primaryColor"`
	SecondaryColor string      `json:"secondaryColor"`
	AccentColor    string      `json:"accentColor"`
	NavStyle       NavStyle    `json:"navStyle"`
	Platform       Platform    `json:"platform"`
	Orientation    Orientation `json:"orientation"`
	UserAgent      string      `json:"userAgent"`
	Features       Features    `json:"features"`
}

// Buildable reports whether the config satisfies the build-start precondition
func (c ProjectConfig) Buildable() bool {
	return c.URL != "" && c.Name != ""
}

// HistoryEntry is one item of the rolling recent-projects list
type HistoryEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
