package artifact

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoConfig() types.ProjectConfig {
	return types.ProjectConfig{
		Name:         "My Cool App",
		URL:          "https://demo.io",
		PrimaryColor: "#2563eb",
		Platform:     types.PlatformAndroid,
	}
}

func TestGenerateLayout(t *testing.T) {
	g := NewGenerator(64*1024, FillerFixed)
	g.now = func() time.Time { return time.UnixMilli(1700000000000) }

	art, err := g.Generate(demoConfig(), types.ArtifactAPK)
	require.NoError(t, err)

	assert.Equal(t, "my_cool_app_v1.apk", art.Filename)
	assert.Equal(t, MimeAPK, art.MimeType)
	assert.Len(t, art.Bytes, 64*1024)

	body := string(art.Bytes)
	require.True(t, strings.HasPrefix(body, Header))
	assert.True(t, strings.HasSuffix(body, "\n[BINARY_DATA_END]"))

	start := strings.Index(body, binaryStart)
	require.Positive(t, start)

	var manifest Manifest
	require.NoError(t, sonic.UnmarshalString(body[len(Header):start], &manifest))
	assert.Equal(t, "My Cool App", manifest.Config.Name)
	assert.Equal(t, "https://demo.io", manifest.Config.URL)
	assert.Equal(t, int64(1700000000000), manifest.BuildTimestamp)
	assert.Equal(t, types.ArtifactAPK, manifest.Platform)
	assert.Equal(t, "Production", manifest.DeploymentMode)
	assert.Equal(t, "com.appcopro.native.mycoolapp", manifest.PackageName)
	assert.Contains(t, body[len(Header):start], "\n  \"config\"", "manifest is indented")

	filler := body[start+len(binaryStart) : len(body)-len(binaryEnd)]
	assert.Equal(t, strings.Repeat("A", len(filler)), filler)
}

func TestGenerateIPA(t *testing.T) {
	art, err := NewGenerator(DefaultSize, FillerFixed).Generate(demoConfig(), types.ArtifactIPA)
	require.NoError(t, err)

	assert.Equal(t, "my_cool_app_v1.ipa", art.Filename)
	assert.Equal(t, MimeIPA, art.MimeType)
	assert.Len(t, art.Bytes, DefaultSize)
}

func TestGenerateHeaderLargerThanTarget(t *testing.T) {
	art, err := NewGenerator(10, FillerFixed).Generate(demoConfig(), types.ArtifactAPK)
	require.NoError(t, err)

	assert.Greater(t, len(art.Bytes), 10)
	assert.True(t, bytes.HasSuffix(art.Bytes, []byte(binaryStart+binaryEnd)), "no filler added")
}

func TestGenerateRandomFiller(t *testing.T) {
	g := NewGenerator(32*1024, FillerRandom)

	a, err := g.Generate(demoConfig(), types.ArtifactAPK)
	require.NoError(t, err)
	b, err := g.Generate(demoConfig(), types.ArtifactAPK)
	require.NoError(t, err)

	assert.Len(t, a.Bytes, 32*1024)
	assert.Len(t, b.Bytes, 32*1024)
	assert.NotEqual(t, a.Bytes[len(a.Bytes)-1024:], b.Bytes[len(b.Bytes)-1024:])
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	_, err := NewGenerator(DefaultSize, FillerFixed).Generate(demoConfig(), "exe")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = ParseKind("zip")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	kind, err := ParseKind("IPA")
	require.NoError(t, err)
	assert.Equal(t, types.ArtifactIPA, kind)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Demo", "demo_v1.apk"},
		{"My  Cool\tApp", "my_cool_app_v1.apk"},
		{"  padded  ", "padded_v1.apk"},
		{"", "app_v1.apk"},
		{"   ", "app_v1.apk"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.name, types.ArtifactAPK))
		})
	}
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "com.appcopro.native.demo", PackageName("Demo"))
	assert.Equal(t, "com.appcopro.native.mycoolapp", PackageName(" My Cool App "))
}
