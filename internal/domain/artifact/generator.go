package artifact

import (
	"bytes"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/bytedance/sonic"
)

const (
	Header        = "APPCOPRO_NATIVE_ENGINE_V2.5\nBUILD_BY_SAYED_MOHSIN_ALI\n--------------------------\n"
	binaryStart   = "\n\n[BINARY_DATA_START]\n"
	binaryEnd     = "\n[BINARY_DATA_END]"
	packagePrefix = "com.appcopro.native."

	// DefaultSize is the padded size of a generated artifact (15 MiB)
	DefaultSize = 15 * 1024 * 1024

	MimeAPK = "application/vnd.android.package-archive"
	MimeIPA = "application/x-ios-app"
)

// Filler selects the padding bytes
type Filler string

const (
	FillerFixed  Filler = "fixed"
	FillerRandom Filler = "random"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Manifest is the JSON document embedded after the header
type Manifest struct {
	Config         types.ProjectConfig `json:"config"`
	BuildTimestamp int64               `json:"build_timestamp"`
	Platform       types.ArtifactKind  `json:"platform"`
	DeploymentMode string              `json:"deployment_mode"`
	PackageName    string              `json:"package_name"`
}

// Generator produces placeholder binaries. It performs no I/O.
type Generator struct {
	size   int
	filler Filler
	now    func() time.Time
}

// NewGenerator creates a generator padding artifacts to size bytes
func NewGenerator(size int, filler Filler) *Generator {
	if size < 0 {
		size = 0
	}
	if filler != FillerRandom {
		filler = FillerFixed
	}
	return &Generator{size: size, filler: filler, now: time.Now}
}

// Generate builds the artifact for cfg. kind must be apk or ipa.
func (g *Generator) Generate(cfg types.ProjectConfig, kind types.ArtifactKind) (types.Artifact, error) {
	mime, err := MimeType(kind)
	if err != nil {
		return types.Artifact{}, err
	}

	manifest, err := sonic.MarshalIndent(Manifest{
		Config:         cfg,
		BuildTimestamp: g.now().UnixMilli(),
		Platform:       kind,
		DeploymentMode: "Production",
		PackageName:    PackageName(cfg.Name),
	}, "", "  ")
	if err != nil {
		return types.Artifact{}, fmt.Errorf("encode manifest: %w", err)
	}

	fixed := len(Header) + len(manifest) + len(binaryStart) + len(binaryEnd)
	padding := max(g.size-fixed, 0)

	var buf bytes.Buffer
	buf.Grow(fixed + padding)
	buf.WriteString(Header)
	buf.Write(manifest)
	buf.WriteString(binaryStart)
	buf.Write(g.fill(padding))
	buf.WriteString(binaryEnd)

	return types.Artifact{
		Bytes:    buf.Bytes(),
		Filename: Filename(cfg.Name, kind),
		MimeType: mime,
	}, nil
}

func (g *Generator) fill(n int) []byte {
	if n == 0 {
		return nil
	}
	if g.filler == FillerFixed {
		return bytes.Repeat([]byte{'A'}, n)
	}

	out := make([]byte, n)
	for i := 0; i < n; i += 8 {
		v := rand.Uint64()
		for j := 0; j < 8 && i+j < n; j++ {
			out[i+j] = byte(v >> (8 * j))
		}
	}
	return out
}

// ParseKind validates a path or query value naming an artifact kind
func ParseKind(s string) (types.ArtifactKind, error) {
	kind := types.ArtifactKind(strings.ToLower(s))
	if _, err := MimeType(kind); err != nil {
		return "", err
	}
	return kind, nil
}

// MimeType returns the download content type for kind
func MimeType(kind types.ArtifactKind) (string, error) {
	switch kind {
	case types.ArtifactAPK:
		return MimeAPK, nil
	case types.ArtifactIPA:
		return MimeIPA, nil
	default:
		return "", fmt.Errorf("%w: unknown artifact kind %q", types.ErrInvalidArgument, kind)
	}
}

// Filename returns "<slug>_v1.<kind>" where slug is the lowercased name with
// whitespace runs collapsed to "_". An empty slug becomes "app".
func Filename(name string, kind types.ArtifactKind) string {
	slug := whitespaceRun.ReplaceAllString(strings.TrimSpace(strings.ToLower(name)), "_")
	if slug == "" {
		slug = "app"
	}
	return slug + "_v1." + string(kind)
}

// PackageName returns the Android style package of a project name
func PackageName(name string) string {
	return packagePrefix + whitespaceRun.ReplaceAllString(strings.ToLower(name), "")
}
