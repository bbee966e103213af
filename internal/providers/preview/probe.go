package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/providers/http/client"
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/go-resty/resty/v2"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// MaxHTMLSize limits how much of a page is read
const MaxHTMLSize = 2 * 1024 * 1024

// Metadata is what the phone-frame overlay shows about the target site
type Metadata struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	ThemeColor  string   `json:"theme_color,omitempty"`
	Icons       []string `json:"icons,omitempty"`
	Charset     string   `json:"charset"`
}

// Prober fetches a page once and extracts its metadata
type Prober struct {
	http   *client.Client
	logger *logging.Logger
}

// NewProber creates a site prober. Non-public destinations are refused
// unless cfg.AllowPrivate is set. metrics may be nil.
func NewProber(cfg config.PreviewConfig, logger *logging.Logger, metrics *monitoring.Metrics) *Prober {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Prober{
		http: client.New(client.Options{
			Name:       "preview",
			Timeout:    cfg.Timeout,
			PublicOnly: !cfg.AllowPrivate,
			UserAgent:  "Mozilla/5.0 (Linux; Android 13; AppCoPro Engine) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
		}, logger, metrics),
		logger: logger.Component("preview"),
	}
}

// Probe fetches target and parses its metadata
func (p *Prober) Probe(ctx context.Context, target string) (Metadata, error) {
	base, err := url.Parse(target)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return Metadata{}, fmt.Errorf("invalid preview url %q", target)
	}

	var body []byte
	var contentType string
	_, err = p.http.Execute(ctx, func(r *resty.Request) (*resty.Response, error) {
		resp, err := r.SetDoNotParseResponse(true).
			SetHeader("Accept", "text/html,application/xhtml+xml").
			Get(target)
		if err != nil {
			return resp, err
		}
		defer resp.RawBody().Close()

		contentType = resp.Header().Get("Content-Type")
		body, err = io.ReadAll(io.LimitReader(resp.RawBody(), MaxHTMLSize))
		return resp, err
	})
	if err != nil {
		p.logger.Debug("Preview probe failed", zap.String("url", target), zap.Error(err))
		return Metadata{}, err
	}

	return Parse(body, contentType, base)
}

// Parse extracts metadata from an HTML document. Relative icon links are
// resolved against base.
func Parse(data []byte, contentType string, base *url.URL) (Metadata, error) {
	decoded, name := decode(data, contentType)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return Metadata{}, fmt.Errorf("parse html: %w", err)
	}

	meta := Metadata{
		URL:         base.String(),
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: attr(doc, `meta[name="description"]`, "content"),
		ThemeColor:  attr(doc, `meta[name="theme-color"]`, "content"),
		Charset:     name,
	}
	if meta.Title == "" {
		meta.Title = attr(doc, `meta[property="og:title"]`, "content")
	}

	meta.Icons, err = iconLinks(decoded, base)
	if err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}

// iconLinks collects <link rel="...icon..."> hrefs with XPath
func iconLinks(data []byte, base *url.URL) ([]string, error) {
	root, err := htmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	nodes, err := htmlquery.QueryAll(root, `//link[contains(translate(@rel, "ICON", "icon"), "icon")]`)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(nodes))
	icons := make([]string, 0, len(nodes))
	for _, n := range nodes {
		href := strings.TrimSpace(htmlquery.SelectAttr(n, "href"))
		if href == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref).String()
		if !seen[abs] {
			seen[abs] = true
			icons = append(icons, abs)
		}
	}
	return icons, nil
}

// decode converts the page to UTF-8. The declared charset wins; otherwise
// the encoding is sniffed with chardet.
func decode(data []byte, contentType string) ([]byte, string) {
	if _, name, certain := charset.DetermineEncoding(data, contentType); certain {
		return convert(data, "text/html; charset="+name), name
	}

	name := "utf-8"
	if result, err := chardet.NewHtmlDetector().DetectBest(data); err == nil && result != nil {
		name = strings.ToLower(result.Charset)
	}
	return convert(data, "text/html; charset="+name), name
}

func convert(data []byte, contentType string) []byte {
	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return data
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}
