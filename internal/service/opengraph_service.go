package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/glptrack/wellness-service/pkg/util"
)

const (
	opengraphTimeout   = 10 * time.Second
	opengraphMaxBody   = int64(2 << 20)
	opengraphUserAgent = "wellness-service/1.0 (+link preview)"
)

// OpenGraphPreview is the scraped link metadata. Fetch or parse problems
// land in Error; the request itself still succeeds.
type OpenGraphPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
	Error       string `json:"error,omitempty"`
}

// OpenGraphService fetches link previews for the forum and content editor.
type OpenGraphService struct {
	client *http.Client
}

// NewOpenGraphService constructs the service with a bounded client.
func NewOpenGraphService(client *http.Client) *OpenGraphService {
	if client == nil {
		client = &http.Client{Timeout: opengraphTimeout}
	}
	return &OpenGraphService{client: client}
}

// Preview fetches and parses the page at rawURL. Only absolute http(s)
// URLs are accepted; anything that goes wrong past validation is reported
// in the preview payload, not as an error.
func (s *OpenGraphService) Preview(ctx context.Context, rawURL string) (*OpenGraphPreview, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, util.NewValidationError("url must be absolute http or https", map[string]any{"url": rawURL})
	}

	preview := &OpenGraphPreview{URL: parsed.String()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		preview.Error = err.Error()
		return preview, nil
	}
	req.Header.Set("User-Agent", opengraphUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		preview.Error = "fetch failed"
		return preview, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview.Error = fmt.Sprintf("upstream returned %d", resp.StatusCode)
		return preview, nil
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, opengraphMaxBody))
	if err != nil {
		preview.Error = "parse failed"
		return preview, nil
	}

	base := resp.Request.URL
	extractMetadata(doc, base, preview)
	if preview.Favicon == "" {
		preview.Favicon = base.Scheme + "://" + base.Host + "/favicon.ico"
	}
	return preview, nil
}

// extractMetadata walks the document collecting og: tags with plain-tag
// fallbacks for title, description and favicon.
func extractMetadata(node *html.Node, base *url.URL, preview *OpenGraphPreview) {
	var fallbackTitle, fallbackDescription string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property := attrValue(n, "property")
				if property == "" {
					property = attrValue(n, "name")
				}
				content := attrValue(n, "content")
				switch property {
				case "og:title":
					preview.Title = content
				case "og:description":
					preview.Description = content
				case "og:image":
					preview.Image = absolutize(base, content)
				case "og:site_name":
					preview.SiteName = content
				case "description":
					fallbackDescription = content
				}
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					fallbackTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case "link":
				rel := strings.ToLower(attrValue(n, "rel"))
				if strings.Contains(rel, "icon") && preview.Favicon == "" {
					preview.Favicon = absolutize(base, attrValue(n, "href"))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	if preview.Title == "" {
		preview.Title = fallbackTitle
	}
	if preview.Description == "" {
		preview.Description = fallbackDescription
	}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// absolutize resolves a possibly relative reference against the page URL.
func absolutize(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
