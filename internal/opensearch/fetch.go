package opensearch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// userAgent identifies the service on outbound descriptor fetches. Some
// sites vary their descriptor response by client, so it mimics a browser.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/118.0 Safari/537.36 golink/1.0"

// normalizeBase reduces a link URL to its cache key: scheme://host with the
// path stripped. Only http and https sites can carry a descriptor.
func normalizeBase(linkURL string) (string, error) {
	u, err := url.Parse(linkURL)
	if err != nil {
		return "", fmt.Errorf("parse link url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("scheme %q cannot carry a descriptor", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("link url has no host")
	}
	return u.Scheme + "://" + u.Host, nil
}

// fetchTemplate discovers and downloads a site's OpenSearch template.
// It tries the conventional descriptor locations first, then scans the
// landing page for an advertised descriptor link.
func (c *Cache) fetchTemplate(ctx context.Context, base string) (Template, error) {
	candidates := []string{
		base + "/opensearch.xml",
		base + "/.well-known/opensearch.xml",
	}

	var firstErr error
	try := func(docURL string) (Template, bool) {
		body, err := c.httpGet(ctx, docURL)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return Template{}, false
		}
		pattern, ok := extractTemplate(body)
		if !ok {
			if firstErr == nil {
				firstErr = fmt.Errorf("no usable template in %s", docURL)
			}
			return Template{}, false
		}
		return Template{DocURL: docURL, Pattern: pattern}, true
	}

	for _, docURL := range candidates {
		if t, ok := try(docURL); ok {
			return t, nil
		}
	}

	// Fall back to descriptor links advertised in the landing page.
	if page, err := c.httpGet(ctx, base+"/"); err == nil {
		for _, href := range descriptorLinks(page) {
			docURL := resolveRef(base+"/", href)
			if docURL == "" {
				continue
			}
			if t, ok := try(docURL); ok {
				return t, nil
			}
		}
	}

	if firstErr == nil {
		firstErr = fmt.Errorf("no descriptor found for %s", base)
	}
	return Template{}, firstErr
}

// httpGet fetches a URL with the cache's client, enforcing the body bound.
func (c *Cache) httpGet(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("get %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("get %s: body exceeds %d bytes", rawURL, c.maxBodyBytes)
	}
	return body, nil
}

// openSearchDescription mirrors the descriptor document's Url elements.
type openSearchDescription struct {
	URLs []openSearchURL `xml:"Url"`
}

type openSearchURL struct {
	Template string `xml:"template,attr"`
	Type     string `xml:"type,attr"`
	Method   string `xml:"method,attr"`
}

// extractTemplate pulls the first usable HTML GET template out of a
// descriptor document: it must carry a searchTerms placeholder and target a
// browsable result page.
func extractTemplate(doc []byte) (string, bool) {
	var desc openSearchDescription
	if err := xml.Unmarshal(doc, &desc); err != nil {
		return "", false
	}
	for _, u := range desc.URLs {
		if u.Template == "" {
			continue
		}
		if u.Method != "" && !strings.EqualFold(u.Method, "get") {
			continue
		}
		mime := strings.ToLower(u.Type)
		if mime != "" && mime != "text/html" && mime != "application/xhtml+xml" {
			continue
		}
		if !strings.Contains(strings.ToLower(u.Template), "searchterms") {
			continue
		}
		return u.Template, true
	}
	return "", false
}

// descriptorLinks scans an HTML page for <link rel="search"> descriptor hrefs.
func descriptorLinks(page []byte) []string {
	var hrefs []string
	z := html.NewTokenizer(strings.NewReader(string(page)))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return hrefs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "link" || !hasAttr {
			continue
		}

		var rel, typ, href string
		for {
			key, val, more := z.TagAttr()
			switch string(key) {
			case "rel":
				rel = string(val)
			case "type":
				typ = string(val)
			case "href":
				href = string(val)
			}
			if !more {
				break
			}
		}

		if !strings.Contains(strings.ToLower(rel), "search") {
			continue
		}
		if typ != "" && !strings.Contains(strings.ToLower(typ), "opensearchdescription+xml") {
			continue
		}
		if href != "" {
			hrefs = append(hrefs, href)
		}
	}
}

// resolveRef resolves href against base, returning "" on parse failure.
func resolveRef(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	h, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(h).String()
}
