package opensearch

import (
	"testing"
)

const sampleDescriptor = `<?xml version="1.0"?>
<OpenSearchDescription xmlns="http://a9.com/-/spec/opensearch/1.1/">
  <ShortName>Example</ShortName>
  <Url type="application/x-suggestions+json" template="https://example.com/suggest?q={searchTerms}"/>
  <Url type="text/html" method="get" template="https://example.com/search?q={searchTerms}"/>
</OpenSearchDescription>`

func TestNormalizeBase(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://example.com/some/deep/path?x=1", want: "https://example.com"},
		{in: "http://example.com:8080/", want: "http://example.com:8080"},
		{in: "file:///etc/hosts", wantErr: true},
		{in: "https://", wantErr: true},
	} {
		got, err := normalizeBase(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("normalizeBase(%q) = %q, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeBase(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizeBase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractTemplate(t *testing.T) {
	got, ok := extractTemplate([]byte(sampleDescriptor))
	if !ok {
		t.Fatal("extractTemplate found no template")
	}
	if got != "https://example.com/search?q={searchTerms}" {
		t.Errorf("extractTemplate = %q, want the text/html Url", got)
	}
}

func TestExtractTemplate_SkipsUnusable(t *testing.T) {
	for name, doc := range map[string]string{
		"post only": `<OpenSearchDescription>
			<Url type="text/html" method="post" template="https://e.com/?q={searchTerms}"/>
		</OpenSearchDescription>`,
		"no terms placeholder": `<OpenSearchDescription>
			<Url type="text/html" template="https://e.com/search"/>
		</OpenSearchDescription>`,
		"suggestions mime": `<OpenSearchDescription>
			<Url type="application/x-suggestions+json" template="https://e.com/s?q={searchTerms}"/>
		</OpenSearchDescription>`,
		"not xml": `<html><body>404</body></html>`,
	} {
		if got, ok := extractTemplate([]byte(doc)); ok {
			t.Errorf("%s: extractTemplate = %q, want no template", name, got)
		}
	}
}

func TestDescriptorLinks(t *testing.T) {
	page := `<html><head>
		<link rel="stylesheet" href="/style.css">
		<link rel="search" type="application/opensearchdescription+xml" href="/osd.xml" title="Site search">
		<link rel="search" href="/alt.xml">
		<link rel="icon" href="/favicon.ico">
	</head><body></body></html>`

	got := descriptorLinks([]byte(page))
	want := []string{"/osd.xml", "/alt.xml"}
	if len(got) != len(want) {
		t.Fatalf("descriptorLinks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("descriptorLinks[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDescriptorLinks_WrongType(t *testing.T) {
	page := `<link rel="search" type="text/html" href="/not-a-descriptor">`
	if got := descriptorLinks([]byte(page)); len(got) != 0 {
		t.Errorf("descriptorLinks = %v, want none", got)
	}
}
