package structs

import "testing"

func TestSiteDocuments(t *testing.T) {
	s := &Site{Bucket: "example.org"}

	if got := s.IndexDocument(); got != "index.html" {
		t.Errorf("IndexDocument() = %q; want %q", got, "index.html")
	}
	if got := s.ErrorDocument(); got != "error.html" {
		t.Errorf("ErrorDocument() = %q; want %q", got, "error.html")
	}

	s.Website = Website{IndexDocument: "home.html", ErrorDocument: "404.html"}

	if got := s.IndexDocument(); got != "home.html" {
		t.Errorf("IndexDocument() = %q; want %q", got, "home.html")
	}
	if got := s.ErrorDocument(); got != "404.html" {
		t.Errorf("ErrorDocument() = %q; want %q", got, "404.html")
	}
}

func TestSiteWebsiteURL(t *testing.T) {
	tests := []struct {
		region   string
		expected string
	}{
		{"", "http://example.org.s3-website-us-east-1.amazonaws.com"},
		{"us-east-1", "http://example.org.s3-website-us-east-1.amazonaws.com"},
		{"eu-west-1", "http://example.org.s3-website.eu-west-1.amazonaws.com"},
	}

	s := &Site{Bucket: "example.org"}

	for _, test := range tests {
		if got := s.WebsiteURL(test.region); got != test.expected {
			t.Errorf("WebsiteURL(%q) = %q; want %q", test.region, got, test.expected)
		}
	}
}
