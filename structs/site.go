package structs

import "strings"

// Website holds the S3 static website hosting documents for a site.
type Website struct {
	IndexDocument string `json:"indexDocument" yaml:"indexDocument"`
	ErrorDocument string `json:"errorDocument" yaml:"errorDocument"`
}

// Site describes a local directory that is deployed to an S3 bucket.
type Site struct {
	Bucket  string  `json:"bucket" yaml:"bucket"`
	Source  string  `json:"source" yaml:"source"`
	Region  string  `json:"region" yaml:"region"`
	Website Website `json:"website" yaml:"website"`
}

const (
	DefaultIndexDocument = "index.html"
	DefaultErrorDocument = "error.html"
)

// IndexDocument returns the configured index document, or index.html.
func (s *Site) IndexDocument() string {
	if s.Website.IndexDocument == "" {
		return DefaultIndexDocument
	}

	return s.Website.IndexDocument
}

// ErrorDocument returns the configured error document, or error.html.
func (s *Site) ErrorDocument() string {
	if s.Website.ErrorDocument == "" {
		return DefaultErrorDocument
	}

	return s.Website.ErrorDocument
}

// WebsiteURL returns the S3 static website endpoint for the site's bucket in
// the given region. us-east-1 uses the legacy dash-style endpoint.
func (s *Site) WebsiteURL(region string) string {
	if region == "" || region == "us-east-1" {
		return "http://" + s.Bucket + ".s3-website-us-east-1.amazonaws.com"
	}

	var b strings.Builder
	b.WriteString("http://")
	b.WriteString(s.Bucket)
	b.WriteString(".s3-website.")
	b.WriteString(region)
	b.WriteString(".amazonaws.com")

	return b.String()
}
