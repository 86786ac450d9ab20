package tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pub_models "github.com/baalimago/toolloop/pkg/text/models"
	"github.com/spf13/cast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	websiteTextUserAgent = "Mozilla/5.0 (X11; Linux x86_64) toolloop/website_text"
	websiteTextMaxBody   = 5 << 20
)

type WebsiteTextTool pub_models.Specification

var WebsiteText = WebsiteTextTool{
	Name:        string(pub_models.WebsiteTextTool),
	Description: "Get the text content of a website by stripping all non-text tags and trimming whitespace.",
	Inputs: &pub_models.InputSchema{
		Type: "object",
		Properties: map[string]pub_models.ParameterObject{
			"url": {
				Type:        "string",
				Description: "The URL of the website to retrieve the text content from.",
			},
		},
		Required: []string{"url"},
	},
}

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

var websiteTextHTTPClient httpDoer = &http.Client{Timeout: 10 * time.Second}

var (
	skippedTags = map[string]bool{
		"script": true, "style": true, "noscript": true, "head": true,
		"iframe": true, "svg": true, "canvas": true, "template": true,
	}
	blockTags = map[string]bool{
		"p": true, "div": true, "li": true, "section": true, "article": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"header": true, "footer": true, "nav": true, "br": true, "ul": true, "ol": true,
	}
)

func (w WebsiteTextTool) Call(input pub_models.Input) (string, error) {
	return w.CallContext(context.Background(), input)
}

// CallContext fetches the page, aborting the request once ctx is done.
func (w WebsiteTextTool) CallContext(ctx context.Context, input pub_models.Input) (string, error) {
	urlStr, err := cast.ToStringE(input["url"])
	if err != nil || urlStr == "" {
		return "", fmt.Errorf("url must be a non-empty string")
	}
	u, err := url.ParseRequestURI(urlStr)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	body, ctype, err := fetchPage(ctx, u)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var r io.Reader = io.LimitReader(body, websiteTextMaxBody)
	if decoded, err := charset.NewReader(r, ctype); err == nil {
		r = decoded
	}
	return visibleText(r)
}

func (w WebsiteTextTool) Specification() pub_models.Specification {
	return pub_models.Specification(WebsiteText)
}

func fetchPage(ctx context.Context, u *url.URL) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", websiteTextUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := websiteTextHTTPClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("bad status: %s", resp.Status)
	}
	ctype := resp.Header.Get("Content-Type")
	if ctype != "" &&
		!strings.Contains(ctype, "text/html") &&
		!strings.Contains(ctype, "application/xhtml+xml") &&
		!strings.Contains(ctype, "text/plain") {
		resp.Body.Close()
		return nil, "", fmt.Errorf("unsupported content-type: %s", ctype)
	}
	return resp.Body, ctype, nil
}

// visibleText walks the html tokens and keeps text which a browser would
// render, one line per block element.
func visibleText(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)
	skipDepth := 0
	var text strings.Builder
	newline := func() {
		s := text.String()
		if s != "" && s[len(s)-1] != '\n' {
			text.WriteByte('\n')
		}
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return collapseBlankLines(text.String()), nil
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := strings.ToLower(string(name))
			if skippedTags[tag] {
				if tt == html.StartTagToken {
					skipDepth++
				} else if tt == html.EndTagToken && skipDepth > 0 {
					skipDepth--
				}
			}
			if blockTags[tag] {
				newline()
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			fields := bytes.Fields(tokenizer.Text())
			if len(fields) == 0 {
				continue
			}
			text.Write(bytes.Join(fields, []byte(" ")))
			text.WriteByte('\n')
		}
	}
}

func collapseBlankLines(s string) string {
	out := strings.TrimSpace(s)
	if out == "" {
		return ""
	}
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return out + "\n"
}
