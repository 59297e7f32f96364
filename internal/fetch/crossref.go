// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch resolves DOIs to bibliographic metadata via the Crossref
// REST API. Network failures surface as errors; the batch orchestrator
// absorbs them into null results, so nothing here aborts a run.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pdiddy/citation-engine/internal/httputil"
	"github.com/pdiddy/citation-engine/internal/resolve"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// crossrefAPIBase is the Crossref REST endpoint. Declared as a var so tests
// can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org"

// searchRows is how many candidates a bibliographic search requests; only
// the top-ranked result with a DOI is ever used.
const searchRows = 5

// Client queries the Crossref works API.
type Client struct {
	http    *http.Client
	cfg     types.FetchConfig
	limiter *rate.Limiter
}

// NewClient returns a Client configured per cfg. Requests are rate limited
// client-side so that polite-pool limits are never tripped by a full batch.
func NewClient(cfg types.FetchConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// ByDOI fetches the bibliographic metadata for a DOI. A nil error with a
// non-nil Metadata is the only success shape; HTTP 404 is an error like any
// other, since the caller treats all failures alike.
func (c *Client) ByDOI(ctx context.Context, doi string) (*types.Metadata, error) {
	endpoint := crossrefAPIBase + "/works/" + url.PathEscape(doi)

	var cr worksResponse
	if err := c.getJSON(ctx, endpoint, nil, &cr); err != nil {
		return nil, err
	}

	md := mapWork(cr.Message)
	if md.DOI == "" {
		// Keep the cache keyed by the DOI as resolved, not as echoed back.
		md.DOI = doi
	}
	return md, nil
}

// Bibliographic searches Crossref by free text and returns ranked results,
// best first. Used by the resolver when explicit DOI extraction fails.
func (c *Client) Bibliographic(ctx context.Context, text string) ([]resolve.SearchResult, error) {
	params := url.Values{
		"query.bibliographic": {text},
		"rows":                {fmt.Sprintf("%d", searchRows)},
		"sort":                {"score"},
		"order":               {"desc"},
	}

	var sr searchResponse
	if err := c.getJSON(ctx, crossrefAPIBase+"/works", params, &sr); err != nil {
		return nil, err
	}

	results := make([]resolve.SearchResult, 0, len(sr.Message.Items))
	for _, item := range sr.Message.Items {
		title := ""
		if len(item.Title) > 0 {
			title = item.Title[0]
		}
		results = append(results, resolve.SearchResult{
			DOI:   item.DOI,
			Title: title,
			Score: item.Score,
		})
	}
	return results, nil
}

// getJSON performs a rate-limited GET with retry and decodes the body.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if c.cfg.MailTo != "" {
		if params == nil {
			params = url.Values{}
		}
		params.Set("mailto", c.cfg.MailTo)
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.PlusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+c.cfg.PlusToken)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{"status": resp.StatusCode, "url": endpoint}).
			Debug("crossref request failed")
		return fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing Crossref response: %w", err)
	}
	return nil
}

// mapWork converts a Crossref work record into the pipeline Metadata shape.
// Missing fields stay empty; the formatters degrade per element.
func mapWork(w crossrefWork) *types.Metadata {
	md := &types.Metadata{
		Volume:        w.Volume,
		Issue:         w.Issue,
		Pages:         w.Page,
		ArticleNumber: w.ArticleNumber,
		DOI:           w.DOI,
	}
	if len(w.Title) > 0 {
		md.Title = strings.TrimSpace(w.Title[0])
	}
	if len(w.ContainerTitle) > 0 {
		md.Journal = w.ContainerTitle[0]
	}
	for _, a := range w.Author {
		md.Authors = append(md.Authors, types.Author{Given: a.Given, Family: a.Family})
	}
	if len(w.Issued.DateParts) > 0 && len(w.Issued.DateParts[0]) > 0 {
		md.Year = w.Issued.DateParts[0][0]
	}
	return md
}

// Crossref API JSON structures.
type worksResponse struct {
	Message crossrefWork `json:"message"`
}

type searchResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Issued         crossrefDate     `json:"issued"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Page           string           `json:"page"`
	ArticleNumber  string           `json:"article-number"`
	DOI            string           `json:"DOI"`
	Score          float64          `json:"score"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
