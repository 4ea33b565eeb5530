package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const wikiTimeout = 20 * time.Second

var whitespaceRe = regexp.MustCompile(`\s`)

// WikiSummary is the subset of the Wikipedia REST page summary consumed by
// the narrative composer. The zero value means "no summary found".
type WikiSummary struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
}

// PageURL returns the desktop article URL, if any.
func (s WikiSummary) PageURL() string {
	return s.ContentURLs.Desktop.Page
}

// ImageCredit returns the source URL of the article's original image, if any.
func (s WikiSummary) ImageCredit() string {
	return s.OriginalImage.Source
}

// WikiService fetches encyclopedia summaries from the Wikipedia REST API.
type WikiService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewWikiService(logger *zap.Logger) *WikiService {
	return &WikiService{
		baseURL:    "https://en.wikipedia.org/api/rest_v1",
		userAgent:  "SnapHistory/1.0 (support@snaphistory.app)",
		httpClient: &http.Client{Timeout: wikiTimeout},
		logger:     logger,
	}
}

// Summary fetches the page summary for a title. When the bare title yields
// no extract and a country is known, it retries exactly once with the
// country appended. A missing page or failed request resolves to an empty
// summary, never an error.
func (s *WikiService) Summary(ctx context.Context, title, country string) WikiSummary {
	summary := s.fetch(ctx, title)
	if summary.Extract == "" && country != "" {
		summary = s.fetch(ctx, title+" "+country)
	}
	return summary
}

func (s *WikiService) fetch(ctx context.Context, title string) WikiSummary {
	slug := whitespaceRe.ReplaceAllString(strings.TrimSpace(title), "_")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/page/summary/%s", s.baseURL, url.PathEscape(slug)), nil)
	if err != nil {
		return WikiSummary{}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug("summary fetch failed", zap.String("title", title), zap.Error(err))
		return WikiSummary{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return WikiSummary{}
	}

	var summary WikiSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		s.logger.Debug("summary decode failed", zap.String("title", title), zap.Error(err))
		return WikiSummary{}
	}
	return summary
}
