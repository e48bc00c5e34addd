package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultWikipediaBaseURL = "https://en.wikipedia.org"

	summaryLimit = 500
)

// WikipediaConfig carries the endpoint material for article lookups.
type WikipediaConfig struct {
	// BaseURL is the wiki host, without the api path. Defaults to English
	// Wikipedia.
	BaseURL string
}

// WikipediaClient looks up articles through the MediaWiki action API.
type WikipediaClient struct {
	config     WikipediaConfig
	httpClient *http.Client
}

func NewWikipediaClient(config WikipediaConfig) *WikipediaClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultWikipediaBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &WikipediaClient{
		config: config,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}
}

// Lookup finds the best-matching article and renders its title, a trimmed
// intro, and a link to the full article.
func (c *WikipediaClient) Lookup(ctx context.Context, query string) (string, error) {
	ctx, span := tracer.Start(ctx, "Wikipedia Lookup")
	defer span.End()

	pageID, title, err := c.search(ctx, query)
	if err != nil {
		return "", err
	}

	extract, err := c.extract(ctx, pageID)
	if err != nil {
		return "", err
	}

	articleURL := fmt.Sprintf("%s/wiki/%s", c.config.BaseURL,
		url.PathEscape(strings.ReplaceAll(title, " ", "_")))

	return fmt.Sprintf("%s\n\n%s\n\nRead more: %s", title, summarize(extract), articleURL), nil
}

func (c *WikipediaClient) search(ctx context.Context, query string) (pageID int, title string, err error) {
	queryParams := url.Values{}
	queryParams.Set("action", "query")
	queryParams.Set("list", "search")
	queryParams.Set("srsearch", query)
	queryParams.Set("format", "json")
	queryParams.Set("srlimit", "1")

	var searchResponse struct {
		Query struct {
			Search []struct {
				PageID int    `json:"pageid"`
				Title  string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.get(ctx, queryParams, &searchResponse); err != nil {
		return 0, "", fmt.Errorf("failed to search wikipedia: %w", err)
	}

	if len(searchResponse.Query.Search) == 0 {
		return 0, "", fmt.Errorf("no results found for %q", query)
	}

	result := searchResponse.Query.Search[0]
	return result.PageID, result.Title, nil
}

func (c *WikipediaClient) extract(ctx context.Context, pageID int) (string, error) {
	queryParams := url.Values{}
	queryParams.Set("action", "query")
	queryParams.Set("prop", "extracts")
	queryParams.Set("exintro", "true")
	queryParams.Set("explaintext", "true")
	queryParams.Set("pageids", fmt.Sprintf("%d", pageID))
	queryParams.Set("format", "json")

	var contentResponse struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.get(ctx, queryParams, &contentResponse); err != nil {
		return "", fmt.Errorf("failed to fetch wikipedia extract: %w", err)
	}

	page, ok := contentResponse.Query.Pages[fmt.Sprintf("%d", pageID)]
	if !ok || page.Extract == "" {
		return "No content available", nil
	}
	return page.Extract, nil
}

func (c *WikipediaClient) get(ctx context.Context, queryParams url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/w/api.php?"+queryParams.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// summarize keeps the first paragraph, capped at 500 runes. The ellipsis
// is always appended.
func summarize(extract string) string {
	firstLine, _, _ := strings.Cut(extract, "\n")
	runes := []rune(firstLine)
	if len(runes) > summaryLimit {
		runes = runes[:summaryLimit]
	}
	return string(runes) + "..."
}
