// Package googlebooks is a client for the Google Books volumes API. It is
// a best-effort enrichment source for book metadata: consumers use it to
// prefill a book record from a free-text query or an ISBN, and nothing in
// the core API depends on it.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production volumes endpoint.
const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// ImageLinks holds the cover image URLs a volume may carry.
type ImageLinks struct {
	Thumbnail string `json:"thumbnail,omitempty"`
	Small     string `json:"small,omitempty"`
	Medium    string `json:"medium,omitempty"`
	Large     string `json:"large,omitempty"`
}

// IndustryIdentifier is one ISBN (or other identifier) of a volume.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// Volume is the normalized shape of one search result.
type Volume struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Authors             []string             `json:"authors,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	Description         string               `json:"description,omitempty"`
	PageCount           int                  `json:"pageCount,omitempty"`
	Categories          []string             `json:"categories,omitempty"`
	ImageLinks          ImageLinks           `json:"imageLinks,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	Language            string               `json:"language,omitempty"`
	PreviewLink         string               `json:"previewLink,omitempty"`
	InfoLink            string               `json:"infoLink,omitempty"`
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo Volume `json:"volumeInfo"`
	} `json:"items"`
	TotalItems int `json:"totalItems"`
}

// Client queries the Google Books API. The zero value is not usable;
// construct one with New.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a Client with a 10 second default timeout.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) query(ctx context.Context, params url.Values) ([]Volume, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query books API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("books API returned status %d", resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode books API response: %w", err)
	}

	volumes := make([]Volume, 0, len(body.Items))
	for _, item := range body.Items {
		v := item.VolumeInfo
		v.ID = item.ID
		volumes = append(volumes, v)
	}
	return volumes, nil
}

// Search runs a free-text relevance-ordered search.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("printType", "books")
	params.Set("orderBy", "relevance")
	return c.query(ctx, params)
}

// SearchByTitleAuthor searches for a specific title and author pair.
func (c *Client) SearchByTitleAuthor(ctx context.Context, title, author string, maxResults int) ([]Volume, error) {
	query := fmt.Sprintf("intitle:%q+inauthor:%q", title, author)
	return c.Search(ctx, query, maxResults)
}

// LookupISBN returns the volume matching the ISBN, or nil when there is
// no match.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*Volume, error) {
	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
	params.Set("maxResults", "1")
	volumes, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, nil
	}
	return &volumes[0], nil
}

// Popular returns a relevance-ordered selection of popular books.
func (c *Client) Popular(ctx context.Context, maxResults int) ([]Volume, error) {
	return c.Search(ctx, "bestseller OR popular OR trending", maxResults)
}

// ByCategory returns books in a subject category.
func (c *Client) ByCategory(ctx context.Context, category string, maxResults int) ([]Volume, error) {
	return c.Search(ctx, "subject:"+category, maxResults)
}

// NewReleases returns books published in the current year, newest first.
func (c *Client) NewReleases(ctx context.Context, maxResults int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", "publishedDate:"+strconv.Itoa(time.Now().Year()))
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("orderBy", "newest")
	params.Set("printType", "books")
	return c.query(ctx, params)
}

// BestCover picks the largest available cover image, or "" when the
// volume has none.
func (v *Volume) BestCover() string {
	links := v.ImageLinks
	switch {
	case links.Large != "":
		return links.Large
	case links.Medium != "":
		return links.Medium
	case links.Small != "":
		return links.Small
	default:
		return links.Thumbnail
	}
}

// PreferredISBN returns the volume's ISBN-13 when present, falling back
// to ISBN-10, or "" when the volume has neither.
func (v *Volume) PreferredISBN() string {
	var isbn10 string
	for _, id := range v.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}
