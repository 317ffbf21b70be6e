package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the catalog API. It implements Fetcher and also exposes
// the facet vocabularies the Editor needs.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type listResponse struct {
	Items   []Product `json:"items"`
	HasMore bool      `json:"has_more"`
}

func (c *Client) FetchPage(ctx context.Context, filters FilterSet, page, limit int) (*Page, error) {
	q := filters.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var resp listResponse
	if err := c.getJSON(ctx, "/api/products?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	return &Page{Items: resp.Items, HasMore: resp.HasMore}, nil
}

// Facet vocabulary types mirror the API's category/brand payloads.
type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Subcategory struct {
	ID         int    `json:"id"`
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
}

type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.getJSON(ctx, "/api/categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) FetchBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := c.getJSON(ctx, "/api/brands", &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// SubcategoryOwners flattens the category tree into the subcategory→category
// table the Editor prunes against.
func SubcategoryOwners(cats []Category) map[int]int {
	owners := map[int]int{}
	for _, c := range cats {
		for _, s := range c.Subcategories {
			owners[s.ID] = c.ID
		}
	}
	return owners
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
