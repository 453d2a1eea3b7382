package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const (
	ProductionURL = "https://connect.squareup.com"
	SandboxURL    = "https://connect.squareupsandbox.com"
	// APIVersion pins the request/response shapes used below
	APIVersion = "2024-10-17"
)

// Client talks to the Square Connect v2 API
type Client struct {
	BaseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new commerce platform client for the named environment
// ("production" or "sandbox"). A timeout of zero means no client-side deadline.
func NewClient(environment, token string, timeout time.Duration) *Client {
	baseURL := ProductionURL
	if strings.EqualFold(environment, "sandbox") {
		baseURL = SandboxURL
	}
	return NewClientWithURL(baseURL, token, &http.Client{Timeout: timeout})
}

// NewClientWithURL creates a client against an explicit base URL
func NewClientWithURL(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// APIErrorDetail is one entry of the platform's error payload
type APIErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field,omitempty"`
}

// APIError is returned when the platform answers with a non-2xx status
type APIError struct {
	StatusCode int
	Errors     []APIErrorDetail
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("commerce API returned status %d: %s", e.StatusCode, e.Body)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s/%s: %s", d.Category, d.Code, d.Detail))
	}
	return fmt.Sprintf("commerce API returned status %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// CreateItem upserts a new catalog item and returns the ids the platform assigned
func (c *Client) CreateItem(ctx context.Context, idempotencyKey string, item Object) (ItemIDs, error) {
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"object":          item,
	}

	var resp struct {
		CatalogObject Object `json:"catalog_object"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v2/catalog/object", body, &resp); err != nil {
		return ItemIDs{}, err
	}

	ids := ItemIDs{ItemID: resp.CatalogObject.ID}
	if data := resp.CatalogObject.ItemData; data != nil && len(data.Variations) > 0 {
		ids.VariationID = data.Variations[0].ID
	}
	if ids.ItemID == "" || ids.VariationID == "" {
		return ids, fmt.Errorf("create item response is missing item or variation id")
	}
	return ids, nil
}

// AdjustInventory submits a batch of inventory changes
func (c *Client) AdjustInventory(ctx context.Context, idempotencyKey string, changes []InventoryChange) error {
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"changes":         changes,
	}
	return c.doJSON(ctx, http.MethodPost, "/v2/inventory/changes/batch-create", body, nil)
}

// CreateImage uploads image bytes of the given MIME type and attaches them to
// the catalog object
func (c *Client) CreateImage(ctx context.Context, req ImageRequest, filename, contentType string, image io.Reader) (string, error) {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal image request: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	reqHeader := make(textproto.MIMEHeader)
	reqHeader.Set("Content-Disposition", `form-data; name="request"`)
	reqHeader.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(reqHeader)
	if err != nil {
		return "", fmt.Errorf("failed to create request part: %w", err)
	}
	if _, err := part.Write(requestJSON); err != nil {
		return "", fmt.Errorf("failed to write request part: %w", err)
	}

	fileHeader := make(textproto.MIMEHeader)
	fileHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image_file"; filename=%q`, filename))
	fileHeader.Set("Content-Type", contentType)
	part, err = mw.CreatePart(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("failed to write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/v2/catalog/images", &buf)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	var resp struct {
		Image Object `json:"image"`
	}
	if err := c.do(httpReq, &resp); err != nil {
		return "", err
	}
	return resp.Image.ID, nil
}

// ListItems returns every ITEM object in the catalog, following pagination cursors
func (c *Client) ListItems(ctx context.Context) ([]Object, error) {
	var objects []Object
	cursor := ""
	for {
		q := url.Values{"types": {"ITEM"}}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page struct {
			Objects []Object `json:"objects"`
			Cursor  string   `json:"cursor"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/v2/catalog/list?"+q.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list catalog: %w", err)
		}

		objects = append(objects, page.Objects...)
		if page.Cursor == "" {
			return objects, nil
		}
		cursor = page.Cursor
	}
}

// ListLocations returns the seller's locations
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var resp struct {
		Locations []Location `json:"locations"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v2/locations", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return resp.Locations, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Square-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call commerce API: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		var payload struct {
			Errors []APIErrorDetail `json:"errors"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Errors = payload.Errors
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
