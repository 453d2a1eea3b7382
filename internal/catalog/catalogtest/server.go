// Package catalogtest provides an in-memory stand-in for the commerce API.
package catalogtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/eccentric-easel/easel/internal/catalog"
)

// ImageUpload is a recorded image upload
type ImageUpload struct {
	Request     catalog.ImageRequest
	Filename    string
	ContentType string
	Data        []byte
}

// Server records every call made against it
type Server struct {
	*httptest.Server

	// Fail maps an endpoint path to the status code it should answer with
	Fail map[string]int
	// Listing is served by /v2/catalog/list, PageSize objects at a time
	Listing   []catalog.Object
	Locations []catalog.Location
	PageSize  int

	mu             sync.Mutex
	Items          []catalog.Object
	ItemKeys       []string
	InventoryKeys  []string
	Inventory      []catalog.InventoryChange
	Images         []ImageUpload
	Calls          []string
	Authorizations []string
	created        int
}

const (
	PathCreateItem = "/v2/catalog/object"
	PathInventory  = "/v2/inventory/changes/batch-create"
	PathImages     = "/v2/catalog/images"
	PathList       = "/v2/catalog/list"
	PathLocations  = "/v2/locations"
)

// NewServer starts a fake commerce API that is closed when the test ends
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{Fail: map[string]int{}, PageSize: 100}
	mux := http.NewServeMux()
	mux.HandleFunc(PathCreateItem, s.handleCreateItem)
	mux.HandleFunc(PathInventory, s.handleInventory)
	mux.HandleFunc(PathImages, s.handleImages)
	mux.HandleFunc(PathList, s.handleList)
	mux.HandleFunc(PathLocations, s.handleLocations)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Calls = append(s.Calls, r.URL.Path)
		s.Authorizations = append(s.Authorizations, r.Header.Get("Authorization"))
		status, fail := s.Fail[r.URL.Path]
		s.mu.Unlock()

		if fail {
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"errors":[{"category":"INVALID_REQUEST_ERROR","code":"BAD_REQUEST","detail":"forced failure on %s"}]}`, r.URL.Path)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

// CatalogClient returns a catalog client pointed at the fake
func (s *Server) CatalogClient() *catalog.Client {
	return catalog.NewClientWithURL(s.URL, "test-token", s.Server.Client())
}

// CallCount returns the number of requests received for path
func (s *Server) CallCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c == path {
			n++
		}
	}
	return n
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IdempotencyKey string         `json:"idempotency_key"`
		Object         catalog.Object `json:"object"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.created++
	n := s.created
	s.Items = append(s.Items, body.Object)
	s.ItemKeys = append(s.ItemKeys, body.IdempotencyKey)
	s.mu.Unlock()

	created := body.Object
	created.ID = "ITEM_" + strconv.Itoa(n)
	if created.ItemData != nil {
		data := *created.ItemData
		data.Variations = []catalog.Object{{Type: "ITEM_VARIATION", ID: "VAR_" + strconv.Itoa(n)}}
		created.ItemData = &data
	}
	writeJSON(w, map[string]any{"catalog_object": created})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IdempotencyKey string                    `json:"idempotency_key"`
		Changes        []catalog.InventoryChange `json:"changes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.InventoryKeys = append(s.InventoryKeys, body.IdempotencyKey)
	s.Inventory = append(s.Inventory, body.Changes...)
	s.mu.Unlock()

	writeJSON(w, map[string]any{"counts": []any{}})
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var upload ImageUpload
	if err := json.Unmarshal([]byte(r.FormValue("request")), &upload.Request); err != nil {
		http.Error(w, "bad request part: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image_file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()
	upload.Filename = header.Filename
	upload.ContentType = header.Header.Get("Content-Type")
	if upload.Data, err = io.ReadAll(file); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.Images = append(s.Images, upload)
	n := len(s.Images)
	s.mu.Unlock()

	writeJSON(w, map[string]any{"image": map[string]any{"type": "IMAGE", "id": "IMG_" + strconv.Itoa(n)}})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	start := 0
	if c := r.URL.Query().Get("cursor"); c != "" {
		start, _ = strconv.Atoi(c)
	}
	end := min(start+s.PageSize, len(s.Listing))

	resp := map[string]any{"objects": s.Listing[start:end]}
	if end < len(s.Listing) {
		resp["cursor"] = strconv.Itoa(end)
	}
	writeJSON(w, resp)
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"locations": s.Locations})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
