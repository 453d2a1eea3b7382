package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/eccentric-easel/easel/internal/models"
	"github.com/eccentric-easel/easel/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	result   pipeline.Result
	err      error
	inputs   []pipeline.Input
	sawImage []byte
}

func (f *fakeRunner) Run(_ context.Context, in pipeline.Input) (pipeline.Result, error) {
	f.inputs = append(f.inputs, in)
	f.sawImage, _ = os.ReadFile(in.ImagePath)
	if f.err != nil {
		return pipeline.Result{}, f.err
	}
	res := f.result
	if res.Outcome == pipeline.Failed {
		res.Outcome = pipeline.Created
	}
	if res.Draft == (models.Draft{}) {
		res.Draft = models.Draft{Name: "Generated", Description: "Generated description", PriceCents: in.PriceCents}
	}
	return res, nil
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var photo = base64.StdEncoding.EncodeToString([]byte("\xff\xd8\xff\xe0fake"))

func TestAddItem(t *testing.T) {
	runner := &fakeRunner{result: pipeline.Result{Outcome: pipeline.Created, Record: models.ItemRecord{ItemID: "ITEM_1"}}}
	router := New(runner).Router()

	rec := post(t, router, "/add_item/", `{"image":"`+photo+`","price":250,"name":"  Sheep  "}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "Item added successfully", body["message"])
	assert.Equal(t, "Generated", body["name"])
	assert.Equal(t, "Generated description", body["description"])
	assert.EqualValues(t, 250, body["price"])
	assert.Equal(t, "ITEM_1", body["item_id"])

	require.Len(t, runner.inputs, 1)
	assert.EqualValues(t, 25000, runner.inputs[0].PriceCents)
	assert.Equal(t, "Sheep", runner.inputs[0].Name)
	assert.Equal(t, []byte("\xff\xd8\xff\xe0fake"), runner.sawImage)

	_, err := os.Stat(runner.inputs[0].ImagePath)
	assert.True(t, os.IsNotExist(err), "temporary image should be removed")
}

func TestAddItemDefaultPriceAndDataURL(t *testing.T) {
	runner := &fakeRunner{}
	router := New(runner).Router()

	rec := post(t, router, "/add_item", `{"image":"data:image/jpeg;base64,`+photo+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.EqualValues(t, DefaultPriceDollars*100, runner.inputs[0].PriceCents)
	assert.Equal(t, []byte("\xff\xd8\xff\xe0fake"), runner.sawImage)
}

func TestAddItemBadRequests(t *testing.T) {
	tests := map[string]string{
		"invalid json":   `{"image":`,
		"missing image":  `{"price":10}`,
		"bad base64":     `{"image":"***"}`,
		"negative price": `{"image":"` + photo + `","price":-5}`,
		"price overflow": `{"image":"` + photo + `","price":92233720368547759}`,
		"price wraps":    `{"image":"` + photo + `","price":184467440737095517}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			runner := &fakeRunner{}
			rec := post(t, New(runner).Router(), "/add_item", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode(t, rec)["error"])
			assert.Empty(t, runner.inputs)
		})
	}
}

func TestAddItemPipelineErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		prefix string
	}{
		{"generation", models.Errorf(models.GenerationError, "generate", "model returned an empty response"), http.StatusBadGateway, "Error generating item info"},
		{"upload", models.Errorf(models.UploadError, "create item", "error adding item"), http.StatusBadGateway, "Error adding item to catalog"},
		{"image", models.Errorf(models.ImageDecodeError, "decode image", "bad"), http.StatusBadRequest, "Error reading image"},
		{"config", models.Errorf(models.ConfigError, "load", "bad"), http.StatusInternalServerError, "Configuration error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{err: tt.err}
			rec := post(t, New(runner).Router(), "/add_item", `{"image":"`+photo+`"}`)

			assert.Equal(t, tt.status, rec.Code)
			msg, _ := decode(t, rec)["error"].(string)
			assert.True(t, strings.HasPrefix(msg, tt.prefix), msg)

			_, err := os.Stat(runner.inputs[0].ImagePath)
			assert.True(t, os.IsNotExist(err), "temporary image should be removed")
		})
	}
}

func TestAddItemNotPosted(t *testing.T) {
	runner := &fakeRunner{result: pipeline.Result{Outcome: pipeline.Cancelled}}
	rec := post(t, New(runner).Router(), "/add_item", `{"image":"`+photo+`"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddItemTooLarge(t *testing.T) {
	runner := &fakeRunner{}
	body := `{"image":"` + strings.Repeat("A", MaxBodyBytes) + `"}`

	rec := post(t, New(runner).Router(), "/add_item", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, runner.inputs)
}

func TestHealthcheck(t *testing.T) {
	rec := httptest.NewRecorder()
	New(&fakeRunner{}).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAddItemMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	New(&fakeRunner{}).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/add_item", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
