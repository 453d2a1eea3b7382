package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/eccentric-easel/easel/internal/models"
	"github.com/eccentric-easel/easel/internal/pipeline"
)

// DefaultPriceDollars is used when a request leaves out the price
const DefaultPriceDollars = 1000

type addItemRequest struct {
	Image string `json:"image"`
	// Price is in whole dollars
	Price *int64 `json:"price"`
	Name  string `json:"name"`
}

type addItemResponse struct {
	Message     string `json:"message"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ItemID      string `json:"item_id,omitempty"`
}

// HandleAddItem runs the pipeline on a base64 encoded photo. There is no
// operator to review the draft so it is accepted as generated.
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var request addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Image == "" {
		h.writeError(w, "image is required", http.StatusBadRequest)
		return
	}

	price := int64(DefaultPriceDollars)
	if request.Price != nil {
		price = *request.Price
	}
	cents, err := models.CentsFromDollars(price)
	if err != nil {
		h.writeError(w, "Invalid price: "+err.Error(), http.StatusBadRequest)
		return
	}

	data, err := decodeImage(request.Image)
	if err != nil {
		h.writeError(w, "Invalid image: "+err.Error(), http.StatusBadRequest)
		return
	}

	path, err := writeTemp(data)
	if err != nil {
		h.writeError(w, "Failed to store image: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			slog.Warn("Unable to remove temporary image", "path", path, "err", err)
		}
	}()

	result, err := h.runner.Run(r.Context(), pipeline.Input{
		ImagePath:  path,
		PriceCents: cents,
		Name:       strings.TrimSpace(request.Name),
	})
	if err != nil {
		h.writeError(w, pipeline.Describe(err), statusFor(err))
		return
	}

	if result.Outcome != pipeline.Created {
		h.writeError(w, "Item was not posted", http.StatusConflict)
		return
	}

	h.writeJSON(w, addItemResponse{
		Message:     "Item added successfully",
		Name:        result.Draft.Name,
		Description: result.Draft.Description,
		Price:       result.Draft.PriceCents / 100,
		ItemID:      result.Record.ItemID,
	})
}

// decodeImage accepts plain base64 or a data: URL
func decodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, models.NewError(models.ValidationError, "decode image", err)
	}
	if len(data) == 0 {
		return nil, models.Errorf(models.ValidationError, "decode image", "image is empty")
	}
	return data, nil
}

func writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp("", "easel-*.jpg")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
