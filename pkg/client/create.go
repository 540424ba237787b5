package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"

	"github.com/naveenspark/estate/pkg/domain"
)

// CreateListingRequest is the JSON part of a listing upload.
type CreateListingRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        domain.PropertyType `json:"type"`
	Price       float64             `json:"price"`
	City        string              `json:"city"`
	Status      domain.Status       `json:"status"`
	DealType    domain.DealType     `json:"propertyDealType"`
}

// ImageUpload is one image part. Open is called once while the body is built.
type ImageUpload struct {
	Name        string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FileImage returns an upload that reads the file at path.
func FileImage(path, name, contentType string) ImageUpload {
	return ImageUpload{
		Name:        name,
		ContentType: contentType,
		Open:        func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// CreateListing uploads a listing with its images. userID is sent in the
// X-User-Id header next to the bearer token.
func (c *Client) CreateListing(ctx context.Context, userID string, l CreateListingRequest, images []ImageUpload) (*domain.Listing, error) {
	body, contentType, err := buildListingBody(l, images)
	if err != nil {
		return nil, fmt.Errorf("client.CreateListing: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/property", body)
	if err != nil {
		return nil, fmt.Errorf("client.CreateListing: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", userID)

	var created domain.Listing
	if err := c.send(req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateListing: %w", err)
	}
	return &created, nil
}

// buildListingBody writes a "data" part holding l as JSON and one "image"
// part per upload.
func buildListingBody(l CreateListingRequest, images []ImageUpload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	data, err := json.Marshal(l)
	if err != nil {
		return nil, "", fmt.Errorf("marshal listing: %w", err)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="data"; filename="blob"`)
	h.Set("Content-Type", "application/json")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create data part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write data part: %w", err)
	}

	for _, img := range images {
		if err := writeImagePart(w, img); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeImagePart(w *multipart.Writer, img ImageUpload) error {
	rc, err := img.Open()
	if err != nil {
		return fmt.Errorf("open image %s: %w", img.Name, err)
	}
	defer rc.Close() //nolint:errcheck // read-only

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Name))
	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("write image %s: %w", img.Name, err)
	}
	return nil
}
