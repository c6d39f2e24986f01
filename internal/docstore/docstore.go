// Package docstore uploads invoice and report PDFs to object storage and
// hands back the public URL stored alongside ledger rows.
package docstore

import (
	"fmt"
	"io"
	"os"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

const defaultBucket = "invoices-pdfs"

// Client wraps the storage API for one bucket.
type Client struct {
	api    *storage_go.Client
	bucket string
}

// NewFromEnv builds a client from STORAGE_URL / STORAGE_KEY. Returns nil
// when the environment is not configured; callers treat a nil client as
// "no document storage" and keep PDF fields empty.
func NewFromEnv() *Client {
	url := os.Getenv("STORAGE_URL")
	key := os.Getenv("STORAGE_KEY")
	if url == "" || key == "" {
		return nil
	}
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = defaultBucket
	}
	return &Client{
		api:    storage_go.NewClient(url, key, nil),
		bucket: bucket,
	}
}

// UploadPDF stores the document under the given object path and returns
// its public URL.
func (c *Client) UploadPDF(path string, body io.Reader) (string, error) {
	if c == nil {
		return "", fmt.Errorf("document storage not configured")
	}
	contentType := "application/pdf"
	upsert := true
	_, err := c.api.UploadFile(c.bucket, path, body, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", err
	}
	resp := c.api.GetPublicUrl(c.bucket, path)
	return resp.SignedURL, nil
}

// ObjectPath builds a stable object path from a batch id and file name.
func ObjectPath(batchID, filename string) string {
	name := strings.ReplaceAll(filename, " ", "_")
	return batchID + "/" + name
}
