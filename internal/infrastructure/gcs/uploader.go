// Package gcs sube las facturas PDF generadas a Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/jhoicas/Comercio-api/internal/application/sale"
	"github.com/jhoicas/Comercio-api/pkg/config"
)

var _ sale.ObjectStorage = (*Uploader)(nil)

// Uploader implementa sale.ObjectStorage sobre un bucket de GCS.
// Autenticación por Application Default Credentials (service account de
// Cloud Run o GOOGLE_APPLICATION_CREDENTIALS).
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader crea el cliente de GCS y verifica el acceso al bucket.
func NewUploader(ctx context.Context, cfg config.StorageConfig) (*Uploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	if _, err := client.Bucket(cfg.Bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("gcs: bucket %q inaccesible: %w", cfg.Bucket, err)
	}
	return &Uploader{client: client, bucket: cfg.Bucket}, nil
}

// Store sube el objeto y devuelve su URL pública.
func (u *Uploader) Store(ctx context.Context, path string, content []byte, contentType string) (string, error) {
	wc := u.client.Bucket(u.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}
	if _, err := wc.Write(content); err != nil {
		return "", fmt.Errorf("gcs: subir objeto: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("gcs: cerrar writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, path), nil
}

// Close libera el cliente subyacente.
func (u *Uploader) Close() error {
	return u.client.Close()
}
