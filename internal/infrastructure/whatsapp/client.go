// Package whatsapp envía mensajes de plantilla por la API HTTP del proveedor
// de WhatsApp Business (copia de factura al cliente, avisos de arqueo).
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/Comercio-api/pkg/config"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

// Client implementa sale.Notifier y shift.Notifier. Con BaseURL vacío queda
// deshabilitado: Notify solo loguea y retorna nil.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente de plantillas.
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type templateMessage struct {
	TemplateID    string   `json:"template_id"`
	Recipient     string   `json:"recipient"`
	Placeholders  []string `json:"placeholders,omitempty"`
	AttachmentURL string   `json:"attachment_url,omitempty"`
}

// Notify envía la plantilla al destinatario. El destinatario es el número de
// teléfono en formato internacional.
func (c *Client) Notify(ctx context.Context, templateID, recipient string, placeholders []string, attachmentURL string) error {
	if c.baseURL == "" {
		c.log.Debug().
			Str("template", templateID).
			Str("recipient", recipient).
			Msg("whatsapp deshabilitado, mensaje omitido")
		return nil
	}

	body, err := json.Marshal(templateMessage{
		TemplateID:    templateID,
		Recipient:     recipient,
		Placeholders:  placeholders,
		AttachmentURL: attachmentURL,
	})
	if err != nil {
		return fmt.Errorf("whatsapp: serializar mensaje: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages/template", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: enviar mensaje: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp: respuesta %d: %s", resp.StatusCode, detail)
	}
	return nil
}
