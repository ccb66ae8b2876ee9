package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferLineRequest renglón a despachar. Los montos se recalculan en el servidor.
type TransferLineRequest struct {
	ItemID      string          `json:"item_id"`
	VariationID string          `json:"variation_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// TransferStockRequest despacho de un lote de traslado.
// From selecciona el pool origen ("branch" con from_branch_id, o "company").
type TransferStockRequest struct {
	FromType     string                `json:"from_type"` // branch | company
	FromBranchID string                `json:"from_branch_id,omitempty"`
	ToBranchID   string                `json:"to_branch_id"`
	Items        []TransferLineRequest `json:"items"`
}

// AcknowledgeLineRequest confirmación por variación:
// received + lost debe igualar exactamente lo despachado.
type AcknowledgeLineRequest struct {
	VariationID      string          `json:"variation_id"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	LostQuantity     decimal.Decimal `json:"lost_quantity"`
}

// AcknowledgeTransferRequest confirmación de un lote completo.
type AcknowledgeTransferRequest struct {
	BatchID string                   `json:"batch_id"`
	Items   []AcknowledgeLineRequest `json:"items"`
}

// TransferResponse lote despachado.
type TransferResponse struct {
	BatchID      string    `json:"batch_id"`
	ItemCount    int       `json:"item_count"`
	TransferDate time.Time `json:"transfer_date"`
}
