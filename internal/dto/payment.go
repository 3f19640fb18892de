package dto

import (
	"time"

	"systempay_backend/internal/models"
)

// InitPaymentRequest - тело POST /payments.
// Fields - свободные поля без префикса vads_ (cust_email и т.п.);
// политика слияния с обязательными полями применяется сервисом.
type InitPaymentRequest struct {
	Currency int               `json:"currency" validate:"required,is-currency-code"`
	Amount   int64             `json:"amount" validate:"gte=0"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// InitPaymentResponse - подписанный набор полей, готовый к submit'у
// на hosted payment page шлюза.
type InitPaymentResponse struct {
	TransactionID uint              `json:"transaction_id"`
	PaymentURL    string            `json:"payment_url"`
	Fields        map[string]string `json:"fields"`
	Form          string            `json:"form"`
}

type TransactionResponse struct {
	ID        uint               `json:"id"`
	Amount    int64              `json:"amount"`
	Currency  int                `json:"currency"`
	Paid      bool               `json:"paid"`
	Refunded  bool               `json:"refunded"`
	Status    models.TransStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewTransactionResponse(t *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Paid:      t.Paid,
		Refunded:  t.Refunded,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
