package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction — одна попытка оплаты через SystemPay.
// Amount хранится в минорных единицах валюты:
// 10,28 € = 1028
// 95 € = 9500
type Transaction struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Amount      int64          `gorm:"not null" json:"amount"`
	Currency    int            `gorm:"not null" json:"currency"` // ISO 4217 numeric: 978 = EUR, 840 = USD
	Paid        bool           `gorm:"default:false" json:"paid"`
	Refunded    bool           `gorm:"default:false" json:"refunded"` // зарезервировано под отдельный refund flow
	Status      TransStatus    `json:"status"`
	LogResponse datatypes.JSON `gorm:"type:jsonb" json:"log_response,omitempty"`
	CreatedAt   time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
