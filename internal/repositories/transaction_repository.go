package repositories

import (
	"errors"
	"time"

	"systempay_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// NotificationUpdate — атомарно применяемый результат проверенного
// уведомления шлюза. MarkPaid взводит paid только в true: обратного
// перехода у этого флага нет.
type NotificationUpdate struct {
	Status      models.TransStatus
	MarkPaid    bool
	LogResponse datatypes.JSON
}

type TransactionRepository interface {
	Create(db *gorm.DB, currency int, amount int64) (*models.Transaction, error)
	FindByID(db *gorm.DB, id uint) (*models.Transaction, error)
	ApplyNotification(db *gorm.DB, id uint, update NotificationUpdate) (*models.Transaction, error)
}

type TransactionRepositoryImpl struct{}

func NewTransactionRepository() TransactionRepository {
	return &TransactionRepositoryImpl{}
}

func (r *TransactionRepositoryImpl) Create(db *gorm.DB, currency int, amount int64) (*models.Transaction, error) {
	transaction := &models.Transaction{
		Amount:   amount,
		Currency: currency,
		Paid:     false,
		Refunded: false,
		Status:   "",
	}
	if err := db.Create(transaction).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

func (r *TransactionRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := db.First(&transaction, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// ApplyNotification обновляет строку транзакции в одной транзакции БД
// под row-level lock'ом: конкурирующие redelivery одного уведомления
// сериализуются по id, уведомления разных транзакций друг друга не ждут.
// Status, paid, updated_at и log_response пишутся одним UPDATE.
func (r *TransactionRepositoryImpl) ApplyNotification(db *gorm.DB, id uint, update NotificationUpdate) (*models.Transaction, error) {
	var transaction models.Transaction

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&transaction, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		now := time.Now().UTC()
		values := map[string]interface{}{
			"status":       update.Status,
			"log_response": update.LogResponse,
			"updated_at":   now,
		}
		if update.MarkPaid {
			values["paid"] = true
		}

		if err := tx.Model(&models.Transaction{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return err
		}

		transaction.Status = update.Status
		transaction.LogResponse = update.LogResponse
		transaction.UpdatedAt = now
		if update.MarkPaid {
			transaction.Paid = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
