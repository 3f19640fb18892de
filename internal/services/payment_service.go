package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"systempay_backend/internal/config"
	"systempay_backend/internal/dto"
	"systempay_backend/internal/logger"
	"systempay_backend/internal/models"
	"systempay_backend/internal/repositories"
	"systempay_backend/internal/services/systempay"
	"systempay_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReceiptSender шлет покупателю подтверждение оплаты. Реализация -
// utils.EmailSender; в тестах подменяется фейком.
type ReceiptSender interface {
	Send(to, subject, body string) error
}

type PaymentService interface {
	InitPayment(db *gorm.DB, req *dto.InitPaymentRequest) (*dto.InitPaymentResponse, error)
	HandleNotification(db *gorm.DB, fields map[string]string) (*models.Transaction, error)
	GetTransaction(db *gorm.DB, id uint) (*models.Transaction, error)
}

type paymentService struct {
	transactionRepo repositories.TransactionRepository
	template        *systempay.FieldSet
	key             string
	paymentURL      string
	receipts        ReceiptSender
}

// NewPaymentService валидирует обязательные поля из конфигурации и
// фиксирует секрет по ctx_mode. Ошибка здесь - ошибка конфигурации,
// приложение с ней стартовать не должно.
func NewPaymentService(
	cfg *config.Config,
	transactionRepo repositories.TransactionRepository,
	receipts ReceiptSender,
) (PaymentService, error) {
	template, err := systempay.NewFieldSet(cfg.RequiredFields())
	if err != nil {
		return nil, apperrors.ErrMissingConfig(err)
	}

	paymentURL := cfg.Systempay.PaymentURL
	if paymentURL == "" {
		paymentURL = systempay.DefaultPaymentURL
	}

	return &paymentService{
		transactionRepo: transactionRepo,
		template:        template,
		key:             systempay.SelectKey(cfg.Systempay.CtxMode, cfg.Systempay.KeyTest, cfg.Systempay.KeyProd),
		paymentURL:      paymentURL,
		receipts:        receipts,
	}, nil
}

// InitPayment создает транзакцию и возвращает подписанный набор полей.
// Сумма проверяется до создания: невалидный вызов не оставляет строк в БД.
func (s *paymentService) InitPayment(db *gorm.DB, req *dto.InitPaymentRequest) (*dto.InitPaymentResponse, error) {
	if req.Amount < 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if req.Currency <= 0 || req.Currency > 999 {
		return nil, apperrors.ErrInvalidCurrency
	}

	transaction, err := s.transactionRepo.Create(db, req.Currency, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	transID, err := systempay.FormatTransID(transaction.ID)
	if err != nil {
		logger.Error("trans_id capacity exhausted", "transaction_id", transaction.ID)
		return nil, apperrors.ErrTransIDExhausted
	}

	fields := s.template.Clone()
	fields.Apply(req.Fields)
	fields.Set("amount", strconv.FormatInt(req.Amount, 10))
	fields.Set("currency", strconv.Itoa(req.Currency))
	fields.Set("trans_id", transID)
	fields.Set("trans_date", systempay.FormatTransDate(time.Now()))

	signed := fields.Prefixed()
	signed[systempay.SignatureFieldName] = systempay.Sign(signed, s.key)

	logger.Info("payment initialized",
		"transaction_id", transaction.ID,
		"amount", req.Amount,
		"currency", req.Currency,
	)

	return &dto.InitPaymentResponse{
		TransactionID: transaction.ID,
		PaymentURL:    s.paymentURL,
		Fields:        signed,
		Form:          systempay.RenderHiddenInputs(signed),
	}, nil
}

// HandleNotification проверяет подпись входящего уведомления и применяет
// исход к транзакции. Порядок жесткий: сначала подпись, потом поиск, потом
// одно атомарное обновление - до успешной проверки хранилище не трогается.
func (s *paymentService) HandleNotification(db *gorm.DB, inbound map[string]string) (*models.Transaction, error) {
	claimed, ok := inbound[systempay.SignatureFieldName]
	if !ok || claimed == "" {
		return nil, apperrors.ErrMissingSignature
	}

	fields := make(map[string]string, len(inbound))
	for name, value := range inbound {
		if name == systempay.SignatureFieldName {
			continue
		}
		fields[name] = value
	}

	if !systempay.Verify(fields, claimed, s.key) {
		logger.Warn("notification signature mismatch",
			"trans_id", fields[systempay.FieldPrefix+"trans_id"],
		)
		return nil, apperrors.ErrInvalidSignature
	}

	id, err := parseTransID(fields[systempay.FieldPrefix+"trans_id"])
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid trans_id in notification: " + err.Error())
	}

	status := models.TransStatus(fields[systempay.FieldPrefix+"trans_status"])

	logResponse, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	transaction, err := s.transactionRepo.ApplyNotification(db, id, repositories.NotificationUpdate{
		Status:      status,
		MarkPaid:    status == models.TransStatusAuthorised,
		LogResponse: datatypes.JSON(logResponse),
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			logger.Error("verified notification for unknown transaction",
				"trans_id", id,
				"status", status,
			)
			return nil, apperrors.ErrUnknownTransaction(err)
		}
		return nil, err
	}

	logger.Info("notification applied",
		"transaction_id", transaction.ID,
		"status", status,
		"paid", transaction.Paid,
	)

	s.sendReceipt(transaction, fields)

	return transaction, nil
}

func (s *paymentService) GetTransaction(db *gorm.DB, id uint) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return transaction, nil
}

// sendReceipt шлет подтверждение на cust_email после успешной оплаты.
// Ошибка отправки логируется и не влияет на ответ шлюзу.
func (s *paymentService) sendReceipt(transaction *models.Transaction, fields map[string]string) {
	if s.receipts == nil || !transaction.Paid {
		return
	}
	email := fields[systempay.FieldPrefix+"cust_email"]
	if email == "" {
		return
	}

	body := fmt.Sprintf(
		"<p>Ваш платеж №%06d на сумму %d (код валюты %d) подтвержден.</p>",
		transaction.ID, transaction.Amount, transaction.Currency,
	)
	if err := s.receipts.Send(email, "Подтверждение оплаты", body); err != nil {
		logger.WithError(err).Warn("failed to send payment receipt", "transaction_id", transaction.ID)
	}
}

// parseTransID принимает trans_id в том виде, как его шлет шлюз:
// шесть разрядов с ведущими нулями ("000042" -> 42).
func parseTransID(raw string) (uint, error) {
	if raw == "" {
		return 0, fmt.Errorf("trans_id is empty")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
