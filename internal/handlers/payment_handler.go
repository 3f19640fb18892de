package handlers

import (
	"net/http"

	"systempay_backend/internal/dto"
	"systempay_backend/internal/logger"
	"systempay_backend/internal/middleware"
	"systempay_backend/internal/services"
	"systempay_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		// Merchant API
		payments.POST("", middleware.AuthMiddleware(), h.InitPayment)
		payments.GET("/:id", middleware.AuthMiddleware(), h.GetTransaction)

		// Server-to-server уведомление шлюза. Без auth: транспорт
		// не аутентифицирован, единственная защита - подпись.
		payments.POST("/ipn", h.ProcessNotification)
	}
}

// InitPayment godoc
// @Summary     Начать платеж
// @Description Создает транзакцию и возвращает подписанный набор полей для hosted payment page
// @Tags        payments
// @Accept      json
// @Produce     json
// @Param       request body dto.InitPaymentRequest true "Параметры платежа"
// @Success     201 {object} dto.InitPaymentResponse
// @Router      /api/v1/payments [post]
func (h *PaymentHandler) InitPayment(c *gin.Context) {
	merchantID, ok := h.GetMerchantID(c)
	if !ok {
		return
	}

	var req dto.InitPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.InitPayment(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "payment session started",
		"merchant_id", merchantID,
		"transaction_id", resp.TransactionID,
	)
	c.JSON(http.StatusCreated, resp)
}

// ProcessNotification принимает form-encoded IPN шлюза, декодирует его в
// плоскую карту и отдает сервису. Ответное тело шлюз не разбирает, ему
// важен только HTTP-статус.
func (h *PaymentHandler) ProcessNotification(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid form payload: "+err.Error()))
		return
	}

	fields := make(map[string]string, len(c.Request.PostForm))
	for name, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	transaction, err := h.paymentService.HandleNotification(h.GetDB(c), fields)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"transaction_id": transaction.ID,
		"paid":           transaction.Paid,
	})
}

// GetTransaction godoc
// @Summary     Статус транзакции
// @Tags        payments
// @Produce     json
// @Param       id path int true "ID транзакции"
// @Success     200 {object} dto.TransactionResponse
// @Router      /api/v1/payments/{id} [get]
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	transaction, err := h.paymentService.GetTransaction(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}
