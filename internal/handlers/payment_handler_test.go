package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"systempay_backend/internal/auth"
	"systempay_backend/internal/config"
	"systempay_backend/internal/dto"
	"systempay_backend/internal/handlers"
	"systempay_backend/internal/middleware"
	"systempay_backend/internal/models"
	"systempay_backend/internal/routes"
	"systempay_backend/internal/validator"
	"systempay_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakePaymentService записывает вызовы и возвращает заготовленные ответы.
type fakePaymentService struct {
	initResp     *dto.InitPaymentResponse
	initErr      error
	notifyFields map[string]string
	notifyResult *models.Transaction
	notifyErr    error
	transaction  *models.Transaction
	getErr       error
}

func (f *fakePaymentService) InitPayment(_ *gorm.DB, _ *dto.InitPaymentRequest) (*dto.InitPaymentResponse, error) {
	if f.initErr != nil {
		return nil, f.initErr
	}
	return f.initResp, nil
}

func (f *fakePaymentService) HandleNotification(_ *gorm.DB, fields map[string]string) (*models.Transaction, error) {
	f.notifyFields = fields
	if f.notifyErr != nil {
		return nil, f.notifyErr
	}
	return f.notifyResult, nil
}

func (f *fakePaymentService) GetTransaction(_ *gorm.DB, _ uint) (*models.Transaction, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.transaction, nil
}

func setupTestConfig() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler_test_secret_12345"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func newTestRouter(svc *fakePaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.DBMiddleware(&gorm.DB{}))

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		PaymentHandler: handlers.NewPaymentHandler(base, svc),
	}
	routes.RegisterRoutes(router, appHandlers)
	return router
}

func merchantToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("shop-42")
	assert.NoError(t, err)
	return token
}

func TestInitPayment_RequiresAuth(t *testing.T) {
	setupTestConfig()
	router := newTestRouter(&fakePaymentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{"currency":978,"amount":1028}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInitPayment_ReturnsSignedFields(t *testing.T) {
	setupTestConfig()
	svc := &fakePaymentService{
		initResp: &dto.InitPaymentResponse{
			TransactionID: 1,
			PaymentURL:    "https://paiement.systempay.fr/vads-payment/",
			Fields:        map[string]string{"vads_amount": "1028", "signature": "abc"},
			Form:          `<input type="hidden" name="vads_amount" value="1028">`,
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{"currency":978,"amount":1028}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+merchantToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.InitPaymentResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.TransactionID)
	assert.Equal(t, "1028", resp.Fields["vads_amount"])
}

func TestInitPayment_RejectsBadCurrency(t *testing.T) {
	setupTestConfig()
	router := newTestRouter(&fakePaymentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{"currency":1234,"amount":1028}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+merchantToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "currency")
}

func TestProcessNotification_DecodesFormIntoFieldMap(t *testing.T) {
	setupTestConfig()
	svc := &fakePaymentService{
		notifyResult: &models.Transaction{ID: 42, Paid: true, Status: models.TransStatusAuthorised},
	}
	router := newTestRouter(svc)

	form := url.Values{}
	form.Set("vads_trans_id", "000042")
	form.Set("vads_trans_status", "AUTHORISED")
	form.Set("signature", "deadbeef")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/ipn", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "000042", svc.notifyFields["vads_trans_id"])
	assert.Equal(t, "AUTHORISED", svc.notifyFields["vads_trans_status"])
	assert.Equal(t, "deadbeef", svc.notifyFields["signature"])
	assert.Contains(t, rec.Body.String(), `"paid":true`)
}

func TestProcessNotification_VerificationFailureIs400(t *testing.T) {
	setupTestConfig()
	svc := &fakePaymentService{notifyErr: apperrors.ErrInvalidSignature}
	router := newTestRouter(svc)

	form := url.Values{}
	form.Set("vads_trans_id", "000042")
	form.Set("signature", "forged")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/ipn", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SIGNATURE_INVALID")
}

func TestGetTransaction_ReturnsStatus(t *testing.T) {
	setupTestConfig()
	svc := &fakePaymentService{
		transaction: &models.Transaction{ID: 7, Amount: 9500, Currency: 978, Paid: true, Status: models.TransStatusCaptured},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/7", nil)
	req.Header.Set("Authorization", "Bearer "+merchantToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.TransactionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.ID)
	assert.True(t, resp.Paid)
	assert.Equal(t, models.TransStatusCaptured, resp.Status)
}
