package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeProductUC возвращает заранее заданный продукт или ошибку.
type fakeProductUC struct {
	product *domain.Product
	err     error
}

func (f *fakeProductUC) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.product == nil {
		return nil, nil
	}
	return []domain.Product{*f.product}, nil
}

func (f *fakeProductUC) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return f.product, f.err
}

func (f *fakeProductUC) CreateProduct(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
	return f.product, f.err
}

func (f *fakeProductUC) UpdateProduct(ctx context.Context, id int64, req *usecase.SaveProductReq) (*domain.Product, error) {
	return f.product, f.err
}

func (f *fakeProductUC) DeleteProduct(ctx context.Context, id int64) error { return f.err }

type fakeOrderUC struct {
	order *domain.Order
	err   error
}

func (f *fakeOrderUC) Checkout(ctx context.Context, req *usecase.CheckoutReq) (*domain.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderUC) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return f.order, f.err
}

type fakePaymentUC struct {
	intentRes   *usecase.CreateIntentRes
	simulateRes *usecase.SimulatePaymentRes
	err         error

	webhookCalls int
}

func (f *fakePaymentUC) CreateIntent(ctx context.Context, orderID int64) (*usecase.CreateIntentRes, error) {
	return f.intentRes, f.err
}

func (f *fakePaymentUC) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	f.webhookCalls++
	return f.err
}

func (f *fakePaymentUC) SimulatePayment(ctx context.Context, orderID int64) (*usecase.SimulatePaymentRes, error) {
	return f.simulateRes, f.err
}

type fakeReportUC struct {
	orders []domain.Order
	stats  *usecase.OrderStats
	err    error
}

func (f *fakeReportUC) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	return f.orders, f.err
}

func (f *fakeReportUC) OrderDetails(ctx context.Context, id int64) (*domain.Order, error) {
	return nil, f.err
}

func (f *fakeReportUC) Stats(ctx context.Context) (*usecase.OrderStats, error) {
	return f.stats, f.err
}

func TestProductHandler_GetProduct(t *testing.T) {
	handler := NewProductHandler(&fakeProductUC{product: &domain.Product{
		ID:     1,
		Name:   "Widget",
		Price:  1999,
		Stock:  5,
		Status: domain.ProductStatusActive,
	}}, nopLogger{})

	router := chi.NewRouter()
	router.Get("/products/{id}", handler.getProduct)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "19.99", body.Price)
	require.Equal(t, "ACTIVE", body.Status)
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	handler := NewProductHandler(&fakeProductUC{err: e.ErrProductNotFound}, nopLogger{})

	router := chi.NewRouter()
	router.Get("/products/{id}", handler.getProduct)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/42", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, http.StatusNotFound, body.Code)
	require.Equal(t, "product not found", body.Message)
}

func TestOrderHandler_Checkout(t *testing.T) {
	order := domain.NewOrder("Jane Doe", "jane@example.com", "", "1 Main St",
		[]domain.OrderItem{domain.NewOrderItem(1, "Widget", 2, 1000)})
	order.ID = 7

	handler := NewOrderHandler(&fakeOrderUC{order: order}, &fakeReportUC{}, nopLogger{})

	payload := `{"customerName":"Jane Doe","customerEmail":"jane@example.com","shippingAddress":"1 Main St","items":[{"productId":1,"quantity":2}]}`
	rec := httptest.NewRecorder()
	handler.checkout(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(payload)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(7), body.ID)
	require.Equal(t, "20.00", body.TotalAmount)
	require.Equal(t, "PENDING", body.Status)
}

func TestOrderHandler_Checkout_MalformedBody(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderUC{}, &fakeReportUC{}, nopLogger{})

	rec := httptest.NewRecorder()
	handler.checkout(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_Checkout_InsufficientStock(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderUC{err: e.Wrap("OrderUseCase.Checkout", e.ErrInsufficientStock)}, &fakeReportUC{}, nopLogger{})

	payload := `{"customerName":"Jane Doe","customerEmail":"jane@example.com","shippingAddress":"1 Main St","items":[{"productId":1,"quantity":99}]}`
	rec := httptest.NewRecorder()
	handler.checkout(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(payload)))

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestPaymentHandler_Webhook_MissingSignature(t *testing.T) {
	uc := &fakePaymentUC{}
	handler := NewPaymentHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	handler.handleWebhook(rec, httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte("{}"))))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, uc.webhookCalls)
}

func TestPaymentHandler_Webhook_Received(t *testing.T) {
	uc := &fakePaymentUC{}
	handler := NewPaymentHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte("{}")))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")

	rec := httptest.NewRecorder()
	handler.handleWebhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, uc.webhookCalls)
	require.JSONEq(t, `{"received":true}`, rec.Body.String())
}

func TestPaymentHandler_CreateIntent_InvalidOrder(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentUC{}, nopLogger{})

	rec := httptest.NewRecorder()
	handler.createIntent(rec, httptest.NewRequest(http.MethodPost, "/payments/create-intent", strings.NewReader(`{"orderId":0}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "token not configured", token: "", header: "Bearer secret", want: http.StatusForbidden},
		{name: "missing header", token: "secret", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", token: "secret", header: "Basic secret", want: http.StatusUnauthorized},
		{name: "wrong token", token: "secret", header: "Bearer nope", want: http.StatusForbidden},
		{name: "valid token", token: "secret", header: "Bearer secret", want: http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			middleware := RequireAdmin(&cfg.AdminCfg{Token: tc.token}, nopLogger{})

			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rec := httptest.NewRecorder()
			middleware(next).ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestOrderHandler_GetStats(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderUC{}, &fakeReportUC{stats: &usecase.OrderStats{
		TotalOrders:  3,
		TotalRevenue: 102450,
		AverageValue: 34150,
	}}, nopLogger{})

	rec := httptest.NewRecorder()
	handler.getStats(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(3), body.TotalOrders)
	require.Equal(t, "1024.50", body.TotalRevenue)
	require.Equal(t, "341.50", body.AverageValue)
}

func TestPaymentHandler_SimulatePayment(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentUC{
		simulateRes: usecase.NewSimulatePaymentRes(1, "SIMULATED-123"),
	}, nopLogger{})

	rec := httptest.NewRecorder()
	handler.simulatePayment(rec, httptest.NewRequest(http.MethodPost, "/admin/payments/simulate", strings.NewReader(`{"orderId":1}`)))

	require.Equal(t, http.StatusOK, rec.Code)

	var body SimulatePaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "PAID", body.Status)
	require.Equal(t, "SIMULATED-123", body.PaymentID)
}
