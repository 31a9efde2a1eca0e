package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
)

// fakeTx — заглушка pgx.Tx для транзакционных сценариев в тестах.
// Репозитории-заглушки не обращаются к соединению, поэтому методы пустые.
type fakeTx struct{}

func (fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeTx) Commit(ctx context.Context) error          { return nil }
func (fakeTx) Rollback(ctx context.Context) error        { return nil }
func (fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}
func (fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}
func (fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (fakeTx) Conn() *pgx.Conn                                               { return nil }

// fakeDB начинает фиктивные транзакции.
type fakeDB struct{}

func (fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}

// fakeProductRepo хранит продукты в памяти и повторяет семантику
// условного списания остатков.
type fakeProductRepo struct {
	mu           sync.Mutex
	products     map[int64]*domain.Product
	getByIDCalls int
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		cp := *p
		repo.products[p.ID] = &cp
	}
	return repo
}

func (f *fakeProductRepo) List(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if !includeInactive && p.Status != domain.ProductStatusActive {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getByIDCalls++
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product.ID = int64(len(f.products) + 1)
	cp := *product
	f.products[product.ID] = &cp
	return product, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}
	cp := *product
	f.products[product.ID] = &cp
	return product, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) ReserveStock(ctx context.Context, id int64, qty int32) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	if p.Status != domain.ProductStatusActive {
		return nil, e.ErrProductUnavailable
	}
	if p.Stock < qty {
		return nil, e.ErrInsufficientStock
	}

	p.Stock -= qty
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) ReleaseStock(ctx context.Context, id int64, qty int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return e.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

func (f *fakeProductRepo) stock(id int64) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

// fakeOrderRepo хранит заказы в памяти с CAS-переходами статусов.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	nextID int64
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[int64]*domain.Order), nextID: 1}
	for _, o := range orders {
		cp := *o
		repo.orders[o.ID] = &cp
		if o.ID >= repo.nextID {
			repo.nextID = o.ID + 1
		}
	}
	return repo
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order.ID = f.nextID
	f.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	cp := *order
	f.orders[order.ID] = &cp
	return order, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	if o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (f *fakeOrderRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]domain.Order, 0, limit)
	for id := f.nextID - 1; id >= 1 && len(result) < limit; id-- {
		if o, ok := f.orders[id]; ok {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) Stats(ctx context.Context) (*OrderStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var stats OrderStats
	for _, o := range f.orders {
		if o.Status != domain.OrderStatusPaid {
			continue
		}
		stats.TotalOrders++
		stats.TotalRevenue += o.TotalAmount
	}
	if stats.TotalOrders > 0 {
		stats.AverageValue = stats.TotalRevenue / stats.TotalOrders
	}
	return &stats, nil
}

func (f *fakeOrderRepo) status(id int64) domain.OrderStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id].Status
}

// fakePaymentEventRepo дедуплицирует события по идентификатору.
type fakePaymentEventRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakePaymentEventRepo() *fakePaymentEventRepo {
	return &fakePaymentEventRepo{seen: make(map[string]bool)}
}

func (f *fakePaymentEventRepo) Register(ctx context.Context, eventID string, eventType string, orderID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	return true, nil
}

// fakeOutboxRepo накапливает события outbox.
type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*OutboxEvent, 0, limit)
	for _, ev := range f.events {
		if ev.Status == OutboxStatusPending && len(result) < limit {
			ev.Status = OutboxStatusProcessing
			result = append(result, ev)
		}
	}
	return result, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ev := range f.events {
		if ev.ID == id {
			ev.Status = OutboxStatusProcessed
		}
	}
	return nil
}

func (f *fakeOutboxRepo) types() []OutboxEventType {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]OutboxEventType, 0, len(f.events))
	for _, ev := range f.events {
		result = append(result, ev.EventType)
	}
	return result
}

// fakeCacheRepo — кэш продуктов в памяти.
type fakeCacheRepo struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{products: make(map[int64]*domain.Product)}
}

func (f *fakeCacheRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range ids {
		delete(f.products, id)
	}
	return nil
}

// fakeNotifier считает отправленные уведомления.
type fakeNotifier struct {
	mu        sync.Mutex
	newOrders int
	successes int
	failures  int
}

func (f *fakeNotifier) Enabled() bool { return true }

func (f *fakeNotifier) NotifyNewOrder(ctx context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newOrders++
	return nil
}

func (f *fakeNotifier) NotifyPaymentSuccess(ctx context.Context, order *domain.Order, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes++
	return nil
}

func (f *fakeNotifier) NotifyPaymentFailed(ctx context.Context, order *domain.Order, paymentID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures++
	return nil
}

func (f *fakeNotifier) SendTest(ctx context.Context) error { return nil }

// fakeGateway возвращает заранее подготовленные события вебхуков.
type fakeGateway struct {
	intent   *PaymentIntent
	event    *PaymentEvent
	parseErr error
}

func (f *fakeGateway) CreateIntent(ctx context.Context, orderID int64, amount int64) (*PaymentIntent, error) {
	if f.intent == nil {
		return nil, e.ErrPaymentsNotConfigured
	}
	return f.intent, nil
}

func (f *fakeGateway) ParseWebhookEvent(payload []byte, signature string) (*PaymentEvent, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.event, nil
}

// fakeImageStore запоминает загруженные объекты.
type fakeImageStore struct {
	mu      sync.Mutex
	uploads []string
}

func (f *fakeImageStore) Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, objectKey)
	return "/images/" + objectKey, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, objectKey string) error { return nil }

// nopLogger отбрасывает все сообщения.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}
