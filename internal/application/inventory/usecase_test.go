package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcharles/autoshop-inventory/internal/application/dto"
	"github.com/gcharles/autoshop-inventory/internal/domain"
	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// ── fakes en memoria ─────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem // clave: SKU canónico
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.items[item.SKU] = &cp
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.items[item.SKU] = &cp
	return nil
}

func (r *fakeItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	item, ok := r.items[sku]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	return r.GetBySKU(ctx, sku)
}

func (r *fakeItemRepo) List(_ context.Context) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(r.items))
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) ListInStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, it := range all {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, it := range all {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeLogRepo struct {
	entries []*entity.TransactionLogEntry
}

func (r *fakeLogRepo) Create(_ context.Context, e *entity.TransactionLogEntry) error {
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLogRepo) ListRecent(_ context.Context, limit int) ([]repository.TransactionWithCost, error) {
	return nil, nil
}

func (r *fakeLogRepo) SumIssuedValueSince(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// fakeTxRunner serializa cada Run con un mutex, imitando el bloqueo de fila
// por SKU de la implementación real. Las escrituras solo se vuelven visibles
// si fn retorna nil (semántica commit/rollback).
type fakeTxRunner struct {
	mu    sync.Mutex
	items *fakeItemRepo
	logs  *fakeLogRepo
}

func newFakeTxRunner() *fakeTxRunner {
	return &fakeTxRunner{items: newFakeItemRepo(), logs: &fakeLogRepo{}}
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.TransactionLogRepository) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	// copia de trabajo: solo se publica en commit
	work := newFakeItemRepo()
	for k, v := range tr.items.items {
		cp := *v
		work.items[k] = &cp
	}
	workLogs := &fakeLogRepo{entries: append([]*entity.TransactionLogEntry(nil), tr.logs.entries...)}

	if err := fn(work, workLogs); err != nil {
		return err
	}
	tr.items.items = work.items
	tr.logs.entries = workLogs.entries
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	skus []string
}

func (n *recordingNotifier) TriggerLowStock(_ context.Context, sku string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.skus = append(n.skus, sku)
}

func (n *recordingNotifier) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.skus...)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func receiveReq(sku string, qty int) dto.ReceiveStockRequest {
	return dto.ReceiveStockRequest{
		ItemSKU:      sku,
		PartName:     "Synthetic Oil Filter",
		Quantity:     qty,
		ReorderPoint: 50,
		UnitCost:     "12.50",
		LocationID:   "WH-A",
		VendorName:   "AutoParts Direct",
	}
}

// ── ReceiveStock ─────────────────────────────────────────────────────────────

func TestReceiveStock_CreatesNewItem(t *testing.T) {
	tr := newFakeTxRunner()
	uc := NewUseCase(tr, NopNotifier{}, testLogger(), 0)

	res, err := uc.ReceiveStock(context.Background(), receiveReq("  FLT-OIL-300  ", 500))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "flt-oil-300", res.SKU)
	assert.Equal(t, 500, res.NewQuantity)
	assert.Equal(t, "Successfully received 500 units of Synthetic Oil Filter. New stock level: 500.", res.Message)

	item := tr.items.items["flt-oil-300"]
	require.NotNil(t, item)
	assert.Equal(t, 500, item.Quantity)
	assert.True(t, item.UnitCost.Equal(decimal.RequireFromString("12.50")))

	require.Len(t, tr.logs.entries, 1)
	assert.Equal(t, entity.TransactionKindReceive, tr.logs.entries[0].Kind)
	assert.Equal(t, 500, tr.logs.entries[0].QuantityChange)
	assert.Equal(t, "AutoParts Direct", tr.logs.entries[0].VendorName)
}

func TestReceiveStock_IncrementsAndOverwritesExisting(t *testing.T) {
	tr := newFakeTxRunner()
	uc := NewUseCase(tr, NopNotifier{}, testLogger(), 0)

	_, err := uc.ReceiveStock(context.Background(), receiveReq("flt-oil-300", 100))
	require.NoError(t, err)

	req := receiveReq("FLT-OIL-300", 40)
	req.PartName = "Premium Oil Filter"
	req.UnitCost = "14.00"
	req.ReorderPoint = 60
	req.LocationID = "WH-B"
	req.VendorName = "FilterCo"
	res, err := uc.ReceiveStock(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 140, res.NewQuantity)

	item := tr.items.items["flt-oil-300"]
	require.NotNil(t, item)
	assert.Equal(t, "Premium Oil Filter", item.PartName)
	assert.Equal(t, 60, item.ReorderPoint)
	assert.Equal(t, "WH-B", item.LocationID)
	assert.Equal(t, "FilterCo", item.VendorName)
	assert.True(t, item.UnitCost.Equal(decimal.RequireFromString("14.00")))

	assert.Len(t, tr.logs.entries, 2)
}

func TestReceiveStock_Validation(t *testing.T) {
	uc := NewUseCase(newFakeTxRunner(), NopNotifier{}, testLogger(), 0)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.ReceiveStockRequest
	}{
		{"sku vacío", func() dto.ReceiveStockRequest { r := receiveReq("", 10); return r }()},
		{"sku demasiado corto", func() dto.ReceiveStockRequest { r := receiveReq("ab", 10); return r }()},
		{"cantidad cero", func() dto.ReceiveStockRequest { r := receiveReq("flt-oil-300", 0); return r }()},
		{"cantidad negativa", func() dto.ReceiveStockRequest { r := receiveReq("flt-oil-300", -5); return r }()},
		{"reorden negativo", func() dto.ReceiveStockRequest {
			r := receiveReq("flt-oil-300", 10)
			r.ReorderPoint = -1
			return r
		}()},
		{"costo no numérico", func() dto.ReceiveStockRequest {
			r := receiveReq("flt-oil-300", 10)
			r.UnitCost = "abc"
			return r
		}()},
		{"costo negativo", func() dto.ReceiveStockRequest {
			r := receiveReq("flt-oil-300", 10)
			r.UnitCost = "-1.00"
			return r
		}()},
		{"sin nombre de parte", func() dto.ReceiveStockRequest {
			r := receiveReq("flt-oil-300", 10)
			r.PartName = ""
			return r
		}()},
		{"sin proveedor", func() dto.ReceiveStockRequest {
			r := receiveReq("flt-oil-300", 10)
			r.VendorName = ""
			return r
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ReceiveStock(ctx, tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestReceiveStock_TriggersAlertWhenBelowReorder(t *testing.T) {
	tr := newFakeTxRunner()
	notifier := &recordingNotifier{}
	uc := NewUseCase(tr, notifier, testLogger(), 0)

	req := receiveReq("flt-oil-300", 30)
	req.ReorderPoint = 50 // 30 <= 50: recibido pero sigue crítico
	_, err := uc.ReceiveStock(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"flt-oil-300"}, notifier.calls())
}

// ── IssueStock ───────────────────────────────────────────────────────────────

// Escenario de ciclo completo: recibir 500, despachar 451 (dispara alerta en
// 49 <= 50), intentar despachar 60 más y fallar sin mutar nada.
func TestIssueStock_FullCycle(t *testing.T) {
	tr := newFakeTxRunner()
	notifier := &recordingNotifier{}
	uc := NewUseCase(tr, notifier, testLogger(), 0)
	ctx := context.Background()

	_, err := uc.ReceiveStock(ctx, receiveReq("FLT-OIL-300", 500))
	require.NoError(t, err)
	assert.Empty(t, notifier.calls())

	res, err := uc.IssueStock(ctx, "flt-oil-300", 451)
	require.NoError(t, err)
	assert.Equal(t, 49, res.NewQuantity)
	assert.Equal(t, "Successfully issued 451 units of Synthetic Oil Filter. Remaining stock: 49.", res.Message)
	assert.Equal(t, []string{"flt-oil-300"}, notifier.calls())

	// segunda salida: stock insuficiente, sin escrituras parciales
	_, err = uc.IssueStock(ctx, "flt-oil-300", 60)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	item := tr.items.items["flt-oil-300"]
	require.NotNil(t, item)
	assert.Equal(t, 49, item.Quantity)
	require.Len(t, tr.logs.entries, 2) // la salida fallida no loguea
	assert.Equal(t, -451, tr.logs.entries[1].QuantityChange)
	assert.Equal(t, entity.TransactionKindIssue, tr.logs.entries[1].Kind)
}

func TestIssueStock_UnknownSKU(t *testing.T) {
	uc := NewUseCase(newFakeTxRunner(), NopNotifier{}, testLogger(), 0)

	_, err := uc.IssueStock(context.Background(), "no-existe-999", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueStock_Validation(t *testing.T) {
	uc := NewUseCase(newFakeTxRunner(), NopNotifier{}, testLogger(), 0)
	ctx := context.Background()

	_, err := uc.IssueStock(ctx, "", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.IssueStock(ctx, "flt-oil-300", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.IssueStock(ctx, "flt-oil-300", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssueStock_SetsLastIssueDate(t *testing.T) {
	tr := newFakeTxRunner()
	uc := NewUseCase(tr, NopNotifier{}, testLogger(), 0)
	ctx := context.Background()

	_, err := uc.ReceiveStock(ctx, receiveReq("flt-oil-300", 100))
	require.NoError(t, err)
	require.Nil(t, tr.items.items["flt-oil-300"].LastIssueDate)

	_, err = uc.IssueStock(ctx, "flt-oil-300", 10)
	require.NoError(t, err)
	assert.NotNil(t, tr.items.items["flt-oil-300"].LastIssueDate)
}

// Dos salidas concurrentes nunca deben dejar stock negativo: bajo el bloqueo
// por SKU, exactamente una gana cuando el stock solo alcanza para una.
func TestIssueStock_ConcurrentNeverOversells(t *testing.T) {
	tr := newFakeTxRunner()
	uc := NewUseCase(tr, NopNotifier{}, testLogger(), 0)
	ctx := context.Background()

	req := receiveReq("flt-oil-300", 100)
	req.ReorderPoint = 0
	_, err := uc.ReceiveStock(ctx, req)
	require.NoError(t, err)

	const workers = 20
	const perWorker = 10 // 20×10 = 200 solicitados, solo hay 100

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.IssueStock(ctx, "flt-oil-300", perWorker)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, insufficientCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case err == domain.ErrInsufficientStock:
			insufficientCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}

	assert.Equal(t, 10, okCount)
	assert.Equal(t, 10, insufficientCount)
	assert.Equal(t, 0, tr.items.items["flt-oil-300"].Quantity)
	assert.Len(t, tr.logs.entries, 11) // 1 recepción + 10 salidas exitosas
}

// ── LookupStock ──────────────────────────────────────────────────────────────

func TestLookupStock(t *testing.T) {
	tr := newFakeTxRunner()
	uc := NewUseCase(tr, NopNotifier{}, testLogger(), 0)
	ctx := context.Background()

	_, err := uc.ReceiveStock(ctx, receiveReq("flt-oil-300", 40))
	require.NoError(t, err)

	res, err := uc.LookupStock(ctx, tr.items, "FLT-OIL-300")
	require.NoError(t, err)
	assert.Equal(t, "flt-oil-300", res.SKU)
	assert.Equal(t, 40, res.Quantity)
	assert.Equal(t, "12.50", res.UnitCost)
	assert.Equal(t, "CRITICAL", res.Status) // 40 <= 50
	assert.Equal(t, "N/A", res.LastIssueDate)

	_, err = uc.LookupStock(ctx, tr.items, "nada-000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
