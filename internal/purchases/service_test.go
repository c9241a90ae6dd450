package purchases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tcr-trading/backoffice/internal/shared"
)

type memoryStore struct {
	records map[int64]Record
	nextID  int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[int64]Record{}}
}

func (m *memoryStore) List(ctx context.Context) ([]Record, error) {
	out := make([]Record, 0, len(m.records))
	for id := int64(1); id <= m.nextID; id++ {
		if rec, ok := m.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryStore) Get(ctx context.Context, id int64) (Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return Record{}, shared.ErrNotFound
	}
	return rec, nil
}

func (m *memoryStore) Create(ctx context.Context, rec Record) (int64, error) {
	m.nextID++
	rec.ID = m.nextID
	m.records[rec.ID] = rec
	return rec.ID, nil
}

func (m *memoryStore) Update(ctx context.Context, rec Record) error {
	if _, ok := m.records[rec.ID]; !ok {
		return shared.ErrNotFound
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

type removerSpy struct {
	removed []string
}

func (r *removerSpy) Remove(ref string) error {
	r.removed = append(r.removed, ref)
	return nil
}

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestCreateComputesBDTAmount(t *testing.T) {
	svc := NewService(newMemoryStore(), nil, nil)
	rec, err := svc.Create(context.Background(), RecordRequest{
		Currency:      "JPY",
		ForeignAmount: d("1200000"),
		BDTRate:       d("0.85"),
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, rec.BDTAmount)
	require.True(t, rec.BDTAmount.Equal(decimal.RequireFromString("1020000")))
}

func TestCreateKeepsExplicitBDTAmount(t *testing.T) {
	svc := NewService(newMemoryStore(), nil, nil)
	rec, err := svc.Create(context.Background(), RecordRequest{
		Currency:      "JPY",
		ForeignAmount: d("1200000"),
		BDTRate:       d("0.85"),
		BDTAmount:     d("999"),
	}, nil)
	require.NoError(t, err)
	require.True(t, rec.BDTAmount.Equal(decimal.RequireFromString("999")))
}

func TestCreateLeavesBDTAmountNilWhenRateMissing(t *testing.T) {
	svc := NewService(newMemoryStore(), nil, nil)
	rec, err := svc.Create(context.Background(), RecordRequest{
		Currency:      "USD",
		ForeignAmount: d("10000"),
	}, nil)
	require.NoError(t, err)
	require.Nil(t, rec.BDTAmount, "no coercion of missing values to zero")
}

func TestUpdateReplacingDocumentRemovesOldFile(t *testing.T) {
	store := newMemoryStore()
	remover := &removerSpy{}
	svc := NewService(store, remover, nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{Currency: "JPY"}, map[DocumentKind]string{
		DocInvoice: "purchases/old-invoice.pdf",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, rec.ID, RecordRequest{Currency: "JPY"}, map[DocumentKind]string{
		DocInvoice: "purchases/new-invoice.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, "purchases/new-invoice.pdf", updated.Documents[DocInvoice])
	require.Equal(t, []string{"purchases/old-invoice.pdf"}, remover.removed)
}

func TestUpdateKeepsAbsentDocumentSlots(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, &removerSpy{}, nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{Currency: "JPY"}, map[DocumentKind]string{
		DocAuctionSheet: "purchases/sheet.pdf",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, rec.ID, RecordRequest{Currency: "USD"}, nil)
	require.NoError(t, err)
	require.Equal(t, "purchases/sheet.pdf", updated.Documents[DocAuctionSheet])
	require.Equal(t, "USD", updated.Currency)
}

func TestDeleteRemovesStoredDocuments(t *testing.T) {
	store := newMemoryStore()
	remover := &removerSpy{}
	svc := NewService(store, remover, nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{}, map[DocumentKind]string{
		DocLCCopy:  "purchases/lc.pdf",
		DocInvoice: "purchases/inv.pdf",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.Len(t, remover.removed, 2)
	_, err = svc.Get(ctx, rec.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTotalCost(t *testing.T) {
	rec := Record{BDTAmount: d("1000"), CustomsDuty: d("250"), OtherCosts: d("50")}
	require.True(t, rec.TotalCost().Equal(decimal.RequireFromString("1300")))

	empty := Record{}
	require.Nil(t, empty.TotalCost())
}
