package payments

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tcr-trading/backoffice/internal/shared"
)

type memoryStore struct {
	records      map[int64]Record
	installments map[int64]Installment
	nextRecord   int64
	nextInst     int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		records:      map[int64]Record{},
		installments: map[int64]Installment{},
	}
}

func (m *memoryStore) List(ctx context.Context) ([]Record, error) {
	var out []Record
	for id := int64(1); id <= m.nextRecord; id++ {
		if _, ok := m.records[id]; ok {
			rec, _ := m.Get(ctx, id)
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryStore) Get(_ context.Context, id int64) (Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return Record{}, shared.ErrNotFound
	}
	rec.Installments = nil
	for iid := int64(1); iid <= m.nextInst; iid++ {
		if inst, ok := m.installments[iid]; ok && inst.RecordID == id {
			rec.Installments = append(rec.Installments, inst)
		}
	}
	return rec, nil
}

func (m *memoryStore) Create(_ context.Context, rec Record) (int64, error) {
	m.nextRecord++
	rec.ID = m.nextRecord
	m.records[rec.ID] = rec
	return rec.ID, nil
}

func (m *memoryStore) Update(_ context.Context, rec Record) error {
	if _, ok := m.records[rec.ID]; !ok {
		return shared.ErrNotFound
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.records, id)
	for iid, inst := range m.installments {
		if inst.RecordID == id {
			delete(m.installments, iid)
		}
	}
	return nil
}

func (m *memoryStore) AddInstallment(_ context.Context, inst Installment) (int64, error) {
	m.nextInst++
	inst.ID = m.nextInst
	m.installments[inst.ID] = inst
	return inst.ID, nil
}

func (m *memoryStore) UpdateInstallment(_ context.Context, inst Installment) error {
	stored, ok := m.installments[inst.ID]
	if !ok {
		return shared.ErrNotFound
	}
	inst.RecordID = stored.RecordID
	m.installments[inst.ID] = inst
	return nil
}

func (m *memoryStore) DeleteInstallment(_ context.Context, recordID, id int64) error {
	inst, ok := m.installments[id]
	if !ok || inst.RecordID != recordID {
		return shared.ErrNotFound
	}
	delete(m.installments, id)
	return nil
}

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestRemainingBalanceAfterInstallments(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{Wholesaler: "Rahim Motors", SaleAmount: d("2000")})
	require.NoError(t, err)

	rec, err = svc.AddInstallment(ctx, rec.ID, InstallmentRequest{Amount: d("1000"), Method: MethodBank, BankName: "DBBL"})
	require.NoError(t, err)
	rec, err = svc.AddInstallment(ctx, rec.ID, InstallmentRequest{Amount: d("500"), Method: MethodCash})
	require.NoError(t, err)

	require.True(t, rec.RemainingBalance().Equal(decimal.RequireFromString("500")))
	require.Len(t, rec.Installments, 2)
	require.True(t, rec.Installments[0].Balance.Equal(decimal.RequireFromString("1000")))
	require.True(t, rec.Installments[1].Balance.Equal(decimal.RequireFromString("500")))
}

func TestRemainingBalanceFloorsAtZero(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{Wholesaler: "Karim Traders", SaleAmount: d("2000")})
	require.NoError(t, err)

	rec, err = svc.AddInstallment(ctx, rec.ID, InstallmentRequest{Amount: d("2500"), Method: MethodCash})
	require.NoError(t, err)

	require.True(t, rec.RemainingBalance().IsZero())
	require.True(t, rec.Installments[0].Balance.IsZero())
}

func TestInstallmentValidation(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{Wholesaler: "Karim Traders", SaleAmount: d("2000")})
	require.NoError(t, err)

	_, err = svc.AddInstallment(ctx, rec.ID, InstallmentRequest{Amount: d("100"), Method: "Crypto"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.AddInstallment(ctx, rec.ID, InstallmentRequest{Amount: d("-5"), Method: MethodCash})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateInstallmentRecomputesBalances(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{Wholesaler: "Rahim Motors", SaleAmount: d("2000")})
	require.NoError(t, err)
	rec, err = svc.AddInstallment(ctx, rec.ID, InstallmentRequest{Amount: d("1000"), Method: MethodBank})
	require.NoError(t, err)

	rec, err = svc.UpdateInstallment(ctx, rec.ID, rec.Installments[0].ID, InstallmentRequest{Amount: d("1500"), Method: MethodBank})
	require.NoError(t, err)
	require.True(t, rec.RemainingBalance().Equal(decimal.RequireFromString("500")))
	require.True(t, rec.Installments[0].Balance.Equal(decimal.RequireFromString("500")))
}

func TestDeleteCascadesInstallments(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, RecordRequest{Wholesaler: "Rahim Motors", SaleAmount: d("2000")})
	require.NoError(t, err)
	_, err = svc.AddInstallment(ctx, rec.ID, InstallmentRequest{Amount: d("1000"), Method: MethodCash})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.Empty(t, store.installments)
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, RecordRequest{})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, RecordRequest{Wholesaler: "Rahim Motors", Email: "not-an-email"})
	require.ErrorIs(t, err, shared.ErrValidation)
}
