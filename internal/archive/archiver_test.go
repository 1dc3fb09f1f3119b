package archive

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/storage"
)

type stubStorage struct {
	uploads map[string][]byte
	err     error
}

func newStubStorage() *stubStorage {
	return &stubStorage{uploads: make(map[string][]byte)}
}

func (s *stubStorage) ListObjects(context.Context, string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (s *stubStorage) UploadObject(_ context.Context, key string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.uploads[key] = data
	return nil
}

func (s *stubStorage) DownloadObject(_ context.Context, key string) ([]byte, error) {
	data, ok := s.uploads[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

func TestArchiveOrdersUploadsSnapshots(t *testing.T) {
	store := newStubStorage()
	a := NewOrderArchiver(store)

	order := &domain.PurchaseOrder{
		ID:         42,
		OrderDate:  domain.Day("2024-06-10"),
		SupplierID: "s1",
		Items: []domain.PurchaseOrderItem{
			{ProductID: "p1", Quantity: 3},
		},
	}

	a.ArchiveOrders(context.Background(), []*domain.PurchaseOrder{order})

	payload, ok := store.uploads["orders/2024-06-10/po_42_s1.json"]
	require.True(t, ok, "snapshot stored under date-partitioned key")

	var restored domain.PurchaseOrder
	require.NoError(t, json.Unmarshal(payload, &restored))
	assert.Equal(t, int64(42), restored.ID)
	require.Len(t, restored.Items, 1)
	assert.Equal(t, "p1", restored.Items[0].ProductID)
}

func TestArchiveOrdersSwallowsUploadFailures(t *testing.T) {
	store := newStubStorage()
	store.err = errors.New("bucket unavailable")
	a := NewOrderArchiver(store)

	// must not panic or surface the error; the order store already has
	// the durable copy
	a.ArchiveOrders(context.Background(), []*domain.PurchaseOrder{{ID: 1, SupplierID: "s1"}})

	assert.Empty(t, store.uploads)
}
