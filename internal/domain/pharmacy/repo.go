package pharmacy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateItem(ctx context.Context, it *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	SearchItems(ctx context.Context, f ItemFilters, limit, offset int) ([]*Item, int, error)
	// AdjustItemQty adds delta (possibly negative) to the item's
	// available quantity.
	AdjustItemQty(ctx context.Context, id uuid.UUID, delta int) error

	GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error)
	ListBatches(ctx context.Context, itemID uuid.UUID) ([]*Batch, error)
	// ListBatchesFEFO returns the item's batches with stock, earliest
	// expiry first.
	ListBatchesFEFO(ctx context.Context, itemID uuid.UUID) ([]*Batch, error)
	// UpsertBatch inserts the batch or, when the item already has one
	// with the same batch number, adds to its quantity and refreshes
	// cost and expiry.
	UpsertBatch(ctx context.Context, b *Batch) error
	AdjustBatchQty(ctx context.Context, id uuid.UUID, delta int) error

	CreateReceipt(ctx context.Context, gr *GoodsReceipt) error
	GetReceipt(ctx context.Context, id uuid.UUID) (*GoodsReceipt, error)
	SearchReceipts(ctx context.Context, f DocFilters, limit, offset int) ([]*GoodsReceipt, int, error)

	CreateReturn(ctx context.Context, sr *StockReturn) error
	GetReturn(ctx context.Context, id uuid.UUID) (*StockReturn, error)
	UpdateReturnStatus(ctx context.Context, id uuid.UUID, status string) error
	SearchReturns(ctx context.Context, f DocFilters, limit, offset int) ([]*StockReturn, int, error)

	CreateSale(ctx context.Context, s *Sale) error
	GetSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	SearchSales(ctx context.Context, f DocFilters, limit, offset int) ([]*Sale, int, error)
	SalesSummary(ctx context.Context, from, to time.Time) ([]*SalesDay, error)
}
