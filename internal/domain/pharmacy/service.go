package pharmacy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/money"
)

// ErrInsufficientStock rejects a sale or return that asks for more
// stock than is on hand.
var ErrInsufficientStock = fmt.Errorf("insufficient stock")

// ErrBadTransition rejects an illegal return status change.
var ErrBadTransition = fmt.Errorf("illegal status transition")

// ErrItemHasStock blocks deleting an item that still has stock.
var ErrItemHasStock = fmt.Errorf("item still has stock")

// TxRunner runs fn inside a database transaction. Repositories attached
// to the same ctx pick up that transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo Repository
	inTx TxRunner
}

func NewService(repo Repository, inTx TxRunner) *Service {
	return &Service{repo: repo, inTx: inTx}
}

// Items

func (s *Service) CreateItem(ctx context.Context, it *Item) error {
	if err := validateItem(it); err != nil {
		return err
	}
	return s.repo.CreateItem(ctx, it)
}

func validateItem(it *Item) error {
	if it.Name == "" {
		return fmt.Errorf("name is required")
	}
	if it.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if it.ConversionFactor < 0 {
		return fmt.Errorf("conversion factor cannot be negative")
	}
	if it.RetailPrice < 0 || it.UnitCost < 0 {
		return fmt.Errorf("prices cannot be negative")
	}
	if it.ReorderLevel < 0 {
		return fmt.Errorf("reorder level cannot be negative")
	}
	return nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, it *Item) error {
	if _, err := s.repo.GetItem(ctx, it.ID); err != nil {
		return fmt.Errorf("item not found")
	}
	if err := validateItem(it); err != nil {
		return err
	}
	return s.repo.UpdateItem(ctx, it)
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("item not found")
	}
	if it.AvailableQty > 0 {
		return ErrItemHasStock
	}
	return s.repo.DeleteItem(ctx, id)
}

func (s *Service) SearchItems(ctx context.Context, f ItemFilters, limit, offset int) ([]*Item, int, error) {
	return s.repo.SearchItems(ctx, f, limit, offset)
}

func (s *Service) ListBatches(ctx context.Context, itemID uuid.UUID) ([]*Batch, error) {
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("item not found")
	}
	return s.repo.ListBatches(ctx, itemID)
}

// Goods receipts

// PostReceipt recomputes every line total and the document totals from
// quantities and costs, then creates or tops up the named batches and
// raises item quantities, all in one transaction. Client-sent totals
// are ignored.
func (s *Service) PostReceipt(ctx context.Context, gr *GoodsReceipt) error {
	if gr.SupplierName == "" {
		return fmt.Errorf("supplier name is required")
	}
	if len(gr.Lines) == 0 {
		return fmt.Errorf("at least one line is required")
	}
	for i := range gr.Lines {
		ln := &gr.Lines[i]
		if ln.Quantity <= 0 {
			return fmt.Errorf("line %d: quantity must be positive", i+1)
		}
		if ln.UnitCost < 0 || ln.TaxPct < 0 || ln.Discount < 0 {
			return fmt.Errorf("line %d: amounts cannot be negative", i+1)
		}
		if ln.BatchNumber == "" {
			return fmt.Errorf("line %d: batch number is required", i+1)
		}
		if ln.ExpiryDate.IsZero() {
			return fmt.Errorf("line %d: expiry date is required", i+1)
		}
	}

	var subTotal, totalTax, grandTotal float64
	for i := range gr.Lines {
		ln := &gr.Lines[i]
		net := float64(ln.Quantity) * ln.UnitCost
		ln.LineTotal = money.LineTotal(float64(ln.Quantity), ln.UnitCost, ln.TaxPct, ln.Discount)
		subTotal += net
		totalTax += net * ln.TaxPct / 100
		grandTotal += ln.LineTotal
	}
	gr.SubTotal = money.Round2(subTotal)
	gr.TotalTax = money.Round2(totalTax)
	gr.GrandTotal = money.Round2(grandTotal)

	return s.inTx(ctx, func(ctx context.Context) error {
		for i := range gr.Lines {
			ln := &gr.Lines[i]
			if _, err := s.repo.GetItem(ctx, ln.ItemID); err != nil {
				return fmt.Errorf("line %d: item not found", i+1)
			}
			batch := &Batch{
				ItemID:      ln.ItemID,
				BatchNumber: ln.BatchNumber,
				ExpiryDate:  ln.ExpiryDate,
				Quantity:    ln.Quantity,
				UnitCost:    ln.UnitCost,
			}
			if err := s.repo.UpsertBatch(ctx, batch); err != nil {
				return err
			}
			if err := s.repo.AdjustItemQty(ctx, ln.ItemID, ln.Quantity); err != nil {
				return err
			}
		}
		return s.repo.CreateReceipt(ctx, gr)
	})
}

func (s *Service) GetReceipt(ctx context.Context, id uuid.UUID) (*GoodsReceipt, error) {
	return s.repo.GetReceipt(ctx, id)
}

func (s *Service) SearchReceipts(ctx context.Context, f DocFilters, limit, offset int) ([]*GoodsReceipt, int, error) {
	return s.repo.SearchReceipts(ctx, f, limit, offset)
}

// Stock returns

// CreateReturn records a pending return. Stock is untouched until the
// return is marked returned.
func (s *Service) CreateReturn(ctx context.Context, sr *StockReturn) error {
	if sr.SupplierName == "" {
		return fmt.Errorf("supplier name is required")
	}
	if len(sr.Lines) == 0 {
		return fmt.Errorf("at least one line is required")
	}
	var total float64
	for i := range sr.Lines {
		ln := &sr.Lines[i]
		if ln.Quantity <= 0 {
			return fmt.Errorf("line %d: quantity must be positive", i+1)
		}
		if ln.UnitCost < 0 {
			return fmt.Errorf("line %d: unit cost cannot be negative", i+1)
		}
		batch, err := s.repo.GetBatch(ctx, ln.BatchID)
		if err != nil {
			return fmt.Errorf("line %d: batch not found", i+1)
		}
		if batch.ItemID != ln.ItemID {
			return fmt.Errorf("line %d: batch does not belong to the item", i+1)
		}
		ln.LineTotal = money.Round2(float64(ln.Quantity) * ln.UnitCost)
		total += ln.LineTotal
	}
	sr.TotalAmount = money.Round2(total)
	sr.Status = ReturnPending
	return s.repo.CreateReturn(ctx, sr)
}

// SetReturnStatus advances a return through its lifecycle. Approval
// re-checks that each batch still holds the quantity being returned;
// marking returned deducts batch and item quantities transactionally.
func (s *Service) SetReturnStatus(ctx context.Context, id uuid.UUID, status string) error {
	sr, err := s.repo.GetReturn(ctx, id)
	if err != nil {
		return fmt.Errorf("stock return not found")
	}
	if !returnTransitionAllowed(sr.Status, status) {
		return fmt.Errorf("%w: %s to %s", ErrBadTransition, sr.Status, status)
	}

	switch status {
	case ReturnApproved:
		for i := range sr.Lines {
			ln := &sr.Lines[i]
			batch, err := s.repo.GetBatch(ctx, ln.BatchID)
			if err != nil {
				return fmt.Errorf("line %d: batch not found", i+1)
			}
			if batch.Quantity < ln.Quantity {
				return fmt.Errorf("%w: batch %s holds %d, return asks %d",
					ErrInsufficientStock, batch.BatchNumber, batch.Quantity, ln.Quantity)
			}
		}
		return s.repo.UpdateReturnStatus(ctx, id, status)
	case ReturnReturned:
		return s.inTx(ctx, func(ctx context.Context) error {
			for i := range sr.Lines {
				ln := &sr.Lines[i]
				batch, err := s.repo.GetBatch(ctx, ln.BatchID)
				if err != nil {
					return fmt.Errorf("line %d: batch not found", i+1)
				}
				if batch.Quantity < ln.Quantity {
					return fmt.Errorf("%w: batch %s holds %d, return asks %d",
						ErrInsufficientStock, batch.BatchNumber, batch.Quantity, ln.Quantity)
				}
				if err := s.repo.AdjustBatchQty(ctx, ln.BatchID, -ln.Quantity); err != nil {
					return err
				}
				if err := s.repo.AdjustItemQty(ctx, ln.ItemID, -ln.Quantity); err != nil {
					return err
				}
			}
			return s.repo.UpdateReturnStatus(ctx, id, status)
		})
	default:
		return s.repo.UpdateReturnStatus(ctx, id, status)
	}
}

func (s *Service) GetReturn(ctx context.Context, id uuid.UUID) (*StockReturn, error) {
	return s.repo.GetReturn(ctx, id)
}

func (s *Service) SearchReturns(ctx context.Context, f DocFilters, limit, offset int) ([]*StockReturn, int, error) {
	return s.repo.SearchReturns(ctx, f, limit, offset)
}

// Point of sale

// Sell prices each line from the item's current retail price, deducts
// stock batch-wise earliest expiry first, and records the invoice with
// its payments in a single transaction. A line that asks for more than
// the item's total stock rejects the whole sale.
func (s *Service) Sell(ctx context.Context, sale *Sale) error {
	if len(sale.Lines) == 0 {
		return fmt.Errorf("at least one line is required")
	}
	for i := range sale.Lines {
		ln := &sale.Lines[i]
		if ln.Quantity <= 0 {
			return fmt.Errorf("line %d: quantity must be positive", i+1)
		}
		if ln.Discount < 0 || ln.TaxPct < 0 {
			return fmt.Errorf("line %d: amounts cannot be negative", i+1)
		}
	}
	for i := range sale.Payments {
		if sale.Payments[i].Amount < 0 {
			return fmt.Errorf("payment amounts cannot be negative")
		}
		if sale.Payments[i].Method == "" {
			return fmt.Errorf("payment method is required")
		}
	}

	return s.inTx(ctx, func(ctx context.Context) error {
		var subTotal, totalTax, totalDiscount, grandTotal float64
		for i := range sale.Lines {
			ln := &sale.Lines[i]
			it, err := s.repo.GetItem(ctx, ln.ItemID)
			if err != nil {
				return fmt.Errorf("line %d: item not found", i+1)
			}
			if it.AvailableQty < ln.Quantity {
				return fmt.Errorf("%w: %s has %d, sale asks %d",
					ErrInsufficientStock, it.Name, it.AvailableQty, ln.Quantity)
			}

			ln.RetailPrice = it.RetailPrice
			net := float64(ln.Quantity) * ln.RetailPrice
			ln.LineTotal = money.LineTotal(float64(ln.Quantity), ln.RetailPrice, ln.TaxPct, ln.Discount)
			subTotal += net
			totalTax += net * ln.TaxPct / 100
			totalDiscount += ln.Discount
			grandTotal += ln.LineTotal

			if err := s.deductFEFO(ctx, ln.ItemID, ln.Quantity); err != nil {
				return err
			}
			if err := s.repo.AdjustItemQty(ctx, ln.ItemID, -ln.Quantity); err != nil {
				return err
			}
		}

		sale.SubTotal = money.Round2(subTotal)
		sale.TotalTax = money.Round2(totalTax)
		sale.TotalDiscount = money.Round2(totalDiscount)
		sale.GrandTotal = money.Round2(grandTotal)

		var paid float64
		for i := range sale.Payments {
			paid += sale.Payments[i].Amount
		}
		sale.Paid = money.Round2(paid)
		sale.Due = money.Round2(maxf(0, sale.GrandTotal-sale.Paid))
		sale.Advance = money.Round2(maxf(0, sale.Paid-sale.GrandTotal))

		return s.repo.CreateSale(ctx, sale)
	})
}

// deductFEFO walks the item's batches earliest expiry first, draining
// each until qty is covered. The caller has already verified the item
// holds enough stock in total; a shortfall here means the batch table
// and the item counter disagree.
func (s *Service) deductFEFO(ctx context.Context, itemID uuid.UUID, qty int) error {
	batches, err := s.repo.ListBatchesFEFO(ctx, itemID)
	if err != nil {
		return err
	}
	remaining := qty
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		if err := s.repo.AdjustBatchQty(ctx, b.ID, -take); err != nil {
			return err
		}
		remaining -= take
	}
	if remaining > 0 {
		return fmt.Errorf("%w: batches cover %d of %d", ErrInsufficientStock, qty-remaining, qty)
	}
	return nil
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (s *Service) GetSale(ctx context.Context, id uuid.UUID) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}

func (s *Service) SearchSales(ctx context.Context, f DocFilters, limit, offset int) ([]*Sale, int, error) {
	return s.repo.SearchSales(ctx, f, limit, offset)
}

// SalesSummary aggregates invoices per day over [from, to].
func (s *Service) SalesSummary(ctx context.Context, from, to time.Time) ([]*SalesDay, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("toDate is before fromDate")
	}
	// to is inclusive at day granularity.
	return s.repo.SalesSummary(ctx, from, to.AddDate(0, 0, 1))
}
