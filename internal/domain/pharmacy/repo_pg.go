package pharmacy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Items

const itemCols = `id, name, generic_name, unit, conversion_unit, conversion_factor,
	retail_price, unit_cost, available_qty, reorder_level, created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.GenericName, &it.Unit, &it.ConversionUnit,
		&it.ConversionFactor, &it.RetailPrice, &it.UnitCost, &it.AvailableQty,
		&it.ReorderLevel, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *repoPG) CreateItem(ctx context.Context, it *Item) error {
	it.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pharm_item (id, name, generic_name, unit, conversion_unit,
			conversion_factor, retail_price, unit_cost, available_qty, reorder_level)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,0,$9)`,
		it.ID, it.Name, it.GenericName, it.Unit, it.ConversionUnit,
		it.ConversionFactor, it.RetailPrice, it.UnitCost, it.ReorderLevel)
	return err
}

func (r *repoPG) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return scanItem(r.conn(ctx).QueryRow(ctx,
		`SELECT `+itemCols+` FROM pharm_item WHERE id = $1`, id))
}

func (r *repoPG) UpdateItem(ctx context.Context, it *Item) error {
	// available_qty is deliberately untouched; only stock documents
	// move it.
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pharm_item SET name=$2, generic_name=$3, unit=$4, conversion_unit=$5,
			conversion_factor=$6, retail_price=$7, unit_cost=$8, reorder_level=$9,
			updated_at=NOW()
		WHERE id = $1`,
		it.ID, it.Name, it.GenericName, it.Unit, it.ConversionUnit,
		it.ConversionFactor, it.RetailPrice, it.UnitCost, it.ReorderLevel)
	return err
}

func (r *repoPG) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM pharm_item WHERE id = $1`, id)
	return err
}

func (r *repoPG) SearchItems(ctx context.Context, f ItemFilters, limit, offset int) ([]*Item, int, error) {
	query := `SELECT ` + itemCols + ` FROM pharm_item WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM pharm_item WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Search != "" {
		add(` AND (name ILIKE $%[1]d OR generic_name ILIKE $%[1]d)`, "%"+f.Search+"%")
	}
	if f.LowStock {
		query += ` AND available_qty <= reorder_level`
		countQuery += ` AND available_qty <= reorder_level`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, nil
}

// AdjustItemQty refuses to take the counter below zero, so concurrent
// sales cannot race the stock negative.
func (r *repoPG) AdjustItemQty(ctx context.Context, id uuid.UUID, delta int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE pharm_item SET available_qty = available_qty + $2, updated_at=NOW()
		WHERE id = $1 AND available_qty + $2 >= 0`,
		id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// Batches

const batchCols = `id, item_id, batch_number, expiry_date, quantity, unit_cost,
	created_at, updated_at`

func scanBatch(row pgx.Row) (*Batch, error) {
	var b Batch
	err := row.Scan(&b.ID, &b.ItemID, &b.BatchNumber, &b.ExpiryDate, &b.Quantity,
		&b.UnitCost, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *repoPG) GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error) {
	return scanBatch(r.conn(ctx).QueryRow(ctx,
		`SELECT `+batchCols+` FROM pharm_batch WHERE id = $1`, id))
}

func (r *repoPG) listBatches(ctx context.Context, query string, itemID uuid.UUID) ([]*Batch, error) {
	rows, err := r.conn(ctx).Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, nil
}

func (r *repoPG) ListBatches(ctx context.Context, itemID uuid.UUID) ([]*Batch, error) {
	return r.listBatches(ctx,
		`SELECT `+batchCols+` FROM pharm_batch WHERE item_id = $1 ORDER BY expiry_date`, itemID)
}

func (r *repoPG) ListBatchesFEFO(ctx context.Context, itemID uuid.UUID) ([]*Batch, error) {
	return r.listBatches(ctx,
		`SELECT `+batchCols+` FROM pharm_batch
		WHERE item_id = $1 AND quantity > 0
		ORDER BY expiry_date, created_at`, itemID)
}

func (r *repoPG) UpsertBatch(ctx context.Context, b *Batch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pharm_batch (id, item_id, batch_number, expiry_date, quantity, unit_cost)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (item_id, batch_number) DO UPDATE SET
			quantity = pharm_batch.quantity + EXCLUDED.quantity,
			expiry_date = EXCLUDED.expiry_date,
			unit_cost = EXCLUDED.unit_cost,
			updated_at = NOW()`,
		b.ID, b.ItemID, b.BatchNumber, b.ExpiryDate, b.Quantity, b.UnitCost)
	return err
}

func (r *repoPG) AdjustBatchQty(ctx context.Context, id uuid.UUID, delta int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE pharm_batch SET quantity = quantity + $2, updated_at=NOW()
		WHERE id = $1 AND quantity + $2 >= 0`,
		id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// Goods receipts

func (r *repoPG) CreateReceipt(ctx context.Context, gr *GoodsReceipt) error {
	var seq int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT nextval('grn_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next receipt number: %w", err)
	}
	gr.ID = uuid.New()
	gr.DocumentNo = fmt.Sprintf("GRN-%06d", seq)

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO goods_receipt (id, document_no, supplier_name, supplier_invoice,
			sub_total, total_tax, grand_total, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		gr.ID, gr.DocumentNo, gr.SupplierName, gr.SupplierInvoice,
		gr.SubTotal, gr.TotalTax, gr.GrandTotal, gr.CreatedBy)
	if err != nil {
		return err
	}
	for i := range gr.Lines {
		ln := &gr.Lines[i]
		ln.ID = uuid.New()
		ln.ReceiptID = gr.ID
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO goods_receipt_line (id, receipt_id, item_id, batch_number,
				expiry_date, quantity, unit_cost, tax_pct, discount, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			ln.ID, ln.ReceiptID, ln.ItemID, ln.BatchNumber, ln.ExpiryDate,
			ln.Quantity, ln.UnitCost, ln.TaxPct, ln.Discount, ln.LineTotal)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) receiptLines(ctx context.Context, receiptID uuid.UUID) ([]ReceiptLine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, receipt_id, item_id, batch_number, expiry_date, quantity,
			unit_cost, tax_pct, discount, line_total
		FROM goods_receipt_line WHERE receipt_id = $1 ORDER BY id`, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []ReceiptLine
	for rows.Next() {
		var ln ReceiptLine
		if err := rows.Scan(&ln.ID, &ln.ReceiptID, &ln.ItemID, &ln.BatchNumber,
			&ln.ExpiryDate, &ln.Quantity, &ln.UnitCost, &ln.TaxPct,
			&ln.Discount, &ln.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

func (r *repoPG) GetReceipt(ctx context.Context, id uuid.UUID) (*GoodsReceipt, error) {
	var gr GoodsReceipt
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, document_no, supplier_name, supplier_invoice, sub_total,
			total_tax, grand_total, created_by, created_at
		FROM goods_receipt WHERE id = $1`, id).
		Scan(&gr.ID, &gr.DocumentNo, &gr.SupplierName, &gr.SupplierInvoice,
			&gr.SubTotal, &gr.TotalTax, &gr.GrandTotal, &gr.CreatedBy, &gr.CreatedAt)
	if err != nil {
		return nil, err
	}
	gr.Lines, err = r.receiptLines(ctx, gr.ID)
	return &gr, err
}

func (r *repoPG) SearchReceipts(ctx context.Context, f DocFilters, limit, offset int) ([]*GoodsReceipt, int, error) {
	query := `SELECT id, document_no, supplier_name, supplier_invoice, sub_total,
		total_tax, grand_total, created_by, created_at
		FROM goods_receipt WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM goods_receipt WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Search != "" {
		add(` AND (document_no ILIKE $%[1]d OR supplier_name ILIKE $%[1]d)`, "%"+f.Search+"%")
	}
	if f.From != nil {
		add(` AND created_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND created_at < $%d`, *f.To)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*GoodsReceipt
	for rows.Next() {
		var gr GoodsReceipt
		if err := rows.Scan(&gr.ID, &gr.DocumentNo, &gr.SupplierName, &gr.SupplierInvoice,
			&gr.SubTotal, &gr.TotalTax, &gr.GrandTotal, &gr.CreatedBy, &gr.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &gr)
	}
	return items, total, nil
}

// Stock returns

func (r *repoPG) CreateReturn(ctx context.Context, sr *StockReturn) error {
	sr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO stock_return (id, supplier_name, total_amount, status, created_by)
		VALUES ($1,$2,$3,$4,$5)`,
		sr.ID, sr.SupplierName, sr.TotalAmount, sr.Status, sr.CreatedBy)
	if err != nil {
		return err
	}
	for i := range sr.Lines {
		ln := &sr.Lines[i]
		ln.ID = uuid.New()
		ln.ReturnID = sr.ID
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO stock_return_line (id, return_id, item_id, batch_id,
				quantity, unit_cost, reason, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			ln.ID, ln.ReturnID, ln.ItemID, ln.BatchID, ln.Quantity,
			ln.UnitCost, ln.Reason, ln.LineTotal)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) returnLines(ctx context.Context, returnID uuid.UUID) ([]ReturnLine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, return_id, item_id, batch_id, quantity, unit_cost, reason, line_total
		FROM stock_return_line WHERE return_id = $1 ORDER BY id`, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []ReturnLine
	for rows.Next() {
		var ln ReturnLine
		if err := rows.Scan(&ln.ID, &ln.ReturnID, &ln.ItemID, &ln.BatchID,
			&ln.Quantity, &ln.UnitCost, &ln.Reason, &ln.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

func (r *repoPG) GetReturn(ctx context.Context, id uuid.UUID) (*StockReturn, error) {
	var sr StockReturn
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, supplier_name, total_amount, status, created_by, created_at, updated_at
		FROM stock_return WHERE id = $1`, id).
		Scan(&sr.ID, &sr.SupplierName, &sr.TotalAmount, &sr.Status,
			&sr.CreatedBy, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sr.Lines, err = r.returnLines(ctx, sr.ID)
	return &sr, err
}

func (r *repoPG) UpdateReturnStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE stock_return SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) SearchReturns(ctx context.Context, f DocFilters, limit, offset int) ([]*StockReturn, int, error) {
	query := `SELECT id, supplier_name, total_amount, status, created_by, created_at, updated_at
		FROM stock_return WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM stock_return WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Search != "" {
		add(` AND supplier_name ILIKE $%d`, "%"+f.Search+"%")
	}
	if f.Status != "" {
		add(` AND status = $%d`, f.Status)
	}
	if f.From != nil {
		add(` AND created_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND created_at < $%d`, *f.To)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*StockReturn
	for rows.Next() {
		var sr StockReturn
		if err := rows.Scan(&sr.ID, &sr.SupplierName, &sr.TotalAmount, &sr.Status,
			&sr.CreatedBy, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &sr)
	}
	return items, total, nil
}

// Sales

func (r *repoPG) CreateSale(ctx context.Context, s *Sale) error {
	var seq int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT nextval('invoice_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next invoice number: %w", err)
	}
	s.ID = uuid.New()
	s.InvoiceNo = fmt.Sprintf("INV-%06d", seq)

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pos_sale (id, invoice_no, patient_id, sub_total, total_tax,
			total_discount, grand_total, paid, due, advance, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		s.ID, s.InvoiceNo, s.PatientID, s.SubTotal, s.TotalTax,
		s.TotalDiscount, s.GrandTotal, s.Paid, s.Due, s.Advance, s.CreatedBy)
	if err != nil {
		return err
	}
	for i := range s.Lines {
		ln := &s.Lines[i]
		ln.ID = uuid.New()
		ln.SaleID = s.ID
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO pos_sale_line (id, sale_id, item_id, quantity, retail_price,
				discount, tax_pct, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			ln.ID, ln.SaleID, ln.ItemID, ln.Quantity, ln.RetailPrice,
			ln.Discount, ln.TaxPct, ln.LineTotal)
		if err != nil {
			return err
		}
	}
	for i := range s.Payments {
		p := &s.Payments[i]
		p.ID = uuid.New()
		p.SaleID = s.ID
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO pos_sale_payment (id, sale_id, method, amount)
			VALUES ($1,$2,$3,$4)`,
			p.ID, p.SaleID, p.Method, p.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) saleLines(ctx context.Context, saleID uuid.UUID) ([]SaleLine, []Payment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, sale_id, item_id, quantity, retail_price, discount, tax_pct, line_total
		FROM pos_sale_line WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var lines []SaleLine
	for rows.Next() {
		var ln SaleLine
		if err := rows.Scan(&ln.ID, &ln.SaleID, &ln.ItemID, &ln.Quantity,
			&ln.RetailPrice, &ln.Discount, &ln.TaxPct, &ln.LineTotal); err != nil {
			return nil, nil, err
		}
		lines = append(lines, ln)
	}
	rows.Close()

	prows, err := r.conn(ctx).Query(ctx, `
		SELECT id, sale_id, method, amount
		FROM pos_sale_payment WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, nil, err
	}
	defer prows.Close()
	var pays []Payment
	for prows.Next() {
		var p Payment
		if err := prows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount); err != nil {
			return nil, nil, err
		}
		pays = append(pays, p)
	}
	return lines, pays, nil
}

func (r *repoPG) GetSale(ctx context.Context, id uuid.UUID) (*Sale, error) {
	var s Sale
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, invoice_no, patient_id, sub_total, total_tax, total_discount,
			grand_total, paid, due, advance, created_by, created_at
		FROM pos_sale WHERE id = $1`, id).
		Scan(&s.ID, &s.InvoiceNo, &s.PatientID, &s.SubTotal, &s.TotalTax,
			&s.TotalDiscount, &s.GrandTotal, &s.Paid, &s.Due, &s.Advance,
			&s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Lines, s.Payments, err = r.saleLines(ctx, s.ID)
	return &s, err
}

func (r *repoPG) SearchSales(ctx context.Context, f DocFilters, limit, offset int) ([]*Sale, int, error) {
	query := `SELECT id, invoice_no, patient_id, sub_total, total_tax, total_discount,
		grand_total, paid, due, advance, created_by, created_at
		FROM pos_sale WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM pos_sale WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Search != "" {
		add(` AND invoice_no ILIKE $%d`, "%"+f.Search+"%")
	}
	if f.From != nil {
		add(` AND created_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND created_at < $%d`, *f.To)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.InvoiceNo, &s.PatientID, &s.SubTotal, &s.TotalTax,
			&s.TotalDiscount, &s.GrandTotal, &s.Paid, &s.Due, &s.Advance,
			&s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &s)
	}
	return items, total, nil
}

func (r *repoPG) SalesSummary(ctx context.Context, from, to time.Time) ([]*SalesDay, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT date_trunc('day', created_at) AS day,
			COUNT(*) AS invoices,
			COALESCE(SUM(sub_total), 0) AS gross,
			COALESCE(SUM(total_tax), 0) AS tax,
			COALESCE(SUM(total_discount), 0) AS discount,
			COALESCE(SUM(grand_total), 0) AS net
		FROM pos_sale
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var days []*SalesDay
	for rows.Next() {
		var d SalesDay
		if err := rows.Scan(&d.Date, &d.Invoices, &d.Gross, &d.Tax, &d.Discount, &d.Net); err != nil {
			return nil, err
		}
		days = append(days, &d)
	}
	return days, nil
}
