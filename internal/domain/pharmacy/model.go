package pharmacy

import (
	"time"

	"github.com/google/uuid"
)

// Stock return statuses. pending moves to approved or rejected; only
// approved moves to returned, which is when stock is actually deducted.
const (
	ReturnPending  = "pending"
	ReturnApproved = "approved"
	ReturnRejected = "rejected"
	ReturnReturned = "returned"
)

var returnTransitions = map[string][]string{
	ReturnPending:  {ReturnApproved, ReturnRejected},
	ReturnApproved: {ReturnReturned},
}

func returnTransitionAllowed(from, to string) bool {
	for _, t := range returnTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Item is a sellable pharmacy product. AvailableQty is maintained by
// the server only, through receipts, returns and sales.
type Item struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	GenericName      *string   `db:"generic_name" json:"genericName,omitempty"`
	Unit             string    `db:"unit" json:"unit"`
	ConversionUnit   *string   `db:"conversion_unit" json:"conversionUnit,omitempty"`
	ConversionFactor int       `db:"conversion_factor" json:"conversionFactor"`
	RetailPrice      float64   `db:"retail_price" json:"retailPrice"`
	UnitCost         float64   `db:"unit_cost" json:"unitCost"`
	AvailableQty     int       `db:"available_qty" json:"availableQuantity"`
	ReorderLevel     int       `db:"reorder_level" json:"reorderLevel"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// Batch is a stock sub-lot of an item, identified by batch number and
// expiry date. Sales consume batches earliest expiry first.
type Batch struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ItemID      uuid.UUID `db:"item_id" json:"itemId"`
	BatchNumber string    `db:"batch_number" json:"batchNumber"`
	ExpiryDate  time.Time `db:"expiry_date" json:"expiryDate"`
	Quantity    int       `db:"quantity" json:"quantity"`
	UnitCost    float64   `db:"unit_cost" json:"unitCost"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// GoodsReceipt is a stock-in document. The server recomputes every
// line total and the document totals, ignoring client-sent figures.
type GoodsReceipt struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	DocumentNo      string        `db:"document_no" json:"documentNo"`
	SupplierName    string        `db:"supplier_name" json:"supplierName"`
	SupplierInvoice *string       `db:"supplier_invoice" json:"supplierInvoice,omitempty"`
	Lines           []ReceiptLine `db:"-" json:"lines"`
	SubTotal        float64       `db:"sub_total" json:"subTotal"`
	TotalTax        float64       `db:"total_tax" json:"totalTax"`
	GrandTotal      float64       `db:"grand_total" json:"grandTotal"`
	CreatedBy       uuid.UUID     `db:"created_by" json:"createdBy"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
}

type ReceiptLine struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ReceiptID   uuid.UUID `db:"receipt_id" json:"-"`
	ItemID      uuid.UUID `db:"item_id" json:"itemId"`
	BatchNumber string    `db:"batch_number" json:"batchNumber"`
	ExpiryDate  time.Time `db:"expiry_date" json:"expiryDate"`
	Quantity    int       `db:"quantity" json:"quantity"`
	UnitCost    float64   `db:"unit_cost" json:"unitCost"`
	TaxPct      float64   `db:"tax_pct" json:"taxPct"`
	Discount    float64   `db:"discount" json:"discount"`
	LineTotal   float64   `db:"line_total" json:"lineTotal"`
}

// StockReturn sends stock back to a supplier. Stock is deducted only
// when the return reaches the returned status.
type StockReturn struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	SupplierName string       `db:"supplier_name" json:"supplierName"`
	Lines        []ReturnLine `db:"-" json:"lines"`
	TotalAmount  float64      `db:"total_amount" json:"totalAmount"`
	Status       string       `db:"status" json:"status"`
	CreatedBy    uuid.UUID    `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

type ReturnLine struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ReturnID  uuid.UUID `db:"return_id" json:"-"`
	ItemID    uuid.UUID `db:"item_id" json:"itemId"`
	BatchID   uuid.UUID `db:"batch_id" json:"batchId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	UnitCost  float64   `db:"unit_cost" json:"unitCost"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	LineTotal float64   `db:"line_total" json:"lineTotal"`
}

// Sale is a point-of-sale invoice. Retail prices are snapshotted from
// the item at sale time.
type Sale struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	InvoiceNo     string     `db:"invoice_no" json:"invoiceNo"`
	PatientID     *uuid.UUID `db:"patient_id" json:"patientId,omitempty"`
	Lines         []SaleLine `db:"-" json:"lines"`
	Payments      []Payment  `db:"-" json:"payments"`
	SubTotal      float64    `db:"sub_total" json:"subTotal"`
	TotalTax      float64    `db:"total_tax" json:"totalTax"`
	TotalDiscount float64    `db:"total_discount" json:"totalDiscount"`
	GrandTotal    float64    `db:"grand_total" json:"grandTotal"`
	Paid          float64    `db:"paid" json:"paid"`
	Due           float64    `db:"due" json:"due"`
	Advance       float64    `db:"advance" json:"advance"`
	CreatedBy     uuid.UUID  `db:"created_by" json:"createdBy"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

type SaleLine struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SaleID      uuid.UUID `db:"sale_id" json:"-"`
	ItemID      uuid.UUID `db:"item_id" json:"itemId"`
	Quantity    int       `db:"quantity" json:"quantity"`
	RetailPrice float64   `db:"retail_price" json:"retailPrice"`
	Discount    float64   `db:"discount" json:"discount"`
	TaxPct      float64   `db:"tax_pct" json:"taxPct"`
	LineTotal   float64   `db:"line_total" json:"lineTotal"`
}

type Payment struct {
	ID     uuid.UUID `db:"id" json:"id"`
	SaleID uuid.UUID `db:"sale_id" json:"-"`
	Method string    `db:"method" json:"method"`
	Amount float64   `db:"amount" json:"amount"`
}

// SalesDay is one row of the sales summary report.
type SalesDay struct {
	Date     time.Time `db:"day" json:"date"`
	Invoices int       `db:"invoices" json:"invoices"`
	Gross    float64   `db:"gross" json:"gross"`
	Tax      float64   `db:"tax" json:"tax"`
	Discount float64   `db:"discount" json:"discount"`
	Net      float64   `db:"net" json:"net"`
}

// ItemFilters narrows item list queries.
type ItemFilters struct {
	Search string
	// LowStock keeps only items at or below their reorder level.
	LowStock bool
}

// DocFilters narrows receipt, return and sale list queries.
type DocFilters struct {
	Search string
	Status string
	From   *time.Time
	To     *time.Time
}
