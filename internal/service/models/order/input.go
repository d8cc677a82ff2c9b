package order

// OrderInput is what a caller submits to create or edit an order. ProductIDs
// and Quantities are parallel: line i orders Quantities[i] of ProductIDs[i].
type OrderInput struct {
	CustomerID int64   `json:"customerId" schema:"customerId" validate:"gt=0"`
	Status     Status  `json:"status" schema:"status" validate:"required,status"`
	ProductIDs []int64 `json:"productIds" schema:"productIds" validate:"required,min=1,dive,gt=0"`
	Quantities []int   `json:"quantities" schema:"quantities" validate:"required,min=1,dive,gte=1,lte=1000000"`
	// Version is the order version the caller last read. Zero skips the check.
	Version int64 `json:"version,omitempty" schema:"version" validate:"gte=0"`
}

// MaxQuantity is the largest quantity accepted on one line. It keeps a line
// within the INTEGER quantity column.
const MaxQuantity = 1_000_000

// Line is one validated (product, quantity) pair.
type Line struct {
	ProductID int64
	Quantity  int
}

// Lines pairs ProductIDs with Quantities in input order. It must only be
// called on validated input.
func (in OrderInput) Lines() []Line {
	lines := make([]Line, len(in.ProductIDs))
	for i := range in.ProductIDs {
		lines[i] = Line{ProductID: in.ProductIDs[i], Quantity: in.Quantities[i]}
	}

	return lines
}
