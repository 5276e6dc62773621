package finreport

import (
	"fmt"
	"slices"
	"time"
)

// OpKind is a typed string identifying the kind of a financial operation.
type OpKind string

const (
	KindBuy      OpKind = "buy"
	KindSell     OpKind = "sell"
	KindDividend OpKind = "dividend"
	KindInterest OpKind = "interest"
)

// rank fixes the total order of same-timestamp operations: buys settle before
// sells, so a same-day purchase is available to a same-day sale. This order is
// part of the engine contract, changing it changes which lots a sell consumes.
func (k OpKind) rank() int {
	switch k {
	case KindBuy:
		return 0
	case KindSell:
		return 1
	case KindDividend:
		return 2
	case KindInterest:
		return 3
	default:
		panic(fmt.Sprintf("unknown operation kind %q", k))
	}
}

// Operation is the closed set of normalized records produced by broker
// parsers: BuyOperation, SellOperation, Dividend and Interest.
type Operation interface {
	Kind() OpKind
	When() time.Time
	String() string

	// operation seals the interface so that engine switches stay exhaustive.
	operation()
}

// BuyOperation is the acquisition of a quantity of an asset. It opens a lot
// that later sells consume.
type BuyOperation struct {
	Asset      Asset
	UnitPrice  Money
	Quantity   Quantity
	Commission Money
	Date       time.Time
}

// NewBuy validates and creates a buy operation. The quantity must be
// strictly positive: degenerate records are rejected here, not silently
// ignored by the matching loop.
func NewBuy(asset Asset, unitPrice Money, quantity Quantity, commission Money, on time.Time) (BuyOperation, error) {
	if !quantity.IsPositive() {
		return BuyOperation{}, fmt.Errorf("buy of %s on %s: quantity must be > 0, got %s", asset, on.Format(time.DateOnly), quantity)
	}
	if unitPrice.Currency() == "" {
		return BuyOperation{}, fmt.Errorf("buy of %s on %s: unit price has no currency", asset, on.Format(time.DateOnly))
	}
	return BuyOperation{Asset: asset, UnitPrice: unitPrice, Quantity: quantity, Commission: commission, Date: on}, nil
}

func (o BuyOperation) Kind() OpKind    { return KindBuy }
func (o BuyOperation) When() time.Time { return o.Date }
func (o BuyOperation) operation()      {}

func (o BuyOperation) String() string {
	base := fmt.Sprintf("Bought %s × %s @ %s on %s", o.Quantity, o.Asset.Name, o.UnitPrice, o.Date.Format(time.DateOnly))
	if !o.Commission.IsZero() {
		base += fmt.Sprintf(" (commission: %s)", o.Commission)
	}
	return base
}

// SellOperation is the disposal of a quantity of an asset. A sell is the
// triggering event for FIFO matching. Tax holds withholding or transaction
// tax, zero when the export reports none.
type SellOperation struct {
	Asset      Asset
	UnitPrice  Money
	Quantity   Quantity
	Commission Money
	Tax        Money
	Date       time.Time
}

// NewSell validates and creates a sell operation.
func NewSell(asset Asset, unitPrice Money, quantity Quantity, commission, tax Money, on time.Time) (SellOperation, error) {
	if !quantity.IsPositive() {
		return SellOperation{}, fmt.Errorf("sell of %s on %s: quantity must be > 0, got %s", asset, on.Format(time.DateOnly), quantity)
	}
	if unitPrice.Currency() == "" {
		return SellOperation{}, fmt.Errorf("sell of %s on %s: unit price has no currency", asset, on.Format(time.DateOnly))
	}
	return SellOperation{Asset: asset, UnitPrice: unitPrice, Quantity: quantity, Commission: commission, Tax: tax, Date: on}, nil
}

func (o SellOperation) Kind() OpKind    { return KindSell }
func (o SellOperation) When() time.Time { return o.Date }
func (o SellOperation) operation()      {}

func (o SellOperation) String() string {
	base := fmt.Sprintf("Sold %s × %s @ %s on %s", o.Quantity, o.Asset.Name, o.UnitPrice, o.Date.Format(time.DateOnly))
	if !o.Commission.IsZero() {
		base += fmt.Sprintf(" (commission: %s)", o.Commission)
	}
	return base
}

// Dividend is a dividend payment from a held asset.
type Dividend struct {
	Asset Asset
	Gross Money
	Tax   Money
	Date  time.Time
}

func (o Dividend) Kind() OpKind    { return KindDividend }
func (o Dividend) When() time.Time { return o.Date }
func (o Dividend) operation()      {}

func (o Dividend) String() string {
	return fmt.Sprintf("Dividend of %s from %s on %s", o.Gross, o.Asset, o.Date.Format(time.DateOnly))
}

// Interest is an interest payment from a savings or cash product. Source
// names the paying platform when known.
type Interest struct {
	Gross  Money
	Tax    Money
	Date   time.Time
	Source string
}

func (o Interest) Kind() OpKind    { return KindInterest }
func (o Interest) When() time.Time { return o.Date }
func (o Interest) operation()      {}

func (o Interest) String() string {
	return fmt.Sprintf("Interest payment of %s on %s", o.Gross, o.Date.Format(time.DateOnly))
}

// SortOperations returns a chronologically sorted copy of the operations.
// The sort is stable and same-timestamp operations are ordered by kind rank.
// Inputs are never reordered in place.
func SortOperations(ops []Operation) []Operation {
	sorted := slices.Clone(ops)
	slices.SortStableFunc(sorted, func(a, b Operation) int {
		if c := a.When().Compare(b.When()); c != 0 {
			return c
		}
		return a.Kind().rank() - b.Kind().rank()
	})
	return sorted
}
