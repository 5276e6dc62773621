package finreport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Operations are persisted as JSONL: one JSON object per line, identified by
// a "kind" field. The format is the interchange between the parse command and
// the reporting commands, and is stable enough to be hand-edited.

// MarshalJSON implements the json.Marshaler interface for BuyOperation.
func (o BuyOperation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", o.Kind())
	w.Append("date", o.Date)
	w.Append("asset", o.Asset)
	w.Append("unitPrice", o.UnitPrice)
	w.Append("quantity", o.Quantity)
	w.Optional("commission", o.Commission)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for SellOperation.
func (o SellOperation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", o.Kind())
	w.Append("date", o.Date)
	w.Append("asset", o.Asset)
	w.Append("unitPrice", o.UnitPrice)
	w.Append("quantity", o.Quantity)
	w.Optional("commission", o.Commission)
	w.Optional("tax", o.Tax)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (o Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", o.Kind())
	w.Append("date", o.Date)
	w.Append("asset", o.Asset)
	w.Append("gross", o.Gross)
	w.Optional("tax", o.Tax)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Interest.
func (o Interest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", o.Kind())
	w.Append("date", o.Date)
	w.Append("gross", o.Gross)
	w.Optional("tax", o.Tax)
	w.Optional("source", o.Source)
	return w.MarshalJSON()
}

// EncodeOperation writes a single operation as one JSONL line.
func EncodeOperation(w io.Writer, op Operation) error {
	b, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("could not encode %s operation: %w", op.Kind(), err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeOperations writes operations as a JSONL stream, one per line.
func EncodeOperations(w io.Writer, ops []Operation) error {
	for _, op := range ops {
		if err := EncodeOperation(w, op); err != nil {
			return err
		}
	}
	return nil
}

// opFields is a temporary decoding struct that has all possible fields of all
// operation kinds.
type opFields struct {
	Kind       OpKind    `json:"kind"`
	Date       time.Time `json:"date"`
	Asset      Asset     `json:"asset"`
	UnitPrice  Money     `json:"unitPrice"`
	Quantity   Quantity  `json:"quantity"`
	Commission Money     `json:"commission"`
	Tax        Money     `json:"tax"`
	Gross      Money     `json:"gross"`
	Source     string    `json:"source"`
}

// DecodeOperations reads a JSONL stream of operations, decoding each line
// into the appropriate operation struct. Operations go through the same
// validating constructors as parsed ones, so malformed records are rejected
// here rather than deep inside a processing loop.
func DecodeOperations(r io.Reader) ([]Operation, error) {
	var ops []Operation
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var temp opFields
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, fmt.Errorf("could not decode operation line %q: %w", string(lineBytes), err)
		}

		var op Operation
		var err error
		switch temp.Kind {
		case KindBuy:
			op, err = NewBuy(temp.Asset, temp.UnitPrice, temp.Quantity, temp.Commission, temp.Date)
		case KindSell:
			op, err = NewSell(temp.Asset, temp.UnitPrice, temp.Quantity, temp.Commission, temp.Tax, temp.Date)
		case KindDividend:
			op = Dividend{Asset: temp.Asset, Gross: temp.Gross, Tax: temp.Tax, Date: temp.Date}
		case KindInterest:
			op = Interest{Gross: temp.Gross, Tax: temp.Tax, Date: temp.Date, Source: temp.Source}
		default:
			err = fmt.Errorf("unknown operation kind %q", temp.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid operation line %q: %w", string(lineBytes), err)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}
