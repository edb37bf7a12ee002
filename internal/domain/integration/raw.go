package integration

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one loosely shaped record as returned by the external
// platform. Field accessors are tolerant: every lookup has a defined
// fallback and none of them can fail a batch.
type RawRecord map[string]any

// Int64 extracts a numeric identifier that may arrive as a JSON number,
// json.Number or a numeric string
func (r RawRecord) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Str extracts a non-empty string value
func (r RawRecord) Str(key string) (string, bool) {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// StrPtr extracts an optional string value, nil when absent or empty
func (r RawRecord) StrPtr(key string) *string {
	if s, ok := r.Str(key); ok {
		return &s
	}
	return nil
}

// Time extracts an RFC3339 timestamp
func (r RawRecord) Time(key string) (time.Time, bool) {
	s, ok := r.Str(key)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TimePtr extracts an optional RFC3339 timestamp
func (r RawRecord) TimePtr(key string) *time.Time {
	if t, ok := r.Time(key); ok {
		return &t
	}
	return nil
}

// Decimal extracts an optional decimal amount that may arrive as a string
// or a JSON number. Missing or unparseable values yield nil.
func (r RawRecord) Decimal(key string) *decimal.Decimal {
	switch v := r[key].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil
		}
		return &d
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil
		}
		return &d
	case float64:
		d := decimal.NewFromFloat(v)
		return &d
	default:
		return nil
	}
}

// Object extracts a nested record
func (r RawRecord) Object(key string) (RawRecord, bool) {
	m, ok := r[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return RawRecord(m), true
}

// List extracts a list of nested records, skipping non-object elements
func (r RawRecord) List(key string) []RawRecord {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	records := make([]RawRecord, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, RawRecord(m))
		}
	}
	return records
}

// ---------------------------------------------------------------------------
// Per-entity raw wrappers
// ---------------------------------------------------------------------------

// RawProduct is a raw product record
type RawProduct struct {
	RawRecord
}

// ExternalID returns the platform product ID
func (p RawProduct) ExternalID() (int64, bool) {
	return p.Int64("id")
}

// Title returns the product title, empty when absent
func (p RawProduct) Title() string {
	s, _ := p.Str("title")
	return s
}

// PriceRange derives the min and max variant price from the parseable
// variant prices. Unparseable entries are ignored; when no variant carries
// a parseable price both bounds are nil.
func (p RawProduct) PriceRange() (min, max *decimal.Decimal) {
	for _, variant := range p.List("variants") {
		price := variant.Decimal("price")
		if price == nil {
			continue
		}
		if min == nil || price.LessThan(*min) {
			min = price
		}
		if max == nil || price.GreaterThan(*max) {
			max = price
		}
	}
	return min, max
}

// RawCustomer is a raw customer record
type RawCustomer struct {
	RawRecord
}

// ExternalID returns the platform customer ID
func (c RawCustomer) ExternalID() (int64, bool) {
	return c.Int64("id")
}

// Email returns the customer email, nil when absent
func (c RawCustomer) Email() *string {
	return c.StrPtr("email")
}

// FirstName returns the customer first name, nil when absent
func (c RawCustomer) FirstName() *string {
	return c.StrPtr("first_name")
}

// LastName returns the customer last name, nil when absent
func (c RawCustomer) LastName() *string {
	return c.StrPtr("last_name")
}

// RawOrder is a raw order record
type RawOrder struct {
	RawRecord
}

// ExternalID returns the platform order ID
func (o RawOrder) ExternalID() (int64, bool) {
	return o.Int64("id")
}

// TotalPrice returns the order total, nil when absent or unparseable
func (o RawOrder) TotalPrice() *decimal.Decimal {
	return o.Decimal("total_price")
}

// Currency returns the order currency code, nil when absent
func (o RawOrder) Currency() *string {
	return o.StrPtr("currency")
}

// PlacedAt returns the platform order creation time
func (o RawOrder) PlacedAt() (time.Time, bool) {
	return o.Time("created_at")
}

// ProcessedAt returns the platform processing time, nil when absent
func (o RawOrder) ProcessedAt() *time.Time {
	return o.TimePtr("processed_at")
}

// CustomerExternalID returns the platform customer ID referenced by the
// order. The platform emits the reference in two shapes, a nested customer
// object and a flat customer_id field; either is accepted.
func (o RawOrder) CustomerExternalID() (int64, bool) {
	if customer, ok := o.Object("customer"); ok {
		if id, ok := customer.Int64("id"); ok {
			return id, true
		}
	}
	return o.Int64("customer_id")
}
