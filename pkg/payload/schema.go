// Package payload defines the print request accepted by the receipt engine.
package payload

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Receipt is the root structure of a print request.
//
// Monetary values are decimals and are printed exactly as supplied; the
// engine never recomputes a line total from price and quantity.
type Receipt struct {
	Title    string           `json:"title"`
	Time     string           `json:"time"`
	Number   string           `json:"number"`
	Items    []Item           `json:"items"`
	Total    decimal.Decimal  `json:"total"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	Footer   Footer           `json:"footer"`

	// Optional decorations.
	Logo     string `json:"logo,omitempty"`      // base64 PNG/JPEG
	LogoPath string `json:"logo_path,omitempty"` // image file on disk
	QR       string `json:"qr,omitempty"`        // QR code content

	// Transport overrides; zero values defer to configuration.
	Port string `json:"port,omitempty"`
	Baud int    `json:"baud,omitempty"`
}

// Item is a single receipt row.
type Item struct {
	Name  string          `json:"name"`
	Qty   Quantity        `json:"qty"`
	Price decimal.Decimal `json:"price"`
	Total decimal.Decimal `json:"total"`
}

// Footer holds the closing lines of the receipt.
type Footer struct {
	Address  string `json:"address"`
	LastLine string `json:"lastLine"`
	Phones   string `json:"phones,omitempty"`
}

// Quantity preserves the caller's literal quantity token. Callers send
// either a JSON number ("0.96") or a free-form string ("2x500g"); both are
// printed verbatim, so the raw token is kept instead of a parsed value.
type Quantity struct {
	raw string
}

// NewQuantity builds a quantity from a literal token. Used by tests and
// programmatic callers.
func NewQuantity(token string) Quantity {
	return Quantity{raw: token}
}

// String returns the literal token as supplied by the caller.
func (q Quantity) String() string {
	return q.raw
}

// IsZero reports whether no quantity token was supplied.
func (q Quantity) IsZero() bool {
	return q.raw == ""
}

// UnmarshalJSON accepts either a JSON string or a JSON number and keeps
// the literal spelling of numbers (2 stays "2", 0.96 stays "0.96").
func (q *Quantity) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		q.raw = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	q.raw = n.String()
	return nil
}

// MarshalJSON round-trips the quantity as a string token.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.raw)
}
