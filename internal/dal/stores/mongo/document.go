package mongostore

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/corray333/orderflow/internal/service/models/order"
	"github.com/corray333/orderflow/internal/service/models/product"
)

// orderDoc mirrors the stored order document with tolerant numeric
// decoding: the document store is not schema-enforced and may hand
// numbers back as strings.
type orderDoc struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Supplier    string       `json:"supplier"`
	TotalAmount flexFloat    `json:"totalAmount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Products    []productDoc `json:"products"`
}

type productDoc struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Compatibility string    `json:"compatibility"`
	Price         flexFloat `json:"price"`
	Quantity      flexInt   `json:"quantity"`
}

func (d *orderDoc) toModel() *order.Order {
	products := make([]product.Product, len(d.Products))
	for i, p := range d.Products {
		products[i] = product.Product{
			ID:            p.ID,
			Name:          p.Name,
			Category:      p.Category,
			Brand:         p.Brand,
			Compatibility: p.Compatibility,
			Price:         float64(p.Price),
			Quantity:      int(p.Quantity),
		}
	}

	return &order.Order{
		ID:          d.ID,
		Date:        d.Date,
		Supplier:    d.Supplier,
		TotalAmount: float64(d.TotalAmount),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Products:    products,
	}
}

// flexFloat decodes from a JSON number, a numeric string, or null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0

		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0

			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)

	return nil
}

// flexInt decodes from a JSON number, a numeric string, or null.
// Fractional values are truncated.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var v flexFloat
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = flexInt(v)

	return nil
}
