package types

import (
	"bytes"
	"strconv"
)

// ProductId is the catalog identifier. The catalog sends numbers, older
// fixtures send strings, both decode to the same value.
type ProductId string

func (id *ProductId) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*id = ProductId(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return err
	}
	*id = ProductId(data)
	return nil
}

func (id ProductId) String() string {
	return string(id)
}

type Product struct {
	Id        ProductId `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Rating    float64   `json:"rating"`
}

// ProductList is the envelope returned by the catalog for both listing and search.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

func (l *ProductList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Products)
}
