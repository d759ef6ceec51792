package jsoncompat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Products []struct {
		Title string  `json:"title"`
		Price float64 `json:"price"`
	} `json:"products"`
	Total int `json:"total"`
}

func TestDecodeCatalogEnvelope(t *testing.T) {
	var e envelope
	err := NewDecoder(bytes.NewBufferString(`{"products":[{"title":"Apple","price":1.99}],"total":194,"skip":0}`)).Decode(&e)
	require.NoError(t, err)
	assert.Equal(t, 194, e.Total)
	require.Len(t, e.Products, 1)
	assert.Equal(t, "Apple", e.Products[0].Title)
	assert.Equal(t, 1.99, e.Products[0].Price)
}

func TestEncoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode(map[string]int{"page": 2}))
	assert.JSONEq(t, `{"page":2}`, buf.String())
}
