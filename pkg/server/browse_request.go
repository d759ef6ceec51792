package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/matst80/product-browser/pkg/types"
)

type BrowseRequest struct {
	*types.FilterCriteria
	Sort string `json:"sort" schema:"sort,default:all"`
	// Page is the requested page, zero when the visitor did not ask for one.
	Page int `json:"page" schema:"page"`
}

func (b *BrowseRequest) SortMode() types.SortMode {
	return types.ParseSortMode(b.Sort)
}

func makeBaseBrowseRequest() *BrowseRequest {
	return &BrowseRequest{
		FilterCriteria: &types.FilterCriteria{},
		Sort:           string(types.SortAll),
	}
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func browseRequestFromQuery(query url.Values, result *BrowseRequest) error {
	if err := decoder.Decode(result, query); err != nil {
		return err
	}
	if !finite(result.MinPrice) {
		return fmt.Errorf("invalid min price %v", *result.MinPrice)
	}
	if !finite(result.MaxPrice) {
		return fmt.Errorf("invalid max price %v", *result.MaxPrice)
	}
	result.Normalize()
	return nil
}

func finite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

func GetBrowseRequest(r *http.Request) (*BrowseRequest, error) {
	req := makeBaseBrowseRequest()
	if err := browseRequestFromQuery(r.URL.Query(), req); err != nil {
		return nil, err
	}
	return req, nil
}
