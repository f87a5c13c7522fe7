package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cellarlens/cellarlens/internal/transport"
	"github.com/cellarlens/cellarlens/pkg/errors"
)

// priceResponse mirrors the checkout-price endpoint schema.
type priceResponse struct {
	CheckoutPrices []struct {
		Availability struct {
			Median struct {
				Amount float64 `json:"amount"`
			} `json:"median"`
			Vintage struct {
				ID int64 `json:"id"`
			} `json:"vintage"`
		} `json:"availability"`
	} `json:"checkout_prices"`
}

// MedianPrice fetches the live median checkout price for a catalog wine id,
// taken from the first availability entry. A nil price with nil error means
// the wine simply has no availability. Callers treat errors as a missing
// price; enrichment failure is never a reason to drop a wine.
func (c *Client) MedianPrice(ctx context.Context, id int64) (*float64, error) {
	key := strconv.FormatInt(id, 10)
	if cached, ok := c.priceCache.Get(key); ok {
		price := cached.(float64)
		return &price, nil
	}

	url := fmt.Sprintf(c.config.PriceURL, id)
	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return nil, errors.WrapAPI("catalog", 0, err)
	}

	var result priceResponse
	if err := transport.DecodeResponse("catalog", resp, &result); err != nil {
		return nil, err
	}

	if len(result.CheckoutPrices) == 0 {
		return nil, nil
	}

	price := result.CheckoutPrices[0].Availability.Median.Amount
	c.priceCache.SetDefault(key, price)
	return &price, nil
}
