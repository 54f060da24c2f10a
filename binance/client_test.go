package binance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tradesBody = `[
	{"id": 340327051, "price": "0.06901500", "qty": "0.00160000", "quoteQty": "0.00011042", "time": 1652614347356, "isBuyerMaker": false, "isBestMatch": true},
	{"id": 340327052, "price": "0.06901600", "qty": "0.00200000", "quoteQty": "0.00013803", "time": 1652614347999, "isBuyerMaker": true, "isBestMatch": true}
]`

func TestFetchBatch(t *testing.T) {
	t.Parallel()

	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(tradesBody))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", srv.URL)
	trades, err := c.FetchBatch(context.Background(), "ETHBTC", 340327051, 1000)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, int64(340327051), trades[0].ID)
	assert.Equal(t, "0.06901500", trades[0].Price)
	assert.Equal(t, "0.00160000", trades[0].Qty)
	assert.Equal(t, "0.00011042", trades[0].QuoteQty)
	assert.Equal(t, int64(1652614347356), trades[0].Time)
	assert.False(t, trades[0].IsBuyerMaker)
	assert.True(t, trades[0].IsBestMatch)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/api/v3/historicalTrades", gotReq.URL.Path)
	assert.Equal(t, "test-key", gotReq.Header.Get("X-MBX-APIKEY"))

	q := gotReq.URL.Query()
	assert.Equal(t, "ETHBTC", q.Get("symbol"))
	assert.Equal(t, "1000", q.Get("limit"))
	assert.Equal(t, "340327051", q.Get("fromId"))
}

func TestFetchBatchBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", srv.URL)
	_, err := c.FetchBatch(context.Background(), "BOGUS", 1, 1000)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTeapot, apiErr.Status)
	assert.Contains(t, apiErr.Body, "Invalid symbol")
	assert.Contains(t, apiErr.URL, "symbol=BOGUS")
}

func TestFetchBatchBadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", srv.URL)
	_, err := c.FetchBatch(context.Background(), "ETHBTC", 1, 1000)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestFetchBatchNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient("test-key", srv.URL)
	_, err := c.FetchBatch(context.Background(), "ETHBTC", 1, 1000)
	assert.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	_, err := NewClientFromEnv()
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	t.Setenv(APIKeyEnv, "some-key")
	c, err := NewClientFromEnv()
	require.NoError(t, err)
	assert.NotNil(t, c)
}
