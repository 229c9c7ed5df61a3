package entropy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("key")
	c.endpoint = srv.URL
	return c
}

func TestInt63(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string         `json:"method"`
			Params map[string]any `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "generateIntegers", req.Method)
		assert.Equal(t, "key", req.Params["apiKey"])
		w.Write([]byte(`{"result":{"random":{"data":[1,2,1]}}}`))
	})

	s, err := c.Int63(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1<<32|2<<1|1), s)
	assert.Equal(t, s, Seed(context.Background(), c))
}

func TestInt63_APIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	})
	_, err := c.Int63(context.Background())
	assert.ErrorContains(t, err, "quota exceeded")

	// falls back to crypto/rand
	assert.NotZero(t, Seed(context.Background(), c))
}

func TestInt63_ShortResponse(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"random":{"data":[5]}}}`))
	})
	_, err := c.Int63(context.Background())
	assert.Error(t, err)
}

func TestSeed_NoClient(t *testing.T) {
	assert.Nil(t, NewClient(""))
	var c *Client
	assert.False(t, c.Enabled())
	s := Seed(context.Background(), nil)
	assert.Greater(t, s, int64(0))
	assert.Greater(t, CryptoSeed(), int64(0))
}
