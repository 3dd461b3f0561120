package search

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(status int, body string) *http.Response {
	h := http.Header{}
	h.Set("X-Elastic-Product", "Elasticsearch")
	h.Set("Content-Type", "application/json")
	return &http.Response{StatusCode: status, Header: h, Body: io.NopCloser(strings.NewReader(body))}
}

func TestSearchDecodesHits(t *testing.T) {
	var gotPath, gotBody string
	c, err := NewWithTransport([]string{"http://es:9200"}, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		return respond(200, `{"hits":{"total":{"value":1},"hits":[{"_id":"o1","_source":{"id":"o1","customer_name":"Ana"}}]}}`), nil
	}))
	require.NoError(t, err)

	res, err := c.Search(context.Background(), "storefront-orders", map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}})
	require.NoError(t, err)
	assert.Equal(t, "/storefront-orders/_search", gotPath)
	assert.Contains(t, gotBody, "match_all")
	assert.Equal(t, 1, res.Hits.Total.Value)
	require.Len(t, res.Hits.Hits, 1)
	assert.Equal(t, "o1", res.Hits.Hits[0].ID)
	assert.JSONEq(t, `{"id":"o1","customer_name":"Ana"}`, string(res.Hits.Hits[0].Source))
}

func TestSearchError(t *testing.T) {
	c, err := NewWithTransport([]string{"http://es:9200"}, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return respond(404, `{"error":"index_not_found_exception"}`), nil
	}))
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "missing", map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index_not_found_exception")
}

func TestCreateIndexSkipsExisting(t *testing.T) {
	var methods []string
	c, err := NewWithTransport([]string{"http://es:9200"}, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		methods = append(methods, r.Method)
		return respond(200, `{}`), nil
	}))
	require.NoError(t, err)

	require.NoError(t, c.CreateIndex(context.Background(), "storefront-orders", `{}`))
	assert.Equal(t, []string{http.MethodHead}, methods)
}

func TestIndexDocument(t *testing.T) {
	var gotPath string
	c, err := NewWithTransport([]string{"http://es:9200"}, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		return respond(201, `{"result":"created"}`), nil
	}))
	require.NoError(t, err)

	require.NoError(t, c.Index(context.Background(), "storefront-orders", "o1", map[string]string{"id": "o1"}))
	assert.Equal(t, "/storefront-orders/_doc/o1", gotPath)
}
