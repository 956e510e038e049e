package rocketsource_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

func TestConvert_ToASIN(t *testing.T) {
	t.Parallel()

	want := domain.ConvertResponse{
		"012345678905":  {"B000000001", "B000000002"},
		"9780306406157": {},
	}

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/convert", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"marketplace":"US","ids":["012345678905","9780306406157"]}`, string(body))
		writeJSON(w, http.StatusOK, want)
	})

	got, err := c.Convert.ToASIN(context.Background(), domain.ConvertRequest{
		Marketplace: domain.MarketplaceUS,
		IDs:         []string{"012345678905", "9780306406157"},
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConvert_FromASIN(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/asin-convert", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"marketplace":"JP","asins":["B0TEST"]}`, string(body))
		_, _ = io.WriteString(w, `{"B0TEST":{"upc":["012345678905"],"ean":["0012345678905"]}}`)
	})

	got, err := c.Convert.ConvertASINs(context.Background(), domain.MarketplaceJP, []string{"B0TEST"})
	require.NoError(t, err)
	require.Contains(t, got, "B0TEST")
	assert.Equal(t, []string{"012345678905"}, got["B0TEST"].UPC)
	assert.Equal(t, []string{"0012345678905"}, got["B0TEST"].EAN)
	assert.Nil(t, got["B0TEST"].ISBN)
}

func TestConvert_TypedHelpersShareWireShape(t *testing.T) {
	t.Parallel()

	var bodies []string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/convert", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		writeJSON(w, http.StatusOK, domain.ConvertResponse{})
	})

	ctx := context.Background()
	ids := []string{"1", "2"}

	_, err := c.Convert.ConvertIDs(ctx, domain.MarketplaceCA, ids)
	require.NoError(t, err)
	_, err = c.Convert.ConvertUPCs(ctx, domain.MarketplaceCA, ids)
	require.NoError(t, err)
	_, err = c.Convert.ConvertEANs(ctx, domain.MarketplaceCA, ids)
	require.NoError(t, err)
	_, err = c.Convert.ConvertISBNs(ctx, domain.MarketplaceCA, ids)
	require.NoError(t, err)

	require.Len(t, bodies, 4)
	for _, b := range bodies {
		assert.JSONEq(t, `{"marketplace":"CA","ids":["1","2"]}`, b)
	}
}

func TestConvert_NoMemoization(t *testing.T) {
	t.Parallel()

	var bodies []string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		writeJSON(w, http.StatusOK, domain.ConvertResponse{"1": {"B1"}})
	})

	for range 2 {
		got, err := c.Convert.ConvertIDs(context.Background(), domain.MarketplaceUS, []string{"1"})
		require.NoError(t, err)
		assert.Equal(t, domain.ConvertResponse{"1": {"B1"}}, got)
	}
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
	assert.JSONEq(t, `{"marketplace":"US","ids":["1"]}`, bodies[0])
}

func TestConvert_EmptyInput(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"marketplace":"US","ids":[]}`, string(body))
		writeJSON(w, http.StatusOK, domain.ConvertResponse{})
	})

	got, err := c.Convert.ConvertIDs(context.Background(), domain.MarketplaceUS, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
