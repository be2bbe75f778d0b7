package api

import (
	"net/http"
	"testing"

	"github.com/secondli/secondli-be/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityCreationIsAdminOnly(t *testing.T) {
	router, _ := newTestRouter(t)
	userCookies := registerUser(t, router, "alice", "a@x.com", "")
	adminCookies := registerUser(t, router, "boss", "boss@x.com", "admin")

	payload := map[string]interface{}{
		"name":        "Pune",
		"city":        "Pune",
		"description": "Emerging IT hub",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/communities", payload, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/communities", payload, userCookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/communities", payload, adminCookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Pune", decodeBody(t, rec)["name"])

	rec = doJSON(t, router, http.MethodPost, "/api/communities", map[string]interface{}{"name": "x"}, adminCookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCommunityIncludesItsProperties(t *testing.T) {
	router, store := newTestRouter(t)
	store.CreateCommunity(storage.NewCommunity{Name: "Mumbai", City: "Mumbai", Description: "d"})
	store.CreateProperty(storage.NewProperty{
		Title: "In town", Description: "d", Location: "l", City: "Mumbai",
		Price: 1, Area: 1, PropertyType: "apartment", IsForSale: true,
	})
	store.CreateProperty(storage.NewProperty{
		Title: "Elsewhere", Description: "d", Location: "l", City: "Pune",
		Price: 1, Area: 1, PropertyType: "apartment", IsForSale: true,
	})

	rec := doJSON(t, router, http.MethodGet, "/api/communities/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	properties, ok := body["properties"].([]interface{})
	require.True(t, ok)
	require.Len(t, properties, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/communities/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCommunities(t *testing.T) {
	router, store := newTestRouter(t)
	store.Seed()

	rec := doJSON(t, router, http.MethodGet, "/api/communities", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	communities := decodeBodySlice(t, rec)
	require.Len(t, communities, 4)
	assert.Equal(t, "Mumbai", communities[0]["name"])
	assert.Equal(t, float64(4235), communities[0]["propertyCount"])
}
