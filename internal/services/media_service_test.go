package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "Bearer media-key", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "data:image/png;base64,AAAA", req["file"])
		assert.True(t, strings.HasPrefix(req["public_id"], "shop/"))

		json.NewEncoder(w).Encode(map[string]string{
			"public_id":  req["public_id"],
			"secure_url": "https://media.example.com/" + req["public_id"] + ".png",
		})
	}))
	defer server.Close()

	svc := NewMediaService(server.URL, "media-key", "shop")

	image, err := svc.Upload("data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(image.PublicID, "shop/"))
	assert.Contains(t, image.URL, image.PublicID)
}

func TestMediaUploadUnconfiguredUsesPlaceholder(t *testing.T) {
	svc := NewMediaService("", "", "shop")

	image, err := svc.Upload("data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "shop/sample", image.PublicID)
	assert.NotEmpty(t, image.URL)
}

func TestMediaDestroy(t *testing.T) {
	var destroyed string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/destroy", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		destroyed = req["public_id"]
	}))
	defer server.Close()

	svc := NewMediaService(server.URL, "media-key", "shop")

	require.NoError(t, svc.Destroy("shop/abc"))
	assert.Equal(t, "shop/abc", destroyed)
}

func TestMediaDestroyHostFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewMediaService(server.URL, "media-key", "shop")

	err := svc.Destroy("shop/abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
