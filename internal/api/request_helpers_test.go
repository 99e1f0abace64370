package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func requestWithParam(name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9223372036854775807", 9223372036854775807, false},
		{"", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"12abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			id, err := getPathID(requestWithParam("id", tt.value), "id")
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidID)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestGetQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=4&limit=abc&neg=-3", nil)

	assert.Equal(t, 4, getQueryInt(req, "page", 1))
	assert.Equal(t, 10, getQueryInt(req, "limit", 10))
	assert.Equal(t, -3, getQueryInt(req, "neg", 1))
	assert.Equal(t, 7, getQueryInt(req, "missing", 7))
}
