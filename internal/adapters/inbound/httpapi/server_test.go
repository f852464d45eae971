package httpapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/adapters/inbound/httpapi"
)

func TestNewServerValidation(t *testing.T) {
	t.Parallel()

	_, err := httpapi.NewServer("", http.NewServeMux())
	assert.Error(t, err)

	_, err = httpapi.NewServer(":0", nil)
	assert.Error(t, err)
}

func TestServerStartStop(t *testing.T) {
	t.Parallel()

	srv, err := httpapi.NewServer("127.0.0.1:0", http.NewServeMux())
	require.NoError(t, err)
	require.NoError(t, srv.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
}

func TestServerStartBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := httpapi.NewServer("256.256.256.256:99999", http.NewServeMux())
	require.NoError(t, err)
	assert.Error(t, srv.Start(), "bind failure surfaces within the startup window")
}
