package storage_test

import (
	"testing"

	"mod-sync/core/storage"
	"mod-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ storage.Client = (*minio.Client)(nil)
	_ storage.Client = (*mocks.Client)(nil)
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		cfg        storage.Config
		wantHost   string
		wantScheme string
	}{
		{
			name:       "bare endpoint",
			cfg:        storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "mods"},
			wantHost:   "localhost:9000",
			wantScheme: "http",
		},
		{
			name:       "http scheme is stripped",
			cfg:        storage.Config{Endpoint: "http://minio.local:9000", AccessKey: "k", SecretKey: "s"},
			wantHost:   "minio.local:9000",
			wantScheme: "http",
		},
		{
			name:       "https follows use_ssl",
			cfg:        storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true, Region: "us-east-1", TimeoutSeconds: 5},
			wantHost:   "s3.amazonaws.com",
			wantScheme: "https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			require.NoError(t, err)

			mc, ok := client.(*minio.Client)
			require.True(t, ok)
			assert.Equal(t, tt.wantHost, mc.EndpointURL().Host)
			assert.Equal(t, tt.wantScheme, mc.EndpointURL().Scheme)
		})
	}
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	client, err := storage.NewClient(storage.Config{Endpoint: "not a host", AccessKey: "k", SecretKey: "s"})
	assert.ErrorContains(t, err, "failed to create minio client")
	assert.Nil(t, client)
}
