package gcs_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mekorot/linker/pkg/infra/gcs"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{
			name:       "simple object",
			url:        "gs://models/lexicon.yaml",
			wantBucket: "models",
			wantObject: "lexicon.yaml",
		},
		{
			name:       "nested object",
			url:        "gs://models/he/ner/lexicon.tar.gz",
			wantBucket: "models",
			wantObject: "he/ner/lexicon.tar.gz",
		},
		{
			name:    "missing scheme",
			url:     "models/lexicon.yaml",
			wantErr: true,
		},
		{
			name:    "bucket only",
			url:     "gs://models",
			wantErr: true,
		},
		{
			name:    "empty object",
			url:     "gs://models/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := gcs.ParseURL(tt.url)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, bucket, tt.wantBucket)
			gt.Equal(t, object, tt.wantObject)
		})
	}
}

func TestIsGSURL(t *testing.T) {
	gt.Equal(t, gcs.IsGSURL("gs://bucket/object"), true)
	gt.Equal(t, gcs.IsGSURL("/local/path"), false)
	gt.Equal(t, gcs.IsGSURL("http://example.com"), false)
}

func TestFetch_Integration(t *testing.T) {
	// Requires real GCS credentials and a test object
	url := os.Getenv("TEST_GCS_OBJECT_URL")
	if url == "" {
		t.Skip("TEST_GCS_OBJECT_URL not set, skipping integration test")
	}

	ctx := context.Background()

	store, err := gcs.NewClient(ctx)
	gt.NoError(t, err)

	data, err := gcs.Fetch(ctx, store, url)
	gt.NoError(t, err)
	gt.V(t, len(data)).NotEqual(0)
}
