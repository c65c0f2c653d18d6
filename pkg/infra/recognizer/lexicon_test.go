package recognizer_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mekorot/linker/pkg/infra/recognizer"
)

const testLexicon = `entries:
  - term: "בבא מציעא"
    label: "מקור"
  - term: "בבא"
    label: "מקור"
  - term: "Moses"
    label: "בן-אדם"
`

func writeLexicon(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	gt.NoError(t, os.WriteFile(path, []byte(testLexicon), 0o644))
	return path
}

func TestLexicon_Predict(t *testing.T) {
	ctx := context.Background()

	rec, err := recognizer.NewLexicon(ctx, writeLexicon(t), nil)
	gt.NoError(t, err)

	spans, err := rec.Predict(ctx, "Moses studied בבא מציעא daily")
	gt.NoError(t, err)
	gt.Equal(t, len(spans), 2)

	gt.Equal(t, spans[0].Text(), "Moses")
	gt.Equal(t, spans[0].Label, "בן-אדם")
	gt.Equal(t, spans[0].Start, 0)
	gt.Equal(t, spans[0].End, 5)

	// the longer term wins over its prefix
	gt.Equal(t, spans[1].Text(), "בבא מציעא")
	gt.Equal(t, spans[1].Label, "מקור")
	gt.Equal(t, spans[1].Start, 14)
	gt.Equal(t, spans[1].End, 23)
}

func TestLexicon_RepeatedTerm(t *testing.T) {
	ctx := context.Background()

	rec, err := recognizer.NewLexicon(ctx, writeLexicon(t), nil)
	gt.NoError(t, err)

	spans, err := rec.Predict(ctx, "Moses and Moses")
	gt.NoError(t, err)
	gt.Equal(t, len(spans), 2)
	gt.Equal(t, spans[0].Start, 0)
	gt.Equal(t, spans[1].Start, 10)
}

func TestLexicon_NoMatches(t *testing.T) {
	ctx := context.Background()

	rec, err := recognizer.NewLexicon(ctx, writeLexicon(t), nil)
	gt.NoError(t, err)

	spans, err := rec.Predict(ctx, "nothing relevant")
	gt.NoError(t, err)
	gt.Equal(t, len(spans), 0)
}

func TestLexicon_BulkPredict(t *testing.T) {
	ctx := context.Background()

	rec, err := recognizer.NewLexicon(ctx, writeLexicon(t), nil)
	gt.NoError(t, err)

	results, err := rec.BulkPredict(ctx, []string{"Moses", "none", "בבא"}, 2)
	gt.NoError(t, err)
	gt.Equal(t, len(results), 3)
	gt.Equal(t, len(results[0]), 1)
	gt.Equal(t, len(results[1]), 0)
	gt.Equal(t, len(results[2]), 1)
}

func TestLexicon_TarArchive(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	content := []byte(testLexicon)
	gt.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "lexicon.yaml",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len(content)),
	}))
	_, err := tw.Write(content)
	gt.NoError(t, err)
	gt.NoError(t, tw.Close())
	gt.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "lexicon.tar.gz")
	gt.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	rec, err := recognizer.NewLexicon(ctx, path, nil)
	gt.NoError(t, err)

	spans, err := rec.Predict(ctx, "Moses")
	gt.NoError(t, err)
	gt.Equal(t, len(spans), 1)
}

func TestLexicon_EmptyLexicon(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	gt.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o644))

	_, err := recognizer.NewLexicon(ctx, path, nil)
	gt.Error(t, err)
}

func TestLexicon_GSPathWithoutStore(t *testing.T) {
	ctx := context.Background()

	_, err := recognizer.NewLexicon(ctx, "gs://bucket/lexicon.yaml", nil)
	gt.Error(t, err)
}
