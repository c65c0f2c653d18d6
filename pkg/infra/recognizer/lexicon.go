package recognizer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/domain/interfaces"
	"github.com/mekorot/linker/pkg/domain/model"
	"github.com/mekorot/linker/pkg/infra/gcs"
	"gopkg.in/yaml.v3"
)

// lexiconFileName is the entry read from .tar.gz lexicon archives
const lexiconFileName = "lexicon.yaml"

// lexiconFile is the on-disk lexicon format
type lexiconFile struct {
	Entries []lexiconEntry `yaml:"entries"`
}

type lexiconEntry struct {
	Term  string `yaml:"term"`
	Label string `yaml:"label"`
}

type lexiconRecognizer struct {
	entries []lexiconEntry
}

// NewLexicon loads a term dictionary and returns a Recognizer that marks
// every non-overlapping occurrence of a dictionary term, longest terms
// winning. The path may be a local file, a gs:// object, or a .tar.gz archive
// of either containing lexicon.yaml.
func NewLexicon(ctx context.Context, path string, store interfaces.ObjectStore) (interfaces.Recognizer, error) {
	data, err := loadLexiconData(ctx, path, store)
	if err != nil {
		return nil, err
	}

	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse lexicon", goerr.V("path", path))
	}
	if len(file.Entries) == 0 {
		return nil, goerr.New("lexicon has no entries", goerr.V("path", path))
	}

	entries := make([]lexiconEntry, 0, len(file.Entries))
	for _, e := range file.Entries {
		if e.Term == "" {
			continue
		}
		entries = append(entries, e)
	}

	// Longest terms first so they win over their own substrings
	sort.SliceStable(entries, func(i, j int) bool {
		return utf8.RuneCountInString(entries[i].Term) > utf8.RuneCountInString(entries[j].Term)
	})

	return &lexiconRecognizer{entries: entries}, nil
}

// loadLexiconData fetches the raw lexicon bytes, unwrapping a tar.gz archive
// when the path says so
func loadLexiconData(ctx context.Context, path string, store interfaces.ObjectStore) ([]byte, error) {
	var data []byte
	var err error

	if gcs.IsGSURL(path) {
		if store == nil {
			return nil, goerr.New("gs:// lexicon path requires an object store", goerr.V("path", path))
		}
		data, err = gcs.Fetch(ctx, store, path)
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			err = goerr.Wrap(err, "failed to read lexicon file", goerr.V("path", path))
		}
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz") {
		return extractArchiveEntry(data, lexiconFileName)
	}
	return data, nil
}

// extractArchiveEntry reads a single named file from an in-memory tar.gz
func extractArchiveEntry(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open gzip archive")
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read tar archive")
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if filepath.Base(hdr.Name) == name {
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to read archive entry", goerr.V("entry", hdr.Name))
			}
			return data, nil
		}
	}
	return nil, goerr.New("archive entry not found", goerr.V("entry", name))
}

// Predict marks dictionary term occurrences in the text
func (l *lexiconRecognizer) Predict(ctx context.Context, text string) ([]model.Span, error) {
	doc := model.NewDoc(text)
	taken := make([]bool, doc.Len())

	var spans []model.Span
	for _, entry := range l.entries {
		termLen := utf8.RuneCountInString(entry.Term)
		if termLen == 0 {
			continue
		}

		byteIdx := 0
		for {
			rel := strings.Index(text[byteIdx:], entry.Term)
			if rel < 0 {
				break
			}
			abs := byteIdx + rel
			start := utf8.RuneCountInString(text[:abs])
			end := start + termLen

			if !overlaps(taken, start, end) {
				for i := start; i < end; i++ {
					taken[i] = true
				}
				spans = append(spans, model.NewSpan(doc, start, end, entry.Label))
			}
			byteIdx = abs + len(entry.Term)
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans, nil
}

// BulkPredict runs Predict over each text. Matching is local, so batching
// exists only to satisfy the interface.
func (l *lexiconRecognizer) BulkPredict(ctx context.Context, texts []string, batchSize int) ([][]model.Span, error) {
	results := make([][]model.Span, len(texts))
	for i, text := range texts {
		spans, err := l.Predict(ctx, text)
		if err != nil {
			return nil, err
		}
		results[i] = spans
	}
	return results, nil
}

// overlaps reports whether any rune position in [start, end) is already taken
func overlaps(taken []bool, start, end int) bool {
	for i := start; i < end && i < len(taken); i++ {
		if taken[i] {
			return true
		}
	}
	return false
}
