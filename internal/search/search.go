// Package search maintains an in-memory full-text index over registry
// entries. Free-text search prefix-matches any query term against the name,
// description, identifier and tags. Identifier search prefix-matches every
// query term against the identifier alone.
package search

import (
	"regexp"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	bleveregexp "github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// Indexed field names.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldDappID      = "dappId"
	FieldTags        = "tags"
)

// TextFields are the fields free-text search looks at.
var TextFields = []string{FieldName, FieldDescription, FieldDappID, FieldTags}

const (
	tokenizerName = "dapp_terms"
	analyzerName  = "dapp_text"
	termPattern   = `[\p{L}\p{N}]+`
)

var termRE = regexp.MustCompile(termPattern)

// Index is a rebuildable search index. It is safe for concurrent use.
type Index struct {
	logger *zerolog.Logger

	mu      sync.RWMutex
	idx     bleve.Index
	entries map[string]catalogs.Dapp
}

// New creates an empty index. Build must be called before searching.
func New(logger *zerolog.Logger) *Index {
	return &Index{logger: logging.Named(logger, "search")}
}

// Build replaces the index contents with entries.
func (x *Index) Build(entries []catalogs.Dapp) error {
	m, err := newMapping()
	if err != nil {
		return errors.WrapResource("create", "index mapping", "", err)
	}
	idx, err := bleve.NewMemOnly(m)
	if err != nil {
		return errors.WrapResource("create", "index", "", err)
	}

	docs := make(map[string]catalogs.Dapp, len(entries))
	batch := idx.NewBatch()
	for _, d := range entries {
		docs[d.DappID] = d.Clone()
		doc := map[string]any{
			FieldName:        d.Name,
			FieldDescription: d.Description,
			FieldDappID:      d.DappID,
		}
		if len(d.Tags) > 0 {
			doc[FieldTags] = d.Tags
		}
		if err := batch.Index(d.DappID, doc); err != nil {
			_ = idx.Close()
			return errors.WrapResource("index", "dApp", d.DappID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return errors.WrapResource("index", "batch", "", err)
	}

	x.mu.Lock()
	old := x.idx
	x.idx, x.entries = idx, docs
	x.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	x.logger.Debug().Int("entries", len(docs)).Msg("search index built")
	return nil
}

// Built reports whether Build has succeeded at least once.
func (x *Index) Built() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.idx != nil
}

// Len returns the number of indexed entries.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Search returns entries where any query term prefixes a term in any text
// field, best match first.
func (x *Index) Search(text string) ([]catalogs.Dapp, error) {
	terms := Terms(text)
	if len(terms) == 0 {
		return []catalogs.Dapp{}, nil
	}

	var disjuncts []query.Query
	for _, term := range terms {
		for _, field := range TextFields {
			disjuncts = append(disjuncts, prefix(term, field))
		}
	}
	return x.run(bleve.NewDisjunctionQuery(disjuncts...))
}

// SearchByID returns entries whose identifier matches every query term.
// Matches in other fields do not count.
func (x *Index) SearchByID(text string) ([]catalogs.Dapp, error) {
	terms := Terms(text)
	if len(terms) == 0 {
		return []catalogs.Dapp{}, nil
	}

	conjuncts := make([]query.Query, len(terms))
	for i, term := range terms {
		conjuncts[i] = prefix(term, FieldDappID)
	}
	return x.run(bleve.NewConjunctionQuery(conjuncts...))
}

// Close releases the index.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.idx == nil {
		return nil
	}
	err := x.idx.Close()
	x.idx, x.entries = nil, nil
	return err
}

func (x *Index) run(q query.Query) ([]catalogs.Dapp, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.idx == nil {
		return nil, errors.ErrNotInitialized
	}
	if len(x.entries) == 0 {
		return []catalogs.Dapp{}, nil
	}

	req := bleve.NewSearchRequestOptions(q, len(x.entries), 0, false)
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, errors.WrapResource("search", "index", "", err)
	}

	out := make([]catalogs.Dapp, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if d, ok := x.entries[hit.ID]; ok {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

// Terms splits text into the lowercased terms the index stores.
func Terms(text string) []string {
	return termRE.FindAllString(strings.ToLower(text), -1)
}

func prefix(term, field string) query.Query {
	q := bleve.NewPrefixQuery(term)
	q.SetField(field)
	return q
}

func newMapping() (*mapping.IndexMappingImpl, error) {
	m := bleve.NewIndexMapping()
	if err := m.AddCustomTokenizer(tokenizerName, map[string]any{
		"type":   bleveregexp.Name,
		"regexp": termPattern,
	}); err != nil {
		return nil, err
	}
	if err := m.AddCustomAnalyzer(analyzerName, map[string]any{
		"type":          custom.Name,
		"tokenizer":     tokenizerName,
		"token_filters": []string{lowercase.Name},
	}); err != nil {
		return nil, err
	}
	m.DefaultAnalyzer = analyzerName
	return m, nil
}
