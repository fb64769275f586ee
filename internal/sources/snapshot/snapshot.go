// Package snapshot loads the registry documents bundled into the binary.
// A bundled document that fails validation is a configuration error: there
// is nothing further to fall back to.
package snapshot

import (
	"encoding/json"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/internal/embedded"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// Source supplies the last-known-good documents.
type Source struct {
	fsys      fs.FS
	validator *validation.Validator
	logger    *zerolog.Logger

	registry func() (*catalogs.Registry, error)
	stores   func() (*catalogs.StoresDocument, error)
	taxonomy func() (catalogs.Taxonomy, error)
}

// Option configures a Source.
type Option func(*Source)

// WithFS reads documents from fsys instead of the embedded files. The paths
// in package embedded are used as-is.
func WithFS(fsys fs.FS) Option {
	return func(s *Source) { s.fsys = fsys }
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Source) { s.logger = logger }
}

// New creates a snapshot source. Documents are read and validated once, on first use.
func New(v *validation.Validator, opts ...Option) *Source {
	s := &Source{fsys: embedded.FS, validator: v}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Named(s.logger, "snapshot")

	s.registry = sync.OnceValues(func() (*catalogs.Registry, error) {
		var reg catalogs.Registry
		if err := s.load(embedded.RegistryPath, validation.KindRegistry, &reg); err != nil {
			return nil, err
		}
		return &reg, nil
	})
	s.stores = sync.OnceValues(func() (*catalogs.StoresDocument, error) {
		var doc catalogs.StoresDocument
		if err := s.load(embedded.StoresPath, validation.KindStores, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	})
	s.taxonomy = sync.OnceValues(func() (catalogs.Taxonomy, error) {
		data, err := fs.ReadFile(s.fsys, embedded.TaxonomyPath)
		if err != nil {
			return nil, errors.NewConfigError("snapshot", "reading "+embedded.TaxonomyPath, err)
		}
		var tax catalogs.Taxonomy
		if err := json.Unmarshal(data, &tax); err != nil {
			return nil, errors.NewConfigError("snapshot", "decoding "+embedded.TaxonomyPath, err)
		}
		return tax, nil
	})
	return s
}

// Registry returns a copy of the bundled registry.
func (s *Source) Registry() (*catalogs.Registry, error) {
	reg, err := s.registry()
	if err != nil {
		return nil, err
	}
	return reg.Copy(), nil
}

// Stores returns a copy of the bundled store list.
func (s *Source) Stores() (*catalogs.StoresDocument, error) {
	doc, err := s.stores()
	if err != nil {
		return nil, err
	}
	return doc.Copy(), nil
}

// Taxonomy returns a copy of the bundled category taxonomy.
func (s *Source) Taxonomy() (catalogs.Taxonomy, error) {
	tax, err := s.taxonomy()
	if err != nil {
		return nil, err
	}
	return tax.Copy(), nil
}

func (s *Source) load(path string, kind validation.Kind, target any) error {
	data, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return errors.NewConfigError("snapshot", "reading "+path, err)
	}

	res, err := s.validator.Validate(kind, data)
	if err != nil {
		return errors.NewConfigError("snapshot", path+" is not valid JSON", err)
	}
	if !res.Valid {
		s.logger.Error().Str("path", path).Strs("duplicates", res.Duplicates).
			Str("diagnostics", res.Diagnostics.String()).Msg("bundled snapshot is invalid")
		return errors.NewConfigError("snapshot", path+" is invalid", res.Err())
	}

	if err := json.Unmarshal(data, target); err != nil {
		return errors.NewConfigError("snapshot", "decoding "+path, err)
	}
	s.logger.Debug().Str("path", path).Msg("loaded bundled snapshot")
	return nil
}
