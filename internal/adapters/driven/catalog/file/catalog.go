// Package file provides a catalog store backed by a JSON catalog document.
//
// The document is produced by a one-time curation step outside this
// program: a metadata block describing provenance, plus the ordered course
// list. It is parsed whole; there are no partial loads.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
	"github.com/campuslabs/advisor-cli/internal/logger"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore loads courses from a JSON catalog document.
type CatalogStore struct {
	path string
}

// catalogDocument is the on-disk catalog format.
type catalogDocument struct {
	Metadata catalogMetadata `json:"metadata"`
	Courses  []domain.Course `json:"courses"`
}

// catalogMetadata describes the catalog's provenance.
type catalogMetadata struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	CollectedAt string `json:"collected_at"`
	CourseCount int    `json:"course_count"`
}

// NewCatalogStore creates a catalog store reading from the given path.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load reads and validates the full catalog. Any missing file, parse
// failure, validation failure or duplicate course code fails the whole
// load.
func (s *CatalogStore) Load(_ context.Context) ([]domain.Course, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrCatalogLoad, s.path, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrCatalogLoad, s.path, err)
	}

	if len(doc.Courses) == 0 {
		return nil, fmt.Errorf("%w: %s contains no courses", domain.ErrCatalogLoad, s.path)
	}

	seen := make(map[string]struct{}, len(doc.Courses))
	for i := range doc.Courses {
		c := &doc.Courses[i]
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrCatalogLoad, i, err)
		}

		key := strings.ToUpper(c.Code)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrCatalogLoad, domain.ErrDuplicateCourse, c.Code)
		}
		seen[key] = struct{}{}

		if c.Source == "" {
			c.Source = doc.Metadata.Source
		}
	}

	logger.Debug("Loaded catalog %s: %d courses (source %q)", s.path, len(doc.Courses), doc.Metadata.Source)
	return doc.Courses, nil
}
