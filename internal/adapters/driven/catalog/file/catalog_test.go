package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

const validCatalog = `{
  "metadata": {
    "source": "UBC Academic Calendar",
    "url": "https://vancouver.calendar.ubc.ca/course-descriptions",
    "collected_at": "2025-11-02",
    "course_count": 2
  },
  "courses": [
    {
      "course_code": "CPSC 340",
      "title": "Machine Learning and Data Mining",
      "description": "Models of algorithms for dimensionality reduction, nonlinear regression, classification.",
      "prerequisites": "CPSC 221 and one of MATH 152, MATH 221, MATH 223.",
      "credits": 3,
      "department": "Computer Science",
      "level": "Third Year"
    },
    {
      "course_code": "STAT 200",
      "title": "Elementary Statistics for Applications",
      "description": "Classical, nonparametric, and robust inference.",
      "prerequisites": "One of MATH 101, MATH 103, MATH 105.",
      "credits": 3,
      "department": "Statistics",
      "level": "Second Year"
    }
  ]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalogStore_Load(t *testing.T) {
	store := NewCatalogStore(writeCatalog(t, validCatalog))

	courses, err := store.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CPSC 340", courses[0].Code)
	assert.Equal(t, "STAT 200", courses[1].Code)
	// Record-level source falls back to the catalog metadata source.
	assert.Equal(t, "UBC Academic Calendar", courses[0].Source)
}

func TestCatalogStore_Load_MissingFile(t *testing.T) {
	store := NewCatalogStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}

func TestCatalogStore_Load_MalformedJSON(t *testing.T) {
	store := NewCatalogStore(writeCatalog(t, `{"courses": [`))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}

func TestCatalogStore_Load_EmptyCatalog(t *testing.T) {
	store := NewCatalogStore(writeCatalog(t, `{"metadata": {}, "courses": []}`))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}

func TestCatalogStore_Load_InvalidRecordFailsWholeLoad(t *testing.T) {
	store := NewCatalogStore(writeCatalog(t, `{
  "courses": [
    {"course_code": "CPSC 110", "title": "Computation", "description": "Fundamental program and computation structures.", "credits": 4, "department": "Computer Science", "level": "First Year"},
    {"course_code": "CPSC 999", "title": "", "description": "x", "credits": 3, "department": "Computer Science", "level": "First Year"}
  ]
}`))

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
	assert.ErrorIs(t, err, domain.ErrInvalidCourse)
}

func TestCatalogStore_Load_DuplicateCodesRejected(t *testing.T) {
	store := NewCatalogStore(writeCatalog(t, `{
  "courses": [
    {"course_code": "CPSC 110", "title": "Computation", "description": "d", "credits": 4, "department": "Computer Science", "level": "First Year"},
    {"course_code": "cpsc 110", "title": "Computation Again", "description": "d", "credits": 4, "department": "Computer Science", "level": "First Year"}
  ]
}`))

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
	assert.ErrorIs(t, err, domain.ErrDuplicateCourse)
}

func TestCatalogStore_Load_NonPositiveCreditsRejected(t *testing.T) {
	store := NewCatalogStore(writeCatalog(t, `{
  "courses": [
    {"course_code": "CPSC 110", "title": "Computation", "description": "d", "credits": 0, "department": "Computer Science", "level": "First Year"}
  ]
}`))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}
