package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `time,latitude,longitude,depth,mag,magType,place
2011-03-11T05:46:24.120Z,38.297,142.373,29.0,9.1,mww,"2011 Great Tohoku Earthquake, Japan"
2024-04-26T15:10:00Z,34.05,-118.25,12.3,4.2,ml,"Los Angeles, CA"
2024-04-26T16:00:00Z,35.68,139.65,40.0,7.3,mw,"Tokyo, Japan"
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)

	result, err := Load(path, 7.0, slog.Default())
	require.NoError(t, err)

	require.Len(t, result.Full, 3)
	assert.Zero(t, result.Skipped)

	// IDs are ordinal in file order.
	assert.Equal(t, []int{0, 1, 2}, result.Full.IDs())
	assert.Equal(t, 38.297, result.Full[0].Geo.Lat)
	assert.Equal(t, "Los Angeles, CA", result.Full[1].Place)
	assert.Equal(t, 12.3, result.Full[1].Depth)

	// Summary keeps full-set IDs.
	assert.Equal(t, []int{0, 2}, result.Summary.IDs())
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	catalog := `time,latitude,longitude,depth,mag,place
2024-04-26T15:10:00Z,34.05,-118.25,12.3,4.2,ok
yesterday,34.05,-118.25,12.3,4.2,bad time
2024-04-26T16:00:00Z,not-a-number,-118.25,12.3,4.2,bad lat
2024-04-26T17:00:00Z,34.10,-118.20,10.0,5.0,ok
`
	path := writeCatalog(t, catalog)

	result, err := Load(path, 7.0, slog.Default())
	require.NoError(t, err)

	require.Len(t, result.Full, 2)
	assert.Equal(t, 2, result.Skipped)
	// Surviving rows get dense ordinal IDs.
	assert.Equal(t, []int{0, 1}, result.Full.IDs())
	assert.Equal(t, "ok", result.Full[1].Place)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	path := writeCatalog(t, "time,latitude,longitude\n2024-04-26T15:10:00Z,34.0,-118.0\n")

	_, err := Load(path, 7.0, slog.Default())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "mag"`)
}

func TestLoad_OptionalColumnsAbsent(t *testing.T) {
	path := writeCatalog(t, "time,latitude,longitude,mag\n2024-04-26T15:10:00Z,34.0,-118.0,5.1\n")

	result, err := Load(path, 7.0, slog.Default())
	require.NoError(t, err)

	require.Len(t, result.Full, 1)
	assert.Empty(t, result.Full[0].Place)
	assert.Zero(t, result.Full[0].Depth)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), 7.0, slog.Default())
	require.Error(t, err)
}
