package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruvan/cardledger/internal/common"
	"github.com/ruvan/cardledger/internal/model"
	"github.com/ruvan/cardledger/internal/parser"
)

type ruleOnlyCategorizer struct{}

func (ruleOnlyCategorizer) Categorize(description string) string {
	if description == "CARGILLS FOOD CITY NO. 42 COLOMBO" {
		return "Grocery"
	}
	return "Other"
}

type captureStore struct {
	saved   *model.Statement
	saveErr error
}

func (c *captureStore) SaveStatement(_ context.Context, st *model.Statement) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saved = st
	return nil
}

const statementText = "POST DATE INV. DATE DESCRIPTION/REFERENCE NUMBER AMOUNT\n" +
	"10/02/2025 08/02/2025 CARGILLS FOOD CITY NO. 42 COLOMBO 1,250.75\n" +
	"15/02/2025 14/02/2025 UNKNOWN MERCHANT 42.00\n"

func writeStatement(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(statementText), 0o600))
	return path
}

func newTestImporter(store StatementStore) *Importer {
	im := NewImporter(parser.New(), ruleOnlyCategorizer{}, store)
	im.now = func() time.Time {
		return time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	}
	return im
}

func TestImportFile(t *testing.T) {
	store := &captureStore{}
	im := newTestImporter(store)

	st, err := im.ImportFile(context.Background(), writeStatement(t, "February 2025.txt"))
	require.NoError(t, err)
	require.NotNil(t, store.saved)
	assert.Equal(t, st, store.saved)

	assert.Equal(t, "February 2025.txt", st.Filename)
	assert.Equal(t, 2, st.Month)
	assert.Equal(t, 2025, st.Year)
	require.Len(t, st.Transactions, 2)
	assert.Equal(t, "Grocery", st.Transactions[0].Category)
	assert.Equal(t, "Other", st.Transactions[1].Category)
}

func TestImportFileFilenameFallback(t *testing.T) {
	store := &captureStore{}
	im := newTestImporter(store)

	st, err := im.ImportFile(context.Background(), writeStatement(t, "scan.txt"))
	require.NoError(t, err)
	// Advisory label falls back to the (injected) current date.
	assert.Equal(t, 8, st.Month)
	assert.Equal(t, 2026, st.Year)
}

func TestImportFileUnrecognizedLayout(t *testing.T) {
	store := &captureStore{}
	im := newTestImporter(store)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("shopping list\nmilk\neggs"), 0o600))

	_, err := im.ImportFile(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrNoTransactions)
	assert.Nil(t, store.saved)
}

func TestImportFileStoreFailure(t *testing.T) {
	store := &captureStore{saveErr: errors.New("disk full")}
	im := newTestImporter(store)

	_, err := im.ImportFile(context.Background(), writeStatement(t, "February 2025.txt"))
	assert.Error(t, err)
}
