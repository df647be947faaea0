package category

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory CorpusStore for tests.
type memoryStore struct {
	examples  []Example
	loadErr   error
	appendErr error
	appends   int
}

func (m *memoryStore) LoadCorpus(_ context.Context) ([]Example, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]Example(nil), m.examples...), nil
}

func (m *memoryStore) AppendExample(_ context.Context, ex Example) error {
	m.appends++
	if m.appendErr != nil {
		return m.appendErr
	}
	m.examples = append(m.examples, ex)
	return nil
}

func TestEngineCategorizePaymentOverride(t *testing.T) {
	engine := NewEngine(context.Background(), &memoryStore{})

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "trailing credit marker",
			description: "INTERNET PAYMENT 113,000.00 CR",
			want:        Payment,
		},
		{
			name:        "payment and marker anywhere",
			description: "PAYMENT RECEIVED CR 12345",
			want:        Payment,
		},
		{
			name: "grocery keyword loses to trailing marker",
			// Contains a Grocery keyword but ends with CR; the override runs
			// before rule matching.
			description: "CARGILLS FOOD CITY REFUND CR",
			want:        Payment,
		},
		{
			name:        "plain grocery line",
			description: "CARGILLS FOOD CITY NO. 42 COLOMBO",
			want:        "Grocery",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Categorize(tt.description))
		})
	}
}

func TestEngineCategorizeDefaultsToOther(t *testing.T) {
	engine := NewEngine(context.Background(), &memoryStore{})
	assert.Equal(t, "Other", engine.Categorize("ZZKW 0031"))
}

func TestEngineLearnMonotonicity(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(ctx, &memoryStore{})

	// Seed enough corrections to build a classifier. All share a distinctive
	// token so the learned label sticks.
	for i := 0; i < retrainInterval; i++ {
		desc := fmt.Sprintf("QUORVEX OUTLET %02d", i)
		require.NoError(t, engine.Learn(ctx, desc, "Grocery"))
	}

	// No rule matches QUORVEX; the learned label must come back.
	assert.Equal(t, "Grocery", engine.Categorize("QUORVEX OUTLET 99"))
}

func TestEngineClassifierConsultedAfterRetrainThreshold(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(ctx, &memoryStore{})

	for i := 0; i < retrainInterval-1; i++ {
		require.NoError(t, engine.Learn(ctx, fmt.Sprintf("ZORPLEX %d", i), "Travel"))
	}
	// Nine corrections: no classifier yet, unmatched input falls to Other.
	assert.Equal(t, "Other", engine.Categorize("ZORPLEX 100"))

	require.NoError(t, engine.Learn(ctx, "ZORPLEX 9", "Travel"))
	// Tenth correction triggers the rebuild; the next call consults it.
	assert.Equal(t, "Travel", engine.Categorize("ZORPLEX 100"))
}

func TestEngineLearnPersistenceFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{appendErr: errors.New("disk full")}
	engine := NewEngine(ctx, store)

	require.NoError(t, engine.Learn(ctx, "SOMEWHERE NEW", "Shopping"))
	assert.Equal(t, 1, store.appends)
	// The in-memory corpus still grew.
	assert.Equal(t, 1, engine.CorpusSize())
}

func TestEngineLoadFailureStartsEmpty(t *testing.T) {
	store := &memoryStore{loadErr: errors.New("corrupted")}
	engine := NewEngine(context.Background(), store)

	assert.Equal(t, 0, engine.CorpusSize())
	assert.Equal(t, "Other", engine.Categorize("ZZKW 0031"))
}

func TestEngineLoadsPersistedCorpus(t *testing.T) {
	store := &memoryStore{}
	for i := 0; i < retrainInterval; i++ {
		store.examples = append(store.examples, Example{
			Description: fmt.Sprintf("VINTEX %d", i),
			Category:    "Textile",
		})
	}

	engine := NewEngine(context.Background(), store)
	assert.Equal(t, retrainInterval, engine.CorpusSize())
	// Classifier is rebuilt from the persisted corpus at startup.
	assert.Equal(t, "Textile", engine.Categorize("VINTEX 55"))
}
