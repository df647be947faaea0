package category

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ruvan/cardledger/internal/common"
	"github.com/ruvan/cardledger/internal/model"
)

const (
	// creditMarker is the statement suffix flagging credits.
	creditMarker = "CR"

	// retrainInterval is how many corrections accumulate between classifier
	// rebuilds. Rebuilding on every correction is wasteful once the corpus
	// grows; a fixed interval bounds staleness to at most nine corrections.
	retrainInterval = 10
)

// Example pairs a transaction description with its corrected category. The
// corpus is append-only; repeated corrections are kept and reinforce a label.
type Example struct {
	Description string
	Category    string
}

// CorpusStore persists the training corpus across restarts.
// Implementations must tolerate "not yet created" as an empty corpus.
type CorpusStore interface {
	LoadCorpus(ctx context.Context) ([]Example, error)
	AppendExample(ctx context.Context, ex Example) error
}

// Engine assigns categories to transaction descriptions: a payment override
// first, then the keyword rule table, then the trained classifier, then the
// default. One Engine instance backs one persisted corpus.
type Engine struct {
	store  CorpusStore
	clf    *classifier
	rules  []Rule
	corpus []Example
	mu     sync.RWMutex
}

// NewEngine creates an engine backed by the given corpus store. A corpus that
// cannot be loaded degrades to an empty one rather than failing startup; the
// learned corrections are lost but rule matching still works.
func NewEngine(ctx context.Context, store CorpusStore) *Engine {
	e := &Engine{
		store: store,
		rules: DefaultRules(),
	}

	corpus, err := store.LoadCorpus(ctx)
	if err != nil {
		common.LogError(err, "failed to load training corpus, starting empty", nil)
		return e
	}
	e.corpus = corpus

	if len(e.corpus) >= retrainInterval {
		e.rebuildLocked()
	}
	slog.Debug("categorization engine ready", "corpus_size", len(e.corpus))
	return e
}

// Categorize returns the category for a transaction description. It never
// fails; descriptions nothing claims come back as "Other".
func (e *Engine) Categorize(description string) string {
	// Credit card bill payments are checked before the rule table because a
	// payment description can spuriously match an unrelated keyword.
	if isPayment(description) {
		return Payment
	}

	if cat := matchRules(e.rules, description); cat != "" {
		return cat
	}

	e.mu.RLock()
	clf := e.clf
	e.mu.RUnlock()
	if clf != nil {
		if cat, err := clf.predict(description); err == nil {
			return cat
		}
	}

	return model.CategoryOther
}

// Learn records a user correction. The pair is appended to the corpus
// unconditionally (it is trusted ground truth), persisted best-effort, and
// the classifier is rebuilt whenever the corpus size crosses a multiple of
// the retrain interval.
func (e *Engine) Learn(ctx context.Context, description, category string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex := Example{Description: description, Category: category}
	e.corpus = append(e.corpus, ex)

	if err := e.store.AppendExample(ctx, ex); err != nil {
		// The in-memory corpus is authoritative for this process; losing
		// durability must not fail the correction.
		common.LogError(err, "failed to persist training example", common.Fields{
			"category": category,
		})
	}

	if len(e.corpus)%retrainInterval == 0 {
		e.rebuildLocked()
	}
	return nil
}

// CorpusSize reports how many corrections the engine has accumulated.
func (e *Engine) CorpusSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.corpus)
}

// rebuildLocked retrains the classifier from the current corpus. Callers must
// hold the write lock (or have exclusive access during construction). A
// failed rebuild keeps the previous classifier.
func (e *Engine) rebuildLocked() {
	clf, err := trainClassifier(e.corpus)
	if err != nil {
		common.LogError(err, "classifier rebuild failed, keeping previous model", common.Fields{
			"corpus_size": len(e.corpus),
		})
		return
	}
	e.clf = clf
	slog.Debug("classifier rebuilt", "corpus_size", len(e.corpus))
}

// isPayment reproduces the statement's credit/payment detection: a trimmed
// description ending with the credit marker, or one containing both "PAYMENT"
// and the marker anywhere. Deliberately permissive; see DESIGN.md.
func isPayment(description string) bool {
	if strings.HasSuffix(strings.TrimSpace(description), creditMarker) {
		return true
	}
	return strings.Contains(description, "PAYMENT") && strings.Contains(description, creditMarker)
}
