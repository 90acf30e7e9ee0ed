package dictionary

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source produces a complete Index. Loader is the production Source.
type Source interface {
	Load(ctx context.Context) (*Index, error)
}

// Holder serves queries from the current Index and swaps in a new one on
// Reload. Readers see either the old or the new index, never a mix.
type Holder struct {
	current atomic.Pointer[Index]
	source  Source
	group   singleflight.Group
	logger  *zap.Logger
}

func NewHolder(src Source, logger *zap.Logger) *Holder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Holder{source: src, logger: logger}
}

// Reload loads a new index from the source and publishes it. Concurrent
// callers share one load. On failure the previous index stays in place.
func (h *Holder) Reload(ctx context.Context) (Stats, error) {
	v, err, shared := h.group.Do("reload", func() (any, error) {
		idx, err := h.source.Load(ctx)
		if err != nil {
			return nil, err
		}
		h.current.Store(idx)
		return idx.Stats(), nil
	})
	if err != nil {
		h.logger.Warn("dictionary reload failed", zap.Error(err))
		return Stats{}, err
	}
	stats := v.(Stats)
	h.logger.Info("dictionary loaded",
		zap.Int("words", stats.Words),
		zap.Int("fragments", stats.Fragments),
		zap.Bool("shared", shared),
	)
	return stats, nil
}

// Swap publishes idx directly. Useful when the index was built elsewhere.
func (h *Holder) Swap(idx *Index) { h.current.Store(idx) }

func (h *Holder) IsValid(word string) bool { return h.current.Load().IsValid(word) }

func (h *Holder) RandomFragment(minWords int) (string, error) {
	return h.current.Load().RandomFragment(minWords)
}

func (h *Holder) Stats() Stats { return h.current.Load().Stats() }
