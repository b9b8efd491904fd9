package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bibliomine/bibliomine/internal/model"
)

// resultCache memoizes ranked rule slices keyed by the (dataset, params)
// tuple, evicting least-recently-used entries once full.
type resultCache struct {
	entries *lru.Cache[string, []model.AssociationRule]
}

func newResultCache(size int) (*resultCache, error) {
	if size < 1 {
		size = 1
	}
	entries, err := lru.New[string, []model.AssociationRule](size)
	if err != nil {
		return nil, err
	}
	return &resultCache{entries: entries}, nil
}

// get returns a copy of the cached slice so callers cannot mutate the cached
// result.
func (c *resultCache) get(key string) ([]model.AssociationRule, bool) {
	ranked, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	out := make([]model.AssociationRule, len(ranked))
	copy(out, ranked)
	return out, true
}

func (c *resultCache) put(key string, ranked []model.AssociationRule) {
	stored := make([]model.AssociationRule, len(ranked))
	copy(stored, ranked)
	c.entries.Add(key, stored)
}

// cacheKey fingerprints the event stream and the mining parameters. Any
// change to the loaded data or the thresholds produces a different key.
func cacheKey(events []model.Event, params Params) string {
	h := sha256.New()
	for _, ev := range events {
		_, _ = io.WriteString(h, ev.UserID)
		h.Write([]byte{0})
		_, _ = io.WriteString(h, ev.BookID)
		h.Write([]byte{0})
		_, _ = io.WriteString(h, string(ev.Action))
		h.Write([]byte{0})
		_ = binary.Write(h, binary.LittleEndian, ev.BorrowedAt.Unix())
	}
	_, _ = fmt.Fprintf(h, "|%s|%v|%v|%v", params.Algorithm, params.MinSupport, params.MinConfidence, params.MinLift)
	return fmt.Sprintf("%x", h.Sum(nil))
}
