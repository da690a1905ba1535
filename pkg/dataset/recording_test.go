package dataset

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"sync"

	"github.com/xob0t/textsynth/pkg/generator"
)

// recordingSource records the first draw of each per-index generator.
type recordingSource struct {
	fakeSource
	mu    sync.Mutex
	draws map[int]uint64
}

func (r *recordingSource) Generate(rng *rand.Rand, index int) (*generator.Sample, error) {
	v := rng.Uint64()
	r.mu.Lock()
	if r.draws == nil {
		r.draws = make(map[int]uint64)
	}
	r.draws[index] = v
	r.mu.Unlock()
	return r.fakeSource.Generate(rng, index)
}

func (r *recordingSource) sorted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.draws))
	for i, v := range r.draws {
		out = append(out, strconv.Itoa(i)+":"+strconv.FormatUint(v, 10))
	}
	sort.Strings(out)
	return out
}
