package pipeline

import (
	"github.com/hiresift/hiresift/internal/models"
)

// maxShards caps the number of parallel shard branches independently of
// corpus size; per-shard work scales with the corpus instead.
const maxShards = 10

// Batch is one contiguous slice of the document-key list, processed as a
// unit through the three pipeline stages.
type Batch struct {
	ID   int
	Keys []string
	Reqs *models.HiringRequirements
}

// Shard splits the ordered key list into at most maxShards contiguous,
// non-empty batches with 1-based ids. N=0 yields zero batches. Every key
// lands in exactly one batch, in the original order.
func Shard(keys []string, reqs *models.HiringRequirements) []Batch {
	total := len(keys)
	if total == 0 {
		return nil
	}

	numChunks := maxShards
	if total < numChunks {
		numChunks = total
	}
	chunkSize := (total + numChunks - 1) / numChunks

	batches := make([]Batch, 0, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * chunkSize
		if start >= total {
			break
		}
		end := start + chunkSize
		if end > total {
			end = total
		}
		batches = append(batches, Batch{
			ID:   len(batches) + 1,
			Keys: keys[start:end],
			Reqs: reqs,
		})
	}
	return batches
}
