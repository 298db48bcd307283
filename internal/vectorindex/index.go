// Package vectorindex loads a document's precomputed semantic index from
// blob storage into a queryable in-memory similarity index. The index is
// scoped to one (owner, document) pair and lives for a single invocation
// unless the optional loader cache is enabled.
package vectorindex

import (
	"fmt"
	"math"
	"sort"

	apperrors "github.com/docchat/docchat/internal/pkg/errors"
)

const artifactVersion = 1

// Chunk is a contiguous span of source-document text stored with its
// embedding vector.
type Chunk struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Page      int       `json:"page,omitempty"`
	Embedding []float32 `json:"embedding"`
}

// Artifact is the on-store index format produced by the external ingestion
// process. Only structural integrity is validated here.
type Artifact struct {
	Version   int     `json:"version"`
	Dimension int     `json:"dimension"`
	Chunks    []Chunk `json:"chunks"`
}

type Index struct {
	dimension int
	chunks    []Chunk
}

type Hit struct {
	Chunk Chunk
	Score float64
}

// New builds a queryable index from an artifact, rejecting structurally
// invalid ones with ErrIndexCorrupt.
func New(a *Artifact) (*Index, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: empty artifact", apperrors.ErrIndexCorrupt)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: unsupported artifact version %d", apperrors.ErrIndexCorrupt, a.Version)
	}
	if a.Dimension <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimension", apperrors.ErrIndexCorrupt)
	}
	if len(a.Chunks) == 0 {
		return nil, fmt.Errorf("%w: artifact has no chunks", apperrors.ErrIndexCorrupt)
	}
	for i, chunk := range a.Chunks {
		if len(chunk.Embedding) != a.Dimension {
			return nil, fmt.Errorf("%w: chunk %d embedding has %d values, want %d",
				apperrors.ErrIndexCorrupt, i, len(chunk.Embedding), a.Dimension)
		}
	}
	return &Index{dimension: a.Dimension, chunks: a.Chunks}, nil
}

func (idx *Index) Len() int {
	return len(idx.chunks)
}

func (idx *Index) Dimension() int {
	return idx.dimension
}

// TopK returns up to k chunks ordered by descending cosine similarity to the
// query vector. Ties keep chunk insertion order, so results are
// deterministic for a given artifact.
func (idx *Index) TopK(query []float32, k int) []Hit {
	if k <= 0 || len(query) != idx.dimension {
		return nil
	}
	hits := make([]Hit, 0, len(idx.chunks))
	for _, chunk := range idx.chunks {
		hits = append(hits, Hit{Chunk: chunk, Score: cosineSimilarity(query, chunk.Embedding)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
