package vectorindex

import (
	"errors"
	"testing"

	apperrors "github.com/docchat/docchat/internal/pkg/errors"
)

func testArtifact() *Artifact {
	return &Artifact{
		Version:   1,
		Dimension: 2,
		Chunks: []Chunk{
			{ID: "c1", Text: "alpha", Embedding: []float32{1, 0}},
			{ID: "c2", Text: "beta", Embedding: []float32{0, 1}},
			{ID: "c3", Text: "gamma", Embedding: []float32{1, 1}},
		},
	}
}

func TestNewRejectsInvalidArtifacts(t *testing.T) {
	tests := []struct {
		name     string
		artifact *Artifact
	}{
		{name: "nil artifact", artifact: nil},
		{name: "wrong version", artifact: &Artifact{Version: 2, Dimension: 2, Chunks: []Chunk{{Embedding: []float32{1, 0}}}}},
		{name: "zero dimension", artifact: &Artifact{Version: 1, Dimension: 0, Chunks: []Chunk{{}}}},
		{name: "no chunks", artifact: &Artifact{Version: 1, Dimension: 2}},
		{name: "dimension mismatch", artifact: &Artifact{Version: 1, Dimension: 3, Chunks: []Chunk{{Embedding: []float32{1, 0}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.artifact); !errors.Is(err, apperrors.ErrIndexCorrupt) {
				t.Errorf("New() error = %v, want ErrIndexCorrupt", err)
			}
		})
	}
}

func TestTopKOrdersByDescendingScore(t *testing.T) {
	idx, err := New(testArtifact())
	if err != nil {
		t.Fatal(err)
	}
	hits := idx.TopK([]float32{1, 0}, 3)
	if len(hits) != 3 {
		t.Fatalf("TopK() returned %d hits, want 3", len(hits))
	}
	if hits[0].Chunk.ID != "c1" {
		t.Errorf("best hit = %s, want c1", hits[0].Chunk.ID)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not in descending score order at %d", i)
		}
	}
}

func TestTopKStableTieBreak(t *testing.T) {
	idx, err := New(&Artifact{
		Version:   1,
		Dimension: 2,
		Chunks: []Chunk{
			{ID: "first", Embedding: []float32{1, 0}},
			{ID: "second", Embedding: []float32{2, 0}}, // same direction, same cosine
			{ID: "third", Embedding: []float32{0, 1}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	hits := idx.TopK([]float32{1, 0}, 2)
	if hits[0].Chunk.ID != "first" || hits[1].Chunk.ID != "second" {
		t.Errorf("tie not broken by insertion order: got %s, %s", hits[0].Chunk.ID, hits[1].Chunk.ID)
	}
}

func TestTopKBounds(t *testing.T) {
	idx, err := New(testArtifact())
	if err != nil {
		t.Fatal(err)
	}
	if hits := idx.TopK([]float32{1, 0}, 10); len(hits) != idx.Len() {
		t.Errorf("k beyond size returned %d hits, want %d", len(hits), idx.Len())
	}
	if hits := idx.TopK([]float32{1, 0}, 0); hits != nil {
		t.Errorf("k=0 returned %v, want nil", hits)
	}
	if hits := idx.TopK([]float32{1, 0, 0}, 2); hits != nil {
		t.Errorf("wrong query dimension returned %v, want nil", hits)
	}
}
