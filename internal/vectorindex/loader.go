package vectorindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/docchat/docchat/internal/indexstore"
	apperrors "github.com/docchat/docchat/internal/pkg/errors"
)

// ArtifactKey is where the index artifact for a document lives in the blob
// store, namespaced by its owner.
func ArtifactKey(ownerID, documentName string) string {
	return ownerID + "/" + documentName + "/index.json"
}

// ValidateArtifact checks raw artifact bytes the same way Load does, for
// callers that push artifacts into the store.
func ValidateArtifact(data []byte) error {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIndexCorrupt, err)
	}
	_, err := New(&artifact)
	return err
}

type Loader struct {
	store indexstore.Store
	cache *expirable.LRU[string, *Index]
}

// NewLoader wraps an index store. cacheSize 0 disables the cache; the cache
// is an optimization only, a loaded index is otherwise invocation-scoped.
func NewLoader(store indexstore.Store, cacheSize int, cacheTTL time.Duration) *Loader {
	l := &Loader{store: store}
	if cacheSize > 0 {
		l.cache = expirable.NewLRU[string, *Index](cacheSize, nil, cacheTTL)
	}
	return l
}

// Load fetches and deserializes the index artifact for one (owner, document)
// pair. A missing artifact is ErrIndexNotFound, an undecodable or
// structurally invalid one is ErrIndexCorrupt.
func (l *Loader) Load(ctx context.Context, ownerID, documentName string) (*Index, error) {
	if ownerID == "" || documentName == "" {
		return nil, fmt.Errorf("%w: owner and document name are required", apperrors.ErrInvalid)
	}
	key := ArtifactKey(ownerID, documentName)
	if l.cache != nil {
		if idx, ok := l.cache.Get(key); ok {
			return idx, nil
		}
	}

	reader, err := l.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrIndexNotFound, ownerID, documentName)
		}
		return nil, fmt.Errorf("open index artifact: %w", err)
	}
	defer reader.Close()

	var artifact Artifact
	if err := json.NewDecoder(reader).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIndexCorrupt, err)
	}
	idx, err := New(&artifact)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.Add(key, idx)
	}
	return idx, nil
}
