// Package qa orchestrates one retrieval-augmented answering invocation:
// load index, load memory, assemble the policy prompt, embed, retrieve,
// generate, persist the new turns best-effort.
package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/docchat/docchat/internal/model"
	apperrors "github.com/docchat/docchat/internal/pkg/errors"
	"github.com/docchat/docchat/internal/prompt"
	"github.com/docchat/docchat/internal/vectorindex"
)

type IndexLoader interface {
	Load(ctx context.Context, ownerID, documentName string) (*vectorindex.Index, error)
}

type SessionStore interface {
	Load(ctx context.Context, sessionID string) ([]model.Turn, error)
	Append(ctx context.Context, sessionID string, turns ...model.Turn) error
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AnswerInput struct {
	OwnerID      string
	DocumentName string
	SessionID    string
	Question     string
}

type Engine struct {
	indexes   IndexLoader
	sessions  SessionStore
	embedder  Embedder
	generator Generator
	policy    *prompt.Policy
	topK      int
	now       func() time.Time
}

func NewEngine(indexes IndexLoader, sessions SessionStore, embedder Embedder, generator Generator, policy *prompt.Policy, topK int) *Engine {
	if topK <= 0 {
		topK = 4
	}
	return &Engine{
		indexes:   indexes,
		sessions:  sessions,
		embedder:  embedder,
		generator: generator,
		policy:    policy,
		topK:      topK,
		now:       time.Now,
	}
}

// Answer runs the full pipeline for one user turn. Every failure before
// generation aborts the invocation; a memory-write failure after generation
// is logged and swallowed, the computed answer stands.
func (e *Engine) Answer(ctx context.Context, in AnswerInput) (*model.Answer, error) {
	index, err := e.indexes.Load(ctx, in.OwnerID, in.DocumentName)
	if err != nil {
		return nil, err
	}

	history, err := e.sessions.Load(ctx, in.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load conversation memory: %w", err)
	}

	assembled := e.policy.Assemble(in.Question)

	queryVector, err := e.embedder.Embed(ctx, assembled)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmbeddingService, err)
	}

	// Zero hits is not an error: the policy tells the model how to answer
	// without context.
	hits := index.TopK(queryVector, e.topK)

	sources := make([]model.ChunkRef, 0, len(hits))
	for _, hit := range hits {
		sources = append(sources, model.ChunkRef{
			ID:    hit.Chunk.ID,
			Text:  hit.Chunk.Text,
			Page:  hit.Chunk.Page,
			Score: hit.Score,
		})
	}

	text, err := e.generator.Generate(ctx, buildInput(history, hits, assembled))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGenerationService, err)
	}

	now := e.now().UnixMilli()
	err = e.sessions.Append(ctx, in.SessionID,
		model.Turn{Role: model.RoleUser, Text: in.Question, Timestamp: now},
		model.Turn{Role: model.RoleAssistant, Text: text, Timestamp: now},
	)
	if err != nil {
		logutil.GetLogger(ctx).Warn("conversation memory write failed",
			zap.String("session_id", in.SessionID),
			zap.Error(err),
		)
	}

	return &model.Answer{Text: text, Sources: sources}, nil
}

// buildInput flattens one LLM input. Ordering is fixed: history oldest
// first, then retrieved chunks by descending relevance, then the assembled
// question.
func buildInput(history []model.Turn, hits []vectorindex.Hit, assembled string) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, turn := range history {
			b.WriteString(string(turn.Role))
			b.WriteString(": ")
			b.WriteString(turn.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(hits) > 0 {
		b.WriteString("Context from the document:\n")
		for _, hit := range hits {
			b.WriteString("- ")
			b.WriteString(hit.Chunk.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(assembled)
	return b.String()
}
