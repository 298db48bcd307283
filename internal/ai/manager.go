package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type ManagerConfig struct {
	Model         string
	EmbedModel    string
	Timeout       int
	MaxInputChars int
}

// Manager binds providers to their configured model names and applies the
// transport-boundary timeout around every provider call.
type Manager struct {
	generator IGenerateProvider
	embedder  IEmbedProvider
	cfg       ManagerConfig
}

func NewManager(generator IGenerateProvider, embedder IEmbedProvider, cfg ManagerConfig) *Manager {
	return &Manager{
		generator: generator,
		embedder:  embedder,
		cfg:       cfg,
	}
}

func (m *Manager) Generate(ctx context.Context, prompt string) (string, error) {
	if m.generator == nil {
		return "", ErrUnavailable
	}
	if m.cfg.MaxInputChars > 0 && len(prompt) > m.cfg.MaxInputChars {
		return "", fmt.Errorf("input too long: %d chars, limit %d", len(prompt), m.cfg.MaxInputChars)
	}
	ctx, cancel := m.bound(ctx)
	defer cancel()
	resp, err := m.generator.Generate(ctx, m.cfg.Model, prompt)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp)
	if text == "" {
		return "", fmt.Errorf("empty ai response")
	}
	return text, nil
}

func (m *Manager) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedder == nil {
		return nil, ErrUnavailable
	}
	ctx, cancel := m.bound(ctx)
	defer cancel()
	vec, err := m.embedder.Embed(ctx, m.cfg.EmbedModel, text)
	if err != nil {
		return nil, err
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return vec, nil
}

func (m *Manager) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, time.Duration(m.cfg.Timeout)*time.Second)
	}
	return ctx, func() {}
}
