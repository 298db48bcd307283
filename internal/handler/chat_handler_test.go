package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/docchat/docchat/internal/middleware"
	"github.com/docchat/docchat/internal/model"
	apperrors "github.com/docchat/docchat/internal/pkg/errors"
	"github.com/docchat/docchat/internal/qa"
)

type fakeEngine struct {
	answer *model.Answer
	err    error
	input  qa.AnswerInput
	calls  int
}

func (f *fakeEngine) Answer(ctx context.Context, in qa.AnswerInput) (*model.Answer, error) {
	f.calls++
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func performChat(engine AnswerEngine, userID, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewChatHandler(engine)
	router.POST("/api/v1/conversations/:conversationid", func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		h.Chat(c)
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/s1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestChatSuccess(t *testing.T) {
	engine := &fakeEngine{answer: &model.Answer{Text: "Go to Settings > Security."}}
	recorder := performChat(engine, "u1", `{"fileName":"manual","prompt":"How do I reset my password?"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	var text string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &text))
	require.Equal(t, "Go to Settings > Security.", text)

	require.Equal(t, 1, engine.calls)
	require.Equal(t, "u1", engine.input.OwnerID)
	require.Equal(t, "manual", engine.input.DocumentName)
	require.Equal(t, "s1", engine.input.SessionID)
	require.Equal(t, "How do I reset my password?", engine.input.Question)
}

func TestChatValidation(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		body   string
	}{
		{name: "malformed body", userID: "u1", body: `{`},
		{name: "missing file name", userID: "u1", body: `{"prompt":"hi"}`},
		{name: "missing prompt", userID: "u1", body: `{"fileName":"manual"}`},
		{name: "blank prompt", userID: "u1", body: `{"fileName":"manual","prompt":"   "}`},
		{name: "no user identity", userID: "", body: `{"fileName":"manual","prompt":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{answer: &model.Answer{Text: "unused"}}
			recorder := performChat(engine, tt.userID, tt.body)

			require.Equal(t, http.StatusInternalServerError, recorder.Code)
			var envelope map[string]string
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			require.NotEmpty(t, envelope["error"])
			require.Zero(t, engine.calls)
		})
	}
}

func TestChatEngineFailuresCollapseTo500(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "index not found", err: fmt.Errorf("%w: u1/manual", apperrors.ErrIndexNotFound)},
		{name: "index corrupt", err: fmt.Errorf("%w: bad artifact", apperrors.ErrIndexCorrupt)},
		{name: "embedding service", err: fmt.Errorf("%w: quota", apperrors.ErrEmbeddingService)},
		{name: "generation service", err: fmt.Errorf("%w: overloaded", apperrors.ErrGenerationService)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := performChat(&fakeEngine{err: tt.err}, "u1", `{"fileName":"manual","prompt":"hi"}`)

			require.Equal(t, http.StatusInternalServerError, recorder.Code)
			var envelope map[string]string
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			require.Equal(t, tt.err.Error(), envelope["error"])
		})
	}
}
