package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/docchat/docchat/internal/model"
	"github.com/docchat/docchat/internal/pkg/response"
	"github.com/docchat/docchat/internal/qa"
)

type AnswerEngine interface {
	Answer(ctx context.Context, in qa.AnswerInput) (*model.Answer, error)
}

type ChatHandler struct {
	engine AnswerEngine
}

func NewChatHandler(engine AnswerEngine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

type chatRequest struct {
	FileName string `json:"fileName"`
	Prompt   string `json:"prompt"`
}

// Chat answers one question about one uploaded document. Validation and
// engine failures alike collapse to a 500 envelope with a single message;
// success returns only the answer text.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusInternalServerError, "invalid request body")
		return
	}
	conversationID := strings.TrimSpace(c.Param("conversationid"))
	userID := getUserID(c)
	req.FileName = strings.TrimSpace(req.FileName)
	req.Prompt = strings.TrimSpace(req.Prompt)
	if userID == "" || conversationID == "" || req.FileName == "" || req.Prompt == "" {
		response.Error(c, http.StatusInternalServerError, "fileName, prompt and conversation id are required")
		return
	}

	answer, err := h.engine.Answer(c.Request.Context(), qa.AnswerInput{
		OwnerID:      userID,
		DocumentName: req.FileName,
		SessionID:    conversationID,
		Question:     req.Prompt,
	})
	if err != nil {
		logutil.GetLogger(c.Request.Context()).Error("answer failed",
			zap.String("user_id", userID),
			zap.String("file_name", req.FileName),
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Answer(c, answer.Text)
}
