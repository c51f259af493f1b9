package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prepwise/prepwise-backend/internal/services"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

type WSHandler struct {
	interviews services.InterviewService
	feedback   services.FeedbackService
	upgrader   websocket.Upgrader
}

func NewWSHandler(interviews services.InterviewService, feedback services.FeedbackService) *WSHandler {
	return &WSHandler{
		interviews: interviews,
		feedback:   feedback,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type   string `json:"type"`
	Answer string `json:"answer"`
}

type wsServerMsg struct {
	Type               string `json:"type"`
	Question           string `json:"question,omitempty"`
	MainQuestionNumber int    `json:"main_question_number,omitempty"`
	FollowUpQuestion   string `json:"follow_up_question,omitempty"`
	Feedback           any    `json:"feedback,omitempty"`
	Code               string `json:"code,omitempty"`
	Message            string `json:"message,omitempty"`
	AnswerRecorded     *bool  `json:"answer_recorded,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v wsServerMsg) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) writeError(err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		_ = w.writeJSON(wsServerMsg{Type: "error", Code: string(appErr.Code), Message: appErr.Message})
		return
	}
	_ = w.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInternal), Message: "internal error"})
}

// InterviewWS drives a full interview over one socket. The client pulls
// questions with {"type":"next_question"}, commits answers with
// {"type":"answer","answer":"..."} and asks for the evaluation with
// {"type":"feedback"} once all five main questions are done.
func (h *WSHandler) InterviewWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")
	if sessionID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.InterviewWS", "missing session_id", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInvalidArgument), Message: "invalid json"})
			continue
		}

		switch msg.Type {
		case "next_question":
			res, err := h.interviews.NextQuestion(ctx, userID, sessionID)
			if err != nil {
				wc.writeError(err)
				continue
			}
			if res.Completed {
				_ = wc.writeJSON(wsServerMsg{Type: "completed", Message: "Interview completed"})
				continue
			}
			_ = wc.writeJSON(wsServerMsg{
				Type:               "question",
				Question:           res.Question,
				MainQuestionNumber: res.MainQuestionNumber,
			})

		case "answer":
			if msg.Answer == "" {
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInvalidArgument), Message: "answer is required"})
				continue
			}
			res, err := h.interviews.SubmitAnswer(ctx, userID, sessionID, msg.Answer)
			if err != nil {
				wc.writeError(err)
				continue
			}
			recorded := res.AnswerRecorded
			if res.FollowUpAlreadyAsked {
				_ = wc.writeJSON(wsServerMsg{Type: "answer_ack", Message: "Follow-up already asked", AnswerRecorded: &recorded})
				continue
			}
			_ = wc.writeJSON(wsServerMsg{
				Type:             "follow_up",
				FollowUpQuestion: res.FollowUpQuestion,
				AnswerRecorded:   &recorded,
			})

		case "feedback":
			report, err := h.feedback.Generate(ctx, userID, sessionID)
			if err != nil {
				wc.writeError(err)
				continue
			}
			_ = wc.writeJSON(wsServerMsg{Type: "feedback", Feedback: report})

		case "end":
			return

		default:
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInvalidArgument), Message: "unknown message type"})
		}
	}
}
