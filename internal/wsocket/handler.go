package wsocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apperrors "scholar_assistant_go_backend/internal/errors"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	MessageTypeQuestion = "question"
	MessageTypeAnswer   = "answer"
	MessageTypeError    = "error"
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
)

// QuestionAnswerer answers a question from a passage or an arXiv paper id.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question, passage, paperID string) (string, error)
}

type Handler struct {
	answers       QuestionAnswerer
	upgrader      websocket.Upgrader
	answerTimeout time.Duration
}

// Message is the frame exchanged in both directions. Clients send
// question frames, the server replies with answer or error frames
// carrying the same ID.
type Message struct {
	Type     string `json:"type"`
	ID       string `json:"id,omitempty"`
	Question string `json:"question,omitempty"`
	Context  string `json:"context,omitempty"`
	PaperID  string `json:"paper_id,omitempty"`
	Content  string `json:"content,omitempty"`
}

func NewHandler(answers QuestionAnswerer, upgrader websocket.Upgrader, answerTimeout time.Duration) *Handler {
	return &Handler{
		answers:       answers,
		upgrader:      upgrader,
		answerTimeout: answerTimeout,
	}
}

// HandleWebSocket answers question frames until the client disconnects.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error upgrading connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	log.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket connection opened")
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("WebSocket closed unexpectedly")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			if err := conn.WriteJSON(Message{Type: MessageTypeError, Content: "Invalid message: " + err.Error()}); err != nil {
				return
			}
			continue
		}

		reply := h.handleMessage(ctx, msg)
		if err := conn.WriteJSON(reply); err != nil {
			log.Error().Err(err).Msg("Error writing WebSocket reply")
			return
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg Message) Message {
	switch msg.Type {
	case MessageTypePing:
		return Message{Type: MessageTypePong, ID: msg.ID}
	case MessageTypeQuestion, "":
		return h.handleQuestion(ctx, msg)
	default:
		return Message{Type: MessageTypeError, ID: msg.ID, Content: "Unknown message type: " + msg.Type}
	}
}

func (h *Handler) handleQuestion(ctx context.Context, msg Message) Message {
	if msg.Question == "" {
		return Message{Type: MessageTypeError, ID: msg.ID, Content: apperrors.NewValidationError("question").Error()}
	}
	if msg.Context == "" && msg.PaperID == "" {
		err := &apperrors.ValidationError{Field: "context", Message: "context or paper_id required"}
		return Message{Type: MessageTypeError, ID: msg.ID, Content: err.Error()}
	}

	if h.answerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.answerTimeout)
		defer cancel()
	}

	answer, err := h.answers.Answer(ctx, msg.Question, msg.Context, msg.PaperID)
	if err != nil {
		log.Error().Err(err).Str("id", msg.ID).Msg("Failed to answer question")
		return Message{Type: MessageTypeError, ID: msg.ID, Content: err.Error()}
	}
	return Message{Type: MessageTypeAnswer, ID: msg.ID, Content: answer}
}
