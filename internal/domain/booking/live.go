package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/tidyhome/tidyhome-api/internal/pkg/logger"
	"github.com/tidyhome/tidyhome-api/internal/pkg/response"
	"github.com/tidyhome/tidyhome-api/internal/pkg/validator"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Live message types. Any other type is run as a Command (next, back,
// hours_increment, hours_decrement).
const (
	LiveGet       = "get"
	LiveService   = "service"
	LiveSchedule  = "schedule"
	LivePayment   = "payment"
	LiveSubmit    = "submit"
	LiveView      = "view"
	LiveConfirmed = "confirmed"
	LiveError     = "error"
)

// LiveMessage is the frame exchanged on the live channel.
type LiveMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type liveReply struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if len(allowedOrigins) == 0 || origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || origin == allowed {
					return true
				}
			}

			logger.LogWarn(r.Context(), "WebSocket origin rejected", "origin", origin)
			return false
		},
	}
}

// Live handles WS /bookings/sessions/{id}/live. Every command is answered with
// the recomputed view or an error frame.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.Get(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogError(r.Context(), err, "WebSocket upgrade failed", "session_id", id)
		return
	}

	ctx := logger.WithContext(context.Background(), logger.FromContext(r.Context()))
	s := &liveSession{handler: h, conn: conn, sessionID: id, done: make(chan struct{})}
	go s.ping()
	s.read(ctx)
}

type liveSession struct {
	handler   *Handler
	conn      *websocket.Conn
	sessionID string
	writeMu   sync.Mutex
	done      chan struct{}
}

func (s *liveSession) read(ctx context.Context) {
	defer func() {
		close(s.done)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.LogError(ctx, err, "WebSocket read error", "session_id", s.sessionID)
			}
			return
		}

		var msg LiveMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.write(liveReply{Type: LiveError, Data: response.ErrorInfo{Code: "BAD_REQUEST", Message: "Invalid JSON message"}})
			continue
		}

		reply := s.handle(ctx, msg)
		if err := s.write(reply); err != nil {
			return
		}
		if reply.Type == LiveConfirmed {
			s.closeNormally()
			return
		}
	}
}

func (s *liveSession) handle(ctx context.Context, msg LiveMessage) liveReply {
	svc := s.handler.service

	var (
		view *View
		err  error
	)
	switch msg.Type {
	case LiveGet:
		view, err = svc.Get(ctx, s.sessionID)
	case LiveService:
		var p ServiceDetailsPatch
		if err = decodeLive(msg.Data, &p); err == nil {
			view, err = svc.ApplyServiceDetails(ctx, s.sessionID, p)
		}
	case LiveSchedule:
		var p SchedulePatch
		if err = decodeLive(msg.Data, &p); err == nil {
			view, err = svc.ApplySchedule(ctx, s.sessionID, p)
		}
	case LivePayment:
		var p PaymentPatch
		if err = decodeLive(msg.Data, &p); err == nil {
			view, err = svc.ApplyPayment(ctx, s.sessionID, p)
		}
	case LiveSubmit:
		booking, submitErr := svc.Submit(ctx, s.sessionID)
		if submitErr != nil {
			return errorReply(submitErr)
		}
		return liveReply{Type: LiveConfirmed, Data: booking.ToResponse()}
	default:
		view, err = svc.Step(ctx, s.sessionID, Command(msg.Type))
	}

	if err != nil {
		return errorReply(err)
	}
	return liveReply{Type: LiveView, Data: view}
}

// decodeLive applies the same boundary checks as the REST patches.
func decodeLive(data json.RawMessage, v interface{}) error {
	if len(data) > 0 {
		if err := json.Unmarshal(data, v); err != nil {
			return errBadFrame
		}
	}
	if errs := validator.Validate(v); errs != nil {
		return newStepError("", boundaryErrors(errs))
	}
	return nil
}

var errBadFrame = errors.New("invalid message data")

func errorReply(err error) liveReply {
	info := response.ErrorInfo{Code: "CONFLICT", Message: err.Error()}

	if stepErr := AsStepError(err); stepErr != nil {
		info = response.ErrorInfo{Code: "VALIDATION_ERROR", Message: "Validation failed", Details: stepErr.Fields}
	} else {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			info.Code = "NOT_FOUND"
		case errors.Is(err, ErrUnknownCommand), errors.Is(err, errBadFrame):
			info.Code = "BAD_REQUEST"
		case errors.Is(err, ErrStepNotActive), errors.Is(err, ErrNoPreviousStep), errors.Is(err, ErrNoNextStep),
			errors.Is(err, ErrWizardClosed), errors.Is(err, ErrNothingPriced):
		default:
			info = response.ErrorInfo{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}
		}
	}
	return liveReply{Type: LiveError, Data: info}
}

func (s *liveSession) write(reply liveReply) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(reply)
}

func (s *liveSession) closeNormally() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "booking confirmed")
	s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (s *liveSession) ping() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
