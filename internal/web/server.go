// Package web exposes the action server's HTTP webhook. The dialogue
// engine posts the current tracker state; the response carries the events
// and messages the invoked action produced.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tellerbot/teller/internal/domain"
	"github.com/tellerbot/teller/internal/engine"
	"github.com/tellerbot/teller/internal/storage/auditlog"
	"github.com/tellerbot/teller/pkg/retrier"
)

// auditedActions are the executors whose confirmed runs land in the audit
// trail.
var auditedActions = map[string]bool{
	"action_pay_cc":         true,
	"action_transfer_money": true,
}

// AuditSink records executed transactions. Nil-safe via NopAudit.
type AuditSink interface {
	Append(rec auditlog.Record) error
}

// NopAudit discards audit records.
type NopAudit struct{}

// Append implements AuditSink.
func (NopAudit) Append(auditlog.Record) error { return nil }

// Server serves the action webhook.
type Server struct {
	addr     string
	registry *engine.Registry
	audit    AuditSink
	retry    *retrier.Retrier
	logger   *zap.Logger
}

// NewServer creates a webhook server.
func NewServer(addr string, registry *engine.Registry, audit AuditSink, logger *zap.Logger) *Server {
	if audit == nil {
		audit = NopAudit{}
	}
	return &Server{
		addr:     addr,
		registry: registry,
		audit:    audit,
		retry:    retrier.New(retrier.WithMaxRetries(2), retrier.WithInitialInterval(50*time.Millisecond)),
		logger:   logger,
	}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/health", s.handleHealth)

	server := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "webhook server")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID))

	var payload webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn("malformed webhook payload", zap.Error(err))
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	req := payload.toEngineRequest()
	logger.Debug("dispatching action",
		zap.String("action", req.Action),
		zap.String("intent", req.Intent),
		zap.String("active_form", req.ActiveForm))

	resp, err := s.registry.Dispatch(r.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownAction) {
			logger.Warn("unknown action requested", zap.String("action", req.Action))
			http.Error(w, "unknown action", http.StatusNotFound)
			return
		}
		logger.Error("action failed", zap.String("action", req.Action), zap.Error(err))
		http.Error(w, "action failed", http.StatusInternalServerError)
		return
	}

	s.recordAudit(requestID, req, logger)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(encodeResponse(resp)); err != nil {
		logger.Error("encode response", zap.Error(err))
	}
}

// recordAudit appends confirmed money movements to the audit trail. Audit
// failures are logged, never surfaced: the transaction already happened.
func (s *Server) recordAudit(requestID string, req *engine.Request, logger *zap.Logger) {
	if !auditedActions[req.Action] {
		return
	}
	if confirm, _ := req.Slots.String(domain.SlotConfirm); confirm != "yes" {
		return
	}

	amount, _ := req.Slots.String(domain.SlotAmountOfMoney)
	rec := auditlog.Record{
		ID:       requestID,
		Action:   req.Action,
		SenderID: req.SenderID,
		Amount:   amount,
		At:       time.Now().UTC(),
	}

	err := s.retry.Do(context.Background(), func(context.Context) error {
		return s.audit.Append(rec)
	})
	if err != nil {
		logger.Error("append audit record", zap.Error(err))
	}
}
