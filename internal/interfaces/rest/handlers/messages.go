package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application/services"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/interfaces/rest"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/mapper"
	"github.com/go-playground/validator"
)

const maxPayloadBytes = 1 << 20

type ReportQueue interface {
	MessageReceived(ctx context.Context, msg *domain.Message) (bool, error)
	MessageSeen(ctx context.Context, messageID string) (bool, error)
	Status(ctx context.Context, messageID string, kind domain.ReportKind) (*domain.Report, error)
	Flush(ctx context.Context) (services.FlushResult, error)
}

type MessageHandler struct {
	mapper   *mapper.MessageMapper
	reports  ReportQueue
	validate *validator.Validate
	logger   *slog.Logger
}

func NewMessageHandler(m *mapper.MessageMapper, reports ReportQueue, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		mapper:   m,
		reports:  reports,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *MessageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/messages", h.HandleReceive)
	mux.HandleFunc("POST /v1/messages/{id}/seen", h.HandleSeen)
	mux.HandleFunc("GET /v1/messages/{id}/reports", h.HandleReports)
	mux.HandleFunc("POST /v1/reports/flush", h.HandleFlush)
}

type messageIDParam struct {
	MessageID string `validate:"required,max=256"`
}

type ReceiveResponse struct {
	Message json.RawMessage `json:"message"`
	Queued  bool            `json:"queued"`
}

type SeenResponse struct {
	MessageID string `json:"message_id"`
	Queued    bool   `json:"queued"`
}

type ReportStatus struct {
	Kind       domain.ReportKind  `json:"kind"`
	State      domain.ReportState `json:"state"`
	OccurredAt int64              `json:"occurred_at"`
	Attempts   int                `json:"attempts"`
	LastError  string             `json:"last_error,omitempty"`
}

type FlushResponse struct {
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
	Deferred int `json:"deferred"`
}

// HandleReceive accepts a raw push payload, queues its delivery report and
// echoes the message in its normalized wire form.
func (h *MessageHandler) HandleReceive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	msg, err := h.mapper.MessageFromString(string(body))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	queued, err := h.reports.MessageReceived(r.Context(), msg)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	normalized, err := h.mapper.MessageToString(msg)
	if err != nil {
		rest.WriteError(w, application.NewInternalError(err), h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusAccepted, ReceiveResponse{
		Message: json.RawMessage(normalized),
		Queued:  queued,
	})
}

func (h *MessageHandler) HandleSeen(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	queued, err := h.reports.MessageSeen(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusAccepted, SeenResponse{MessageID: id, Queued: queued})
}

// HandleReports lists the delivery and seen reports stored for a message.
func (h *MessageHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	var statuses []ReportStatus
	for _, kind := range []domain.ReportKind{domain.ReportDelivery, domain.ReportSeen} {
		report, err := h.reports.Status(r.Context(), id, kind)
		if errors.Is(err, domain.ErrReportNotFound) {
			continue
		}
		if err != nil {
			rest.WriteError(w, err, h.logger)
			return
		}
		statuses = append(statuses, ReportStatus{
			Kind:       report.Kind,
			State:      report.State,
			OccurredAt: report.OccurredAt,
			Attempts:   report.Attempts,
			LastError:  report.LastError,
		})
	}

	if len(statuses) == 0 {
		rest.WriteError(w, application.NewNotFoundError(domain.ErrReportNotFound), h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statuses)
}

func (h *MessageHandler) HandleFlush(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.Flush(r.Context())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, FlushResponse{
		Sent:     result.Sent,
		Failed:   result.Failed,
		Deferred: result.Deferred,
	})
}

func (h *MessageHandler) messageID(w http.ResponseWriter, r *http.Request) (string, bool) {
	param := messageIDParam{MessageID: r.PathValue("id")}
	if err := h.validate.Struct(param); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return "", false
	}
	return param.MessageID, true
}
