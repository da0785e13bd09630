package handler

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"legalapi/internal/action"
	"legalapi/internal/analysis"
	"legalapi/internal/docstore"
	"legalapi/internal/http/middleware"
	"legalapi/internal/notify"
	"legalapi/internal/repository"
	"legalapi/internal/tasks"
)

// registered is the closed set of action functions this service dispatches.
var registered = map[string]bool{
	"saveDocument":        true,
	"getDocument":         true,
	"listDocuments":       true,
	"addTask":             true,
	"listTasks":           true,
	"sendEmail":           true,
	"analyzeDocument":     true,
	"generateRiskReport":  true,
	"saveAnalysisResults": true,
}

// InvokeHandler dispatches decoded action invocations to the storage, email,
// task and analysis operations.
type InvokeHandler struct {
	db       *sql.DB
	store    docstore.Store
	docs     repository.DocumentRepository
	notifier notify.Notifier
	register tasks.Register
	analyzer analysis.Analyzer
	metrics  *middleware.PrometheusMiddleware
}

// NewInvokeHandler constructs the action dispatcher. metrics may be nil.
func NewInvokeHandler(
	db *sql.DB,
	store docstore.Store,
	docs repository.DocumentRepository,
	notifier notify.Notifier,
	register tasks.Register,
	analyzer analysis.Analyzer,
	metrics *middleware.PrometheusMiddleware,
) *InvokeHandler {
	return &InvokeHandler{
		db:       db,
		store:    store,
		docs:     docs,
		notifier: notifier,
		register: register,
		analyzer: analyzer,
		metrics:  metrics,
	}
}

// Invoke handles POST /invoke: ping gate, decode, dispatch, encode.
func (h *InvokeHandler) Invoke(c *fiber.Ctx) error {
	var inv action.Invocation
	if err := c.BodyParser(&inv); err != nil {
		log.Printf("invoke: malformed payload: %v", err)
		return writeFailure(c, fiber.StatusBadRequest, "Error: malformed invocation payload")
	}

	// The backing store must be reachable before any function dispatch.
	pingCtx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()
	if err := h.db.PingContext(pingCtx); err != nil {
		log.Printf("invoke: database unreachable: %v", err)
		h.record(inv.Function, "error")
		return writeFailure(c, fiber.StatusServiceUnavailable, "Database connection failed: "+err.Error())
	}

	cmd, err := action.Decode(inv, func(fn string) bool { return registered[fn] })
	if err != nil {
		log.Printf("invoke: %v", err)
		h.record(inv.Function, "error")
		return writeFailure(c, fiber.StatusInternalServerError, "Internal Server Error: "+err.Error())
	}

	body, err := h.dispatch(c.UserContext(), cmd)
	if err != nil {
		if action.IsValidation(err) {
			log.Printf("invoke: function=%s validation error: %v", cmd.Function, err)
			h.record(cmd.Function, "validation")
			return writeFailure(c, fiber.StatusBadRequest, "Validation Error: "+err.Error())
		}
		log.Printf("invoke: function=%s error: %v", cmd.Function, err)
		h.record(cmd.Function, "error")
		return writeFailure(c, fiber.StatusInternalServerError, "Internal Server Error: "+err.Error())
	}

	h.record(cmd.Function, "success")
	return c.JSON(action.Encode(cmd.ActionGroup, cmd.Function, cmd.MessageVersion, body))
}

func (h *InvokeHandler) dispatch(ctx context.Context, cmd *action.Command) (string, error) {
	switch cmd.Function {
	case "saveDocument":
		return h.saveDocument(ctx, cmd)
	case "getDocument":
		return h.getDocument(ctx, cmd)
	case "listDocuments":
		return h.listDocuments(ctx, cmd)
	case "addTask":
		return h.addTask(ctx, cmd)
	case "listTasks":
		return h.listTasks(ctx)
	case "sendEmail":
		return h.sendEmail(ctx, cmd)
	case "analyzeDocument":
		return h.analyzeDocument(ctx, cmd)
	case "generateRiskReport":
		return h.generateRiskReport(ctx, cmd)
	case "saveAnalysisResults":
		return "Analysis results saved successfully", nil
	default:
		// Decode already rejected unregistered names.
		return "", action.ErrUnknownFunction
	}
}

func (h *InvokeHandler) record(function, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordAction(function, outcome)
	}
}
