package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polyneurons/polyneurons-backend/internal/cognitive/engine"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/tasks"
	pkgerrors "github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

type TaskHandler struct {
	logger     logging.Logger
	dispatcher tasks.Dispatcher
	queue      *engine.TaskQueue
	results    *engine.ResultStore
}

func NewTaskHandler(logger logging.Logger, dispatcher tasks.Dispatcher, queue *engine.TaskQueue, results *engine.ResultStore) *TaskHandler {
	return &TaskHandler{
		logger:     logger,
		dispatcher: dispatcher,
		queue:      queue,
		results:    results,
	}
}

// ProcessTask runs a task synchronously and returns its result.
func (h *TaskHandler) ProcessTask(c *gin.Context) {
	traceID := getTraceID(c)

	var task types.ReasoningTask
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidRequestBody, Details: err.Error()})
		return
	}

	result, err := h.dispatcher.Process(c.Request.Context(), &task)
	if err != nil {
		h.logger.Warn("Task rejected", "trace_id", traceID, "task_id", task.TaskID, "error", err)
		c.JSON(statusForReasoningError(err), types.ErrorResponse{Error: pkgerrors.ErrTaskProcessingError, Details: err.Error()})
		return
	}

	if h.results != nil {
		if err := h.results.SubmitResult(c.Request.Context(), task.TaskID, result); err != nil {
			h.logger.Warn("Failed to store result", "trace_id", traceID, "task_id", task.TaskID, "error", err)
		}
	}

	c.JSON(http.StatusOK, types.ProcessTaskResponse{TaskID: task.TaskID, Result: result})
}

// EnqueueTask hands a task to the engine loop.
func (h *TaskHandler) EnqueueTask(c *gin.Context) {
	var task types.ReasoningTask
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidRequestBody, Details: err.Error()})
		return
	}

	pending, err := h.queue.Enqueue(&task)
	if errors.Is(err, engine.ErrQueueFull) {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: pkgerrors.ErrTaskQueueFull})
		return
	}

	h.logger.Debug("Task queued", "trace_id", getTraceID(c), "task_id", task.TaskID, "pending", pending)
	c.JSON(http.StatusAccepted, types.EnqueueTaskResponse{TaskID: task.TaskID, Queued: true, Pending: pending})
}

func (h *TaskHandler) GetResult(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidTaskID, Details: err.Error()})
		return
	}

	result, ok := h.results.GetResult(taskID)
	if !ok {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: pkgerrors.ErrResultNotFound})
		return
	}
	c.JSON(http.StatusOK, types.ProcessTaskResponse{TaskID: taskID, Result: result})
}

func statusForReasoningError(err error) int {
	switch pkgerrors.KindOf(err) {
	case pkgerrors.KindUnknownTaskType:
		return http.StatusBadRequest
	case pkgerrors.KindInvalidInput, pkgerrors.KindMissingField:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
