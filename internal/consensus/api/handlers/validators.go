package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polyneurons/polyneurons-backend/internal/consensus"
	pkgerrors "github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

type ValidatorHandler struct {
	logger logging.Logger
	engine *consensus.Engine
}

func NewValidatorHandler(logger logging.Logger, engine *consensus.Engine) *ValidatorHandler {
	return &ValidatorHandler{logger: logger, engine: engine}
}

func (h *ValidatorHandler) AddValidator(c *gin.Context) {
	var req types.AddValidatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidRequestBody, Details: err.Error()})
		return
	}
	identity := strings.TrimSpace(req.Validator)
	if identity == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrMissingIdentity})
		return
	}

	h.engine.AddValidator(identity)
	c.JSON(http.StatusCreated, h.roster())
}

func (h *ValidatorHandler) ListValidators(c *gin.Context) {
	c.JSON(http.StatusOK, h.roster())
}

func (h *ValidatorHandler) roster() types.ValidatorsResponse {
	return types.ValidatorsResponse{
		Validators:            h.engine.Validators(),
		RequiredConfirmations: h.engine.RequiredConfirmations(),
	}
}
