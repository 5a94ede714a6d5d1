package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/greatday-recap-api/internal/dto"
	"github.com/noah-isme/greatday-recap-api/internal/service"
	appErrors "github.com/noah-isme/greatday-recap-api/pkg/errors"
	"github.com/noah-isme/greatday-recap-api/pkg/response"
)

type recapService interface {
	RunDaily(ctx context.Context, force bool) (service.RunResult, error)
	RunWeekly(ctx context.Context, force bool) (service.RunResult, error)
	RunMonthly(ctx context.Context, force bool) (service.RunResult, error)
}

// RecapHandler wires the recap service to HTTP endpoints.
type RecapHandler struct {
	service recapService
}

// NewRecapHandler constructs the handler.
func NewRecapHandler(service recapService) *RecapHandler {
	return &RecapHandler{service: service}
}

// Run godoc
// @Summary Trigger a recap run
// @Tags Recap
// @Produce json
// @Param mode query string true "Recap mode" Enums(daily, weekly, monthly)
// @Param force query bool false "Republish even if the window was already posted"
// @Success 200 {object} response.Envelope
// @Router /run [post]
func (h *RecapHandler) Run(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.RunRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid mode; expected one of: daily, weekly, monthly"))
		return
	}

	var (
		result service.RunResult
		err    error
	)
	switch req.Mode {
	case service.ModeDaily:
		result, err = h.service.RunDaily(c.Request.Context(), req.Force)
	case service.ModeWeekly:
		result, err = h.service.RunWeekly(c.Request.Context(), req.Force)
	case service.ModeMonthly:
		result, err = h.service.RunMonthly(c.Request.Context(), req.Force)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid mode; expected one of: daily, weekly, monthly"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Skipped {
		response.JSON(c, http.StatusOK, dto.RunResponse{
			Status:  "skipped",
			Mode:    req.Mode,
			Skipped: true,
			Reason:  result.Reason,
		})
		return
	}

	response.JSON(c, http.StatusOK, dto.RunResponse{
		Status:  "ok",
		Mode:    req.Mode,
		Message: fmt.Sprintf("Successfully posted %s report.", req.Mode),
	})
}
