package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type Handler struct {
	ladderService      *usecase.LadderService
	matchService       *usecase.MatchService
	prizePoolService   *usecase.PrizePoolService
	maintenanceService *usecase.MaintenanceService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	ladderService *usecase.LadderService,
	matchService *usecase.MatchService,
	prizePoolService *usecase.PrizePoolService,
	maintenanceService *usecase.MaintenanceService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ladderService:      ladderService,
		matchService:       matchService,
		prizePoolService:   prizePoolService,
		maintenanceService: maintenanceService,
		logger:             logger,
		validator:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// writeFailure logs client errors at warn and everything else at error.
func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput)
	}
	return limit, nil
}

// parseAt reads an optional RFC3339 instant; empty means now.
func parseAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: at must be an RFC3339 timestamp", usecase.ErrInvalidInput)
	}
	return at.UTC(), nil
}
