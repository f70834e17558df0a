package http

import (
	"net/http"
	"time"

	"contract-manager-backend/internal/adapter/middleware"
	ucContract "contract-manager-backend/internal/usecase/contract"

	"github.com/labstack/echo/v4"
)

type ContractHandler struct {
	uc *ucContract.Usecase
}

func NewContractHandler(uc *ucContract.Usecase) *ContractHandler { return &ContractHandler{uc: uc} }

type createContractReq struct {
	ContractNumber string  `json:"contract_number" validate:"required,max=100"`
	Title          string  `json:"title"           validate:"required,max=255"`
	Description    string  `json:"description"     validate:"omitempty,max=10000"`
	Value          float64 `json:"value"           validate:"gte=0"`
	Category       string  `json:"category"        validate:"omitempty,max=100"`
	Specification  string  `json:"specification"   validate:"omitempty,max=10000"`
	// Canonical date `YYYY-MM-DD` (aligns with schema DATE)
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

// Create handles POST /api/contracts. New contracts always start in draft;
// only the approval engine moves them from there.
func (h *ContractHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	var req createContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "end_date", Message: "must not be before start_date"}},
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), actor, ucContract.CreateInput{
		ContractNumber: req.ContractNumber,
		Title:          req.Title,
		Description:    req.Description,
		Value:          req.Value,
		Category:       req.Category,
		Specification:  req.Specification,
		StartDate:      start.UTC(),
		EndDate:        end.UTC(),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Get handles GET /api/contracts/:contract_id.
func (h *ContractHandler) Get(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	contractID := c.Param("contract_id")
	if !reHex32.MatchString(contractID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid contract_id path param"})
	}

	dto, err := h.uc.Get(c.Request().Context(), actor, contractID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Delete handles DELETE /api/contracts/:contract_id. Irreversible: the
// contract's approvals go with it.
func (h *ContractHandler) Delete(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	contractID := c.Param("contract_id")
	if !reHex32.MatchString(contractID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid contract_id path param"})
	}

	if err := h.uc.Delete(c.Request().Context(), actor, contractID); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "contract deleted successfully"})
}
