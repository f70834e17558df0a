package http

import (
	"net/http"
	"strconv"

	"contract-manager-backend/internal/adapter/middleware"
	domainApproval "contract-manager-backend/internal/domain/approval"
	ucApproval "contract-manager-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct {
	uc *ucApproval.Usecase
}

func NewApprovalHandler(uc *ucApproval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type createApprovalReq struct {
	ContractID    string `json:"contract_id"    validate:"required,hex32"`
	ApproverID    string `json:"approver_id"    validate:"required,hex32"`
	ApprovalLevel int    `json:"approval_level" validate:"omitempty,gte=1,lte=10"`
	Comments      string `json:"comments"       validate:"omitempty,max=2000"`
}

// Create handles POST /api/approvals.
func (h *ApprovalHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	var req createApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if req.ApprovalLevel == 0 {
		req.ApprovalLevel = 1
	}

	dto, err := h.uc.Request(c.Request().Context(), actor, ucApproval.RequestInput{
		ContractUID: req.ContractID,
		ApproverUID: req.ApproverID,
		Level:       req.ApprovalLevel,
		Comments:    req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type resolveApprovalReq struct {
	Status   string `json:"status"   validate:"required,oneof=approved rejected"`
	Comments string `json:"comments" validate:"omitempty,max=2000"`
}

// Resolve handles PUT /api/approvals/:approval_id.
func (h *ApprovalHandler) Resolve(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	approvalID := c.Param("approval_id")
	if !reHex32.MatchString(approvalID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid approval_id path param"})
	}

	var req resolveApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	err := h.uc.Resolve(c.Request().Context(), actor, ucApproval.ResolveInput{
		ApprovalUID: approvalID,
		Decision:    domainApproval.Status(req.Status),
		Comments:    req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "approval " + req.Status + " successfully"})
}

// ListPending handles GET /api/approvals/pending — the caller's own queue.
func (h *ApprovalHandler) ListPending(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	items, err := h.uc.ListPending(c.Request().Context(), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// History handles GET /api/approvals/contract/:contract_id.
func (h *ApprovalHandler) History(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	contractID := c.Param("contract_id")
	if !reHex32.MatchString(contractID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid contract_id path param"})
	}

	items, err := h.uc.History(c.Request().Context(), actor, contractID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// List handles GET /api/approvals (admin/manager; gated by RequireManager).
func (h *ApprovalHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	in := ucApproval.ListInput{
		Status:      c.QueryParam("status"),
		ContractUID: c.QueryParam("contract_id"),
		Page:        atoiDefault(c.QueryParam("page"), 1),
		Limit:       atoiDefault(c.QueryParam("limit"), 10),
	}
	switch in.Status {
	case "", string(domainApproval.StatusPending), string(domainApproval.StatusApproved),
		string(domainApproval.StatusRejected), string(domainApproval.StatusCancelled):
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status filter"})
	}

	res, err := h.uc.List(c.Request().Context(), actor, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
