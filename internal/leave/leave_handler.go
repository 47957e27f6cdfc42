package leave

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	log := h.logger.Warn
	if httpErr.Status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	h.logger.Warn("leave request validation failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	mapped := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, mapped.Message, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := getActorID(c)
	h.logger.Debug("http submit leave", zap.String("tenant_id", tenantID), zap.String("actor_id", actorID))

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), tenantID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) FindAll(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	var q ListLeaveRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.FindAll(c.Request.Context(), tenantID, ListFilter{
		EmployeeID: q.EmployeeID,
		Status:     q.Status,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(resp, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) FindOne(c *gin.Context) {
	resp, err := h.service.FindOne(c.Request.Context(), c.GetString("tenant_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := getActorID(c)
	id := c.Param("id")

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), tenantID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.GetString("tenant_id"), getActorID(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetBalances(c *gin.Context) {
	resp, err := h.service.GetBalances(c.Request.Context(), c.GetString("tenant_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
