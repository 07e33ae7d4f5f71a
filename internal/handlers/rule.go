package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type RuleHandler struct {
	ruleService *services.RuleService
}

func NewRuleHandler(db *gorm.DB) *RuleHandler {
	return &RuleHandler{
		ruleService: services.NewRuleService(db),
	}
}

// List returns the caller's rule catalogue
// GET /api/rules
func (h *RuleHandler) List(c *gin.Context) {
	rules, err := h.ruleService.List(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, rules)
}

// Create adds a rule
// POST /api/rules
func (h *RuleHandler) Create(c *gin.Context) {
	var req services.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rule, err := h.ruleService.Create(middleware.GetScope(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// Update edits a rule
// PUT /api/rules/:id
func (h *RuleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	var req services.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rule, err := h.ruleService.Update(middleware.GetScope(c), uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rule)
}

// Delete removes a rule; recorded violations keep the cited code
// DELETE /api/rules/:id
func (h *RuleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	if err := h.ruleService.Delete(middleware.GetScope(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
