package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"immobiliare-gpt-backend/internal/plans"
)

type PlansHandler struct {
	plans []plans.Plan
}

func NewPlansHandler(ps []plans.Plan) *PlansHandler {
	return &PlansHandler{plans: ps}
}

// List godoc
// @Summary     Pricing plans
// @Tags        plans
// @Produce     json
// @Success     200 {array} plans.Plan
// @Router      /plans [get]
func (h *PlansHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.plans)
}
