package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// reports renders the deeper reporting page behind the overview:
// revenue breakdowns, stock usage and user activity.
func (h *Handler) reports(c *gin.Context) {
	defer observeQuery("reports")()

	ctx := c.Request.Context()

	revenueByCategory, err := h.store.RevenueByCategory(ctx)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	revenueByBrand, err := h.store.RevenueByBrand(ctx)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	stockUsage, err := h.store.StockUsage(ctx)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	userStats, err := h.store.UserStats(ctx)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	inactiveUsers, err := h.store.InactiveUsers(ctx)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "reports.tmpl", gin.H{
		"revenueByCategory": revenueByCategory,
		"revenueByBrand":    revenueByBrand,
		"stockUsage":        stockUsage,
		"userStats":         userStats,
		"inactiveUsers":     inactiveUsers,
	})
}

// userDetail renders one user account with its order statistics
func (h *Handler) userDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	ctx := c.Request.Context()

	user, err := h.store.GetUserByID(ctx, id)
	if err != nil {
		h.renderServerError(c, err)
		return
	}
	if user == nil {
		h.renderNotFound(c)
		return
	}

	stats, err := h.store.UserStatsByID(ctx, id)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "user_detail.tmpl", gin.H{
		"user":  user,
		"stats": stats,
	})
}

// getProductTypeSizes returns the sizes a product type can carry
func (h *Handler) getProductTypeSizes(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product type id"})
		return
	}

	ctx := c.Request.Context()

	productType, err := h.store.GetProductTypeByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product type"})
		return
	}
	if productType == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product type not found"})
		return
	}

	sizes, err := h.store.SizesForProductType(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get sizes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_type": productType,
		"sizes":        sizes,
	})
}
