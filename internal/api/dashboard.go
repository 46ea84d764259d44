package api

import (
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/store"
	"backoffice/internal/util"

	"github.com/gin-gonic/gin"
)

// listOptions reads the shared listing parameters from the query
// string. Anything non-numeric or non-positive normalizes inside
// the paginator.
func (h *Handler) listOptions(c *gin.Context) store.ListOptions {
	page, _ := strconv.Atoi(c.Query("page"))
	return store.ListOptions{
		Query:   c.Query("q"),
		Sort:    c.Query("sort"),
		Page:    page,
		PerPage: h.cfg.Dashboard.PerPage,
	}
}

// home renders the public landing page
func (h *Handler) home(c *gin.Context) {
	summary, err := h.store.ProductStockSummary(c.Request.Context())
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "home.tmpl", gin.H{
		"productTypes": summary,
	})
}

// overview renders the analytics dashboard landing page
func (h *Handler) overview(c *gin.Context) {
	ctx := c.Request.Context()

	analytics, err := h.analytics.Overview(ctx)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	latestOrders, err := h.store.LatestOrders(ctx, 5)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	lowStock, err := h.store.LowStockProducts(ctx, h.cfg.Dashboard.LowStockThreshold)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "overview.tmpl", gin.H{
		"overview":     analytics,
		"latestOrders": latestOrders,
		"lowStock":     lowStock,
	})
}

// products renders the paginated product listing
func (h *Handler) products(c *gin.Context) {
	defer observeQuery("products")()

	opts := h.listOptions(c)
	typeID, _ := strconv.ParseInt(c.Query("type"), 10, 64)
	brandID, _ := strconv.ParseInt(c.Query("brand"), 10, 64)
	categoryID, _ := strconv.ParseInt(c.Query("category"), 10, 64)
	colorID, _ := strconv.ParseInt(c.Query("color"), 10, 64)
	sizeID, _ := strconv.ParseInt(c.Query("size"), 10, 64)

	page, err := h.store.ListProducts(c.Request.Context(), store.ProductFilter{
		Query:      opts.Query,
		TypeID:     typeID,
		BrandID:    brandID,
		CategoryID: categoryID,
		ColorID:    colorID,
		SizeID:     sizeID,
		Sort:       opts.Sort,
		Page:       opts.Page,
		PerPage:    opts.PerPage,
	})
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "products.tmpl", gin.H{
		"products":   page.Rows,
		"pagination": page,
		"query":      opts.Query,
		"sort":       opts.Sort,
	})
}

func (h *Handler) brands(c *gin.Context) {
	defer observeQuery("brands")()

	opts := h.listOptions(c)
	page, err := h.store.ListBrands(c.Request.Context(), opts)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "brands.tmpl", gin.H{
		"brands":     page.Rows,
		"pagination": page,
		"query":      opts.Query,
		"sort":       opts.Sort,
	})
}

func (h *Handler) categories(c *gin.Context) {
	defer observeQuery("categories")()

	opts := h.listOptions(c)
	page, err := h.store.ListCategories(c.Request.Context(), opts)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "categories.tmpl", gin.H{
		"categories": page.Rows,
		"pagination": page,
		"query":      opts.Query,
		"sort":       opts.Sort,
	})
}

func (h *Handler) colors(c *gin.Context) {
	defer observeQuery("colors")()

	opts := h.listOptions(c)
	page, err := h.store.ListColors(c.Request.Context(), opts)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "colors.tmpl", gin.H{
		"colors":     page.Rows,
		"pagination": page,
		"query":      opts.Query,
		"sort":       opts.Sort,
	})
}

func (h *Handler) sizes(c *gin.Context) {
	defer observeQuery("sizes")()

	opts := h.listOptions(c)
	page, err := h.store.ListSizes(c.Request.Context(), opts)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "sizes.tmpl", gin.H{
		"sizes":      page.Rows,
		"pagination": page,
		"query":      opts.Query,
		"sort":       opts.Sort,
	})
}

func (h *Handler) users(c *gin.Context) {
	defer observeQuery("users")()

	opts := h.listOptions(c)
	page, err := h.store.ListUsers(c.Request.Context(), opts)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "users.tmpl", gin.H{
		"users":      page.Rows,
		"pagination": page,
		"query":      opts.Query,
		"sort":       opts.Sort,
	})
}

func (h *Handler) orders(c *gin.Context) {
	defer observeQuery("orders")()

	opts := h.listOptions(c)
	page, err := h.store.ListOrders(c.Request.Context(), opts)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "orders.tmpl", gin.H{
		"orders":     page.Rows,
		"pagination": page,
		"query":      opts.Query,
		"sort":       opts.Sort,
	})
}

// orderDetail renders one order with its items; absent orders (and
// unparsable ids) get the 404 page
func (h *Handler) orderDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	order, err := h.store.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		h.renderServerError(c, err)
		return
	}
	if order == nil {
		h.renderNotFound(c)
		return
	}

	h.renderHTML(c, http.StatusOK, "order_detail.tmpl", gin.H{
		"order": order,
	})
}

func (h *Handler) settings(c *gin.Context) {
	h.renderHTML(c, http.StatusOK, "settings.tmpl", nil)
}

func observeQuery(entity string) func() {
	start := time.Now()
	return func() {
		util.DashboardQueryDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())
	}
}
