package api

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"backoffice/internal/auth"
	"backoffice/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// templateFuncs are the helpers available inside every template
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"rupiah":     formatRupiah,
		"rupiahf":    func(f float64) string { return formatRupiah(int64(f)) },
		"capitalize": capitalize,
		"add":        func(a, b int) int { return a + b },
		"subtotal":   func(price int64, qty int) int64 { return price * int64(qty) },
	}
}

// formatRupiah renders an amount as "Rp 1.234.567"
func formatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

// capitalize upper-cases the first rune of a word
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// renderHTML renders a page with the session principal and pending
// flash messages merged into the template data
func (h *Handler) renderHTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if principal, ok := auth.CurrentPrincipal(c); ok {
		data["principal"] = principal
	}
	data["errorFlashes"] = auth.Flashes(c, auth.FlashError)
	data["successFlashes"] = auth.Flashes(c, auth.FlashSuccess)
	data["currentPath"] = c.Request.URL.Path

	c.HTML(status, name, data)
}

// renderNotFound renders the 404 error page
func (h *Handler) renderNotFound(c *gin.Context) {
	h.renderHTML(c, http.StatusNotFound, "error.tmpl", gin.H{
		"statusCode": http.StatusNotFound,
		"message":    "Page not found",
	})
}

// renderServerError logs the failure and renders the generic 500 page
func (h *Handler) renderServerError(c *gin.Context, err error) {
	util.GetLogger().Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))

	h.renderHTML(c, http.StatusInternalServerError, "error.tmpl", gin.H{
		"statusCode": http.StatusInternalServerError,
		"message":    "Oh no, something went wrong!",
	})
}

// notFound handles unmatched routes: JSON for the API surface, the
// error page for everything else
func (h *Handler) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.renderNotFound(c)
}
