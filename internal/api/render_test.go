package api

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1500, "Rp 1.500"},
		{1234567, "Rp 1.234.567"},
		{-250000, "-Rp 250.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRupiah(tt.amount))
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Pending", capitalize("pending"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "X", capitalize("x"))
	assert.Equal(t, "Élite", capitalize("élite"))
}

func TestOverviewTemplateRendersDailySales(t *testing.T) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseGlob("../../web/templates/*.tmpl")
	require.NoError(t, err)

	data := map[string]interface{}{
		"overview": models.Overview{
			DailySales: []models.DailySales{
				{
					Day:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
					TotalOrders:  2,
					TotalRevenue: 350000,
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "overview.tmpl", data))

	out := buf.String()
	assert.Contains(t, out, "2026-09-01")
	assert.Contains(t, out, "Rp 350.000")
}
