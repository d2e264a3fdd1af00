package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acmeProfile(t *testing.T) *insights.SupplierProfile {
	t.Helper()
	profile, err := insights.ComputeSupplierProfile(testutil.StandardInvoices(), "Acme Logistics")
	require.NoError(t, err)
	return profile
}

func writeLogo(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := range 16 {
		for y := range 16 {
			img.Set(x, y, color.RGBA{R: 20, G: 80, B: 160, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestWriteSupplierProfile(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSupplierProfile(&buf, acmeProfile(t), Options{
		GeneratedAt: time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC),
		Filter:      "All invoices",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("%%EOF")))
}

func TestWriteSupplierProfile_WithLogo(t *testing.T) {
	var plain, withLogo bytes.Buffer
	profile := acmeProfile(t)

	require.NoError(t, WriteSupplierProfile(&plain, profile, Options{}))
	require.NoError(t, WriteSupplierProfile(&withLogo, profile, Options{LogoPath: writeLogo(t)}))

	assert.Greater(t, withLogo.Len(), plain.Len())
	assert.True(t, bytes.Contains(withLogo.Bytes(), []byte("/Subtype /Image")))
}

func TestWriteSupplierProfile_Errors(t *testing.T) {
	tests := []struct {
		profile *insights.SupplierProfile
		name    string
		opts    Options
	}{
		{name: "nil profile", profile: nil},
		{name: "missing logo", opts: Options{LogoPath: filepath.Join(t.TempDir(), "nope.png")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := tt.profile
			if tt.name != "nil profile" {
				profile = acmeProfile(t)
			}
			var buf bytes.Buffer
			assert.Error(t, WriteSupplierProfile(&buf, profile, tt.opts))
			assert.Zero(t, buf.Len())
		})
	}
}

func TestWriteSupplierProfile_UnscoredSupplier(t *testing.T) {
	invoices := []model.Invoice{testutil.NewInvoice("X-1").Build()}
	profile, err := insights.ComputeSupplierProfile(invoices, "Acme Logistics")
	require.NoError(t, err)
	require.Empty(t, profile.RiskDistribution)

	var buf bytes.Buffer
	require.NoError(t, WriteSupplierProfile(&buf, profile, Options{}))
	assert.NotZero(t, buf.Len())
}
