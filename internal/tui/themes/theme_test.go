package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("no-such-theme").Primary)
	assert.Equal(t, []string{"catppuccin-mocha", "default"}, Names())
}

func TestRiskStyle(t *testing.T) {
	tests := []struct {
		want string
		mean float64
	}{
		{mean: 1, want: "success"},
		{mean: 1.49, want: "success"},
		{mean: 1.5, want: "warning"},
		{mean: 2.49, want: "warning"},
		{mean: 2.5, want: "error"},
		{mean: 3, want: "error"},
	}

	styles := map[string]any{
		"success": Default.StatusSuccess.GetForeground(),
		"warning": Default.StatusWarning.GetForeground(),
		"error":   Default.StatusError.GetForeground(),
	}
	for _, tt := range tests {
		got := Default.RiskStyle(tt.mean).GetForeground()
		assert.Equal(t, styles[tt.want], got, "mean %.2f", tt.mean)
	}
}
