// Package components provides the reusable widgets of the terminal dashboard.
package components

import "github.com/sachihirani/supplier-risk-dashboard/internal/insights"

// FilterChangedMsg is sent when the user edits the filter panel.
type FilterChangedMsg struct {
	Filter insights.Filter
}
