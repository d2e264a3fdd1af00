package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

const queryDate = "2006-01-02"

// parseFilter reads the repeatable type, category and name parameters and
// the optional from/to dates.
func parseFilter(q url.Values) (insights.Filter, error) {
	f := insights.Filter{
		SupplierTypes:     values(q, "type"),
		ServiceCategories: values(q, "category"),
		SupplierNames:     values(q, "name"),
	}

	var err error
	if f.DateRange.From, err = parseQueryDate(q, "from"); err != nil {
		return insights.Filter{}, err
	}
	if f.DateRange.To, err = parseQueryDate(q, "to"); err != nil {
		return insights.Filter{}, err
	}
	if err := f.Validate(); err != nil {
		return insights.Filter{}, err
	}
	return f, nil
}

func values(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseQueryDate(q url.Values, key string) (time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(queryDate, raw)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("%s must be a date like 2024-01-31", key), common.ErrInvalidFilter)
	}
	return t, nil
}

// parseScore returns RiskNone when score is absent.
func parseScore(q url.Values) (model.RiskScore, error) {
	raw := strings.TrimSpace(q.Get("score"))
	if raw == "" {
		return model.RiskNone, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !model.RiskScore(n).Valid() {
		return model.RiskNone, common.NewUserError("score must be 1, 2 or 3", common.ErrInvalidFilter)
	}
	return model.RiskScore(n), nil
}

// parseBucket returns BucketNone when bucket is absent.
func parseBucket(q url.Values) (model.UnpaidBucket, error) {
	raw := strings.TrimSpace(q.Get("bucket"))
	if raw == "" {
		return model.BucketNone, nil
	}
	b, ok := model.ParseUnpaidBucket(raw)
	if !ok {
		return model.BucketNone, common.NewUserError(fmt.Sprintf("unknown bucket %q", raw), common.ErrInvalidFilter)
	}
	return b, nil
}
