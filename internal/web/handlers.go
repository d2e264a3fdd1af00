package web

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeFailure maps domain errors onto HTTP status codes.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	message := err.Error()
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		message = userErr.UserMessage
	}

	requestID := middleware.GetReqID(r.Context())
	switch {
	case errors.Is(err, common.ErrSupplierNotFound):
		s.logger.Warn("request rejected", "path", r.URL.Path, "request_id", requestID, "remote_addr", r.RemoteAddr, "error", err)
		writeError(w, http.StatusNotFound, "NOT_FOUND", message)
	case errors.Is(err, common.ErrInvalidFilter):
		s.logger.Warn("request rejected", "path", r.URL.Path, "request_id", requestID, "remote_addr", r.RemoteAddr, "error", err)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", message)
	default:
		common.LogError(s.logger, err, "request failed", common.Fields{
			"path":        r.URL.Path,
			"request_id":  requestID,
			"remote_addr": r.RemoteAddr,
		})
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

type filtersResponse struct {
	Filter  insights.Filter  `json:"filter"`
	Options insights.Options `json:"options"`
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	f, opts, err := s.selection(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{Filter: f, Options: opts})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	f, _, err := s.selection(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights.BuildSnapshot(s.invoices, f, s.referenceDate))
}

type riskResponse struct {
	Invoices []insights.RiskRow    `json:"invoices"`
	Overview insights.RiskOverview `json:"overview"`
	Score    model.RiskScore       `json:"score,omitempty"`
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	f, _, err := s.selection(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	score, err := parseScore(r.URL.Query())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	filtered := f.Apply(s.invoices)
	resp := riskResponse{
		Overview: insights.ComputeRiskOverview(filtered),
		Score:    score,
		Invoices: []insights.RiskRow{},
	}
	if score.Valid() {
		resp.Invoices = insights.RiskRows(filtered, score)
	}
	writeJSON(w, http.StatusOK, resp)
}

type toPayResponse struct {
	Hub      insights.ToPayHub   `json:"hub"`
	Bucket   model.UnpaidBucket  `json:"bucket,omitempty"`
	Invoices []insights.ToPayRow `json:"invoices"`
}

func (s *Server) handleToPay(w http.ResponseWriter, r *http.Request) {
	f, _, err := s.selection(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	bucket, err := parseBucket(r.URL.Query())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	hub := insights.ComputeToPayHub(f.Apply(s.invoices), s.referenceDate)
	resp := toPayResponse{Hub: hub, Bucket: bucket, Invoices: []insights.ToPayRow{}}
	buckets := model.UnpaidBuckets
	if bucket != model.BucketNone {
		buckets = []model.UnpaidBucket{bucket}
	}
	for _, b := range buckets {
		resp.Invoices = append(resp.Invoices, hub.ToPayRows(b)...)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	f, _, err := s.selection(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"suppliers": insights.SupplierNames(f.Apply(s.invoices)),
	})
}

type supplierResponse struct {
	*insights.SupplierProfile
	Invoices []insights.RiskRow `json:"invoices"`
}

func (s *Server) handleSupplier(w http.ResponseWriter, r *http.Request) {
	f, _, err := s.selection(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	name, err := supplierParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed supplier name")
		return
	}

	profile, err := insights.ComputeSupplierProfile(f.Apply(s.invoices), name)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	resp := supplierResponse{SupplierProfile: profile, Invoices: make([]insights.RiskRow, len(profile.Invoices))}
	for i, inv := range profile.Invoices {
		resp.Invoices[i] = insights.RiskRow{
			InvoiceID: inv.ID,
			Name:      inv.SupplierName,
			DueDate:   insights.FormatDate(inv.DueDate),
			Amount:    inv.Amount,
			RiskScore: int(inv.RiskScore),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// supplierParam reads the {name} segment. chi matches on RawPath when the
// request carries one, and the segment is still escaped in that case.
func supplierParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	if s.logoPath == "" {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no logo configured")
		return
	}
	http.ServeFile(w, r, s.logoPath)
}

type pageData struct {
	Snapshot  *insights.Snapshot
	Profile   *insights.SupplierProfile
	Options   insights.Options
	Filter    insights.Filter
	Supplier  string
	Bucket    model.UnpaidBucket
	Suppliers []string
	RiskRows  []insights.RiskRow
	ToPayRows []insights.ToPayRow
	Buckets   []model.UnpaidBucket
	Scores    []model.RiskScore
	Score     model.RiskScore
	HasLogo   bool
}

type queryParam struct {
	Name  string
	Value string
}

// state encodes the filter and the three selections as query parameters.
func (d pageData) state() url.Values {
	q := url.Values{}
	for _, v := range d.Filter.SupplierTypes {
		q.Add("type", v)
	}
	for _, v := range d.Filter.ServiceCategories {
		q.Add("category", v)
	}
	for _, v := range d.Filter.SupplierNames {
		q.Add("name", v)
	}
	if !d.Filter.DateRange.From.IsZero() {
		q.Set("from", d.Filter.DateRange.From.Format(queryDate))
	}
	if !d.Filter.DateRange.To.IsZero() {
		q.Set("to", d.Filter.DateRange.To.Format(queryDate))
	}
	if d.Score.Valid() {
		q.Set("score", d.Score.String())
	}
	if d.Bucket != model.BucketNone {
		q.Set("bucket", string(d.Bucket))
	}
	if d.Supplier != "" {
		q.Set("supplier", d.Supplier)
	}
	return q
}

// Hidden lists the page state a form must resubmit, minus the parameters
// the form sets itself.
func (d pageData) Hidden(skip ...string) []queryParam {
	q := d.state()
	for _, k := range skip {
		q.Del(k)
	}
	keys := slices.Sorted(maps.Keys(q))
	var out []queryParam
	for _, k := range keys {
		for _, v := range q[k] {
			out = append(out, queryParam{Name: k, Value: v})
		}
	}
	return out
}

// Link returns the page URL with key replaced by value.
func (d pageData) Link(key, value string) string {
	q := d.state()
	q.Set(key, value)
	return "/?" + q.Encode()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f, opts, err := s.selection(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	q := r.URL.Query()
	score, err := parseScore(q)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	bucket, err := parseBucket(q)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	filtered := f.Apply(s.invoices)
	snap := insights.BuildSnapshot(s.invoices, f, s.referenceDate)
	data := pageData{
		Snapshot:  snap,
		Options:   opts,
		Filter:    f,
		Suppliers: insights.SupplierNames(filtered),
		Score:     score,
		Scores:    model.RiskScores,
		Bucket:    bucket,
		Buckets:   model.UnpaidBuckets,
		HasLogo:   s.logoPath != "",
	}
	if score == model.RiskNone {
		data.Score = model.RiskHigh
	}
	data.RiskRows = insights.RiskRows(filtered, data.Score)
	if bucket == model.BucketNone && len(snap.ToPayHub.Summary) > 0 {
		data.Bucket = snap.ToPayHub.Summary[0].Bucket
	}
	if data.Bucket != model.BucketNone {
		data.ToPayRows = snap.ToPayHub.ToPayRows(data.Bucket)
	}

	data.Supplier = q.Get("supplier")
	if !slices.Contains(data.Suppliers, data.Supplier) {
		data.Supplier = ""
		if len(data.Suppliers) > 0 {
			data.Supplier = data.Suppliers[0]
		}
	}
	if data.Supplier != "" {
		profile, err := insights.ComputeSupplierProfile(filtered, data.Supplier)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		data.Profile = profile
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}
