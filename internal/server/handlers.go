package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tsawler/pna/internal/logging"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/report"
	"github.com/tsawler/pna/sink"
	"github.com/tsawler/pna/validate"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"run_id":  s.store.RunID,
		"records": s.store.Len(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summary())
}

type recordsResponse struct {
	Total   int            `json:"total"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
	Records []report.Entry `json:"records"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, total := s.store.Find(q)
	if entries == nil {
		entries = []report.Entry{}
	}
	logging.FromContext(r.Context()).Debug("listed records", "total", total, "returned", len(entries))

	writeJSON(w, http.StatusOK, recordsResponse{
		Total:   total,
		Offset:  q.Offset,
		Limit:   q.Limit,
		Records: entries,
	})
}

func parseQuery(r *http.Request) (Query, error) {
	params := r.URL.Query()
	q := Query{
		PostalCode:  params.Get("postal_code"),
		Wojewodztwo: params.Get("wojewodztwo"),
		Limit:       defaultPageSize,
	}

	if name := params.Get("flag"); name != "" {
		kind, err := model.ParseFlagKind(name)
		if err != nil {
			return Query{}, err
		}
		q.Flag = &kind
	}

	if q.Wojewodztwo != "" && validate.NormalizeRegion(q.Wojewodztwo) == "" {
		return Query{}, fmt.Errorf("invalid wojewodztwo %q", q.Wojewodztwo)
	}

	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Query{}, fmt.Errorf("invalid limit %q", v)
		}
		q.Limit = min(n, maxPageSize)
	}

	if v := params.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("invalid offset %q", v)
		}
		q.Offset = n
	}

	return q, nil
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record number")
		return
	}

	rec, ok := s.store.Record(seq)
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}

	writeJSON(w, http.StatusOK, report.Entry{Index: seq, Record: rec})
}

type postalCodeResponse struct {
	PostalCode  string         `json:"postal_code"`
	Wojewodztwa []string       `json:"wojewodztwa"`
	Conflicting bool           `json:"conflicting"`
	Records     []report.Entry `json:"records"`
}

func (s *Server) handlePostalCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !validate.ValidPostalCode(code) {
		writeError(w, http.StatusBadRequest, "postal code must look like 00-000")
		return
	}

	entries := s.store.PostalCode(code)
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "postal code not found")
		return
	}

	writeJSON(w, http.StatusOK, postalCodeResponse{
		PostalCode:  code,
		Wojewodztwa: s.store.Regions(code),
		Conflicting: s.store.Conflicting(code),
		Records:     entries,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := sink.WriteHTMLReport(w, sink.ReportData{
		RunID:     s.store.RunID,
		Source:    s.store.Source,
		Generated: s.store.Generated,
		Records:   s.store.Records(),
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("render report", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
