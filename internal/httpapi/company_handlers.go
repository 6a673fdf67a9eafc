package httpapi

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"talentai-engine/internal/analytics"
	"talentai-engine/internal/config"
	"talentai-engine/internal/domain"
	"talentai-engine/internal/store"
)

type CompaniesHandler struct {
	DB     *sql.DB
	CfgVal *atomic.Value // config.Config
}

func (h CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := store.ListCompanies(h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	writeJSON(w, companies)
}

// ByPath routes /companies/{name}[/jobs|/analytics|/export].
func (h CompaniesHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/companies/")
	name, sub, _ := strings.Cut(rest, "/")
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company", "company name required")
		return
	}

	if r.Method == http.MethodDelete && sub == "" {
		h.delete(w, r, name)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	set, err := store.GetSnapshot(h.DB, name)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	if set == nil {
		WriteError(w, r, http.StatusNotFound, "unknown_company", "no snapshot for "+name)
		return
	}

	switch sub {
	case "", "jobs":
		writeJSON(w, set)
	case "analytics":
		cfg := h.CfgVal.Load().(config.Config)
		writeJSON(w, analytics.AnalyzeTopN(set, cfg.Analytics.TopN))
	case "export":
		if r.URL.Query().Get("format") == "json" {
			writeJSON(w, set)
			return
		}
		h.exportCSV(w, r, set)
	default:
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown resource "+sub)
	}
}

func (h CompaniesHandler) delete(w http.ResponseWriter, r *http.Request, name string) {
	ok, err := store.DeleteCompany(h.DB, name)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_company", "no snapshot for "+name)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

var csvHeader = []string{
	"title", "location", "department", "seniority_level", "work_arrangement",
	"salary_min", "salary_max", "salary_currency", "url",
}

func (h CompaniesHandler) exportCSV(w http.ResponseWriter, r *http.Request, set *domain.CompanyJobSet) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", set.Company+"_jobs.csv"))

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	for _, j := range set.Jobs {
		smin, smax, cur := "", "", ""
		if j.Salary != nil {
			smin = strconv.Itoa(j.Salary.Min)
			smax = strconv.Itoa(j.Salary.Max)
			cur = j.Salary.Currency
		}
		_ = cw.Write([]string{
			j.Title, j.Location, j.Department,
			string(j.Seniority), string(j.Work),
			smin, smax, cur, j.URL,
		})
	}
	cw.Flush()
}
