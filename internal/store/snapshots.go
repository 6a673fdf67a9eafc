package store

import (
	"database/sql"
	"time"

	"talentai-engine/internal/domain"
)

// SaveSnapshot replaces the stored job set for a company. Latest run
// wins; there is no history.
func SaveSnapshot(db *sql.DB, set domain.CompanyJobSet) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM postings WHERE company = ?;`, set.Company); err != nil {
		return err
	}
	if _, err := tx.Exec(`
INSERT INTO companies (name, source_url, platform, scraped_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  source_url = excluded.source_url,
  platform   = excluded.platform,
  scraped_at = excluded.scraped_at;
`, set.Company, set.SourceURL, string(set.Platform), set.ScrapedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO postings
  (company, position, title, location, department, seniority, work_mode,
   salary_min, salary_max, salary_currency, url, platform)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, j := range set.Jobs {
		var smin, smax sql.NullInt64
		cur := ""
		if j.Salary != nil {
			smin = sql.NullInt64{Int64: int64(j.Salary.Min), Valid: true}
			smax = sql.NullInt64{Int64: int64(j.Salary.Max), Valid: true}
			cur = j.Salary.Currency
		}
		if _, err := stmt.Exec(
			set.Company, i, j.Title, j.Location, j.Department,
			string(j.Seniority), string(j.Work),
			smin, smax, cur, j.URL, string(j.SourcePlatform),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSnapshot loads the last stored job set for a company. Returns
// (nil, nil) when the company is unknown.
func GetSnapshot(db *sql.DB, company string) (*domain.CompanyJobSet, error) {
	set := &domain.CompanyJobSet{Company: company}

	var platform, scrapedAt string
	err := db.QueryRow(`
SELECT source_url, platform, scraped_at FROM companies WHERE name = ?;
`, company).Scan(&set.SourceURL, &platform, &scrapedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	set.Platform = domain.Platform(platform)
	if t, err := time.Parse(time.RFC3339, scrapedAt); err == nil {
		set.ScrapedAt = t
	}

	rows, err := db.Query(`
SELECT title, location, department, seniority, work_mode,
       salary_min, salary_max, salary_currency, url, platform
FROM postings WHERE company = ? ORDER BY position;
`, company)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var j domain.JobPosting
		var sen, work, plat string
		var smin, smax sql.NullInt64
		var cur string
		if err := rows.Scan(&j.Title, &j.Location, &j.Department, &sen, &work,
			&smin, &smax, &cur, &j.URL, &plat); err != nil {
			return nil, err
		}
		j.Seniority = domain.Seniority(sen)
		j.Work = domain.WorkArrangement(work)
		j.SourcePlatform = domain.Platform(plat)
		if smin.Valid && smax.Valid {
			j.Salary = &domain.SalaryRange{Min: int(smin.Int64), Max: int(smax.Int64), Currency: cur}
		}
		set.Jobs = append(set.Jobs, j)
	}
	return set, rows.Err()
}

// CompanyInfo is a row in the stored-company listing.
type CompanyInfo struct {
	Name      string    `json:"name"`
	SourceURL string    `json:"source_url"`
	Platform  string    `json:"platform"`
	ScrapedAt time.Time `json:"scraped_at"`
	JobCount  int       `json:"job_count"`
}

func ListCompanies(db *sql.DB) ([]CompanyInfo, error) {
	rows, err := db.Query(`
SELECT c.name, c.source_url, c.platform, c.scraped_at,
       (SELECT COUNT(*) FROM postings p WHERE p.company = c.name)
FROM companies c ORDER BY c.name;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CompanyInfo{}
	for rows.Next() {
		var ci CompanyInfo
		var scrapedAt string
		if err := rows.Scan(&ci.Name, &ci.SourceURL, &ci.Platform, &scrapedAt, &ci.JobCount); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, scrapedAt); err == nil {
			ci.ScrapedAt = t
		}
		out = append(out, ci)
	}
	return out, rows.Err()
}

// DeleteCompany removes a stored snapshot. Reports whether anything
// was deleted.
func DeleteCompany(db *sql.DB, company string) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM postings WHERE company = ?;`, company); err != nil {
		return false, err
	}
	res, err := tx.Exec(`DELETE FROM companies WHERE name = ?;`, company)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, tx.Commit()
}
