package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: the hyint
// reference record and one resolved file list.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	if _, err := database.Exec(
		"INSERT INTO references_registry (id, diag_script, verbosity, overwrite, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		"REF-001", "hyint.r", 1, 0, now, now,
	); err != nil {
		return fmt.Errorf("seed references: %w", err)
	}

	tags := []struct {
		kind string
		tags []string
	}{
		{"author", []string{"A_arno_en", "A_hard_jo"}},
		{"diagnostic", []string{"D_giorgi14jgr", "D_giorgi11jc"}},
		{"observation", []string{"E_erainterim"}},
		{"project", []string{"P_c3s34a"}},
	}
	for _, group := range tags {
		for pos, tag := range group.tags {
			if _, err := database.Exec(
				"INSERT INTO reference_tags (reference_id, kind, position, tag) VALUES (?, ?, ?, ?)",
				"REF-001", group.kind, pos, tag,
			); err != nil {
				return fmt.Errorf("seed reference tags: %w", err)
			}
		}
	}

	runID := "00000000-0000-0000-0000-000000000001"
	if _, err := database.Exec(
		"INSERT INTO filelist_runs (run_id, variable, created_at) VALUES (?, ?, ?)",
		runID, "pr", now,
	); err != nil {
		return fmt.Errorf("seed file list run: %w", err)
	}

	paths := []string{
		"/climo/CMIP5/CMIP5_EC-EARTH_day_historical_r8i1p1_T2Ds_pr_1980-2005.nc",
		"/climo/OBS/OBS_ERA-Interim_reanaly_1_T2Ds_pr_1980-2005.nc",
	}
	for seq, path := range paths {
		if _, err := database.Exec(
			"INSERT INTO filelist_entries (run_id, seq, variable, path, created_at) VALUES (?, ?, ?, ?, ?)",
			runID, seq, "pr", path, now,
		); err != nil {
			return fmt.Errorf("seed file list: %w", err)
		}
	}

	return nil
}
