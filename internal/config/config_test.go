package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DROVER_SPREADSHEET_ID", "sheet-123")
	t.Setenv("DROVER_MAPS_API_KEY", "maps-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want default :8080", cfg.HTTP.Addr)
	}
	if cfg.Sheets.JobsSheet != "Jobs" || cfg.Sheets.DriversSheet != "Drivers" {
		t.Errorf("sheet names = %q/%q, want Jobs/Drivers", cfg.Sheets.JobsSheet, cfg.Sheets.DriversSheet)
	}
	if cfg.Dispatch.ClusterScoreThreshold != 15 {
		t.Errorf("ClusterScoreThreshold = %d, want 15", cfg.Dispatch.ClusterScoreThreshold)
	}
	if cfg.Dispatch.GuaranteeBandMiles != 200 {
		t.Errorf("GuaranteeBandMiles = %f, want 200", cfg.Dispatch.GuaranteeBandMiles)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DROVER_SPREADSHEET_ID", "sheet-123")
	t.Setenv("DROVER_MAPS_API_KEY", "maps-key")
	t.Setenv("DROVER_HTTP_ADDR", ":9090")
	t.Setenv("DROVER_CLUSTER_THRESHOLD", "25")
	t.Setenv("DROVER_GUARANTEE_BAND_MILES", "150.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Dispatch.ClusterScoreThreshold != 25 {
		t.Errorf("ClusterScoreThreshold = %d, want 25", cfg.Dispatch.ClusterScoreThreshold)
	}
	if cfg.Dispatch.GuaranteeBandMiles != 150.5 {
		t.Errorf("GuaranteeBandMiles = %f, want 150.5", cfg.Dispatch.GuaranteeBandMiles)
	}
}
