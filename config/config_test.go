package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestValidateAndAddDefaults(t *testing.T) {
	cnf := Configuration{}

	err := cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cnf.ProjectName != "Concilia Server" {
		t.Errorf("Expected default project name, got %q", cnf.ProjectName)
	}
	if cnf.Server.Port != DEFAULT_PORT {
		t.Errorf("Expected default port %s, got %s", DEFAULT_PORT, cnf.Server.Port)
	}
	if cnf.Reconciliation.ToleranceCents != DefaultToleranceCents {
		t.Errorf("Expected default tolerance %d, got %d", DefaultToleranceCents, cnf.Reconciliation.ToleranceCents)
	}
	if cnf.Reconciliation.DefaultPageSize != DefaultPageSize {
		t.Errorf("Expected default page size %d, got %d", DefaultPageSize, cnf.Reconciliation.DefaultPageSize)
	}
	if cnf.Reconciliation.SuggestionMaxDistance != DefaultSuggestionMaxDistance {
		t.Errorf("Expected default suggestion distance %d, got %d", DefaultSuggestionMaxDistance, cnf.Reconciliation.SuggestionMaxDistance)
	}

	// Negative tolerance is a configuration mistake.
	cnf = Configuration{Reconciliation: ReconciliationConfig{ToleranceCents: -1}}
	if err := cnf.validateAndAddDefaults(); err == nil {
		t.Error("Expected error for negative tolerance, got nil")
	}

	// Negative suggestion distance disables suggestions.
	cnf = Configuration{Reconciliation: ReconciliationConfig{SuggestionMaxDistance: -1}}
	if err := cnf.validateAndAddDefaults(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cnf.Reconciliation.SuggestionMaxDistance != 0 {
		t.Errorf("Expected suggestions disabled, got %d", cnf.Reconciliation.SuggestionMaxDistance)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "concilia.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName: "Temp Project",
		Redis: RedisConfig{
			Dns: "temp-redis",
		},
		Reconciliation: ReconciliationConfig{
			ToleranceCents: 5,
		},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close()

	os.Setenv("CONCILIA_PROJECT_NAME", "Env Project")
	defer os.Unsetenv("CONCILIA_PROJECT_NAME")

	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("loadConfigFromFile failed: %v", err)
	}

	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if loadedConfig.ProjectName != "Env Project" {
		t.Errorf("Expected ProjectName to be 'Env Project', got '%s'", loadedConfig.ProjectName)
	}

	if loadedConfig.Redis.Dns != "temp-redis" {
		t.Errorf("Expected Redis.Dns to be 'temp-redis', got '%s'", loadedConfig.Redis.Dns)
	}

	if loadedConfig.Reconciliation.ToleranceCents != 5 {
		t.Errorf("Expected tolerance 5, got %d", loadedConfig.Reconciliation.ToleranceCents)
	}
}

func TestInitConfig(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "concilia.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName: "InitConfig Test",
		Redis: RedisConfig{
			Dns: "localhost:6379",
		},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close()

	if err := InitConfig(tmpFile.Name()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if loadedConfig.ProjectName != "InitConfig Test" {
		t.Errorf("Expected ProjectName to be 'InitConfig Test', got '%s'", loadedConfig.ProjectName)
	}
}
