package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lifelag/lifelag/internal/api"
	"github.com/lifelag/lifelag/internal/db"
	"github.com/lifelag/lifelag/internal/services"
)

func TestPrintScoreWritesScoreCategoryAndTip(t *testing.T) {
	var out bytes.Buffer
	answers := services.Answers{Energy: 2, Sleep: 3, Structure: 3, Initiation: 3, Engagement: 3, Sustainability: 3}

	if err := printScore(&out, answers); err != nil {
		t.Fatalf("printScore returned error: %v", err)
	}

	rendered := out.String()
	for _, expected := range []string{"Lag score: 43\n", "Drift: moderate\n", "Weakest dimension: energy\n", "Focus: "} {
		if !strings.Contains(rendered, expected) {
			t.Fatalf("expected output to contain %q, got %q", expected, rendered)
		}
	}
}

func TestPrintScoreRejectsMissingAnswers(t *testing.T) {
	if err := printScore(&bytes.Buffer{}, services.Answers{Energy: 3}); err == nil {
		t.Fatal("expected error for missing answers")
	}
}

func TestScoreCommandParsesFlags(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"score", "--energy=1", "--sleep=1", "--structure=1", "--initiation=1", "--engagement=1", "--sustainability=1"})

	if err := root.Execute(); err != nil {
		t.Fatalf("score command failed: %v", err)
	}
	if !strings.Contains(out.String(), "Lag score: 80\n") || !strings.Contains(out.String(), "Drift: critical\n") {
		t.Fatalf("unexpected score output %q", out.String())
	}
}

func TestNewAppServesHealthz(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "lifelag.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey: "0123456789abcdef0123456789abcdef",
		Location:  time.UTC,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	response, err := newApp(handler).Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}
