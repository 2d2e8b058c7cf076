package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigInitOverwriteReplacesExistingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("stale = true\n"), 0o644); err != nil {
		t.Fatalf("write existing config: %v", err)
	}

	out, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	body, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(body), "stale = true") {
		t.Fatal("existing file was not replaced")
	}
	if !strings.Contains(string(body), "[llm]") {
		t.Fatalf("replacement is not the sample config: %q", body)
	}
}

func TestAddListShowDelete(t *testing.T) {
	configPath := writeCLIConfig(t)
	docDir := t.TempDir()
	source := filepath.Join(docDir, "fox-study.pdf")
	if err := os.WriteFile(source, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, _, err := runCLI(t, configPath, "add", source, "--authors", "Doe")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added document 1: Fox Study")

	out, _, err = runCLI(t, configPath, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Fox Study")

	out, _, err = runCLI(t, configPath, "show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Authors:  Doe")
	requireContains(t, out, "(no summary)")

	out, _, err = runCLI(t, configPath, "delete", "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	requireContains(t, out, "Deleted document 1")

	if _, _, err := runCLI(t, configPath, "show", "1"); err == nil {
		t.Fatal("expected error showing a deleted document")
	}
}

func TestApproveWithoutSummaryFails(t *testing.T) {
	configPath := writeCLIConfig(t)
	source := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(source, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if _, _, err := runCLI(t, configPath, "add", source); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, _, err := runCLI(t, configPath, "approve", "1", "1"); err == nil {
		t.Fatal("expected approval of an empty stage to fail")
	}
}

func TestInvalidArguments(t *testing.T) {
	configPath := writeCLIConfig(t)

	if _, _, err := runCLI(t, configPath, "show", "zero"); err == nil {
		t.Fatal("expected invalid id error")
	}
	if _, _, err := runCLI(t, configPath, "generate", "1", "4"); err == nil {
		t.Fatal("expected invalid stage error")
	}
}

func TestHelpersFormatting(t *testing.T) {
	if got := truncateForDisplay("one  two\nthree", 50); got != "one two three" {
		t.Fatalf("truncateForDisplay = %q", got)
	}
	if got := truncateForDisplay("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("truncateForDisplay = %q", got)
	}
	if got := yesNo(true); got != "yes" {
		t.Fatalf("yesNo = %q", got)
	}
}
