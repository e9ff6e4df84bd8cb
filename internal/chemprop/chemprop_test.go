// Copyright Iowa State University, 2026. All rights reserved.

package chemprop

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runFunc       func(name string, args []string) (string, error)
	gotName       string
	gotArgs       []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(name string, args ...string) (string, error) {
	m.gotName = name
	m.gotArgs = args
	if m.runFunc != nil {
		return m.runFunc(name, args)
	}
	return "", nil
}

func modelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "model.pt"), []byte("checkpoint"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNewRunner(t *testing.T) {
	tests := []struct {
		name    string
		dir     func(t *testing.T) string
		bins    map[string]bool
		wantErr string
	}{
		{
			name: "model and binary present",
			dir:  modelDir,
			bins: map[string]bool{"chemprop_predict": true},
		},
		{
			name:    "missing checkpoint",
			dir:     func(t *testing.T) string { return t.TempDir() },
			bins:    map[string]bool{"chemprop_predict": true},
			wantErr: "model checkpoint not found",
		},
		{
			name:    "binary not on PATH",
			dir:     modelDir,
			bins:    map[string]bool{},
			wantErr: "not on PATH",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRunner(tt.dir(t), &mockExecutor{availableBins: tt.bins})
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %v should mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPredict(t *testing.T) {
	dir := modelDir(t)
	predsPath := filepath.Join(dir, "preds.csv")

	exec := &mockExecutor{
		availableBins: map[string]bool{"chemprop_predict": true},
		runFunc: func(name string, args []string) (string, error) {
			return "", os.WriteFile(predsPath, []byte("smiles,logK\nC[N]->[Cu],8.7362\n"), 0o644)
		},
	}
	r, err := newRunner(dir, exec)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}

	got, err := r.Predict("in.csv", "feat.csv", predsPath)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != "8.7362" {
		t.Errorf("prediction = %q, want %q", got, "8.7362")
	}

	if exec.gotName != "chemprop_predict" {
		t.Errorf("invoked %q, want chemprop_predict", exec.gotName)
	}
	wantArgs := []string{
		"--num_workers", "0",
		"--test_path", "in.csv",
		"--features_path", "feat.csv",
		"--checkpoint_path", filepath.Join(dir, "model.pt"),
		"--preds_path", predsPath,
	}
	if strings.Join(exec.gotArgs, " ") != strings.Join(wantArgs, " ") {
		t.Errorf("argv = %v, want %v", exec.gotArgs, wantArgs)
	}
}

func TestPredict_SubprocessFailure(t *testing.T) {
	dir := modelDir(t)
	exec := &mockExecutor{
		availableBins: map[string]bool{"chemprop_predict": true},
		runFunc: func(name string, args []string) (string, error) {
			return "CUDA out of memory", errors.New("exit status 1")
		},
	}
	r, err := newRunner(dir, exec)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}

	_, err = r.Predict("in.csv", "feat.csv", filepath.Join(dir, "preds.csv"))
	if !errors.Is(err, ErrExternalProcess) {
		t.Fatalf("error %v is not ErrExternalProcess", err)
	}
	if !strings.Contains(err.Error(), "CUDA out of memory") {
		t.Errorf("error should carry subprocess stderr, got: %v", err)
	}
}

func TestPredict_MissingResultTable(t *testing.T) {
	dir := modelDir(t)
	exec := &mockExecutor{
		availableBins: map[string]bool{"chemprop_predict": true},
	}
	r, err := newRunner(dir, exec)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}

	_, err = r.Predict("in.csv", "feat.csv", filepath.Join(dir, "never_written.csv"))
	if !errors.Is(err, ErrExternalProcess) {
		t.Fatalf("error %v is not ErrExternalProcess", err)
	}
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain table",
			table: "smiles,logK\nCCO,4.21\n",
			want:  "4.21",
		},
		{
			name:  "windows line endings",
			table: "smiles,logK\r\nCCO,4.21\r\n",
			want:  "4.21",
		},
		{
			name:  "negative prediction",
			table: "smiles,logK\nCCO,-0.733\n",
			want:  "-0.733",
		},
		{
			name:  "extra columns ignored",
			table: "smiles,logK,uncertainty\nCCO,4.21,0.3\n",
			want:  "4.21",
		},
		{
			name:    "header only",
			table:   "smiles,logK\n",
			wantErr: true,
		},
		{
			name:    "empty",
			table:   "",
			wantErr: true,
		},
		{
			name:    "single field row",
			table:   "smiles,logK\nCCO\n",
			wantErr: true,
		},
		{
			name:    "non-numeric prediction",
			table:   "smiles,logK\nCCO,Invalid\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResult(tt.table)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrResultParse) {
					t.Errorf("error %v is not ErrResultParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseResult = %q, want %q", got, tt.want)
			}
		})
	}
}
