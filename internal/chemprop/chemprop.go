// Copyright Iowa State University, 2026. All rights reserved.

// Package chemprop invokes the external chemprop predictor as a synchronous
// subprocess behind a narrow interface, so the model runtime can be swapped
// without touching the feature pipeline.
package chemprop

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	binPredict    = "chemprop_predict"
	modelFilename = "model.pt"
)

var (
	// ErrExternalProcess reports a predictor subprocess that failed or
	// produced no result table. There is no retry: this is a batch-of-one
	// tool, not a service.
	ErrExternalProcess = errors.New("chemprop prediction failed")

	// ErrResultParse reports a result table without the expected
	// row/column shape.
	ErrResultParse = errors.New("prediction result unparseable")
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) (string, error) {
	var errBuf strings.Builder
	cmd := exec.Command(name, args...)
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return errBuf.String(), err
}

// Runner invokes chemprop_predict against a fixed model checkpoint.
type Runner struct {
	modelPath string
	exec      executor
}

// NewRunner validates that modelDir holds the model checkpoint and that
// the predictor binary is on PATH, returning a Runner bound to them.
func NewRunner(modelDir string) (*Runner, error) {
	return newRunner(modelDir, &osExecutor{})
}

func newRunner(modelDir string, ex executor) (*Runner, error) {
	modelPath := filepath.Join(modelDir, modelFilename)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model checkpoint not found at %s: %w", modelPath, err)
	}
	if _, err := ex.LookPath(binPredict); err != nil {
		return nil, fmt.Errorf("%w: %s not on PATH", ErrExternalProcess, binPredict)
	}
	return &Runner{modelPath: modelPath, exec: ex}, nil
}

// Predict runs the predictor over the structure and feature tables and
// returns the prediction text from the result table. The call blocks until
// the subprocess exits.
func (r *Runner) Predict(testPath, featuresPath, predsPath string) (string, error) {
	args := []string{
		"--num_workers", "0",
		"--test_path", testPath,
		"--features_path", featuresPath,
		"--checkpoint_path", r.modelPath,
		"--preds_path", predsPath,
	}
	if stderr, err := r.exec.Run(binPredict, args...); err != nil {
		return "", fmt.Errorf("%w: %v: %s", ErrExternalProcess, err, strings.TrimSpace(stderr))
	}

	data, err := os.ReadFile(predsPath)
	if err != nil {
		return "", fmt.Errorf("%w: no result table at %s", ErrExternalProcess, predsPath)
	}
	return ParseResult(string(data))
}

// ParseResult extracts the prediction from the result table: line index 1,
// comma field index 1, trailing line terminator stripped. The value must
// parse as a float but is passed through as text so the model's own
// formatting survives.
func ParseResult(table string) (string, error) {
	lines := strings.Split(table, "\n")
	if len(lines) < 2 {
		return "", fmt.Errorf("%w: table has %d lines, need a header and a data row", ErrResultParse, len(lines))
	}
	fields := strings.Split(lines[1], ",")
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: data row %q has %d fields", ErrResultParse, lines[1], len(fields))
	}
	value := strings.TrimSuffix(strings.TrimSuffix(fields[1], "\r"), " ")
	value = strings.TrimSpace(value)
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return "", fmt.Errorf("%w: field %q is not numeric", ErrResultParse, fields[1])
	}
	return value, nil
}
