// Copyright Iowa State University, 2026. All rights reserved.

// Package predict drives the molecular feature pipeline end to end: record
// parsing, dative bond conversion, descriptor evaluation, feature assembly,
// and the external predictor invocation.
package predict

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/fzahariev/logkpredict/internal/assemble"
	"github.com/fzahariev/logkpredict/internal/chemprop"
	"github.com/fzahariev/logkpredict/internal/descriptor"
	"github.com/fzahariev/logkpredict/internal/mol"
	"github.com/fzahariev/logkpredict/internal/record"
	"github.com/fzahariev/logkpredict/pkg/types"
)

// ErrNoModelDir reports a missing model directory configuration. Raised
// before any file is read or written.
var ErrNoModelDir = errors.New("model directory not configured")

// smilesHeader is the single-column header of the structure table.
const smilesHeader = "smiles"

// Predictor is the narrow interface to the external model runtime.
type Predictor interface {
	// Predict consumes the structure and feature tables and returns the
	// prediction text from the result table it wrote to predsPath.
	Predict(testPath, featuresPath, predsPath string) (string, error)
}

// Ledger records completed predictions. Failures to record never fail the
// prediction itself.
type Ledger interface {
	Append(ts time.Time, inputHash, smiles, prediction string) error
}

// Result carries everything one pipeline invocation produced.
type Result struct {
	Prediction string
	Smiles     string
	Warnings   []string
}

// Manifest is the per-run record written next to the output file.
type Manifest struct {
	Timestamp  string   `yaml:"timestamp"`
	InputHash  string   `yaml:"input_hash"`
	Scheme     string   `yaml:"scheme"`
	Normalized string   `yaml:"normalization"`
	Smiles     string   `yaml:"smiles"`
	Prediction string   `yaml:"prediction"`
	Warnings   []string `yaml:"warnings,omitempty"`
}

// Pipeline holds the wired collaborators for one invocation.
type Pipeline struct {
	Config    types.PipelineConfig
	Calc      *descriptor.Calculator
	Predictor Predictor
	Ledger    Ledger // optional
}

// ResolveModelDir returns the configured model directory, consulting the
// LOGKPREDICT_DIR environment variable as fallback. An empty result is a
// fatal configuration error.
func ResolveModelDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if env := os.Getenv("LOGKPREDICT_DIR"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("%w: set predictor.model_dir or LOGKPREDICT_DIR", ErrNoModelDir)
}

// Run executes the pipeline over the configured input file and writes the
// prediction to the configured output file. Progress goes to w.
func (p *Pipeline) Run(w io.Writer) (*Result, error) {
	inputPath := p.Config.Predictor.InputPath
	if inputPath == "" {
		inputPath = "logk_input"
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", inputPath, err)
	}

	result, row, err := p.process(string(data), w)
	if err != nil {
		return nil, err
	}

	prediction, err := p.invoke(result.Smiles, row)
	if err != nil {
		return nil, err
	}
	result.Prediction = prediction
	fmt.Fprintf(w, "predicted logK: %s\n", prediction)

	if err := p.writeOutputs(string(data), result); err != nil {
		return nil, err
	}

	if p.Ledger != nil {
		hash := inputHash(string(data))
		if err := p.Ledger.Append(time.Now(), hash, result.Smiles, prediction); err != nil {
			fmt.Fprintf(w, "warning: history not recorded: %v\n", err)
		}
	}

	return result, nil
}

// process turns the raw record text into the cleaned SMILES and the
// assembled feature row.
func (p *Pipeline) process(input string, w io.Writer) (*Result, string, error) {
	lines := strings.Split(input, "\n")
	rec, err := record.Parse(lines, p.Config.Features.Scheme)
	if err != nil {
		return nil, "", err
	}
	fmt.Fprintf(w, "parsed record: %d raw features\n", len(rec.Features))

	m, err := mol.FromMolBlock(rec.MolBlock)
	if err != nil {
		return nil, "", err
	}

	warnings := mol.SetDativeBonds(m, p.Config.Features.DefaultDonorAtoms())
	result := &Result{}
	for _, warn := range warnings {
		result.Warnings = append(result.Warnings, warn.String())
		fmt.Fprintf(w, "warning: sanitize: %s\n", warn)
	}

	descriptors, err := p.Calc.Compute(m)
	if err != nil {
		return nil, "", err
	}

	result.Smiles = mol.CleanSmiles(mol.ToSmiles(m))
	fmt.Fprintf(w, "canonical structure: %s\n", result.Smiles)

	normalized := assemble.Normalize(rec.Features, p.Config.Features.Normalization)
	row := assemble.Row(normalized, descriptors)
	return result, row, nil
}

// invoke writes the two tabular files into a per-invocation temp directory
// and calls the predictor synchronously.
func (p *Pipeline) invoke(smiles, featureRow string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "logkpredict")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	testPath := filepath.Join(tmpDir, "input.csv")
	featuresPath := filepath.Join(tmpDir, "features.csv")
	predsPath := filepath.Join(tmpDir, "predictions.csv")

	if err := os.WriteFile(testPath, []byte(smilesHeader+"\n"+smiles+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing structure table: %w", err)
	}
	features := assemble.FeatureHeader + "\n" + featureRow + "\n"
	if err := os.WriteFile(featuresPath, []byte(features), 0o644); err != nil {
		return "", fmt.Errorf("writing feature table: %w", err)
	}

	return p.Predictor.Predict(testPath, featuresPath, predsPath)
}

// writeOutputs writes logk_output atomically, then the run manifest. A
// failed prediction never leaves a partial output file behind.
func (p *Pipeline) writeOutputs(input string, r *Result) error {
	outputPath := p.Config.Predictor.OutputPath
	if outputPath == "" {
		outputPath = "logk_output"
	}

	tmp := outputPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(r.Prediction+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	manifestPath := p.Config.Predictor.ManifestPath
	if manifestPath == "" {
		return nil
	}
	m := Manifest{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		InputHash:  inputHash(input),
		Scheme:     string(p.Config.Features.Scheme),
		Normalized: string(p.Config.Features.Normalization),
		Smiles:     r.Smiles,
		Prediction: r.Prediction,
		Warnings:   r.Warnings,
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshalling manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// NewRunner builds the production chemprop runner for the resolved model
// directory.
func NewRunner(modelDir string) (Predictor, error) {
	return chemprop.NewRunner(modelDir)
}

func inputHash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", sum[:8])
}
