package types

// FeatureScheme selects which raw-feature tokens are taken from the record's
// numeric line. Two incompatible layouts exist across HostDesigner versions;
// the scheme is always configured explicitly, never inferred from the input.
type FeatureScheme string

const (
	// SchemeA takes tokens 3-5 plus everything from token 7 onward
	// (8 features for a standard 12-token line).
	SchemeA FeatureScheme = "a"

	// SchemeB takes everything from token 2 onward (10 features).
	// This matches the feature order the shipped model was trained on.
	SchemeB FeatureScheme = "b"
)

// Normalization selects how raw features are transformed before assembly.
type Normalization string

const (
	// NormalizationRaw rounds each raw value to 4 decimals with no scaling.
	NormalizationRaw Normalization = "raw"

	// NormalizationScaled applies per-position min-max scaling against the
	// fixed constant tables, then rounds to 4 decimals.
	NormalizationScaled Normalization = "scaled"
)

// FeatureConfig holds settings for record parsing and feature assembly.
type FeatureConfig struct {
	// Scheme is the raw-feature token layout: "a" or "b" (default "b").
	Scheme FeatureScheme `json:"scheme" yaml:"scheme"`

	// Normalization is "raw" or "scaled" (default "raw").
	Normalization Normalization `json:"normalization" yaml:"normalization"`

	// DonorAtoms lists atomic numbers eligible to form dative bonds to a
	// metal center (default N and O: 7, 8).
	DonorAtoms []int `json:"donor_atoms" yaml:"donor_atoms"`
}

// PredictorConfig holds settings for the external chemprop invocation.
type PredictorConfig struct {
	// ModelDir is the directory containing model.pt. Required; resolved
	// from the LOGKPREDICT_DIR environment variable when unset.
	ModelDir string `json:"model_dir" yaml:"model_dir"`

	// InputPath is the record file read by predict (default "logk_input").
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the file the prediction is written to
	// (default "logk_output").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// ManifestPath is where the per-run manifest is written
	// (default "logk_run.yaml"). Empty disables the manifest.
	ManifestPath string `json:"manifest_path" yaml:"manifest_path"`
}

// HistoryConfig holds settings for the prediction history ledger.
type HistoryConfig struct {
	// DBPath is the SQLite database file. Empty disables history.
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Features  FeatureConfig   `json:"features" yaml:"features"`
	Predictor PredictorConfig `json:"predictor" yaml:"predictor"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}

// DefaultDonorAtoms returns the configured donor set, falling back to N and O.
func (c FeatureConfig) DefaultDonorAtoms() []int {
	if len(c.DonorAtoms) == 0 {
		return []int{7, 8}
	}
	return c.DonorAtoms
}
