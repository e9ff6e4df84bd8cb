package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fzahariev/logkpredict/internal/descriptor"
	"github.com/fzahariev/logkpredict/internal/history"
	"github.com/fzahariev/logkpredict/internal/predict"
	"github.com/fzahariev/logkpredict/pkg/types"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict log K for one metal-ligand record",
	Long: `Predict reads a logk_input record (header line, feature line, MOL block,
$$$$ terminator), runs the molecular feature pipeline, invokes the external
chemprop predictor, and writes the predicted log K to logk_output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)

		// Configuration must be complete before any file is touched.
		modelDir, err := predict.ResolveModelDir(cfg.Predictor.ModelDir)
		if err != nil {
			return err
		}

		calc, err := descriptor.NewCalculator()
		if err != nil {
			return err
		}

		runner, err := predict.NewRunner(modelDir)
		if err != nil {
			return err
		}

		pipeline := &predict.Pipeline{
			Config:    cfg,
			Calc:      calc,
			Predictor: runner,
		}

		if cfg.History.DBPath != "" {
			store, err := history.Open(cfg.History.DBPath, cfg.History.MaxResults)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
			} else {
				defer store.Close()
				pipeline.Ledger = storeLedger{store}
			}
		}

		_, err = pipeline.Run(os.Stderr)
		return err
	},
}

// storeLedger adapts history.Store to the pipeline's Ledger interface.
type storeLedger struct {
	store *history.Store
}

func (l storeLedger) Append(ts time.Time, inputHash, smiles, prediction string) error {
	return l.store.Append(history.Entry{
		Timestamp:  ts,
		InputHash:  inputHash,
		Smiles:     smiles,
		Prediction: prediction,
	})
}

// loadConfig resolves the pipeline configuration from flags and viper.
func loadConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Features: types.FeatureConfig{
			Scheme:        types.FeatureScheme(viper.GetString("features.scheme")),
			Normalization: types.Normalization(viper.GetString("features.normalization")),
			DonorAtoms:    viper.GetIntSlice("features.donor_atoms"),
		},
		Predictor: types.PredictorConfig{
			ModelDir:     viper.GetString("predictor.model_dir"),
			InputPath:    viper.GetString("predictor.input_path"),
			OutputPath:   viper.GetString("predictor.output_path"),
			ManifestPath: viper.GetString("predictor.manifest_path"),
		},
		History: types.HistoryConfig{
			DBPath:     viper.GetString("history.db_path"),
			MaxResults: viper.GetInt("history.max_results"),
		},
	}

	if v, _ := cmd.Flags().GetString("model-dir"); v != "" {
		cfg.Predictor.ModelDir = v
	}
	if cmd.Flags().Changed("input") || cfg.Predictor.InputPath == "" {
		cfg.Predictor.InputPath, _ = cmd.Flags().GetString("input")
	}
	if cmd.Flags().Changed("output") || cfg.Predictor.OutputPath == "" {
		cfg.Predictor.OutputPath, _ = cmd.Flags().GetString("output")
	}
	if v, _ := cmd.Flags().GetString("scheme"); v != "" {
		cfg.Features.Scheme = types.FeatureScheme(v)
	}
	if v, _ := cmd.Flags().GetString("normalization"); v != "" {
		cfg.Features.Normalization = types.Normalization(v)
	}

	if cfg.Features.Scheme == "" {
		cfg.Features.Scheme = types.SchemeB
	}
	if cfg.Features.Normalization == "" {
		cfg.Features.Normalization = types.NormalizationRaw
	}
	if cfg.Predictor.ManifestPath == "" {
		cfg.Predictor.ManifestPath = "logk_run.yaml"
	}
	return cfg
}

func init() {
	predictCmd.Flags().String("model-dir", "", "directory containing model.pt (or LOGKPREDICT_DIR)")
	predictCmd.Flags().String("input", "logk_input", "input record file")
	predictCmd.Flags().String("output", "logk_output", "prediction output file")
	predictCmd.Flags().String("scheme", "", "raw feature scheme: a or b (default b)")
	predictCmd.Flags().String("normalization", "", "feature normalization: raw or scaled (default raw)")

	rootCmd.AddCommand(predictCmd)
}
