package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/planktonid/taxocard"
	"github.com/planktonid/taxocard/carddoc"
)

var configFile string

// rulesConfig mirrors the [rules] table of an optional config file,
// overriding the built-in validation constants.
type rulesConfig struct {
	Rules struct {
		AllowedAngles   []float64 `toml:"allowed_angles"`
		MaxCurveParts   int       `toml:"max_curve_parts"`
		FontSizeDivisor float64   `toml:"font_size_divisor"`
	} `toml:"rules"`
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [card.html]",
	Short: "Verify a taxonomic identification card",
	Long: `Verify reads a card file, validates its structure and content, and
lists every defect found. The whole card is checked in one pass, so a
single run reports all problems at once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardPath := args[0]

		if _, err := os.Stat(cardPath); os.IsNotExist(err) {
			return fmt.Errorf("card file not found: %s", cardPath)
		}

		opts, err := loadOptions(configFile)
		if err != nil {
			return err
		}

		card, diags, err := taxocard.ReadFileOptions(cardPath, opts)
		if err != nil {
			return fmt.Errorf("reading card: %v", err)
		}

		if len(diags) == 0 {
			color.Green("Card for taxon %d (%s) is valid: %d view(s).",
				card.TaxoID, card.InstrumentID, card.Schemas.Len())
			return nil
		}

		color.Red("Card '%s' has %d defect(s):", cardPath, len(diags))
		for i, d := range diags {
			fmt.Printf("%d. %s\n", i+1, d)
		}
		return fmt.Errorf("verification failed")
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&configFile, "config", "c", "", "TOML file overriding the validation rules")
}

// loadOptions builds the read options, applying a config file over the
// defaults when one is given.
func loadOptions(path string) (carddoc.ReadOptions, error) {
	opts := carddoc.DefaultReadOptions()
	if path == "" {
		return opts, nil
	}
	var cfg rulesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return opts, fmt.Errorf("reading config file: %v", err)
	}
	if len(cfg.Rules.AllowedAngles) > 0 {
		opts.SVG.AllowedAngles = cfg.Rules.AllowedAngles
	}
	if cfg.Rules.MaxCurveParts > 0 {
		opts.SVG.MaxCurveParts = cfg.Rules.MaxCurveParts
	}
	if cfg.Rules.FontSizeDivisor > 0 {
		opts.SVG.FontSizeDivisor = cfg.Rules.FontSizeDivisor
	}
	return opts, nil
}
