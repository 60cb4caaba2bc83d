package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/countrydata"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

// evaluateCmd computes a compliance report for a profile file without starting the server
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "compute a compliance report for a business profile file",
	Run: func(cmd *cobra.Command, _ []string) {
		err := evaluate(cmd, k.String("profile"))
		cobra.CheckErr(err)
	},
}

// init registers the evaluate command and its flags on the root command
func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().String("profile", "-", "profile file (YAML or JSON), - reads stdin")
	evaluateCmd.Flags().String("country", "", "ISO country code for national implementation data, overrides the file")
}

// evaluationFile is the document read by the evaluate command
type evaluationFile struct {
	Profile       types.BusinessProfile `yaml:"profile"`
	Revenue       *int64                `yaml:"revenue"`
	Country       string                `yaml:"country"`
	MaturityLevel types.MaturityLevel   `yaml:"maturityLevel"`
	Answers       map[string]int        `yaml:"answers"`
}

// evaluate reads the profile, builds the report against the embedded country table and prints it as JSON
func evaluate(cmd *cobra.Command, path string) error {
	in, err := readEvaluationInput(cmd, path)
	if err != nil {
		return err
	}

	static, err := countrydata.NewStaticProvider()
	if err != nil {
		return fmt.Errorf("loading country data: %w", err)
	}

	rep := report.NewBuilder(report.WithCountryProvider(static)).Build(cmd.Context(), in)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

// readEvaluationInput parses the profile file into a report input
func readEvaluationInput(cmd *cobra.Command, path string) (report.Input, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" || path == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return report.Input{}, fmt.Errorf("reading profile: %w", err)
	}

	var file evaluationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return report.Input{}, fmt.Errorf("parsing profile: %w", err)
	}

	in := report.Input{
		Profile:  file.Profile,
		Revenue:  file.Revenue,
		Country:  file.Country,
		Maturity: file.MaturityLevel,
	}

	if country := k.String("country"); country != "" {
		in.Country = country
	}

	if len(file.Answers) > 0 {
		answers, err := maturity.ParseAnswers(file.Answers)
		if err != nil {
			return report.Input{}, fmt.Errorf("parsing answers: %w", err)
		}

		in.Answers = answers
	}

	return in, nil
}
