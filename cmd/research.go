package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/company-research/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research <company name>",
	Short: "Research a single company and print the merged record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		researcher, err := newResearcher(cfg)
		if err != nil {
			return err
		}

		rec, err := researcher.Research(cmd.Context(), args[0])
		if err != nil {
			if eris.Is(err, research.ErrAllSourcesFailed) {
				zap.L().Error("all sources failed", zap.String("company", args[0]))
			}
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
}
