package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/placelift/place-audit/internal/model"
)

var analyzeFlags struct {
	url     string
	name    string
	address string
	phone   string
	plan    string
	depth   string
	debug   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one listing and print the report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags()
		if err != nil {
			return err
		}

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}

		out, err := analyzer.Analyze(cmd.Context(), req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if out.Blocked != nil {
			return enc.Encode(out.Blocked)
		}
		return enc.Encode(out.Response)
	},
}

func requestFromFlags() (model.AnalyzeRequest, error) {
	var req model.AnalyzeRequest

	switch {
	case analyzeFlags.url != "":
		req.Input = model.AnalyzeInput{
			Mode:     model.ModePlaceURL,
			PlaceURL: analyzeFlags.url,
		}
	case analyzeFlags.name != "":
		req.Input = model.AnalyzeInput{
			Mode:    model.ModeBizSearch,
			Name:    analyzeFlags.name,
			Address: analyzeFlags.address,
			Phone:   analyzeFlags.phone,
		}
	default:
		return req, eris.New("either --url or --name is required")
	}

	plan := model.Plan(analyzeFlags.plan)
	if !plan.Valid() {
		return req, eris.Errorf("unknown plan %q", analyzeFlags.plan)
	}
	depth := model.Depth(analyzeFlags.depth)
	if depth != model.DepthStandard && depth != model.DepthDeep {
		return req, eris.Errorf("unknown depth %q", analyzeFlags.depth)
	}

	req.Options = model.AnalyzeOptions{
		Plan:     plan,
		Language: "ko",
		Depth:    depth,
		Debug:    analyzeFlags.debug,
	}
	return req, nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.url, "url", "", "listing URL (place_url mode)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.name, "name", "", "business name (biz_search mode)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.address, "address", "", "business address (biz_search mode)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.phone, "phone", "", "business phone (biz_search mode)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.plan, "plan", "free", "plan tier (free|pro)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.depth, "depth", "standard", "analysis depth (standard|deep)")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.debug, "debug", false, "include the extraction attempt trail")
	rootCmd.AddCommand(analyzeCmd)
}
