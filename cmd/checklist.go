package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spigell/resume-scorer/internal/checklist"
	"github.com/spigell/resume-scorer/internal/resume"

	"github.com/spf13/cobra"
)

type checklistView struct {
	Version        string                     `json:"version"`
	SectionWeights map[resume.Section]float64 `json:"sectionWeights"`
	Sections       []checklist.Section        `json:"sections"`
}

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Print the scoring checklist as json",
	Run: func(_ *cobra.Command, _ []string) {
		registry := checklist.Default()
		if err := registry.Validate(); err != nil {
			log.Fatalf("checklist is broken: %v", err)
		}

		pretty, err := json.MarshalIndent(checklistView{
			Version:        registry.Version(),
			SectionWeights: checklist.DefaultSectionWeights(),
			Sections:       registry.Sections(),
		}, "", "  ")
		if err != nil {
			log.Fatalf("encoding checklist: %v", err)
		}
		fmt.Println(string(pretty))
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd)
}
