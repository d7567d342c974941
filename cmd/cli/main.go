package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL string = "http://localhost:8080"
	output string = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "yibu",
	Short: "YiBu CLI - Inspect and moderate trending hashtags",
	Long: `YiBu CLI provides command-line access to the hashtag trending service.
List trending tags, inspect a tag's counters, and apply moderation actions.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(banCmd)
	rootCmd.AddCommand(unbanCmd)
	rootCmd.AddCommand(featureCmd)
	rootCmd.AddCommand(unfeatureCmd)
	rootCmd.AddCommand(categoryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
