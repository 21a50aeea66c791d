package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	payloadFile string
	dryRun      bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(settleCmd)
	rootCmd.AddCommand(expensesCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(cupCmd)
	rootCmd.AddCommand(metricsCmd)

	cupCmd.AddCommand(cupCreateCmd)
	cupCmd.AddCommand(cupPlayCmd)
	cupCmd.AddCommand(cupResultsCmd)
	cupCmd.AddCommand(cupListCmd)

	for _, cmd := range []*cobra.Command{submitCmd, scoreCmd, settleCmd, expensesCmd, cupCreateCmd, cupPlayCmd} {
		cmd.Flags().StringVarP(&payloadFile, "file", "f", "", "Path to a JSON payload file")
		cmd.MarkFlagRequired("file")
	}
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Walk the pipeline without persisting or notifying")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "List all stored rounds and their pipeline state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rounds")
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a scorecard for processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/rounds", payloadFile)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a card and preview the settlement without saving it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/rounds/score", payloadFile)
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Net a list of payables into the minimal payment list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/settle", payloadFile)
	},
}

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Split and settle a trip's shared expenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/expenses/settle", payloadFile)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Advance pending rounds through the settlement pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/process"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performPostRequest(endpoint, "")
	},
}

var cupCmd = &cobra.Command{
	Use:   "cup",
	Short: "Manage cup competitions",
}

var cupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new cup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/cup/create", payloadFile)
	},
}

var cupPlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Score one leg of a cup from a completed card",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/cup/play", payloadFile)
	},
}

var cupResultsCmd = &cobra.Command{
	Use:   "results <cupID>",
	Short: "Show a cup's results and standings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/cup/results?cupID=" + args[0])
	},
}

var cupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/cups")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, file string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	var body io.Reader = bytes.NewReader(nil)
	if file != "" {
		payload, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	resp, err := http.Post(url, "application/json", body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
