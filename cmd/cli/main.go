package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "groupledger-cli",
		Short: "GroupLedger CLI tool",
		Long:  `A command line interface for interacting with the GroupLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GroupLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "Request timeout")

	rootCmd.AddCommand(uploadCmd(), orgsCmd(), consolidationCmd(), kpiCmd(), cashflowCmd(), reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func uploadCmd() *cobra.Command {
	var uploadType, period string

	cmd := &cobra.Command{
		Use:   "upload <file.csv>",
		Short: "Upload a CSV export",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			uploadFile(args[0], uploadType, period)
		},
	}
	cmd.Flags().StringVar(&uploadType, "type", "journal_lines", "Upload type (journal_lines, customer_invoices, ...)")
	cmd.Flags().StringVar(&period, "period", "", "Fallback period YYYY-MM for rows without dates")

	return cmd
}

func orgsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "List organizations",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/organizations/", nil)
		},
	}
}

func consolidationCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "consolidation",
		Short: "Show the group consolidation for a period",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/consolidation/", url.Values{"period": {period}})
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "Reporting period YYYY-MM (defaults to latest)")

	return cmd
}

func kpiCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "kpi <organization-id>",
		Short: "Calculate KPIs for an organization",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/organizations/"+args[0]+"/kpis?period="+url.QueryEscape(period), nil)
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "Reporting period YYYY-MM")
	cmd.MarkFlagRequired("period")

	return cmd
}

func cashflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Cashflow operations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "forecast",
		Short: "Show the 12-month cashflow forecast",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/cashflow/forecast", nil)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Show the treasury overview",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/cashflow/summary", nil)
		},
	})

	return cmd
}

func reportCmd() *cobra.Command {
	var reportType, period, organizationID, outFile string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report and save the CSV",
		Run: func(cmd *cobra.Command, args []string) {
			generateReport(reportType, period, organizationID, outFile)
		},
	}
	cmd.Flags().StringVar(&reportType, "type", "consolidation", "Report type (consolidation, income_statement, kpi_report, cashflow_forecast)")
	cmd.Flags().StringVar(&period, "period", "", "Reporting period YYYY-MM")
	cmd.Flags().StringVar(&organizationID, "org", "", "Organization ID (kpi_report only)")
	cmd.Flags().StringVar(&outFile, "out", "", "Output file (defaults to the server-assigned name)")

	return cmd
}

func uploadFile(path, uploadType, period string) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if _, err := io.Copy(part, file); err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}
	mw.WriteField("type", uploadType)
	if period != "" {
		mw.WriteField("period", period)
	}
	mw.Close()

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/uploads/", mw.FormDataContentType(), &buf)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func generateReport(reportType, period, organizationID, outFile string) {
	payload, _ := json.Marshal(map[string]string{
		"type":            reportType,
		"period":          period,
		"organization_id": organizationID,
	})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/reports/?download=true", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Report generation FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if outFile == "" {
		outFile = fmt.Sprintf("%s_%s.csv", reportType, time.Now().Format("20060102_150405"))
	}
	out, err := os.Create(outFile)
	if err != nil {
		fmt.Printf("Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		fmt.Printf("Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report saved to %s\n", outFile)
}

func getJSON(path string, query url.Values) {
	target := baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(target)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, body []byte) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
