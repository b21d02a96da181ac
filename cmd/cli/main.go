package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "khata-cli",
		Short: "Khatabook CLI tool",
		Long:  `A command line interface for interacting with the Khatabook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Khatabook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(transactionCmd())
	rootCmd.AddCommand(paymentCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(consistencyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var kind, name, phone string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a buyer or seller account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/accounts/", map[string]string{
				"kind":  kind,
				"name":  name,
				"phone": phone,
			})
		},
	}
	createCmd.Flags().StringVar(&kind, "kind", "", "Account kind: buyer or seller")
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	createCmd.MarkFlagRequired("kind")
	createCmd.MarkFlagRequired("name")

	var listKind string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/accounts/"
			if listKind != "" {
				path += "?kind=" + listKind
			}
			return request(http.MethodGet, path, nil)
		},
	}
	listCmd.Flags().StringVar(&listKind, "kind", "", "Filter by kind: buyer or seller")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one account with its totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and its whole khata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/accounts/"+args[0], nil)
		},
	}

	statementCmd := &cobra.Command{
		Use:   "statement <id>",
		Short: "Print the account's merged statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0]+"/statement", nil)
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd, deleteCmd, statementCmd)
	return cmd
}

func transactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txn",
		Short: "Transaction entry operations",
	}

	var kind, accountID, paidNow, notes string
	var items []string

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a sale or purchase bill",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := make([]map[string]string, 0, len(items))
			for _, spec := range items {
				item, err := parseItemSpec(spec)
				if err != nil {
					return err
				}
				lines = append(lines, item)
			}

			payload := map[string]any{
				"kind":       kind,
				"account_id": accountID,
				"items":      lines,
			}
			if paidNow != "" {
				payload["paid_now"] = paidNow
			}
			if notes != "" {
				payload["notes"] = notes
			}

			return request(http.MethodPost, "/api/v1/transactions/", payload)
		},
	}
	recordCmd.Flags().StringVar(&kind, "kind", "", "Transaction kind: sell or buy")
	recordCmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	recordCmd.Flags().StringArrayVar(&items, "item", nil, "Bill line as name:quantity:unit_price (repeatable)")
	recordCmd.Flags().StringVar(&paidNow, "paid", "", "Amount paid at billing time")
	recordCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	recordCmd.MarkFlagRequired("kind")
	recordCmd.MarkFlagRequired("account")
	recordCmd.MarkFlagRequired("item")

	reverseCmd := &cobra.Command{
		Use:   "reverse <id>",
		Short: "Reverse a transaction entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/transactions/"+args[0], nil)
		},
	}

	cmd.AddCommand(recordCmd, reverseCmd)
	return cmd
}

func paymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Payment entry operations",
	}

	var kind, accountID, amount, notes string

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record money received or paid",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"kind":       kind,
				"account_id": accountID,
				"amount":     amount,
			}
			if notes != "" {
				payload["notes"] = notes
			}
			return request(http.MethodPost, "/api/v1/payments/", payload)
		},
	}
	recordCmd.Flags().StringVar(&kind, "kind", "", "Payment kind: receive or pay")
	recordCmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	recordCmd.Flags().StringVar(&amount, "amount", "", "Payment amount")
	recordCmd.MarkFlagRequired("kind")
	recordCmd.MarkFlagRequired("account")
	recordCmd.MarkFlagRequired("amount")

	reverseCmd := &cobra.Command{
		Use:   "reverse <id>",
		Short: "Reverse a payment entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/payments/"+args[0], nil)
		},
	}

	cmd.AddCommand(recordCmd, reverseCmd)
	return cmd
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show receivable/payable totals and today's activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/dashboard/summary", nil)
		},
	}
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check the ledger balance identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := request(http.MethodGet, "/api/v1/ledger/consistency", nil)
			if err != nil {
				fmt.Println("Consistency check FAILED")
				return err
			}
			fmt.Println("Consistency check PASSED")
			return nil
		},
	}
}

// parseItemSpec parses a name:quantity:unit_price bill line. The name may
// itself contain colons, so the split runs from the right.
func parseItemSpec(spec string) (map[string]string, error) {
	priceIdx := strings.LastIndexByte(spec, ':')
	if priceIdx < 0 {
		return nil, fmt.Errorf("invalid item %q, want name:quantity:unit_price", spec)
	}
	qtyIdx := strings.LastIndexByte(spec[:priceIdx], ':')
	if qtyIdx < 0 {
		return nil, fmt.Errorf("invalid item %q, want name:quantity:unit_price", spec)
	}

	name := spec[:qtyIdx]
	qty := spec[qtyIdx+1 : priceIdx]
	price := spec[priceIdx+1:]

	if name == "" {
		return nil, fmt.Errorf("invalid item %q, empty name", spec)
	}
	if _, err := decimal.NewFromString(qty); err != nil {
		return nil, fmt.Errorf("invalid quantity %q in item %q", qty, spec)
	}
	if _, err := decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("invalid unit price %q in item %q", price, spec)
	}

	return map[string]string{
		"name":       name,
		"quantity":   qty,
		"unit_price": price,
	}, nil
}

func request(method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, truncate(string(data), 500))
	}

	if len(data) > 0 {
		var decoded any
		if err := json.Unmarshal(data, &decoded); err == nil {
			printJSON(decoded)
			return nil
		}
		fmt.Println(string(data))
	}

	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
