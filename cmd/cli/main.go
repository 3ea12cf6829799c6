package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "picoin-cli",
		Short: "PiCoin CLI tool",
		Long:  `A command line interface for interacting with the PiCoin wallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PiCoin API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	walletCmd.AddCommand(&cobra.Command{
		Use:   "balance <user-id>",
		Short: "Show a user's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/wallets/" + args[0])
		},
	})

	walletCmd.AddCommand(&cobra.Command{
		Use:   "transactions <user-id>",
		Short: "Show a user's recent transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/wallets/" + args[0] + "/transactions")
		},
	})

	walletCmd.AddCommand(&cobra.Command{
		Use:   "withdrawals <user-id>",
		Short: "Show a user's withdrawal records",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/wallets/" + args[0] + "/withdrawals")
		},
	})

	rootCmd.AddCommand(walletCmd)

	// Reward commands
	rewardCmd := &cobra.Command{
		Use:   "reward",
		Short: "Reward operations",
	}

	rewardCmd.AddCommand(&cobra.Command{
		Use:   "quiz <user-id> <score> <total>",
		Short: "Credit a quiz completion reward",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			score, err := strconv.Atoi(args[1])
			if err != nil {
				fail("invalid score: %v", err)
			}
			total, err := strconv.Atoi(args[2])
			if err != nil {
				fail("invalid total: %v", err)
			}
			post("/api/v1/rewards/quiz", map[string]any{
				"user_id": args[0],
				"score":   score,
				"total":   total,
			})
		},
	})

	rewardCmd.AddCommand(&cobra.Command{
		Use:   "login <user-id>",
		Short: "Credit the daily login reward",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/rewards/daily-login", map[string]any{"user_id": args[0]})
		},
	})

	rewardCmd.AddCommand(&cobra.Command{
		Use:   "welcome <user-id>",
		Short: "Credit the one-time welcome bonus",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/rewards/welcome", map[string]any{"user_id": args[0]})
		},
	})

	rootCmd.AddCommand(rewardCmd)

	// Exchange command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "exchange <user-id> <amount> <address>",
		Short: "Exchange coins for the external asset",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fail("invalid amount: %v", err)
			}
			post("/api/v1/exchange", map[string]any{
				"user_id":             args[0],
				"amount":              amount,
				"destination_address": args[2],
			})
		},
	})

	// Ledger-wide commands
	rootCmd.AddCommand(&cobra.Command{
		Use:   "supply",
		Short: "Show the circulating supply",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/supply")
		},
	})

	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top users by balance",
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")
			path := "/api/v1/leaderboard"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			get(path)
		},
	}
	leaderboardCmd.Flags().Int("limit", 0, "Number of entries to return")
	rootCmd.AddCommand(leaderboardCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "events",
		Short: "Show recorded security events",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/security-events")
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fail("request failed: %v", err)
	}
	defer resp.Body.Close()
	printResponse(resp)
}

func post(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fail("failed to encode request: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fail("request failed: %v", err)
	}
	defer resp.Body.Close()
	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		fail("request rejected (status %d)", resp.StatusCode)
	}
}

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
