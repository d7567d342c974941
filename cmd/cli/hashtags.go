package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

var (
	trendingLimit    int
	trendingCategory string
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending hashtags",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("%s/api/hashtags/trending?limit=%d", apiURL, trendingLimit)
		if trendingCategory != "" {
			endpoint += "&category=" + url.QueryEscape(trendingCategory)
		}

		body, err := doRequest(http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		if output == "json" {
			fmt.Println(string(body))
			return nil
		}

		var resp struct {
			Hashtags []struct {
				Name          string  `json:"name"`
				TotalUsage    int64   `json:"total_usage"`
				Last24Hours   int64   `json:"last_24h"`
				Category      string  `json:"category"`
				TrendingScore float64 `json:"trending_score"`
				Velocity      float64 `json:"velocity"`
				IsFeatured    bool    `json:"is_featured"`
			} `json:"hashtags"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("unexpected response: %w", err)
		}

		if len(resp.Hashtags) == 0 {
			fmt.Println("No trending hashtags.")
			return nil
		}

		for i, tag := range resp.Hashtags {
			pin := " "
			if tag.IsFeatured {
				pin = "*"
			}
			fmt.Printf("%2d%s #%-20s score=%-10.1f last24h=%-8d total=%-8d %s\n",
				i+1, pin, tag.Name, tag.TrendingScore, tag.Last24Hours, tag.TotalUsage, tag.Category)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a hashtag's counters and score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimPrefix(args[0], "#")
		body, err := doRequest(http.MethodGet, fmt.Sprintf("%s/api/hashtags/%s", apiURL, url.PathEscape(name)), nil)
		if err != nil {
			return err
		}
		printBody(body)
		return nil
	},
}

var banCmd = &cobra.Command{
	Use:   "ban <name>",
	Short: "Ban a hashtag (hidden from trending)",
	Args:  cobra.ExactArgs(1),
	RunE:  moderationAction("ban"),
}

var unbanCmd = &cobra.Command{
	Use:   "unban <name>",
	Short: "Unban a hashtag",
	Args:  cobra.ExactArgs(1),
	RunE:  moderationAction("unban"),
}

var featureCmd = &cobra.Command{
	Use:   "feature <name>",
	Short: "Pin a hashtag ahead of the score ordering",
	Args:  cobra.ExactArgs(1),
	RunE:  moderationAction("feature"),
}

var unfeatureCmd = &cobra.Command{
	Use:   "unfeature <name>",
	Short: "Remove a hashtag's pin",
	Args:  cobra.ExactArgs(1),
	RunE:  moderationAction("unfeature"),
}

var categoryCmd = &cobra.Command{
	Use:   "set-category <name> <category>",
	Short: "Assign a hashtag to a discovery category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimPrefix(args[0], "#")
		payload, _ := json.Marshal(map[string]string{"category": args[1]})
		body, err := doRequest(http.MethodPut,
			fmt.Sprintf("%s/api/admin/hashtags/%s/category", apiURL, url.PathEscape(name)),
			bytes.NewReader(payload))
		if err != nil {
			return err
		}
		printBody(body)
		return nil
	},
}

func moderationAction(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		name := strings.TrimPrefix(args[0], "#")
		body, err := doRequest(http.MethodPost,
			fmt.Sprintf("%s/api/admin/hashtags/%s/%s", apiURL, url.PathEscape(name), action), nil)
		if err != nil {
			return err
		}
		printBody(body)
		return nil
	}
}

func doRequest(method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s %s: %s (%s)", method, endpoint, resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func printBody(body []byte) {
	if output == "json" {
		fmt.Println(string(body))
		return
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(body))
	}
}

func init() {
	trendingCmd.Flags().IntVar(&trendingLimit, "limit", 20, "Maximum number of hashtags to return")
	trendingCmd.Flags().StringVar(&trendingCategory, "category", "", "Filter by category")
}
