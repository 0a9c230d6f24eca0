package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Stream live comment events over SSE",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, _ := cmd.Flags().GetStringSlice("topic")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err := streamEvents(ctx, serverURL, authToken, userID, topics, os.Stdout)
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}

// streamEvents opens the server's SSE endpoint and prints one line per event
// until ctx is cancelled or the stream ends.
func streamEvents(ctx context.Context, baseURL, token, user string, topics []string, w io.Writer) error {
	target := strings.TrimRight(baseURL, "/") + "/v1/events/stream"
	if len(topics) > 0 {
		q := url.Values{}
		q.Set("topics", strings.Join(topics, ","))
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connecting to stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("stream returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var topic, data string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, ":"):
			// Keepalive comment; ignore.
		case strings.HasPrefix(line, "event:"):
			topic = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "":
			if topic != "" {
				printStreamEvent(w, topic, data)
			}
			topic, data = "", ""
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("reading stream: %w", err)
	}
	return nil
}

func printStreamEvent(w io.Writer, topic, data string) {
	if jsonOutput {
		out := map[string]any{"topic": topic, "data": json.RawMessage(data)}
		line, err := json.Marshal(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
			return
		}
		fmt.Fprintln(w, string(line))
		return
	}
	fmt.Fprintf(w, "[%s] %s %s\n", time.Now().Format("15:04:05"), topic, data)
}

func init() {
	watchCmd.Flags().StringSliceP("topic", "t", nil, `topic filters, e.g. "comments.comment.*" (repeatable)`)
}
