package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Command is one inbound user message with its sender identity.
type Command struct {
	UserID   string
	UserName string
	ChatID   string
	Text     string
}

// CommandHandler is called for each received command; the returned
// string, if non-empty, is sent back to the originating chat.
type CommandHandler func(cmd Command) string

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		From *struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
		} `json:"from"`
		Chat *struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?offset=%d&timeout=30", t.BotToken, offset)
		req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
		if err != nil {
			log.Printf("[ERROR] create polling request: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] polling request failed: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("[WARN] read polling response: %v", err)
			continue
		}

		var result struct {
			OK     bool             `json:"ok"`
			Result []telegramUpdate `json:"result"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			log.Printf("[WARN] decode polling response: %v", err)
			continue
		}

		for _, update := range result.Result {
			offset = update.UpdateID + 1
			msg := update.Message
			if msg == nil || msg.Text == "" || msg.From == nil || msg.Chat == nil {
				continue
			}
			cmd := Command{
				UserID:   strconv.FormatInt(msg.From.ID, 10),
				UserName: msg.From.FirstName,
				ChatID:   strconv.FormatInt(msg.Chat.ID, 10),
				Text:     strings.TrimSpace(msg.Text),
			}
			log.Printf("[INFO] received command from %s: %s", cmd.UserID, cmd.Text)
			// Each command runs in its own goroutine; analysis pipelines
			// share no mutable state.
			go func(cmd Command) {
				reply := handler(cmd)
				if reply != "" {
					if err := t.SendTo(cmd.ChatID, reply); err != nil {
						log.Printf("[ERROR] send reply: %v", err)
					}
				}
			}(cmd)
		}
	}
}
