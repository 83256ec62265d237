package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

const (
	baseURL  = "http://localhost:8000/api/reply/v1"
	senderId = "14155550100"
)

// Simplified DTOs for the script
type ReplyRequest struct {
	SenderId string `json:"sender_id"`
	Message  string `json:"message"`
}

type ReplyResponse struct {
	Data struct {
		SessionId string `json:"session_id"`
		MessageId string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"data"`
}

var (
	userColor   = color.New(color.FgCyan, color.Bold)
	statusColor = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
	infoColor   = color.New(color.FgGreen)
)

func main() {
	apiSecret := os.Getenv("INTELLIGENCE_API_SECRET")

	infoColor.Println("=== Feedback Conversation Simulator ===")
	fmt.Printf("Endpoint: %s\nSender:   %s\n", baseURL, senderId)
	fmt.Println("Type a message and press enter. Ctrl+D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		userColor.Print("\nYOU: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		start := time.Now()
		res, err := sendReply(apiSecret, text)
		elapsed := time.Since(start)

		if err != nil {
			errColor.Printf("Error: %v\n", err)
			continue
		}

		statusColor.Printf("-> session=%s status=%s (%v)\n",
			res.Data.SessionId, res.Data.Status, elapsed)
	}
}

func sendReply(apiSecret, text string) (*ReplyResponse, error) {
	payload := ReplyRequest{
		SenderId: senderId,
		Message:  text,
	}
	jsonBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", baseURL, bytes.NewBuffer(jsonBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Intelligence-Api-Secret", apiSecret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API Error %d: %s", resp.StatusCode, string(body))
	}

	var res ReplyResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
