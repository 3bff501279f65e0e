// Package main provides a small client for watching the SafeSpace live feed.
// It enters the community, joins a chat room, connects to the feed WebSocket,
// and prints every event until interrupted.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8390", "API server host")
	roomID := flag.Int64("room", 1, "Chat room to join")
	duration := flag.Duration("duration", 0, "How long to watch (0 = until interrupted)")
	flag.Parse()

	log.Printf("Watching live feed on %s (room %d)", *host, *roomID)

	if err := post(*host, "/api/enter", nil); err != nil {
		log.Fatalf("Failed to enter community: %v", err)
	}
	if err := post(*host, fmt.Sprintf("/api/rooms/%d/join", *roomID), nil); err != nil {
		log.Fatalf("Failed to join room %d: %v", *roomID, err)
	}

	wsURL := url.URL{Scheme: "ws", Host: *host, Path: "/ws/feed"}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to feed: %v", err)
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}

			var event struct {
				Type    string `json:"type"`
				Message *struct {
					AuthorHandle string `json:"author_handle"`
					Content      string `json:"content"`
				} `json:"message"`
				Notice *struct {
					Kind    string `json:"kind"`
					Message string `json:"message"`
				} `json:"notice"`
			}
			if err := json.Unmarshal(message, &event); err != nil {
				log.Printf("Unparseable event: %s", message)
				continue
			}

			switch event.Type {
			case "message":
				if event.Message != nil {
					fmt.Printf("[%s] %s\n", event.Message.AuthorHandle, event.Message.Content)
				}
			case "notice":
				if event.Notice != nil {
					fmt.Printf("(%s) %s\n", event.Notice.Kind, event.Notice.Message)
				}
			case "render":
				log.Printf("State update received")
			}
		}
	}()

	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(*duration)
	}

	select {
	case <-interrupt:
		log.Println("Interrupted")
	case <-timeout:
		log.Println("Done watching")
	case <-done:
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = post(*host, "/api/rooms/leave", nil)
}

func post(host, path string, body any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := http.Post("http://"+host+path, "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
