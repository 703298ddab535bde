package server

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// drain collects every message currently buffered in the channel
func drain(ch chan ConsoleMessage) []ConsoleMessage {
	var messages []ConsoleMessage
	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

func TestWebLogger_ForwardsFormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-1", messageChan)

	before := time.Now()
	logger.Printf("Rendering %dx%d: %d primitives\n", 40, 30, 12)
	logger.Printf("Loading %s with %d spheres...\n", "glass-row.scene", 3)

	messages := drain(messageChan)
	var got []string
	for _, msg := range messages {
		got = append(got, msg.Message)
		if msg.Level != "info" || msg.RenderID != "render-1" {
			t.Errorf("Expected info message from render-1, got %+v", msg)
		}
		if msg.Timestamp.Before(before) || time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Unexpected timestamp %v", msg.Timestamp)
		}
	}

	want := []string{
		"Rendering 40x30: 12 primitives\n",
		"Loading glass-row.scene with 3 spheres...\n",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Unexpected messages (-got +want):\n%s", diff)
	}
}

func TestWebLogger_DropsWhenChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-2", messageChan)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			logger.Printf("Tile %d done\n", i)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Logger blocked on a full channel")
	}

	// Only the first message fits
	messages := drain(messageChan)
	if len(messages) != 1 || messages[0].Message != "Tile 0 done\n" {
		t.Errorf("Expected only the first message, got %+v", messages)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	// Logging without a console only writes to the server log
	logger := NewWebLogger("render-3", nil)
	logger.Printf("Render completed in %v\n", time.Millisecond)
}
