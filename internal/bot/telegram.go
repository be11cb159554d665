package bot

import (
	"log"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v3"
)

type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// chat is a Recipient for raw chat ids or @channel usernames.
type chat string

func (c chat) Recipient() string { return string(c) }

// Notifier pushes formatted news text to a Telegram chat. A notifier
// built without credentials is disabled: Send warns and reports false so
// callers leave items unrecorded.
type Notifier struct {
	api sender
	to  tele.Recipient
}

// NewNotifier creates a Telegram notifier. Missing configuration or an
// unreachable API degrades to a disabled notifier rather than failing
// startup.
func NewNotifier(token, chatID string) *Notifier {
	if token == "" || chatID == "" {
		log.Println("Warning: TG_TOKEN/TG_CHAT not set, delivery disabled")
		return &Notifier{}
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: &http.Client{Timeout: 20 * time.Second},
	})
	if err != nil {
		log.Printf("Warning: telegram bot init failed, delivery disabled: %v", err)
		return &Notifier{}
	}
	return &Notifier{api: b, to: chat(chatID)}
}

// Send pushes text to the configured chat with link previews disabled.
// Returns false on any failure; the caller must not mark the item
// delivered in that case.
func (n *Notifier) Send(text string) bool {
	if n.api == nil {
		log.Println("Warning: telegram not configured, dropping message")
		return false
	}
	_, err := n.api.Send(n.to, text, &tele.SendOptions{DisableWebPagePreview: true})
	if err != nil {
		log.Printf("telegram send error: %v", err)
		return false
	}
	return true
}
