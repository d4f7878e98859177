package notification

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const DefaultTelegramBaseURL = "https://api.telegram.org"

var _ Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier sends HTML messages to one chat through the Bot API.
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

type TelegramOption func(n *TelegramNotifier)

func WithTelegramBaseURL(u string) TelegramOption {
	return func(n *TelegramNotifier) {
		if u != "" {
			n.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithTelegramHTTPClient(client *http.Client) TelegramOption {
	return func(n *TelegramNotifier) {
		n.client = client
	}
}

// WithTelegramRate paces outgoing messages, Telegram throttles bursts to a single chat.
func WithTelegramRate(every time.Duration, burst int) TelegramOption {
	return func(n *TelegramNotifier) {
		n.limiter = rate.NewLimiter(rate.Every(every), burst)
	}
}

func NewTelegramNotifier(token, chatID string, opts ...TelegramOption) *TelegramNotifier {
	n := &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		baseURL: DefaultTelegramBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// botAPI logs in on first use, so a bad token or an unreachable API only loses alerts
// and never blocks startup.
func (n *TelegramNotifier) botAPI() (*tgbotapi.BotAPI, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.bot != nil {
		return n.bot, nil
	}
	bot, err := tgbotapi.NewBotAPIWithClient(n.token, n.baseURL+"/bot%s/%s", n.client)
	if err != nil {
		return nil, err
	}
	n.bot = bot
	return bot, nil
}

func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return &NotifyError{Channel: "telegram", Err: err}
	}

	bot, err := n.botAPI()
	if err != nil {
		return &NotifyError{Channel: "telegram", Err: n.scrub(err)}
	}

	msg := tgbotapi.NewMessageToChannel(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := bot.Send(msg); err != nil {
		return &NotifyError{Channel: "telegram", Err: n.scrub(err)}
	}
	return nil
}

// scrub keeps the bot token, which is part of every request url, out of the logs.
func (n *TelegramNotifier) scrub(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	if n.token != "" && strings.Contains(err.Error(), n.token) {
		return errors.New(strings.ReplaceAll(err.Error(), n.token, "<token>"))
	}
	return err
}
