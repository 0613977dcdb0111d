package notify

import (
	"fmt"

	"imobhub/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier sends new-lead alerts to the tenant's configured chat.
// A nil notifier is a valid no-op, so callers never branch on configuration.
type TelegramNotifier struct {
	logger *zap.Logger
	bot    *tgbotapi.BotAPI
}

// NewTelegramNotifier builds a notifier from the bot token. An empty token
// returns nil, which disables alerts.
func NewTelegramNotifier(token string, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &TelegramNotifier{logger: logger, bot: bot}, nil
}

// NotifyNewLead sends a formatted lead summary. Failures are logged and
// returned, but callers treat them as non-fatal.
func (n *TelegramNotifier) NotifyNewLead(chatID int64, lead model.Lead) error {
	if n == nil || chatID == 0 {
		return nil
	}

	text := fmt.Sprintf(
		"Novo lead: %s\nTelefone: %s\nOrigem: %s\nStatus: %s",
		lead.Name, lead.Phone, lead.Source, lead.Status,
	)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("error sending lead alert",
			zap.Error(err), zap.Int64("chat_id", chatID), zap.Uint("lead_id", lead.ID))
		return err
	}
	return nil
}
