package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/share"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run consumes deal alerts from the channel until it is closed or ctx ends.
func (b *TelegramBot) Run(ctx context.Context, alerts <-chan entity.Deal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case deal, ok := <-alerts:
			if !ok {
				return nil
			}
			if err := b.SendDeal(ctx, deal); err != nil {
				logger(ctx).Error("failed to send deal alert", "error", err)
			}
		}
	}
}

func (b *TelegramBot) SendDeal(ctx context.Context, deal entity.Deal) error {
	text := fmt.Sprintf(
		"🔥 <b>DEAL FOUND!</b>\n\n"+
			"🛒 <b>Item:</b> %s\n"+
			"📍 <b>Buy:</b> %s at %s\n"+
			"💰 <b>Sell:</b> %s at %s\n"+
			"📈 <b>Profit:</b> %s\n\n"+
			"🔗 <a href=\"%s\">Share on WhatsApp</a>",
		deal.ItemName,
		share.FormatNaira(deal.BuyPrice),
		deal.BuyMarket,
		share.FormatNaira(deal.SellPrice),
		deal.SellMarket,
		share.FormatNaira(deal.Profit),
		share.DealLink(deal),
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}
