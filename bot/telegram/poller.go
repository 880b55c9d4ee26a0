package telegram

import (
	"context"
	"fmt"

	"clubhouse/bot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

const pollTimeoutSeconds = 60

// Poll long-polls Telegram until ctx is cancelled. Updates of one user are
// handled in arrival order, different users concurrently.
func (c *Client) Poll(ctx context.Context, h UpdateHandler) error {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to remove webhook before polling: %w", err)
	}

	config := tgbotapi.NewUpdate(0)
	config.Timeout = pollTimeoutSeconds
	updates := c.api.GetUpdatesChan(config)

	log.Info("Polling Telegram for updates")

	seq := bot.NewSequencer()
	defer seq.Wait()

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			log.Info("Stopped polling Telegram")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			u, ok := Convert(update)
			if !ok {
				log.WithField("telegram_update_id", update.UpdateID).Debug("Ignoring unsupported update")
				continue
			}

			seq.Submit(u.UserID, func() {
				if err := c.handle(ctx, h, update, u); err != nil {
					log.WithFields(log.Fields{
						"telegram_update_id": update.UpdateID,
						"error":              err,
					}).Error("Failed to handle update")
				}
			})
		}
	}
}

// SetWebhook points Telegram at url. A non-empty secret is echoed back by
// Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (c *Client) SetWebhook(url, secret string) error {
	params := tgbotapi.Params{}
	params["url"] = url
	params.AddNonEmpty("secret_token", secret)

	if _, err := c.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	log.WithField("url", url).Info("Telegram webhook registered")
	return nil
}
