package fcm

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging for setup alerts. Without
// credentials it stays disabled and sends are no-ops; push delivery is
// best-effort and never blocks a scan cycle.
type Client struct {
	client *messaging.Client
}

// NewClient initializes FCM from GOOGLE_APPLICATION_CREDENTIALS or
// FIREBASE_CREDENTIALS_PATH. Missing credentials are not an error.
func NewClient(ctx context.Context) (*Client, error) {
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if credPath == "" {
		log.Warn().Msg("no Firebase credentials found, push alerts disabled")
		return &Client{}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	log.Info().Msg("Firebase Cloud Messaging initialized")
	return &Client{client: client}, nil
}

// IsEnabled reports whether credentials were configured.
func (c *Client) IsEnabled() bool {
	return c.client != nil
}

// SendMulticast pushes one alert to all registered device tokens.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "swing_alerts",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	resp, err := c.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("send multicast: %w", err)
	}

	log.Debug().
		Int("success", resp.SuccessCount).
		Int("failure", resp.FailureCount).
		Msg("push alert delivered")
	return nil
}
