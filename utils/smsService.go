package utils

import (
	"context"
	"entrelaunch/logger"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// SMSSender posts text messages to the configured SMS gateway.
type SMSSender struct {
	client *resty.Client
	url    string
	apiKey string
	log    *logger.Logger
}

// NewSMSSender returns nil when the gateway URL is not configured; a nil sender skips every send.
func NewSMSSender(url, apiKey string, log *logger.Logger) *SMSSender {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &SMSSender{
		client: client,
		url:    url,
		apiKey: apiKey,
		log:    log.With("client", "SMSGateway"),
	}
}

func (s *SMSSender) Send(ctx context.Context, mobile, message string) error {
	if s == nil || mobile == "" {
		return nil
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetBody(map[string]string{
			"to":      mobile,
			"message": message,
		}).
		Post(s.url)
	if err != nil {
		s.log.Error("Failed to send SMS", "mobile", mobile, "error", err)
		return err
	}
	if resp.IsError() {
		s.log.Error("SMS gateway rejected message", "mobile", mobile, "status", resp.StatusCode(), "body", resp.String())
		return fmt.Errorf("sms gateway: status %d", resp.StatusCode())
	}
	return nil
}
