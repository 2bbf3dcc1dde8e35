package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bozor/internal/entity"

	"github.com/resendlabs/resend-go"
)

const otpEmailTemplate = `<html lang="en">
  <body style="font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; padding: 20px;">
    <div style="max-width: 600px; margin: auto; background-color: #fff; padding: 30px; border-radius: 10px;">
      <h1 style="color: #007bff;">Hello, %s 👋</h1>
      <p>Your Bozor verification code is:</p>
      <div style="font-size: 24px; font-weight: bold; background-color: #f0f0f0; padding: 10px; border-radius: 5px; display: inline-block;">%s</div>
      <p>This code is valid for a limited time. Please do not share it with anyone.</p>
      <hr />
      <small>This email was sent by Bozor.</small>
    </div>
  </body>
</html>`

// ResendOTPSender delivers OTP codes through the Resend API.
type ResendOTPSender struct {
	client *resend.Client
	from   string
}

func NewResendOTPSender(apiKey string, from string) *ResendOTPSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendOTPSender{}
	}
	return &ResendOTPSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendOTPSender) SendOTP(ctx context.Context, user *entity.User, code string) error {
	if s.client == nil {
		return errors.New("otp sender not configured")
	}
	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{user.Email},
		Subject: "Your Bozor verification code",
		Html:    fmt.Sprintf(otpEmailTemplate, user.FullName, code),
		Text:    fmt.Sprintf("Your Bozor verification code is %s", code),
	})
	if err != nil {
		return fmt.Errorf("resend otp email: %w", err)
	}
	return nil
}
