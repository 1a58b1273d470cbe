package email

import (
	"context"
	"time"
)

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return c.SendEmail(ctx, to, "Welcome to Virilis!", TemplateWelcome, map[string]string{
		"UserName": name,
	})
}

// SendReminderEmail notifies a user that a reminder is due.
func (c *Client) SendReminderEmail(ctx context.Context, to, name, description string, at time.Time) error {
	return c.SendEmail(ctx, to, "Reminder: "+description, TemplateReminder, map[string]string{
		"UserName":    name,
		"Description": description,
		"DateTime":    at.UTC().Format("Mon, 02 Jan 2006 15:04 MST"),
	})
}
