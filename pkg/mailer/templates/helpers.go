package templates

import (
	"fmt"
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}
func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }
func WithSenderName(name string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(name); s != "" {
			d.SenderName = s
		}
	}
}

// WithExpiry sets the absolute expiry and a human readable lifetime.
func WithExpiry(issuedAt, expiresAt time.Time) Option {
	return func(d *EmailData) {
		utc := expiresAt.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
		d.ExpiresIn = humanDuration(expiresAt.Sub(issuedAt))
	}
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		if h := int(d / time.Hour); h != 1 {
			return fmt.Sprintf("%d hours", h)
		}
		return "1 hour"
	}
	if m := int(d / time.Minute); m != 1 {
		return fmt.Sprintf("%d minutes", m)
	}
	return "1 minute"
}

// NewResetPasswordData fills the reset email fields and applies options.
func NewResetPasswordData(appName, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:       name,
		Email:      email,
		Type:       ResetPassword,
		AppName:    appName,
		SenderName: appName,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
