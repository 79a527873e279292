package services

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/YetundeAlabi/E-voting/models"
)

// Sender delivers a single email. Delivery is best effort everywhere in
// this package: failures are logged, never surfaced to end users.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail over SMTP.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	return d.DialAndSend(m)
}

// SendVerificationEmail mails the signed verification link to a freshly
// signed-up user. Errors are logged and swallowed.
func SendVerificationEmail(sender Sender, user *models.User, token, baseURL string) {
	if sender == nil {
		return
	}
	link := fmt.Sprintf("%s/email-verify?token=%s", baseURL, token)
	body := fmt.Sprintf("Hi %s Use the link below to verify your email\n%s", user.FirstName, link)
	if err := sender.Send(user.Email, "Verify your email", body); err != nil {
		slog.Warn("verification email failed", "email", user.Email, "error", err)
	}
}

// SendPollOpenEmails scans for voters of open polls who have not been
// notified yet and mails each a link to their poll. EmailSent flips only
// after a successful send, so failed deliveries are retried on the next
// run. Returns how many mails were sent and how many failed.
func SendPollOpenEmails(db *gorm.DB, sender Sender, baseURL string, now time.Time) (sent, failed int, err error) {
	var voters []models.Voter
	err = db.Joins("JOIN polls ON polls.id = voters.poll_id").
		Where("polls.is_deleted = ? AND polls.start_time <= ? AND polls.end_time >= ? AND voters.email_sent = ?",
			false, now, now, false).
		Preload("User").
		Find(&voters).Error
	if err != nil {
		return 0, 0, err
	}

	for i := range voters {
		voter := &voters[i]
		link := fmt.Sprintf("%s/polls/%d", baseURL, voter.PollID)
		body := fmt.Sprintf("Please participate in the poll. Click the link below:\n\n%s", link)

		if err := sender.Send(voter.User.Email, "Poll Notification", body); err != nil {
			slog.Warn("poll notification failed", "email", voter.User.Email, "poll_id", voter.PollID, "error", err)
			failed++
			continue
		}

		if err := db.Model(voter).Update("email_sent", true).Error; err != nil {
			slog.Warn("failed to mark voter notified", "voter_id", voter.ID, "error", err)
		}
		sent++
	}
	return sent, failed, nil
}
