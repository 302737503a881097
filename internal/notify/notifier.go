// Package notify delivers new-article notifications to subscribers.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// Mailer sends a single email message.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer writes messages to the application log instead of sending them.
// Used when no SMTP server is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("[MAIL] to=%s subject=%q", to, subject)
	return nil
}

// SMTPMailer delivers messages through a plain SMTP server.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

func (m SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// RecipientSource resolves which email addresses should be notified about an
// article, given its event and author IDs.
type RecipientSource interface {
	RecipientsForArticle(eventID uint, authorIDs []uint) ([]string, error)
}

// ArticleSource loads an article with its edition, event and authors.
type ArticleSource interface {
	GetByID(id uint) (*entities.Article, error)
}

// Notifier fans a published article out to every matching subscriber.
type Notifier struct {
	articles   ArticleSource
	recipients RecipientSource
	mailer     Mailer
}

// NewNotifier creates a notifier. A nil mailer falls back to LogMailer.
func NewNotifier(articles ArticleSource, recipients RecipientSource, mailer Mailer) *Notifier {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Notifier{articles: articles, recipients: recipients, mailer: mailer}
}

// NotifyArticlePublished emails everyone subscribed to the article's event,
// to any of its authors, or to all new articles. Individual delivery failures
// are logged but do not stop the fan-out.
func (n *Notifier) NotifyArticlePublished(articleID uint) error {
	article, err := n.articles.GetByID(articleID)
	if err != nil {
		return fmt.Errorf("load article %d: %w", articleID, err)
	}

	authorIDs := make([]uint, 0, len(article.Authors))
	for _, a := range article.Authors {
		authorIDs = append(authorIDs, a.ID)
	}

	emails, err := n.recipients.RecipientsForArticle(article.Edition.EventID, authorIDs)
	if err != nil {
		return fmt.Errorf("collect recipients: %w", err)
	}
	if len(emails) == 0 {
		return nil
	}

	subject, body := composeMessage(article)

	var failed int
	for _, email := range emails {
		if err := n.mailer.Send(email, subject, body); err != nil {
			failed++
			log.Printf("Notification to %s failed: %v", email, err)
		}
	}
	log.Printf("Notified %d subscriber(s) about article %d (%d failed)", len(emails)-failed, articleID, failed)
	return nil
}

func composeMessage(article *entities.Article) (subject, body string) {
	subject = "New article published: " + article.Title

	names := make([]string, 0, len(article.Authors))
	for _, a := range article.Authors {
		names = append(names, a.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A new article has been published.\n\nTitle: %s\n", article.Title)
	if len(names) > 0 {
		fmt.Fprintf(&b, "Authors: %s\n", strings.Join(names, ", "))
	}
	if article.Edition.Event.Name != "" {
		fmt.Fprintf(&b, "Event: %s (%d)\n", article.Edition.Event.Name, article.Edition.Year)
	}
	if article.Abstract != "" {
		fmt.Fprintf(&b, "\n%s\n", article.Abstract)
	}
	return subject, b.String()
}
