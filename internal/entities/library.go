package entities

import (
	"time"
)

// Event is a recurring academic event (conference, symposium, workshop).
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Editions    []Edition `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"editions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Edition is one occurrence of an Event in a given year.
type Edition struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	EventID   uint       `gorm:"index" json:"event_id"`
	Event     Event      `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Year      int        `gorm:"index" json:"year"`
	Location  string     `gorm:"size:255" json:"location,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Articles  []Article  `gorm:"foreignKey:EditionID;constraint:OnDelete:CASCADE" json:"articles,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Author is a paper author. Authors are deduplicated by name: every code
// path that attaches authors goes through get-or-create.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Articles  []Article `gorm:"many2many:article_authors;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Article is one published paper filed under an edition.
type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"index;size:500" json:"title"`
	Abstract string `gorm:"type:text" json:"abstract,omitempty"`

	// PDFURL points at an external copy; PDFFile is the relative path of a
	// locally stored upload. When both are set the local file wins.
	PDFURL    string `gorm:"size:2048" json:"pdf_url,omitempty"`
	PDFFile   string `gorm:"size:1024" json:"pdf_file,omitempty"`
	PageCount int    `json:"page_count,omitempty"`

	EditionID uint     `gorm:"index" json:"edition_id"`
	Edition   Edition  `gorm:"foreignKey:EditionID" json:"edition,omitempty"`
	Authors   []Author `gorm:"many2many:article_authors;" json:"authors,omitempty"`

	// BibTeX holds the raw source block the article was imported from.
	BibTeX    string    `gorm:"type:text" json:"bibtex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription registers an email address for new-article notifications.
// AuthorID and EventID are both optional: a subscription with neither set is
// a general subscription and matches every new article.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;size:255" json:"email"`
	AuthorID  *uint     `gorm:"index" json:"author_id,omitempty"`
	Author    *Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	EventID   *uint     `gorm:"index" json:"event_id,omitempty"`
	Event     *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

func (Edition) TableName() string {
	return "editions"
}

func (Author) TableName() string {
	return "authors"
}

func (Article) TableName() string {
	return "articles"
}

func (Subscription) TableName() string {
	return "subscriptions"
}
