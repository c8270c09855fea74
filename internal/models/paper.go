package models

import "gorm.io/gorm"

// Paper is a paper's metadata record. A paper is identified by its
// (Title, Year) pair.
type Paper struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Topic    string   `json:"topic"`
	Abstract string   `json:"abstract"`
	Authors  []string `json:"authors"`
}

// PaperQueryFilter is a conjunction of optional equality predicates.
// A nil field (or an empty topic / zero year) imposes no constraint.
type PaperQueryFilter struct {
	Topic *string `json:"topic"`
	Year  *int    `json:"year"`
}

// HasTopic reports whether the topic predicate is present.
func (f PaperQueryFilter) HasTopic() bool {
	return f.Topic != nil && *f.Topic != ""
}

// HasYear reports whether the year predicate is present.
func (f PaperQueryFilter) HasYear() bool {
	return f.Year != nil && *f.Year != 0
}

// PaperRecord is the relational row for a Paper.
type PaperRecord struct {
	gorm.Model
	Title    string `gorm:"not null;uniqueIndex:idx_paper_title_year"`
	Year     int    `gorm:"not null;uniqueIndex:idx_paper_title_year"`
	Topic    string `gorm:"index"`
	Abstract string
	Authors  []string `gorm:"serializer:json"`
}

func (PaperRecord) TableName() string {
	return "papers"
}

// ToPaper converts the row back into the domain record.
func (r PaperRecord) ToPaper() Paper {
	authors := r.Authors
	if authors == nil {
		authors = []string{}
	}
	return Paper{
		Title:    r.Title,
		Year:     r.Year,
		Topic:    r.Topic,
		Abstract: r.Abstract,
		Authors:  authors,
	}
}
