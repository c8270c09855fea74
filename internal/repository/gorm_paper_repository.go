package repository

import (
	"context"

	apperrors "scholar_assistant_go_backend/internal/errors"
	"scholar_assistant_go_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaperRepository keeps papers in a relational table with a unique
// (title, year) index.
type GormPaperRepository struct {
	db *gorm.DB
}

func NewGormPaperRepository(db *gorm.DB) *GormPaperRepository {
	return &GormPaperRepository{db: db}
}

func upsertOnMergeKey() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"topic", "abstract", "authors", "updated_at"}),
	}
}

func (r *GormPaperRepository) Store(ctx context.Context, paper models.Paper) error {
	if err := ValidatePaper(paper); err != nil {
		return err
	}

	record := models.PaperRecord{
		Title:    paper.Title,
		Year:     paper.Year,
		Topic:    paper.Topic,
		Abstract: paper.Abstract,
		Authors:  normalizeAuthors(paper.Authors),
	}
	if err := r.db.WithContext(ctx).Clauses(upsertOnMergeKey()).Create(&record).Error; err != nil {
		return apperrors.NewStoreError("upsert paper", err)
	}
	return nil
}

func (r *GormPaperRepository) filtered(ctx context.Context, filter models.PaperQueryFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.PaperRecord{})
	for _, p := range filterPredicates(filter) {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: p.field}, Value: p.value})
	}
	return tx
}

func (r *GormPaperRepository) Query(ctx context.Context, filter models.PaperQueryFilter) ([]models.Paper, error) {
	var records []models.PaperRecord
	if err := r.filtered(ctx, filter).Find(&records).Error; err != nil {
		return nil, apperrors.NewStoreError("query papers", err)
	}

	papers := make([]models.Paper, 0, len(records))
	for _, record := range records {
		papers = append(papers, record.ToPaper())
	}
	return papers, nil
}

func (r *GormPaperRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return apperrors.NewStoreError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.NewStoreError("ping", err)
	}
	return nil
}
