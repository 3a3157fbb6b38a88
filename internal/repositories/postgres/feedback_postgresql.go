package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

type FeedbackPostgreSQL struct {
	db *gorm.DB
}

func NewFeedbackPostgreSQL(db *gorm.DB) repositories.FeedbackRepository {
	return &FeedbackPostgreSQL{db: db}
}

func (f *FeedbackPostgreSQL) Create(ctx context.Context, feedback *models.Feedback) error {
	return f.db.WithContext(ctx).Create(feedback).Error
}

func (f *FeedbackPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := f.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (f *FeedbackPostgreSQL) GetByStudent(ctx context.Context, studentID uint) ([]*models.Feedback, error) {
	var rows []*models.Feedback
	err := f.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Mentor").
		Preload("Internship").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (f *FeedbackPostgreSQL) GetByMentor(ctx context.Context, mentorID uint) ([]*models.Feedback, error) {
	var rows []*models.Feedback
	err := f.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Preload("Student").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (f *FeedbackPostgreSQL) GetByInternship(ctx context.Context, internshipID uint) ([]*models.Feedback, error) {
	var rows []*models.Feedback
	err := f.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (f *FeedbackPostgreSQL) Update(ctx context.Context, feedback *models.Feedback) error {
	return f.db.WithContext(ctx).Save(feedback).Error
}

func (f *FeedbackPostgreSQL) DeleteByParticipant(ctx context.Context, userID uint) error {
	return f.db.WithContext(ctx).
		Where("student_id = ? OR mentor_id = ?", userID, userID).
		Delete(&models.Feedback{}).Error
}

func (f *FeedbackPostgreSQL) DeleteByInternship(ctx context.Context, internshipID uint) error {
	return f.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Delete(&models.Feedback{}).Error
}
