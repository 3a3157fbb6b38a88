package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

type ApplicationPostgreSQL struct {
	db *gorm.DB
}

func NewApplicationPostgreSQL(db *gorm.DB) repositories.ApplicationRepository {
	return &ApplicationPostgreSQL{db: db}
}

func (a *ApplicationPostgreSQL) Create(ctx context.Context, application *models.Application) error {
	err := a.db.WithContext(ctx).Create(application).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("create application: %w", repositories.ErrDuplicateKey)
	}
	return err
}

func (a *ApplicationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := a.db.WithContext(ctx).
		Preload("Student").
		Preload("Internship").
		First(&application, id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (a *ApplicationPostgreSQL) GetByStudentAndInternship(ctx context.Context, studentID, internshipID uint) (*models.Application, error) {
	var application models.Application
	err := a.db.WithContext(ctx).
		Where("student_id = ? AND internship_id = ?", studentID, internshipID).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (a *ApplicationPostgreSQL) GetByStudent(ctx context.Context, studentID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := a.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Internship").
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (a *ApplicationPostgreSQL) GetByInternship(ctx context.Context, internshipID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := a.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Preload("Student").
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (a *ApplicationPostgreSQL) GetForMentor(ctx context.Context, mentorID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := a.db.WithContext(ctx).
		Joins("JOIN internships ON internships.id = internship_applications.internship_id").
		Where("internships.created_by = ?", mentorID).
		Preload("Student").
		Preload("Internship").
		Order("internship_applications.applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (a *ApplicationPostgreSQL) Update(ctx context.Context, application *models.Application) error {
	return a.db.WithContext(ctx).Save(application).Error
}

func (a *ApplicationPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Application{}, id).Error
}

func (a *ApplicationPostgreSQL) DeleteByStudent(ctx context.Context, studentID uint) error {
	return a.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.Application{}).Error
}

func (a *ApplicationPostgreSQL) DeleteByInternship(ctx context.Context, internshipID uint) error {
	return a.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Delete(&models.Application{}).Error
}

func (a *ApplicationPostgreSQL) Count(ctx context.Context) (int64, error) {
	var total int64
	err := a.db.WithContext(ctx).Model(&models.Application{}).Count(&total).Error
	return total, err
}

func (a *ApplicationPostgreSQL) CountForMentor(ctx context.Context, mentorID uint, status *models.ApplicationStatus) (int64, error) {
	var total int64
	query := a.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN internships ON internships.id = internship_applications.internship_id").
		Where("internships.created_by = ?", mentorID)
	if status != nil {
		query = query.Where("internship_applications.status = ?", *status)
	}
	err := query.Count(&total).Error
	return total, err
}
