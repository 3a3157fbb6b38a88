package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

type TaskPostgreSQL struct {
	db *gorm.DB
}

func NewTaskPostgreSQL(db *gorm.DB) repositories.TaskRepository {
	return &TaskPostgreSQL{db: db}
}

func (t *TaskPostgreSQL) Create(ctx context.Context, task *models.Task) error {
	return t.db.WithContext(ctx).Create(task).Error
}

func (t *TaskPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := t.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TaskPostgreSQL) GetByStudent(ctx context.Context, studentID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := t.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Internship").
		Order("due_date ASC NULLS LAST").
		Find(&tasks).Error
	return tasks, err
}

func (t *TaskPostgreSQL) GetByInternship(ctx context.Context, internshipID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := t.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Preload("Student").
		Order("due_date ASC NULLS LAST").
		Find(&tasks).Error
	return tasks, err
}

func (t *TaskPostgreSQL) GetDueBetween(ctx context.Context, filters repositories.DueTaskFilters) ([]*models.Task, error) {
	var tasks []*models.Task
	err := t.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", filters.From, filters.To).
		Where("status IN ?", filters.Statuses).
		Preload("Student").
		Find(&tasks).Error
	return tasks, err
}

func (t *TaskPostgreSQL) Update(ctx context.Context, task *models.Task) error {
	return t.db.WithContext(ctx).Save(task).Error
}

func (t *TaskPostgreSQL) Delete(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

func (t *TaskPostgreSQL) DeleteByStudent(ctx context.Context, studentID uint) error {
	return t.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.Task{}).Error
}

func (t *TaskPostgreSQL) DeleteByAssigner(ctx context.Context, assignerID uint) error {
	return t.db.WithContext(ctx).
		Where("assigned_by = ?", assignerID).
		Delete(&models.Task{}).Error
}

func (t *TaskPostgreSQL) DeleteByInternship(ctx context.Context, internshipID uint) error {
	return t.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Delete(&models.Task{}).Error
}

func (t *TaskPostgreSQL) Count(ctx context.Context) (int64, error) {
	var total int64
	err := t.db.WithContext(ctx).Model(&models.Task{}).Count(&total).Error
	return total, err
}
