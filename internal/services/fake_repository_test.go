package services

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

// fakeRepository is an in-memory Repository. WithTransaction snapshots the
// whole state and restores it when the closure fails, so the services'
// all-or-nothing behavior is observable without a database.
type fakeRepository struct {
	state *fakeState
}

type fakeState struct {
	// mu guards the notification map and the ID counter, which background
	// notification dispatch touches concurrently with the test goroutine.
	// Pointer so snapshots and restores share one lock.
	mu *sync.Mutex

	users         map[uint]*models.User
	internships   map[uint]*models.Internship
	applications  map[uint]*models.Application
	tasks         map[uint]*models.Task
	feedback      map[uint]*models.Feedback
	notifications map[uint]*models.Notification
	nextID        uint

	// failOn forces an error from the named operation, e.g.
	// "tasks.DeleteByStudent".
	failOn map[string]error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{state: &fakeState{
		mu:            &sync.Mutex{},
		users:         map[uint]*models.User{},
		internships:   map[uint]*models.Internship{},
		applications:  map[uint]*models.Application{},
		tasks:         map[uint]*models.Task{},
		feedback:      map[uint]*models.Feedback{},
		notifications: map[uint]*models.Notification{},
		failOn:        map[string]error{},
	}}
}

func (s *fakeState) id() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

func (s *fakeState) fail(op string) error {
	return s.failOn[op]
}

func (s *fakeState) clone() *fakeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &fakeState{
		mu:            s.mu,
		users:         make(map[uint]*models.User, len(s.users)),
		internships:   make(map[uint]*models.Internship, len(s.internships)),
		applications:  make(map[uint]*models.Application, len(s.applications)),
		tasks:         make(map[uint]*models.Task, len(s.tasks)),
		feedback:      make(map[uint]*models.Feedback, len(s.feedback)),
		notifications: make(map[uint]*models.Notification, len(s.notifications)),
		nextID:        s.nextID,
		failOn:        s.failOn,
	}
	for id, u := range s.users {
		cp := *u
		c.users[id] = &cp
	}
	for id, i := range s.internships {
		cp := *i
		c.internships[id] = &cp
	}
	for id, a := range s.applications {
		cp := *a
		c.applications[id] = &cp
	}
	for id, t := range s.tasks {
		cp := *t
		c.tasks[id] = &cp
	}
	for id, f := range s.feedback {
		cp := *f
		c.feedback[id] = &cp
	}
	for id, n := range s.notifications {
		cp := *n
		c.notifications[id] = &cp
	}
	return c
}

func (f *fakeRepository) Users() repositories.UserRepository { return &fakeUsers{f.state} }
func (f *fakeRepository) Internships() repositories.InternshipRepository {
	return &fakeInternships{f.state}
}
func (f *fakeRepository) Applications() repositories.ApplicationRepository {
	return &fakeApplications{f.state}
}
func (f *fakeRepository) Tasks() repositories.TaskRepository       { return &fakeTasks{f.state} }
func (f *fakeRepository) Feedback() repositories.FeedbackRepository { return &fakeFeedback{f.state} }
func (f *fakeRepository) Notifications() repositories.NotificationRepository {
	return &fakeNotifications{f.state}
}

func (f *fakeRepository) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	snapshot := f.state.clone()
	if err := fn(f); err != nil {
		*f.state = *snapshot
		return err
	}
	return nil
}

func (f *fakeRepository) Ping(context.Context) error { return nil }
func (f *fakeRepository) Close() error               { return nil }

// ----- seeding helpers -----

func (f *fakeRepository) seedUser(role models.UserRole, email string) *models.User {
	user := &models.User{
		ID:       f.state.id(),
		Email:    email,
		FullName: string(role) + " user",
		Role:     role,
		IsActive: true,
	}
	f.state.users[user.ID] = user
	return user
}

func (f *fakeRepository) seedInternship(createdBy uint) *models.Internship {
	internship := &models.Internship{
		ID:        f.state.id(),
		Title:     "Backend Internship",
		Company:   "Acme",
		CreatedBy: createdBy,
		IsActive:  true,
	}
	f.state.internships[internship.ID] = internship
	return internship
}

func (f *fakeRepository) seedApplication(studentID, internshipID uint) *models.Application {
	application := &models.Application{
		ID:           f.state.id(),
		StudentID:    studentID,
		InternshipID: internshipID,
		Status:       models.ApplicationPending,
	}
	f.state.applications[application.ID] = application
	return application
}

func (f *fakeRepository) seedTask(studentID, internshipID, assignedBy uint) *models.Task {
	task := &models.Task{
		ID:           f.state.id(),
		Title:        "Write tests",
		StudentID:    studentID,
		InternshipID: internshipID,
		AssignedBy:   assignedBy,
		Status:       models.TaskPending,
	}
	f.state.tasks[task.ID] = task
	return task
}

func (f *fakeRepository) seedFeedback(studentID, mentorID, internshipID uint) *models.Feedback {
	fb := &models.Feedback{
		ID:           f.state.id(),
		StudentID:    studentID,
		MentorID:     mentorID,
		InternshipID: internshipID,
		Rating:       4,
	}
	f.state.feedback[fb.ID] = fb
	return fb
}

func (f *fakeRepository) counts() (users, internships, applications, tasks, feedback int) {
	s := f.state
	return len(s.users), len(s.internships), len(s.applications), len(s.tasks), len(s.feedback)
}

// ----- users -----

type fakeUsers struct{ s *fakeState }

func (r *fakeUsers) Create(_ context.Context, user *models.User) error {
	if err := r.s.fail("users.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.s.id()
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsers) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range r.s.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		cp := *user
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeUsers) Update(_ context.Context, user *models.User) error {
	if err := r.s.fail("users.Update"); err != nil {
		return err
	}
	if _, ok := r.s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUsers) Delete(_ context.Context, id uint) error {
	if err := r.s.fail("users.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *fakeUsers) CountByRole(_ context.Context, role *models.UserRole) (int64, error) {
	var n int64
	for _, user := range r.s.users {
		if role == nil || user.Role == *role {
			n++
		}
	}
	return n, nil
}

// ----- internships -----

type fakeInternships struct{ s *fakeState }

func (r *fakeInternships) Create(_ context.Context, internship *models.Internship) error {
	if err := r.s.fail("internships.Create"); err != nil {
		return err
	}
	internship.ID = r.s.id()
	r.s.internships[internship.ID] = internship
	return nil
}

func (r *fakeInternships) GetByID(_ context.Context, id uint) (*models.Internship, error) {
	internship, ok := r.s.internships[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *internship
	return &cp, nil
}

func (r *fakeInternships) List(_ context.Context, filters repositories.InternshipFilters) ([]*models.Internship, int64, error) {
	var out []*models.Internship
	for _, internship := range r.s.internships {
		if filters.ActiveOnly && !internship.IsActive {
			continue
		}
		cp := *internship
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeInternships) GetByCreator(_ context.Context, creatorID uint) ([]*models.Internship, error) {
	var out []*models.Internship
	for _, internship := range r.s.internships {
		if internship.CreatedBy == creatorID {
			cp := *internship
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeInternships) Update(_ context.Context, internship *models.Internship) error {
	if _, ok := r.s.internships[internship.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *internship
	r.s.internships[internship.ID] = &cp
	return nil
}

func (r *fakeInternships) Delete(_ context.Context, id uint) error {
	if err := r.s.fail("internships.Delete"); err != nil {
		return err
	}
	delete(r.s.internships, id)
	return nil
}

func (r *fakeInternships) Count(context.Context) (int64, error) {
	return int64(len(r.s.internships)), nil
}

// ----- applications -----

type fakeApplications struct{ s *fakeState }

func (r *fakeApplications) Create(_ context.Context, application *models.Application) error {
	if err := r.s.fail("applications.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.applications {
		if existing.StudentID == application.StudentID && existing.InternshipID == application.InternshipID {
			return gorm.ErrDuplicatedKey
		}
	}
	application.ID = r.s.id()
	r.s.applications[application.ID] = application
	return nil
}

func (r *fakeApplications) GetByID(_ context.Context, id uint) (*models.Application, error) {
	application, ok := r.s.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *application
	return &cp, nil
}

func (r *fakeApplications) GetByStudentAndInternship(_ context.Context, studentID, internshipID uint) (*models.Application, error) {
	for _, application := range r.s.applications {
		if application.StudentID == studentID && application.InternshipID == internshipID {
			cp := *application
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeApplications) GetByStudent(_ context.Context, studentID uint) ([]*models.Application, error) {
	var out []*models.Application
	for _, application := range r.s.applications {
		if application.StudentID == studentID {
			cp := *application
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeApplications) GetByInternship(_ context.Context, internshipID uint) ([]*models.Application, error) {
	var out []*models.Application
	for _, application := range r.s.applications {
		if application.InternshipID == internshipID {
			cp := *application
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeApplications) GetForMentor(_ context.Context, mentorID uint) ([]*models.Application, error) {
	var out []*models.Application
	for _, application := range r.s.applications {
		internship, ok := r.s.internships[application.InternshipID]
		if ok && internship.CreatedBy == mentorID {
			cp := *application
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeApplications) Update(_ context.Context, application *models.Application) error {
	if _, ok := r.s.applications[application.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *application
	r.s.applications[application.ID] = &cp
	return nil
}

func (r *fakeApplications) Delete(_ context.Context, id uint) error {
	if _, ok := r.s.applications[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.applications, id)
	return nil
}

func (r *fakeApplications) DeleteByStudent(_ context.Context, studentID uint) error {
	if err := r.s.fail("applications.DeleteByStudent"); err != nil {
		return err
	}
	for id, application := range r.s.applications {
		if application.StudentID == studentID {
			delete(r.s.applications, id)
		}
	}
	return nil
}

func (r *fakeApplications) DeleteByInternship(_ context.Context, internshipID uint) error {
	if err := r.s.fail("applications.DeleteByInternship"); err != nil {
		return err
	}
	for id, application := range r.s.applications {
		if application.InternshipID == internshipID {
			delete(r.s.applications, id)
		}
	}
	return nil
}

func (r *fakeApplications) Count(context.Context) (int64, error) {
	return int64(len(r.s.applications)), nil
}

func (r *fakeApplications) CountForMentor(_ context.Context, mentorID uint, status *models.ApplicationStatus) (int64, error) {
	var n int64
	for _, application := range r.s.applications {
		internship, ok := r.s.internships[application.InternshipID]
		if !ok || internship.CreatedBy != mentorID {
			continue
		}
		if status != nil && application.Status != *status {
			continue
		}
		n++
	}
	return n, nil
}

// ----- tasks -----

type fakeTasks struct{ s *fakeState }

func (r *fakeTasks) Create(_ context.Context, task *models.Task) error {
	if err := r.s.fail("tasks.Create"); err != nil {
		return err
	}
	task.ID = r.s.id()
	r.s.tasks[task.ID] = task
	return nil
}

func (r *fakeTasks) GetByID(_ context.Context, id uint) (*models.Task, error) {
	task, ok := r.s.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTasks) GetByStudent(_ context.Context, studentID uint) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range r.s.tasks {
		if task.StudentID == studentID {
			cp := *task
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTasks) GetByInternship(_ context.Context, internshipID uint) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range r.s.tasks {
		if task.InternshipID == internshipID {
			cp := *task
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTasks) GetDueBetween(_ context.Context, filters repositories.DueTaskFilters) ([]*models.Task, error) {
	if err := r.s.fail("tasks.GetDueBetween"); err != nil {
		return nil, err
	}
	var out []*models.Task
	for _, task := range r.s.tasks {
		if task.DueDate == nil || task.DueDate.Before(filters.From) || task.DueDate.After(filters.To) {
			continue
		}
		matched := false
		for _, status := range filters.Statuses {
			if task.Status == status {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		cp := *task
		if student, ok := r.s.users[task.StudentID]; ok {
			sc := *student
			cp.Student = &sc
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTasks) Update(_ context.Context, task *models.Task) error {
	if _, ok := r.s.tasks[task.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *task
	r.s.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTasks) Delete(_ context.Context, id uint) error {
	if _, ok := r.s.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *fakeTasks) DeleteByStudent(_ context.Context, studentID uint) error {
	if err := r.s.fail("tasks.DeleteByStudent"); err != nil {
		return err
	}
	for id, task := range r.s.tasks {
		if task.StudentID == studentID {
			delete(r.s.tasks, id)
		}
	}
	return nil
}

func (r *fakeTasks) DeleteByAssigner(_ context.Context, assignerID uint) error {
	if err := r.s.fail("tasks.DeleteByAssigner"); err != nil {
		return err
	}
	for id, task := range r.s.tasks {
		if task.AssignedBy == assignerID {
			delete(r.s.tasks, id)
		}
	}
	return nil
}

func (r *fakeTasks) DeleteByInternship(_ context.Context, internshipID uint) error {
	if err := r.s.fail("tasks.DeleteByInternship"); err != nil {
		return err
	}
	for id, task := range r.s.tasks {
		if task.InternshipID == internshipID {
			delete(r.s.tasks, id)
		}
	}
	return nil
}

func (r *fakeTasks) Count(context.Context) (int64, error) {
	return int64(len(r.s.tasks)), nil
}

// ----- feedback -----

type fakeFeedback struct{ s *fakeState }

func (r *fakeFeedback) Create(_ context.Context, feedback *models.Feedback) error {
	feedback.ID = r.s.id()
	r.s.feedback[feedback.ID] = feedback
	return nil
}

func (r *fakeFeedback) GetByID(_ context.Context, id uint) (*models.Feedback, error) {
	feedback, ok := r.s.feedback[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *feedback
	return &cp, nil
}

func (r *fakeFeedback) GetByStudent(_ context.Context, studentID uint) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, feedback := range r.s.feedback {
		if feedback.StudentID == studentID {
			cp := *feedback
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFeedback) GetByMentor(_ context.Context, mentorID uint) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, feedback := range r.s.feedback {
		if feedback.MentorID == mentorID {
			cp := *feedback
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFeedback) GetByInternship(_ context.Context, internshipID uint) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, feedback := range r.s.feedback {
		if feedback.InternshipID == internshipID {
			cp := *feedback
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFeedback) Update(_ context.Context, feedback *models.Feedback) error {
	if _, ok := r.s.feedback[feedback.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *feedback
	r.s.feedback[feedback.ID] = &cp
	return nil
}

func (r *fakeFeedback) DeleteByParticipant(_ context.Context, userID uint) error {
	if err := r.s.fail("feedback.DeleteByParticipant"); err != nil {
		return err
	}
	for id, feedback := range r.s.feedback {
		if feedback.StudentID == userID || feedback.MentorID == userID {
			delete(r.s.feedback, id)
		}
	}
	return nil
}

func (r *fakeFeedback) DeleteByInternship(_ context.Context, internshipID uint) error {
	if err := r.s.fail("feedback.DeleteByInternship"); err != nil {
		return err
	}
	for id, feedback := range r.s.feedback {
		if feedback.InternshipID == internshipID {
			delete(r.s.feedback, id)
		}
	}
	return nil
}

// ----- notifications -----

type fakeNotifications struct{ s *fakeState }

func (r *fakeNotifications) Create(_ context.Context, notification *models.Notification) error {
	notification.ID = r.s.id()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotifications) GetByUser(_ context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Notification
	for _, notification := range r.s.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		cp := *notification
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeNotifications) MarkRead(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	notification, ok := r.s.notifications[id]
	if !ok || notification.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	notification.IsRead = true
	return nil
}

func (r *fakeNotifications) DeleteByUser(_ context.Context, userID uint) error {
	if err := r.s.fail("notifications.DeleteByUser"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, notification := range r.s.notifications {
		if notification.UserID == userID {
			delete(r.s.notifications, id)
		}
	}
	return nil
}
