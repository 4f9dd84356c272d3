package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
)

// In-memory repositories for exercising the usecases without a database.
// They mirror the GORM layer's documented query semantics: soft-delete
// exclusion, window bounds, listing order, and live task counts.

type fakeTaskRepo struct {
	mu         sync.Mutex
	seq        int
	tasks      map[string]*domain.Task
	priorities *fakePriorityRepo
}

func newFakeTaskRepo(priorities *fakePriorityRepo) *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:      make(map[string]*domain.Task),
		priorities: priorities,
	}
}

func (r *fakeTaskRepo) Create(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		r.seq++
		task.ID = fmt.Sprintf("task-%d", r.seq)
	}
	task.CreatedAt = time.Now()
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) FindByID(id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.IsDeleted {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) FindByUserID(userID string, filter repository.TaskFilter) ([]*domain.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Task
	for _, task := range r.tasks {
		if task.UserID != userID || task.IsDeleted {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && (task.CategoryID == nil || *task.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.ImportantOnly && !task.IsImportant {
			continue
		}
		copied := *task
		matched = append(matched, &copied)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		li, lj := r.priorityLevel(matched[i]), r.priorityLevel(matched[j])
		if li != lj {
			return li > lj
		}
		di, dj := matched[i].DueDate, matched[j].DueDate
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if filter.Limit > 0 {
		start := filter.Offset
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

// priorityLevel returns 0 for unprioritized tasks so they sort after every
// seeded level.
func (r *fakeTaskRepo) priorityLevel(task *domain.Task) int {
	if task.PriorityID == nil || r.priorities == nil {
		return 0
	}
	priority, _ := r.priorities.FindByID(*task.PriorityID)
	if priority == nil {
		return 0
	}
	return priority.Level
}

func (r *fakeTaskRepo) Update(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) CountByStatus(userID string) (map[domain.TaskStatus]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.TaskStatus]int)
	for _, task := range r.tasks {
		if task.UserID != userID || task.IsDeleted {
			continue
		}
		counts[task.Status]++
	}
	return counts, nil
}

func (r *fakeTaskRepo) FindOverdueCandidates(userID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var candidates []*domain.Task
	for _, task := range r.tasks {
		if task.UserID != userID || task.IsDeleted {
			continue
		}
		if task.DueDate == nil || task.Status.IsTerminal() {
			continue
		}
		copied := *task
		candidates = append(candidates, &copied)
	}
	return candidates, nil
}

type fakeCategoryRepo struct {
	seq        int
	categories map[string]*domain.Category
	tasks      *fakeTaskRepo
}

func newFakeCategoryRepo(tasks *fakeTaskRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[string]*domain.Category),
		tasks:      tasks,
	}
}

func (r *fakeCategoryRepo) Create(category *domain.Category) error {
	if category.ID == "" {
		r.seq++
		category.ID = fmt.Sprintf("cat-%d", r.seq)
	}
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) FindByID(id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) FindByName(userID, name string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.UserID == userID && category.Name == name {
			copied := *category
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) FindByUserID(userID string) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, category := range r.categories {
		if category.UserID != userID || !category.IsActive {
			continue
		}
		copied := *category
		count, err := r.TaskCount(category.ID)
		if err != nil {
			return nil, err
		}
		copied.TaskCount = count
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCategoryRepo) Update(category *domain.Category) error {
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) Ensure(userID, name string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.UserID == userID && category.Name == name {
			copied := *category
			return &copied, nil
		}
	}
	category := &domain.Category{UserID: userID, Name: name, IsActive: true}
	if err := r.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// TaskCount counts live tasks only; soft-deleted rows stay out of the total.
func (r *fakeCategoryRepo) TaskCount(categoryID string) (int64, error) {
	if r.tasks == nil {
		return 0, nil
	}
	r.tasks.mu.Lock()
	defer r.tasks.mu.Unlock()
	var count int64
	for _, task := range r.tasks.tasks {
		if task.IsDeleted || task.CategoryID == nil || *task.CategoryID != categoryID {
			continue
		}
		count++
	}
	return count, nil
}

type fakePriorityRepo struct {
	priorities map[string]*domain.Priority
}

func newFakePriorityRepo() *fakePriorityRepo {
	return &fakePriorityRepo{priorities: make(map[string]*domain.Priority)}
}

func (r *fakePriorityRepo) FindByID(id string) (*domain.Priority, error) {
	priority, ok := r.priorities[id]
	if !ok {
		return nil, nil
	}
	copied := *priority
	return &copied, nil
}

func (r *fakePriorityRepo) FindAll() ([]*domain.Priority, error) {
	var result []*domain.Priority
	for _, priority := range r.priorities {
		copied := *priority
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakePriorityRepo) Seed() error {
	if len(r.priorities) > 0 {
		return nil
	}
	for i, name := range []string{"Low", "Medium", "High"} {
		id := fmt.Sprintf("prio-%d", i+1)
		r.priorities[id] = &domain.Priority{ID: id, Name: name, Level: i + 1}
	}
	return nil
}

type fakeCommentRepo struct {
	seq      int
	comments map[string]*domain.Comment
	order    []string
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *fakeCommentRepo) Create(comment *domain.Comment) error {
	if comment.ID == "" {
		r.seq++
		comment.ID = fmt.Sprintf("comment-%d", r.seq)
	}
	copied := *comment
	r.comments[comment.ID] = &copied
	r.order = append(r.order, comment.ID)
	return nil
}

func (r *fakeCommentRepo) FindByID(id string) (*domain.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) FindByTaskID(taskID string) ([]*domain.Comment, error) {
	var result []*domain.Comment
	for _, id := range r.order {
		if r.comments[id].TaskID == taskID {
			copied := *r.comments[id]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Update(comment *domain.Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

type fakeTimeLogRepo struct {
	seq  int
	logs []*domain.TimeLog
}

func newFakeTimeLogRepo() *fakeTimeLogRepo {
	return &fakeTimeLogRepo{}
}

func (r *fakeTimeLogRepo) Create(log *domain.TimeLog) error {
	if log.ID == "" {
		r.seq++
		log.ID = fmt.Sprintf("log-%d", r.seq)
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *fakeTimeLogRepo) FindByTaskID(taskID string) ([]*domain.TimeLog, error) {
	var result []*domain.TimeLog
	for _, log := range r.logs {
		if log.TaskID == taskID {
			copied := *log
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeTimeLogRepo) FindByUserInWindow(userID string, from, to time.Time) ([]*domain.TimeLog, error) {
	var result []*domain.TimeLog
	for _, log := range r.logs {
		if log.UserID != userID {
			continue
		}
		if log.CreatedAt.Before(from) || !log.CreatedAt.Before(to) {
			continue
		}
		copied := *log
		result = append(result, &copied)
	}
	return result, nil
}

type fakeReminderRepo struct {
	mu        sync.Mutex
	seq       int
	reminders map[string]*domain.Reminder
	tasks     *fakeTaskRepo
}

func newFakeReminderRepo(tasks *fakeTaskRepo) *fakeReminderRepo {
	return &fakeReminderRepo{
		reminders: make(map[string]*domain.Reminder),
		tasks:     tasks,
	}
}

func (r *fakeReminderRepo) Create(reminder *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reminder.ID == "" {
		r.seq++
		reminder.ID = fmt.Sprintf("reminder-%d", r.seq)
	}
	copied := *reminder
	r.reminders[reminder.ID] = &copied
	return nil
}

func (r *fakeReminderRepo) FindByID(id string) (*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.reminders[id]
	if !ok {
		return nil, nil
	}
	copied := *reminder
	return &copied, nil
}

func (r *fakeReminderRepo) FindByTaskID(taskID string) ([]*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Reminder
	for _, reminder := range r.reminders {
		if reminder.TaskID == taskID {
			copied := *reminder
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeReminderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reminders, id)
	return nil
}

func (r *fakeReminderRepo) FindPending() ([]repository.PendingReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []repository.PendingReminder
	for _, reminder := range r.reminders {
		if reminder.Delivered {
			continue
		}
		task, err := r.tasks.FindByID(reminder.TaskID)
		if err != nil {
			return nil, err
		}
		if task == nil || task.Status.IsTerminal() {
			continue
		}
		copied := *reminder
		pending = append(pending, repository.PendingReminder{Reminder: &copied, Task: task})
	}
	return pending, nil
}

func (r *fakeReminderRepo) MarkDelivered(id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.reminders[id]
	if !ok || reminder.Delivered {
		return false, nil
	}
	reminder.Delivered = true
	delivered := at
	reminder.DeliveredAt = &delivered
	return true, nil
}
