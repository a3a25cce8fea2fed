// Package testutil provides in-memory implementations of the application
// adapters for use case tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// UserRepository is an in-memory adapter.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository(users ...*entity.User) *UserRepository {
	r := &UserRepository{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

// Create rejects an email already held by another user, ignoring case.
func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainerror.ErrEmailAlreadyExists
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

// UpdatePreferences copies only the preference fields onto the stored user.
func (r *UserRepository) UpdatePreferences(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	stored.Currency = user.Currency
	stored.EmailNotifications = user.EmailNotifications
	stored.GoalAlerts = user.GoalAlerts
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// CategoryRepository is an in-memory adapter.CategoryRepository.
type CategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

// NewCategoryRepository creates a CategoryRepository holding the given categories.
func NewCategoryRepository(categories ...*entity.Category) *CategoryRepository {
	r := &CategoryRepository{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *CategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *CategoryRepository) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Category, error) {
	return r.find(func(c *entity.Category) bool { return c.OwnerID == ownerID }), nil
}

func (r *CategoryRepository) FindByOwnerAndType(
	_ context.Context,
	ownerID uuid.UUID,
	categoryType entity.CategoryType,
) ([]*entity.Category, error) {
	return r.find(func(c *entity.Category) bool {
		return c.OwnerID == ownerID && c.Type == categoryType
	}), nil
}

func (r *CategoryRepository) ExistsByNameAndOwner(_ context.Context, name string, ownerID uuid.UUID) (bool, error) {
	found := r.find(func(c *entity.Category) bool {
		return c.OwnerID == ownerID && strings.EqualFold(c.Name, name)
	})
	return len(found) > 0, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *CategoryRepository) find(match func(*entity.Category) bool) []*entity.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Category, 0)
	for _, c := range r.categories {
		if match(c) {
			copied := *c
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TransactionRepository is an in-memory adapter.TransactionRepository.
type TransactionRepository struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*entity.Transaction
}

// NewTransactionRepository creates a TransactionRepository holding the given transactions.
func NewTransactionRepository(transactions ...*entity.Transaction) *TransactionRepository {
	r := &TransactionRepository{transactions: make(map[uuid.UUID]*entity.Transaction)}
	for _, t := range transactions {
		r.transactions[t.ID] = t
	}
	return r
}

func (r *TransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *TransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *TransactionRepository) FindByUser(
	_ context.Context,
	userID uuid.UUID,
	dateRange *entity.DateRange,
) ([]*entity.Transaction, error) {
	return r.find(func(t *entity.Transaction) bool {
		return t.UserID == userID && (dateRange == nil || dateRange.Contains(t.Date))
	}), nil
}

func (r *TransactionRepository) FindByFilter(
	ctx context.Context,
	filter adapter.TransactionFilter,
	pagination adapter.TransactionPagination,
) (*entity.TransactionListResult, error) {
	all, _ := r.FindAllByFilter(ctx, filter)

	total := len(all)
	start := (pagination.Page - 1) * pagination.Limit
	if start > total {
		start = total
	}
	end := start + pagination.Limit
	if end > total {
		end = total
	}

	totalPages := 0
	if pagination.Limit > 0 {
		totalPages = (total + pagination.Limit - 1) / pagination.Limit
	}

	return &entity.TransactionListResult{
		Transactions: all[start:end],
		Total:        int64(total),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

func (r *TransactionRepository) FindAllByFilter(
	_ context.Context,
	filter adapter.TransactionFilter,
) ([]*entity.Transaction, error) {
	return r.find(func(t *entity.Transaction) bool {
		if t.UserID != filter.UserID {
			return false
		}
		if filter.StartDate != nil && entity.DateOf(t.Date).Before(entity.DateOf(*filter.StartDate)) {
			return false
		}
		if filter.EndDate != nil && entity.DateOf(t.Date).After(entity.DateOf(*filter.EndDate)) {
			return false
		}
		if filter.Type != nil && t.Type != *filter.Type {
			return false
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(filter.Search)) {
			return false
		}
		if len(filter.CategoryIDs) > 0 {
			if t.CategoryID == nil {
				return false
			}
			matched := false
			for _, id := range filter.CategoryIDs {
				if id == *t.CategoryID {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	}), nil
}

func (r *TransactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transaction.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *TransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[id]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *TransactionRepository) find(match func(*entity.Transaction) bool) []*entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Transaction, 0)
	for _, t := range r.transactions {
		if match(t) {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].Date.After(result[j].Date)
	})
	return result
}

// BudgetRepository is an in-memory adapter.BudgetRepository.
type BudgetRepository struct {
	mu      sync.Mutex
	budgets map[uuid.UUID]*entity.BudgetLimit
}

// NewBudgetRepository creates a BudgetRepository holding the given limits.
func NewBudgetRepository(budgets ...*entity.BudgetLimit) *BudgetRepository {
	r := &BudgetRepository{budgets: make(map[uuid.UUID]*entity.BudgetLimit)}
	for _, b := range budgets {
		r.budgets[b.ID] = b
	}
	return r
}

// Create enforces the same (user, category, month) uniqueness as the budgets table.
func (r *BudgetRepository) Create(_ context.Context, budget *entity.BudgetLimit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.budgets {
		if b.UserID == budget.UserID && b.CategoryID == budget.CategoryID && b.Month == budget.Month {
			return domainerror.ErrBudgetAlreadyExists
		}
	}
	copied := *budget
	r.budgets[budget.ID] = &copied
	return nil
}

func (r *BudgetRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.BudgetLimit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *BudgetRepository) FindByUserAndMonth(
	_ context.Context,
	userID uuid.UUID,
	month entity.Month,
) ([]*entity.BudgetLimit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.BudgetLimit, 0)
	for _, b := range r.budgets {
		if b.UserID == userID && b.Month == month {
			copied := *b
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *BudgetRepository) ExistsByUserCategoryMonth(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	month entity.Month,
) (bool, error) {
	budgets, _ := r.FindByUserAndMonth(ctx, userID, month)
	for _, b := range budgets {
		if b.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *BudgetRepository) Update(_ context.Context, budget *entity.BudgetLimit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[budget.ID]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	copied := *budget
	r.budgets[budget.ID] = &copied
	return nil
}

func (r *BudgetRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[id]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	delete(r.budgets, id)
	return nil
}

// GoalRepository is an in-memory adapter.GoalRepository. AddContribution holds
// the repository lock for the whole read-modify-write.
type GoalRepository struct {
	mu            sync.Mutex
	goals         map[uuid.UUID]*entity.Goal
	contributions []*entity.GoalContribution
}

// NewGoalRepository creates a GoalRepository holding the given goals.
func NewGoalRepository(goals ...*entity.Goal) *GoalRepository {
	r := &GoalRepository{goals: make(map[uuid.UUID]*entity.Goal)}
	for _, g := range goals {
		r.goals[g.ID] = g.Clone()
	}
	return r
}

func (r *GoalRepository) Create(_ context.Context, goal *entity.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[goal.ID] = goal.Clone()
	return nil
}

func (r *GoalRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	return g.Clone(), nil
}

func (r *GoalRepository) FindByUser(
	_ context.Context,
	userID uuid.UUID,
	status *entity.GoalStatus,
) ([]*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Goal, 0)
	for _, g := range r.goals {
		if g.UserID != userID || (status != nil && g.Status != *status) {
			continue
		}
		result = append(result, g.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// Modify mirrors the database implementation: the stored current amount is kept
// whatever mutate does to it.
func (r *GoalRepository) Modify(_ context.Context, goalID uuid.UUID, mutate adapter.GoalMutation) (*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.goals[goalID]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}

	working := stored.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	working.CurrentAmount = stored.CurrentAmount
	working.CreatedAt = stored.CreatedAt

	r.goals[goalID] = working.Clone()
	return working, nil
}

func (r *GoalRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return domainerror.ErrGoalNotFound
	}
	delete(r.goals, id)

	kept := r.contributions[:0]
	for _, c := range r.contributions {
		if c.GoalID != id {
			kept = append(kept, c)
		}
	}
	r.contributions = kept
	return nil
}

func (r *GoalRepository) AddContribution(
	_ context.Context,
	goalID uuid.UUID,
	apply adapter.ContributionFunc,
) (*entity.Goal, *entity.GoalContribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.goals[goalID]
	if !ok {
		return nil, nil, domainerror.ErrGoalNotFound
	}

	updated, contribution, err := apply(current.Clone())
	if err != nil {
		return nil, nil, err
	}

	r.goals[goalID] = updated.Clone()
	stored := *contribution
	r.contributions = append(r.contributions, &stored)

	return updated, contribution, nil
}

func (r *GoalRepository) ListContributions(_ context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.GoalContribution, 0)
	for i := len(r.contributions) - 1; i >= 0; i-- {
		if c := r.contributions[i]; c.GoalID == goalID {
			copied := *c
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

// ContributionCount returns how many contributions are stored for a goal.
func (r *GoalRepository) ContributionCount(goalID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.contributions {
		if c.GoalID == goalID {
			n++
		}
	}
	return n
}
