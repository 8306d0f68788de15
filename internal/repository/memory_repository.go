package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tberezin/lifehub-server/internal/models"
)

// MemoryRepository is an in-memory Repository used by the test suite. It
// mirrors the PostgresRepository semantics, including the all-or-nothing
// behavior of the multi-record operations, without needing a database.
type MemoryRepository struct {
	mu           sync.RWMutex
	users        map[string]models.User
	events       map[string]models.Event
	todos        map[string]models.Todo
	transactions map[string]models.Transaction
	secretItems  map[string]models.SecretItem
	friendEdges  map[string]models.FriendRequest
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]models.User),
		events:       make(map[string]models.Event),
		todos:        make(map[string]models.Todo),
		transactions: make(map[string]models.Transaction),
		secretItems:  make(map[string]models.SecretItem),
		friendEdges:  make(map[string]models.FriendRequest),
	}
}

func copyEvent(e models.Event) models.Event {
	e.SharedWith = append(e.SharedWith[:0:0], e.SharedWith...)
	return e
}

func copyTodo(t models.Todo) models.Todo {
	if t.SyncedEventID != nil {
		id := *t.SyncedEventID
		t.SyncedEventID = &id
	}
	return t
}

func copySecretItem(s models.SecretItem) models.SecretItem {
	if s.ParentID != nil {
		id := *s.ParentID
		s.ParentID = &id
	}
	s.SharedWith = append(s.SharedWith[:0:0], s.SharedWith...)
	return s
}

// User operations
func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, nil
}

// Event operations
func (r *MemoryRepository) CreateEvent(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareEvent(event)
	r.events[event.ID] = copyEvent(*event)
	return nil
}

func (r *MemoryRepository) GetEvent(_ context.Context, eventID string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.events[eventID]; ok {
		event := copyEvent(e)
		return &event, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserEvents(_ context.Context, ownerID string) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []models.Event
	for _, e := range r.events {
		if e.OwnerID == ownerID {
			events = append(events, copyEvent(e))
		}
	}
	sortEvents(events)
	return events, nil
}

func (r *MemoryRepository) GetEventsSharedWith(_ context.Context, userID string) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []models.Event
	for _, e := range r.events {
		for _, uid := range e.SharedWith {
			if uid == userID {
				events = append(events, copyEvent(e))
				break
			}
		}
	}
	sortEvents(events)
	return events, nil
}

func sortEvents(events []models.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
}

func (r *MemoryRepository) UpdateEvent(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateEventLocked(event)
}

func (r *MemoryRepository) updateEventLocked(event *models.Event) error {
	stored, ok := r.events[event.ID]
	if !ok {
		return nil
	}
	stored.Title = event.Title
	stored.Date = event.Date
	stored.Description = event.Description
	stored.Color = event.Color
	stored.IsCompleted = event.IsCompleted
	stored.UpdatedAt = time.Now().UTC()
	r.events[event.ID] = stored
	return nil
}

func (r *MemoryRepository) ShareEvent(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[eventID]
	if !ok {
		return nil
	}
	for _, uid := range stored.SharedWith {
		if uid == userID {
			return nil
		}
	}
	stored.SharedWith = append(stored.SharedWith, userID)
	stored.UpdatedAt = time.Now().UTC()
	r.events[eventID] = stored
	return nil
}

func (r *MemoryRepository) DeleteEventCascade(_ context.Context, eventID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, t := range r.todos {
		if t.SyncedEventID != nil && *t.SyncedEventID == eventID {
			delete(r.todos, id)
			deleted++
		}
	}
	delete(r.events, eventID)
	return deleted, nil
}

// Todo operations
func (r *MemoryRepository) CreateTodo(_ context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareTodo(todo)
	r.todos[todo.ID] = copyTodo(*todo)
	return nil
}

func (r *MemoryRepository) CreateTodoWithEvent(_ context.Context, todo *models.Todo, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareEvent(event)
	r.events[event.ID] = copyEvent(*event)

	todo.SyncedEventID = &event.ID
	prepareTodo(todo)
	r.todos[todo.ID] = copyTodo(*todo)
	return nil
}

func (r *MemoryRepository) GetTodo(_ context.Context, todoID string) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.todos[todoID]; ok {
		todo := copyTodo(t)
		return &todo, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserTodos(_ context.Context, ownerID string) ([]models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var todos []models.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			todos = append(todos, copyTodo(t))
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].Date != todos[j].Date {
			return todos[i].Date < todos[j].Date
		}
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})
	return todos, nil
}

func (r *MemoryRepository) UpdateTodo(_ context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateTodoLocked(todo)
}

func (r *MemoryRepository) updateTodoLocked(todo *models.Todo) error {
	if _, ok := r.todos[todo.ID]; !ok {
		return nil
	}
	todo.UpdatedAt = time.Now().UTC()
	r.todos[todo.ID] = copyTodo(*todo)
	return nil
}

func (r *MemoryRepository) UpdateTodoWithEvent(_ context.Context, todo *models.Todo, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.updateTodoLocked(todo); err != nil {
		return err
	}
	return r.updateEventLocked(event)
}

func (r *MemoryRepository) SyncTodo(_ context.Context, todo *models.Todo, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareEvent(event)
	r.events[event.ID] = copyEvent(*event)

	todo.SyncedEventID = &event.ID
	return r.updateTodoLocked(todo)
}

func (r *MemoryRepository) UnlinkTodo(_ context.Context, todoID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.events, eventID)
	if t, ok := r.todos[todoID]; ok {
		t.SyncedEventID = nil
		t.UpdatedAt = time.Now().UTC()
		r.todos[todoID] = t
	}
	return nil
}

func (r *MemoryRepository) DeleteTodoCascade(_ context.Context, todoID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.todos, todoID)
	if eventID != "" {
		delete(r.events, eventID)
	}
	return nil
}

// Transaction operations
func (r *MemoryRepository) CreateTransaction(_ context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	r.transactions[txn.ID] = *txn
	return nil
}

func (r *MemoryRepository) GetTransaction(_ context.Context, txnID string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.transactions[txnID]; ok {
		txn := t
		return &txn, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserTransactions(_ context.Context, ownerID string) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txns []models.Transaction
	for _, t := range r.transactions {
		if t.OwnerID == ownerID {
			txns = append(txns, t)
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].Date != txns[j].Date {
			return txns[i].Date > txns[j].Date
		}
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
	return txns, nil
}

func (r *MemoryRepository) UpdateTransaction(_ context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[txn.ID]; !ok {
		return nil
	}
	txn.UpdatedAt = time.Now().UTC()
	r.transactions[txn.ID] = *txn
	return nil
}

func (r *MemoryRepository) DeleteTransaction(_ context.Context, txnID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.transactions, txnID)
	return nil
}

func (r *MemoryRepository) GetFinanceSummary(_ context.Context, ownerID string) (float64, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var income, expense float64
	for _, t := range r.transactions {
		if t.OwnerID != ownerID {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			income += t.Amount
		case models.TransactionExpense:
			expense += t.Amount
		}
	}
	return income, expense, nil
}

// Secret item operations
func (r *MemoryRepository) CreateSecretItem(_ context.Context, item *models.SecretItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.SharedWith == nil {
		item.SharedWith = pq.StringArray{}
	}
	r.secretItems[item.ID] = copySecretItem(*item)
	return nil
}

func (r *MemoryRepository) GetSecretItem(_ context.Context, itemID string) (*models.SecretItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.secretItems[itemID]; ok {
		item := copySecretItem(s)
		return &item, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserSecretItems(_ context.Context, ownerID string) ([]models.SecretItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.SecretItem
	for _, s := range r.secretItems {
		if s.OwnerID == ownerID {
			items = append(items, copySecretItem(s))
		}
	}
	sortSecretItems(items)
	return items, nil
}

func (r *MemoryRepository) GetSecretItemsSharedWith(_ context.Context, userID string) ([]models.SecretItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.SecretItem
	for _, s := range r.secretItems {
		for _, uid := range s.SharedWith {
			if uid == userID {
				items = append(items, copySecretItem(s))
				break
			}
		}
	}
	sortSecretItems(items)
	return items, nil
}

func (r *MemoryRepository) GetSecretChildren(_ context.Context, parentID string) ([]models.SecretItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.SecretItem
	for _, s := range r.secretItems {
		if s.ParentID != nil && *s.ParentID == parentID {
			items = append(items, copySecretItem(s))
		}
	}
	sortSecretItems(items)
	return items, nil
}

func sortSecretItems(items []models.SecretItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return items[i].Type < items[j].Type
		}
		return items[i].Name < items[j].Name
	})
}

func (r *MemoryRepository) UpdateSecretItem(_ context.Context, item *models.SecretItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.secretItems[item.ID]
	if !ok {
		return nil
	}
	stored.Name = item.Name
	stored.ParentID = item.ParentID
	stored.Content = item.Content
	stored.UpdatedAt = time.Now().UTC()
	r.secretItems[item.ID] = copySecretItem(stored)
	return nil
}

func (r *MemoryRepository) ShareSecretItem(_ context.Context, itemID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.secretItems[itemID]
	if !ok {
		return nil
	}
	for _, uid := range stored.SharedWith {
		if uid == userID {
			return nil
		}
	}
	stored.SharedWith = append(stored.SharedWith, userID)
	stored.UpdatedAt = time.Now().UTC()
	r.secretItems[itemID] = stored
	return nil
}

func (r *MemoryRepository) DeleteSecretItems(_ context.Context, itemIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range itemIDs {
		delete(r.secretItems, id)
	}
	return nil
}

// Friend graph operations
func (r *MemoryRepository) CreateFriendRequest(_ context.Context, req *models.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	r.friendEdges[req.ID] = *req
	return nil
}

func (r *MemoryRepository) GetFriendEdge(_ context.Context, userA, userB string) (*models.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.friendEdges {
		if (e.Requester == userA && e.Receiver == userB) ||
			(e.Requester == userB && e.Receiver == userA) {
			edge := e
			return &edge, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) AcceptFriendRequest(_ context.Context, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	edge, ok := r.friendEdges[requestID]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	edge.Status = models.FriendStatusAccepted
	edge.RespondedAt = &now
	r.friendEdges[requestID] = edge
	return nil
}

func (r *MemoryRepository) DeleteFriendRequest(_ context.Context, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.friendEdges, requestID)
	return nil
}

func (r *MemoryRepository) GetFriendIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, e := range r.friendEdges {
		if e.Status != models.FriendStatusAccepted {
			continue
		}
		if e.Requester == userID {
			ids = append(ids, e.Receiver)
		} else if e.Receiver == userID {
			ids = append(ids, e.Requester)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemoryRepository) GetPendingSentIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, e := range r.friendEdges {
		if e.Status == models.FriendStatusPending && e.Requester == userID {
			ids = append(ids, e.Receiver)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemoryRepository) GetPendingReceivedIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, e := range r.friendEdges {
		if e.Status == models.FriendStatusPending && e.Receiver == userID {
			ids = append(ids, e.Requester)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemoryRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	edge, err := r.GetFriendEdge(ctx, userA, userB)
	if err != nil {
		return false, err
	}
	return edge != nil && edge.Status == models.FriendStatusAccepted, nil
}
