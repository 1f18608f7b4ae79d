package leads

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ListFilter bounds a lead listing.
type ListFilter struct {
	Limit  int
	Offset int
}

// Repository defines the interface for lead storage
type Repository interface {
	// Create stores the lead and returns the store-assigned lead id.
	// Storing the same submission id twice returns the original id.
	Create(ctx context.Context, lead *Lead) (string, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter ListFilter) ([]*Lead, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu           sync.RWMutex
	leads        map[string]*Lead
	bySubmission map[string]string
	order        []string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads:        make(map[string]*Lead),
		bySubmission: make(map[string]string),
	}
}

// Create stores a new lead in memory, deduplicating on submission id.
func (r *InMemoryRepository) Create(ctx context.Context, lead *Lead) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.bySubmission[lead.SubmissionID]; ok {
		return id, nil
	}

	stored := *lead
	stored.LeadID = uuid.NewString()
	r.leads[stored.LeadID] = &stored
	r.bySubmission[stored.SubmissionID] = stored.LeadID
	r.order = append(r.order, stored.LeadID)

	return stored.LeadID, nil
}

// GetByID retrieves a lead by its store-assigned id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}

	return lead, nil
}

// List returns leads newest-first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := []*Lead{}
	for i := len(r.order) - 1 - filter.Offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.leads[r.order[i]])
	}
	return out, nil
}

var _ Repository = (*InMemoryRepository)(nil)
