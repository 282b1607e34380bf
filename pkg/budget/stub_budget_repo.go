package budget

import "context"

// StubBudgetRepo is an in-memory BudgetRepo for tests.
type StubBudgetRepo struct {
	doc *Document
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{doc: NewDocument()}
}

func (r *StubBudgetRepo) View(ctx context.Context, fn func(doc *Document) error) error {
	return fn(r.doc)
}

func (r *StubBudgetRepo) Update(ctx context.Context, fn func(doc *Document) error) error {
	return fn(r.doc)
}

func (r *StubBudgetRepo) Cleanup() {
	r.doc = NewDocument()
}
