package visitlog

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	ListByVisitor(ctx context.Context, visitorID string) ([]Entry, error)
}
