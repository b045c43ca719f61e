// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// CategoryRuleRepository defines read access to category rules.
type CategoryRuleRepository interface {
	// FindActiveByUser retrieves active rules of the user ordered by priority (highest first).
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error)

	// Create creates a new category rule.
	Create(ctx context.Context, rule *entity.CategoryRule) error
}
