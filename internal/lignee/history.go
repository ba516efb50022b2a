package lignee

import (
	"fmt"

	"lignee/internal/database/sqlc"
)

// GetHistory returns the most recent operations, ordered newest first.
func (s *LigneeService) GetHistory(limit int) ([]*sqlc.Operation, error) {
	ops, err := s.database.ListOperations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}
