package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreatePhoneNumberParams represents parameters for registering a number
type CreatePhoneNumberParams struct {
	TenantID uuid.UUID
	Number   string
	AgentID  *uuid.UUID
}

const sqlCreatePhoneNumber = `
INSERT INTO phone_numbers (tenant_id, number, agent_id)
VALUES ($1, $2, $3)
RETURNING id, tenant_id, number, agent_id, is_active, created_at
`

// CreatePhoneNumber registers a phone number for a tenant
func (s *Store) CreatePhoneNumber(ctx context.Context, params CreatePhoneNumberParams) (PhoneNumber, error) {
	var number PhoneNumber
	err := s.db.GetContext(ctx, &number, sqlCreatePhoneNumber, params.TenantID, params.Number, params.AgentID)
	if err != nil {
		return PhoneNumber{}, fmt.Errorf("failed to create phone number: %w", err)
	}
	return number, nil
}

const sqlGetActivePhoneNumber = `
SELECT id, tenant_id, number, agent_id, is_active, created_at
FROM phone_numbers
WHERE number = $1 AND is_active = TRUE
`

// GetActivePhoneNumber retrieves an active phone number by its E.164 value
func (s *Store) GetActivePhoneNumber(ctx context.Context, number string) (PhoneNumber, error) {
	var phoneNumber PhoneNumber
	err := s.db.GetContext(ctx, &phoneNumber, sqlGetActivePhoneNumber, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PhoneNumber{}, ErrNotFound
		}
		return PhoneNumber{}, fmt.Errorf("failed to get phone number: %w", err)
	}
	return phoneNumber, nil
}

const sqlTenantOwnsPhoneNumber = `
SELECT EXISTS (
	SELECT 1 FROM phone_numbers WHERE tenant_id = $1 AND number = $2 AND is_active = TRUE
)
`

// TenantOwnsPhoneNumber reports whether the number belongs to the tenant
func (s *Store) TenantOwnsPhoneNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	var owned bool
	err := s.db.GetContext(ctx, &owned, sqlTenantOwnsPhoneNumber, tenantID, number)
	if err != nil {
		return false, fmt.Errorf("failed to check phone number ownership: %w", err)
	}
	return owned, nil
}
