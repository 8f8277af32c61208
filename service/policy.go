package service

import (
	"github.com/izzydoesit/gemini-api/models"
)

// Operation identifies a gateway operation for authorization purposes.
type Operation string

const OperationNewOrder Operation = "order/new"

// Policy is the role -> operation table. Authorization is a table lookup;
// only the trader role may submit new orders.
type Policy struct {
	allowed map[models.Role]map[Operation]bool
}

func NewPolicy() *Policy {
	return &Policy{
		allowed: map[models.Role]map[Operation]bool{
			models.RoleTrader: {OperationNewOrder: true},
		},
	}
}

// Authorize rejects any role not granted op. The rejection reuses the
// uniform InvalidSignature error rather than a distinct forbidden code, so a
// correctly authenticated but unauthorized key cannot probe role semantics.
func (p *Policy) Authorize(role models.Role, op Operation) *models.GatewayError {
	if p.allowed[role][op] {
		return nil
	}
	return models.ErrInvalidSignature()
}
