package analytics

import "github.com/complainthub/complainthub/internal/domain"

// ScopeTickets restricts a ticket collection to what the acting user may see.
// Admins see everything, brand users see their brand's tickets, customers see
// their own. An unauthenticated caller sees nothing rather than causing an
// error.
func ScopeTickets(tickets []domain.Ticket, user *domain.User) []domain.Ticket {
	if user == nil {
		return []domain.Ticket{}
	}
	switch user.Role {
	case domain.RoleAdmin:
		return tickets
	case domain.RoleBrandUser:
		if user.BrandID == nil {
			return []domain.Ticket{}
		}
		scoped := make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.BrandID == *user.BrandID {
				scoped = append(scoped, t)
			}
		}
		return scoped
	case domain.RoleUser:
		scoped := make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.OwnerID == user.ID {
				scoped = append(scoped, t)
			}
		}
		return scoped
	}
	return []domain.Ticket{}
}
