package policy

import (
	"github.com/onenotebe/onenotebe/internal/models"
	"github.com/onenotebe/onenotebe/internal/service"
)

type Operation string

const (
	OpReadPost      Operation = "post.read"
	OpWritePost     Operation = "post.write"
	OpReadCategory  Operation = "category.read"
	OpWriteCategory Operation = "category.write"
	OpRegister      Operation = "auth.register"
)

// Caller is the verified request identity the boundary extracted from the
// session token, or the anonymous zero value.
type Caller struct {
	Authenticated bool
	Role          string
}

type requirement int

const (
	public requirement = iota
	adminOnly
	anonymousOnly
)

var table = map[Operation]requirement{
	OpReadPost:      public,
	OpReadCategory:  public,
	OpWritePost:     adminOnly,
	OpWriteCategory: adminOnly,
	OpRegister:      anonymousOnly,
}

// Check decides whether caller may perform op. Unknown operations are
// treated as admin-only.
func Check(op Operation, caller Caller) error {
	req, ok := table[op]
	if !ok {
		req = adminOnly
	}

	switch req {
	case adminOnly:
		if !caller.Authenticated {
			return service.ErrUnauthorized
		}
		if caller.Role != models.RoleAdmin {
			return service.ErrForbidden
		}
	case anonymousOnly:
		if caller.Authenticated {
			return service.ErrForbidden
		}
	}
	return nil
}
