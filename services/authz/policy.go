// Package authz is the single place role/ownership checks live. Every
// state-changing operation asks Decide instead of re-implementing the
// checks inline.
package authz

import (
	"nyumbani/models"
	"nyumbani/utils"
)

// Action names the operation being attempted against a resource.
type Action string

const (
	ActionView             Action = "view"
	ActionUpdate           Action = "update"
	ActionCancel           Action = "cancel"
	ActionAdvance          Action = "advance" // confirm / progress / complete
	ActionProcessPayment   Action = "process_payment"
	ActionSettleCommission Action = "settle_commission"
	ActionManageSettings   Action = "manage_settings"
	ActionVerifyCompany    Action = "verify_company"
)

// Actor is the authenticated caller. ProfileID is the provider profile the
// caller's account is linked to, when the role is a company role.
type Actor struct {
	ID        string
	Role      string
	ProfileID string
}

// Resource describes what the action targets: the owning customer and the
// servicing provider (property manager ID or company profile ID).
type Resource struct {
	OwnerID    string
	ProviderID string
}

func (a Actor) owns(res Resource) bool {
	return a.ID != "" && a.ID == res.OwnerID
}

func (a Actor) serves(res Resource) bool {
	switch a.Role {
	case models.RolePropertyManager:
		return a.ID != "" && a.ID == res.ProviderID
	case models.RoleGarbageCompany, models.RoleMoverCompany:
		return a.ProfileID != "" && a.ProfileID == res.ProviderID
	default:
		return false
	}
}

// Decide returns nil when the actor may perform the action on the resource,
// or a NotAuthorized service error otherwise.
func Decide(actor Actor, action Action, res Resource) error {
	if actor.Role == models.RoleAdmin {
		// Payment processing stays with the owning customer even for
		// admins; everything else an admin may do.
		if action == ActionProcessPayment && !actor.owns(res) {
			return utils.NotAuthorizedError("only the paying customer may process this payment")
		}
		return nil
	}

	switch action {
	case ActionView, ActionUpdate, ActionCancel:
		if actor.owns(res) || actor.serves(res) {
			return nil
		}
	case ActionAdvance:
		if actor.serves(res) {
			return nil
		}
	case ActionProcessPayment:
		if actor.owns(res) {
			return nil
		}
		return utils.NotAuthorizedError("only the paying customer may process this payment")
	case ActionSettleCommission, ActionManageSettings, ActionVerifyCompany:
		// Admin only; fall through.
	}

	return utils.NotAuthorizedError("not authorized")
}
