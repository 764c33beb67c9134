package authz

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// Operation identifies a gated workflow operation
type Operation string

const (
	OpPropertyCreate   Operation = "property.create"
	OpPropertyUpdate   Operation = "property.update"
	OpPropertyDelete   Operation = "property.delete"
	OpPropertyAddMedia Operation = "property.add_media"
	OpPropertyAssign   Operation = "property.assign"
	OpPropertyValidate Operation = "property.validate"
	OpPropertyFeature  Operation = "property.feature"
	OpPropertyListAll  Operation = "property.list_all"

	OpSearchRequestCreate  Operation = "search_request.create"
	OpSearchRequestApprove Operation = "search_request.approve"
	OpSearchRequestReject  Operation = "search_request.reject"
	OpSearchRequestAssign  Operation = "search_request.assign"
	OpSearchRequestFulfill Operation = "search_request.fulfill"
	OpSearchRequestCancel  Operation = "search_request.cancel"
	OpSearchRequestReview  Operation = "search_request.review"

	OpConstructionSubmit   Operation = "construction.submit"
	OpConstructionAssign   Operation = "construction.assign"
	OpConstructionQuote    Operation = "construction.quote"
	OpConstructionRespond  Operation = "construction.respond"
	OpConstructionPublish  Operation = "construction.publish"
	OpConstructionApprove  Operation = "construction.approve"
	OpConstructionReject   Operation = "construction.reject"
	OpConstructionStart    Operation = "construction.start"
	OpConstructionComplete Operation = "construction.complete"

	OpInvestmentCreate      Operation = "investment.create"
	OpInvestmentAgentCreate Operation = "investment.agent_create"
	OpInvestmentApprove     Operation = "investment.approve"
	OpInvestmentReject      Operation = "investment.reject"
	OpInvestmentSetStatus   Operation = "investment.set_status"
	OpInvestmentPropose     Operation = "investment.propose"
	OpProposalReview        Operation = "investment.review_proposal"

	OpClientRequestApprove Operation = "client_request.approve"
	OpClientRequestReject  Operation = "client_request.reject"
	OpClientRequestAssign  Operation = "client_request.assign"
	OpClientRequestReview  Operation = "client_request.review"

	OpPartnershipApply   Operation = "partnership.apply"
	OpPartnershipUpdate  Operation = "partnership.update"
	OpPartnershipApprove Operation = "partnership.approve"
	OpPartnershipReject  Operation = "partnership.reject"
	OpPartnershipReview  Operation = "partnership.review"

	OpMessageSend  Operation = "message.send"
	OpMessageReply Operation = "message.reply"

	OpActorListAgents Operation = "actor.list_agents"
	OpActorSetActive  Operation = "actor.set_active"
)

// Policy is a static role-to-operation allow table, loaded once at startup.
// The gate runs before entity resolution: a role mismatch yields Forbidden
// even when the target does not exist, so existence is never leaked.
type Policy struct {
	allow map[Operation]map[types.Role]bool
}

// rules is the default permission table, mirroring the per-route role
// requirements of the HTTP surface.
var rules = map[Operation][]types.Role{
	OpPropertyCreate:   {types.RoleProprietaire, types.RoleAdmin},
	OpPropertyUpdate:   {types.RoleProprietaire, types.RoleAdmin},
	OpPropertyDelete:   {types.RoleProprietaire, types.RoleAdmin},
	OpPropertyAddMedia: {types.RoleProprietaire, types.RoleAdmin},
	OpPropertyAssign:   {types.RoleGestionnaire, types.RoleAdmin},
	OpPropertyValidate: {types.RoleAgent},
	OpPropertyFeature:  {types.RoleAdmin},
	OpPropertyListAll:  {types.RoleGestionnaire, types.RoleAdmin},

	OpSearchRequestCreate:  {types.RoleVisiteur},
	OpSearchRequestApprove: {types.RoleGestionnaire, types.RoleAdmin},
	OpSearchRequestReject:  {types.RoleGestionnaire, types.RoleAdmin},
	OpSearchRequestAssign:  {types.RoleGestionnaire, types.RoleAdmin},
	OpSearchRequestFulfill: {types.RoleAgent},
	OpSearchRequestCancel:  {types.RoleVisiteur},
	OpSearchRequestReview:  {types.RoleGestionnaire, types.RoleAdmin},

	OpConstructionSubmit:   {types.RoleVisiteur},
	OpConstructionAssign:   {types.RoleGestionnaire, types.RoleAdmin},
	OpConstructionQuote:    {types.RoleAgent},
	OpConstructionRespond:  {types.RoleVisiteur},
	OpConstructionPublish:  {types.RoleGestionnaire, types.RoleAdmin},
	OpConstructionApprove:  {types.RoleGestionnaire, types.RoleAdmin},
	OpConstructionReject:   {types.RoleGestionnaire, types.RoleAdmin},
	OpConstructionStart:    {types.RoleGestionnaire, types.RoleAdmin},
	OpConstructionComplete: {types.RoleGestionnaire, types.RoleAdmin},

	OpInvestmentCreate:      {types.RoleAdmin},
	OpInvestmentAgentCreate: {types.RoleAgent},
	OpInvestmentApprove:     {types.RoleGestionnaire, types.RoleAdmin},
	OpInvestmentReject:      {types.RoleGestionnaire, types.RoleAdmin},
	OpInvestmentSetStatus:   {types.RoleGestionnaire, types.RoleAdmin},
	OpInvestmentPropose:     {types.RoleInvestisseur},
	OpProposalReview:        {types.RoleAdmin},

	OpClientRequestApprove: {types.RoleGestionnaire, types.RoleAdmin},
	OpClientRequestReject:  {types.RoleGestionnaire, types.RoleAdmin},
	OpClientRequestAssign:  {types.RoleGestionnaire, types.RoleAdmin},
	OpClientRequestReview:  {types.RoleGestionnaire, types.RoleAdmin},

	OpPartnershipApply:   {types.RoleEntreprise},
	OpPartnershipUpdate:  {types.RoleEntreprise},
	OpPartnershipApprove: {types.RoleAdmin},
	OpPartnershipReject:  {types.RoleAdmin},
	OpPartnershipReview:  {types.RoleAdmin},

	OpMessageSend: {
		types.RoleVisiteur, types.RoleProprietaire, types.RoleAgent,
		types.RoleInvestisseur, types.RoleEntreprise,
		types.RoleGestionnaire, types.RoleAdmin,
	},
	OpMessageReply: {
		types.RoleVisiteur, types.RoleProprietaire, types.RoleAgent,
		types.RoleInvestisseur, types.RoleEntreprise,
		types.RoleGestionnaire, types.RoleAdmin,
	},

	OpActorListAgents: {types.RoleGestionnaire, types.RoleAdmin},
	OpActorSetActive:  {types.RoleAdmin},
}

// Default builds the policy from the built-in permission table
func Default() *Policy {
	allow := make(map[Operation]map[types.Role]bool, len(rules))
	for op, roles := range rules {
		allow[op] = make(map[types.Role]bool, len(roles))
		for _, r := range roles {
			allow[op][r] = true
		}
	}
	return &Policy{allow: allow}
}

// Allows reports whether the role may invoke the operation
func (p *Policy) Allows(role types.Role, op Operation) bool {
	return p.allow[op][role]
}

// Authorize checks the actor against the operation and returns
// types.ErrForbidden on mismatch. Inactive accounts are denied everywhere
// except partnership operations (a deactivated company must still be able
// to follow its application).
func (p *Policy) Authorize(actor *model.Actor, op Operation) error {
	if actor == nil {
		return goerr.Wrap(types.ErrForbidden, "authentication required", goerr.V("operation", op))
	}
	if !actor.IsActive && op != OpPartnershipApply && op != OpPartnershipUpdate {
		return goerr.Wrap(types.ErrForbidden, "account is deactivated",
			goerr.V("operation", op))
	}
	if !p.Allows(actor.Role, op) {
		return goerr.Wrap(types.ErrForbidden, "role not permitted for operation",
			goerr.V("operation", op),
			goerr.V("role", actor.Role))
	}
	return nil
}

// Operations returns every gated operation, sorted
func (p *Policy) Operations() []Operation {
	ops := make([]Operation, 0, len(p.allow))
	for op := range p.allow {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
