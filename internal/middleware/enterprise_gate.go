package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/platform/metrics"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/gin-gonic/gin"
)

// Redirect targets used by the gate.
const (
	LoginPath              = "/login"
	DashboardPath          = "/dashboard"
	SelectOrganizationPath = "/enterprise/select-organization"
)

// AccessDeniedMessage is flashed when the caller belongs to no organization.
const AccessDeniedMessage = "Access Denied: you are not a member of any business."

// GateOutcome is the terminal state of one pass through the enterprise gate.
type GateOutcome string

const (
	GateProceed                GateOutcome = "proceed"
	GateRedirectLogin          GateOutcome = "redirect_login"
	GateDeny                   GateOutcome = "deny"
	GateRedirectSelectBusiness GateOutcome = "redirect_select_business"
)

// GateInput is the session state the gate decides on.
type GateInput struct {
	UserID         string
	PinnedOrgID    string
	ActiveBusiness string
}

// GateDecision tells the caller what to do with the request and the session.
// OrgID is set only for GateProceed and is the organization to pin.
type GateDecision struct {
	Outcome GateOutcome
	OrgID   string
	Reason  string
}

// Evaluate runs the membership checks for one request, in order:
//
//  1. no user: redirect to login
//  2. no memberships: deny
//  3. pinned organization still valid: proceed
//  4. active business marker: provision (idempotent) and pin
//  5. exactly one membership: pin it
//  6. otherwise: clear the pin and ask the user to pick
//
// The active business marker is not required: a valid pin or a single
// membership is enough to proceed. A panic in the store is recovered and
// reported as GateDeny.
func Evaluate(ctx context.Context, orgs portsrepo.OrganizationStore, in GateInput) (decision GateDecision) {
	defer func() {
		if r := recover(); r != nil {
			decision = GateDecision{Outcome: GateDeny, Reason: fmt.Sprintf("validation panicked: %v", r)}
		}
	}()

	if in.UserID == "" {
		return GateDecision{Outcome: GateRedirectLogin, Reason: "not signed in"}
	}

	memberships := orgs.ListUserOrganizations(ctx, in.UserID)
	if len(memberships) == 0 {
		return GateDecision{Outcome: GateDeny, Reason: "no memberships"}
	}
	valid := domain.OrganizationIDs(memberships)

	if _, ok := valid[in.PinnedOrgID]; ok && in.PinnedOrgID != "" {
		return GateDecision{Outcome: GateProceed, OrgID: in.PinnedOrgID, Reason: "pinned"}
	}

	if in.ActiveBusiness != "" {
		orgID := orgs.ProvisionBusinessOrg(ctx, in.UserID, in.ActiveBusiness)
		if orgID != "" {
			if _, ok := valid[orgID]; !ok {
				// newly provisioned; membership list predates it
				valid = domain.OrganizationIDs(orgs.ListUserOrganizations(ctx, in.UserID))
			}
			if _, ok := valid[orgID]; ok {
				return GateDecision{Outcome: GateProceed, OrgID: orgID, Reason: "active business"}
			}
		}
	}

	if len(memberships) == 1 {
		return GateDecision{Outcome: GateProceed, OrgID: memberships[0].ID, Reason: "single membership"}
	}

	return GateDecision{Outcome: GateRedirectSelectBusiness, Reason: "selection required"}
}

// EnterpriseGate guards enterprise routes. It must run after SessionMiddleware
// and PrincipalMiddleware. On proceed it pins the organization in the session and
// exposes the store, user id and org id to handlers through the Gin context and
// the request context. Two concurrent requests of one session may both re-derive
// the pin; the last session save wins.
func EnterpriseGate(provider portsrepo.StoreProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c)
		sess, ok := GetSession(c)
		if !ok {
			logger.Error("Enterprise gate reached without a session")
			metrics.ObserveGateDecision(string(GateDeny))
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		principal, _ := reqctx.PrincipalFrom(c.Request.Context())
		in := GateInput{UserID: principal.UserID, PinnedOrgID: sess.OrgID, ActiveBusiness: sess.ActiveBusiness}

		var store portsrepo.DataStore
		var decision GateDecision
		if in.UserID == "" {
			decision = GateDecision{Outcome: GateRedirectLogin, Reason: "not signed in"}
		} else if s, err := provider.ForRequest(c.Request.Context(), principal.AccessToken); err != nil {
			decision = GateDecision{Outcome: GateDeny, Reason: "store unavailable: " + err.Error()}
		} else {
			store = s
			decision = Evaluate(c.Request.Context(), s, in)
		}
		metrics.ObserveGateDecision(string(decision.Outcome))

		switch decision.Outcome {
		case GateProceed:
			sess.Pin(decision.OrgID)
			ctx := reqctx.WithLogger(c.Request.Context(), logger.With(slog.String("org_id", decision.OrgID)))
			c.Request = c.Request.WithContext(ctx)
			c.Set(string(storeKey), store)
			c.Set(string(orgIDKey), decision.OrgID)
			c.Next()
			return
		case GateRedirectLogin:
			c.Redirect(http.StatusFound, LoginPath)
		case GateDeny:
			logger.Warn("Enterprise access denied", slog.String("reason", decision.Reason))
			sess.ClearPin()
			sess.AddFlash("danger", AccessDeniedMessage)
			c.Redirect(http.StatusFound, DashboardPath)
		case GateRedirectSelectBusiness:
			sess.ClearPin()
			c.Redirect(http.StatusFound, SelectOrganizationPath)
		}
		c.Abort()
	}
}
