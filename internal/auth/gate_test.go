package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noorskin/storefront/internal/domain"
)

type fakeView struct {
	hydrated      bool
	authenticated bool
	role          domain.Role
}

func (v fakeView) IsHydrated() bool      { return v.hydrated }
func (v fakeView) IsAuthenticated() bool { return v.authenticated }
func (v fakeView) HasPermission(p domain.Permission) bool {
	return v.authenticated && HasRolePermission(v.role, p)
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name     string
		view     SessionView
		required []domain.Permission
		want     Decision
	}{
		{"nil view", nil, nil, DecisionChecking},
		{"not hydrated", fakeView{}, nil, DecisionChecking},
		{"not hydrated but authenticated", fakeView{authenticated: true, role: domain.RoleSuperManager}, nil, DecisionChecking},
		{"anonymous", fakeView{hydrated: true}, nil, DecisionDenyRedirect},
		{"anonymous with permission", fakeView{hydrated: true}, []domain.Permission{domain.PermissionReadDashboard}, DecisionDenyRedirect},
		{"authenticated no requirement", fakeView{hydrated: true, authenticated: true, role: domain.RoleFinanceManager}, nil, DecisionAllow},
		{"finance on finances", fakeView{hydrated: true, authenticated: true, role: domain.RoleFinanceManager},
			[]domain.Permission{domain.PermissionManageFinances}, DecisionAllow},
		{"finance on products", fakeView{hydrated: true, authenticated: true, role: domain.RoleFinanceManager},
			[]domain.Permission{domain.PermissionManageProducts}, DecisionDenyRedirect},
		{"all required must hold", fakeView{hydrated: true, authenticated: true, role: domain.RoleContentManager},
			[]domain.Permission{domain.PermissionManageContent, domain.PermissionManageMarketing}, DecisionDenyRedirect},
		{"super on settings", fakeView{hydrated: true, authenticated: true, role: domain.RoleSuperManager},
			[]domain.Permission{domain.PermissionSystemSettings, domain.PermissionManageStaff}, DecisionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.view, tc.required...))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "checking", DecisionChecking.String())
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "deny_redirect", DecisionDenyRedirect.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
