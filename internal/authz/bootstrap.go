package authz

import "fmt"

// RoleSeed 预置角色
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

const (
	RoleReadonlyAuditor = "readonly_auditor"
	RoleOrderOperator   = "order_operator"
	RoleCatalogOperator = "catalog_operator"
	RoleOperations      = "operations"
)

// BuiltinRoleSeeds 预置角色：只读审计、订单清理、商品批量维护，以及两者合并的运营角色
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role:     RoleReadonlyAuditor,
			Policies: []Policy{{Object: "/admin/*", Action: "GET"}},
		},
		{
			Role:     RoleOrderOperator,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{{Object: "/admin/orders/batch-delete", Action: "POST"}},
		},
		{
			Role:     RoleCatalogOperator,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{
				{Object: "/admin/products/batch-status", Action: "POST"},
				{Object: "/admin/products/batch-delete", Action: "POST"},
				{Object: "/admin/categories", Action: "POST"},
			},
		},
		{
			Role:     RoleOperations,
			Inherits: []string{RoleOrderOperator, RoleCatalogOperator},
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色，可重复执行，返回新增的规则数
func (s *Service) BootstrapBuiltinRoles() (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	added := 0
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return added, err
		}
		n, err := s.seedRole(role, seed)
		added += n
		if err != nil {
			return added, fmt.Errorf("seed role %s: %w", role, err)
		}
	}
	return added, nil
}

func (s *Service) seedRole(role string, seed RoleSeed) (int, error) {
	added := 0
	ok, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
	if err != nil {
		return added, err
	}
	if ok {
		added++
	}
	for _, parent := range seed.Inherits {
		parentRole, err := NormalizeRole(parent)
		if err != nil {
			return added, err
		}
		ok, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	for _, policy := range seed.Policies {
		action := NormalizeAction(policy.Action)
		if action == "" {
			return added, fmt.Errorf("policy action is required for %s", policy.Object)
		}
		ok, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
