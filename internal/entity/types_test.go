package entity

import (
	"testing"
)

func TestStringArrayValueAndScan(t *testing.T) {
	original := StringArray{PermissionManageBlogs, PermissionManageUsers}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("unexpected error from Value: %v", err)
	}
	raw, ok := value.(string)
	if !ok {
		t.Fatalf("expected string driver value, got %T", value)
	}

	var decoded StringArray
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("unexpected error from Scan: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != PermissionManageBlogs || decoded[1] != PermissionManageUsers {
		t.Fatalf("round trip mismatch: %v", decoded)
	}
}

func TestStringArrayValueEmpty(t *testing.T) {
	var empty StringArray
	value, err := empty.Value()
	if err != nil {
		t.Fatalf("unexpected error from Value: %v", err)
	}
	if value != "[]" {
		t.Fatalf("expected empty JSON array, got %v", value)
	}
}

func TestStringArrayScanVariants(t *testing.T) {
	var arr StringArray
	if err := arr.Scan(nil); err != nil {
		t.Fatalf("unexpected error scanning nil: %v", err)
	}
	if arr != nil {
		t.Fatalf("expected nil after scanning nil, got %v", arr)
	}

	if err := arr.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("unexpected error scanning bytes: %v", err)
	}
	if !arr.Contains("a") || !arr.Contains("b") || arr.Contains("c") {
		t.Fatalf("unexpected contents: %v", arr)
	}

	if err := arr.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestHasPermissionUnionsRolePermissions(t *testing.T) {
	user := &DbUser{
		UserType: UserTypeUser,
		Roles: []DbRole{
			{Name: "moderator", Permissions: StringArray{PermissionManageBlogs}},
			{Name: "manager", Permissions: StringArray{PermissionManageUsers}},
		},
	}

	if !user.HasPermission(PermissionManageBlogs) || !user.HasPermission(PermissionManageUsers) {
		t.Fatal("expected permissions from all roles to apply")
	}
	if user.HasPermission("manage_everything") {
		t.Fatal("unexpected permission outside the union")
	}

	var nilUser *DbUser
	if nilUser.HasPermission(PermissionManageBlogs) {
		t.Fatal("nil user must have no permissions")
	}
}

func TestIsAdminTier(t *testing.T) {
	cases := []struct {
		userType string
		want     bool
	}{
		{UserTypeSuperAdmin, true},
		{UserTypeAdmin, true},
		{UserTypeUser, false},
	}
	for _, tc := range cases {
		user := &DbUser{UserType: tc.userType}
		if got := user.IsAdminTier(); got != tc.want {
			t.Errorf("IsAdminTier(%s) = %v, want %v", tc.userType, got, tc.want)
		}
	}
	var nilUser *DbUser
	if nilUser.IsAdminTier() {
		t.Fatal("nil user must not be admin tier")
	}
}

func TestIsKnownPermission(t *testing.T) {
	for _, perm := range AllPermissions {
		if !IsKnownPermission(perm) {
			t.Errorf("expected %s to be known", perm)
		}
	}
	if IsKnownPermission("manage_everything") {
		t.Fatal("unexpected unknown permission accepted")
	}
}

func TestUpdatesToMap(t *testing.T) {
	name := "New Name"
	active := false
	updates := UserUpdates{Name: &name, IsActive: &active}

	m := updates.ToMap()
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %v", m)
	}
	if m["name"] != name || m["is_active"] != active {
		t.Fatalf("unexpected map contents: %v", m)
	}
	if updates.IsEmpty() {
		t.Fatal("expected non-empty updates")
	}
	if !(UserUpdates{}).IsEmpty() {
		t.Fatal("expected zero value to be empty")
	}
}
