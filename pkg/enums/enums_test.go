package enums

import "testing"

func TestParseGlobalRole(t *testing.T) {
	role, err := ParseGlobalRole("developer")
	if err != nil || role != GlobalRoleDeveloper {
		t.Fatalf("expected developer, got %q err=%v", role, err)
	}
	if !role.IsDeveloper() || !role.IsPlatformAdmin() {
		t.Fatalf("developer should be platform admin")
	}
	if _, err := ParseGlobalRole("owner"); err == nil {
		t.Fatalf("expected owner to be rejected")
	}
	if GlobalRoleManager.IsPlatformAdmin() {
		t.Fatalf("manager is not a platform admin")
	}
}

func TestParseApprovalStatus(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "rejected"} {
		if _, err := ParseApprovalStatus(raw); err != nil {
			t.Fatalf("expected %q to parse: %v", raw, err)
		}
	}
	if _, err := ParseApprovalStatus("revoked"); err == nil {
		t.Fatalf("expected revoked to be rejected")
	}
}

func TestParseRecordEnums(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) error
		good  string
		bad   string
	}{
		{"issue status", func(v string) error { _, err := ParseIssueStatus(v); return err }, "in_progress", "done"},
		{"issue priority", func(v string) error { _, err := ParseIssuePriority(v); return err }, "urgent", "critical"},
		{"asset status", func(v string) error { _, err := ParseAssetStatus(v); return err }, "decommissioned", "broken"},
		{"amc status", func(v string) error { _, err := ParseAMCStatus(v); return err }, "pending_renewal", "renewed"},
		{"maintenance frequency", func(v string) error { _, err := ParseMaintenanceFrequency(v); return err }, "half_yearly", "weekly"},
	}
	for _, tt := range tests {
		if err := tt.parse(tt.good); err != nil {
			t.Fatalf("%s: expected %q to parse: %v", tt.name, tt.good, err)
		}
		if err := tt.parse(tt.bad); err == nil {
			t.Fatalf("%s: expected %q to be rejected", tt.name, tt.bad)
		}
	}
}
