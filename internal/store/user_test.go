// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := testUser(t, db, "store-test-create")

	if user.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if user.Username != "store-test-create" {
		t.Errorf("username: got %q, want %q", user.Username, "store-test-create")
	}
	if user.IsSuperuser {
		t.Error("expected is_superuser=false for new user")
	}
	if user.TOTPEnabled {
		t.Error("expected totp_enabled=false for new user")
	}
	if user.PasswordHash == "" {
		t.Error("expected non-empty password hash")
	}
	if user.PasswordHash == "testpass123" {
		t.Error("password hash must not be plaintext")
	}

	if !s.CheckPassword(user, "testpass123") {
		t.Error("CheckPassword should accept the original password")
	}
	if s.CheckPassword(user, "wrongpass") {
		t.Error("CheckPassword should reject a wrong password")
	}
}

func TestUserStoreFindByUsername(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	created := testUser(t, db, "store-test-find")

	found, err := s.FindByUsername("store-test-find")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if found == nil {
		t.Fatal("expected user, got nil")
	}
	if found.ID != created.ID {
		t.Errorf("id: got %v, want %v", found.ID, created.ID)
	}

	missing, err := s.FindByUsername("store-test-nobody")
	if err != nil {
		t.Fatalf("FindByUsername (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown username, got %+v", missing)
	}
}

func TestUserStoreUpdateProfile(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := testUser(t, db, "store-test-profile")

	err := s.UpdateProfile(user.ID, "New", "Name", "new-email@store-test.local", "About me.")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	updated, err := s.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if updated.FirstName != "New" || updated.LastName != "Name" {
		t.Errorf("name: got %q %q", updated.FirstName, updated.LastName)
	}
	if updated.Email != "new-email@store-test.local" {
		t.Errorf("email: got %q", updated.Email)
	}
	if updated.Bio != "About me." {
		t.Errorf("bio: got %q", updated.Bio)
	}
}

func TestUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := testUser(t, db, "store-test-totp")

	if err := s.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(user.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	enabled, err := s.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !enabled.TOTPEnabled {
		t.Error("expected totp_enabled=true")
	}
	if enabled.TOTPSecret == nil || *enabled.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("totp secret: got %v", enabled.TOTPSecret)
	}

	if err := s.ResetTOTP(user.ID); err != nil {
		t.Fatalf("ResetTOTP: %v", err)
	}
	reset, err := s.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reset.TOTPEnabled || reset.TOTPSecret != nil {
		t.Error("expected 2FA cleared after reset")
	}
}
