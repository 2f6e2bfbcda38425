package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"resultportal/internal/records"
	"resultportal/internal/shared"
)

const testSecret = "test-secret-not-for-production"

func newTestService(t *testing.T) (*Service, *records.MemoryRepository) {
	t.Helper()

	repo := records.NewMemoryRepository()
	svc := NewService(repo, testSecret, time.Hour, zap.NewNop())

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := &shared.AdminProfile{
		ID:           "admin_1",
		Username:     "registrar",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := repo.InsertAdmin(context.Background(), admin); err != nil {
		t.Fatalf("insert admin: %v", err)
	}
	return svc, repo
}

func TestLoginAndValidate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, admin, err := svc.Login(ctx, "registrar", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("login returned empty token")
	}
	if admin.Username != "registrar" {
		t.Errorf("admin = %s, want registrar", admin.Username)
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != "admin_1" || claims.Username != "registrar" {
		t.Errorf("claims = %+v, want admin_1/registrar", claims)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, errWrongPassword := svc.Login(ctx, "registrar", "wrong")
	_, _, errUnknownUser := svc.Login(ctx, "nobody", "correct horse")

	if !errors.Is(errWrongPassword, shared.ErrAuthenticationFailed) {
		t.Errorf("wrong password: err = %v, want ErrAuthenticationFailed", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, shared.ErrAuthenticationFailed) {
		t.Errorf("unknown user: err = %v, want ErrAuthenticationFailed", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Errorf("failure messages differ: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "registrar", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// Token still carries a valid signature, but the session is gone.
	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, shared.ErrAuthenticationFailed) {
		t.Errorf("validate after logout: err = %v, want ErrAuthenticationFailed", err)
	}

	// Logout again succeeds.
	if err := svc.Logout(ctx, token); err != nil {
		t.Errorf("second logout: %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, shared.ErrAuthenticationFailed) {
			t.Errorf("ValidateToken(%q): err = %v, want ErrAuthenticationFailed", token, err)
		}
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	// A token minted under a different secret must fail even if a session
	// row for it somehow exists.
	other := NewService(repo, "some-other-secret", time.Hour, zap.NewNop())
	token, _, err := other.Login(ctx, "registrar", "correct horse")
	if err != nil {
		t.Fatalf("login under other secret: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, shared.ErrAuthenticationFailed) {
		t.Errorf("foreign token validated: err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestResolveStudent(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	student := &shared.Student{
		ID:          "s1",
		SeatNumber:  "1BM20CS001",
		FullName:    "John Doe",
		DateOfBirth: "2002-05-15",
		CreatedAt:   time.Now(),
	}
	if err := repo.CreateStudent(ctx, student, nil); err != nil {
		t.Fatalf("create student: %v", err)
	}

	t.Run("both factors match", func(t *testing.T) {
		got, err := svc.ResolveStudent(ctx, "1bm20cs001", "2002-05-15")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.ID != "s1" {
			t.Errorf("resolved %s, want s1", got.ID)
		}
	})

	t.Run("mismatches are uniform", func(t *testing.T) {
		cases := [][2]string{
			{"1BM20CS001", "2002-05-16"}, // right seat, wrong DOB
			{"1BM20CS999", "2002-05-15"}, // wrong seat, right DOB
			{"", "2002-05-15"},
			{"1BM20CS001", ""},
			{"1BM20CS001", "not-a-date"},
		}
		var msgs []string
		for _, c := range cases {
			_, err := svc.ResolveStudent(ctx, c[0], c[1])
			if !errors.Is(err, shared.ErrAuthenticationFailed) {
				t.Errorf("ResolveStudent(%q, %q): err = %v, want ErrAuthenticationFailed", c[0], c[1], err)
				continue
			}
			msgs = append(msgs, err.Error())
		}
		for i := 1; i < len(msgs); i++ {
			if msgs[i] != msgs[0] {
				t.Errorf("failure messages differ: %q vs %q", msgs[i], msgs[0])
			}
		}
	})
}
