package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sample() *Session {
	return &Session{
		AccessToken:          "access",
		AccessTokenExpiresIn: 900,
		RefreshToken:         "refresh",
		User: &User{
			ID:          "u-1",
			Email:       "user@example.com",
			DisplayName: "User One",
			Roles:       []string{"user", "me"},
			DefaultRole: "user",
		},
	}
}

func TestSessionValid(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"complete", sample(), true},
		{"nil", nil, false},
		{"missing access token", &Session{RefreshToken: "r"}, false},
		{"missing refresh token", &Session{AccessToken: "a"}, false},
		{"no user is still valid", &Session{AccessToken: "a", RefreshToken: "r"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionClone(t *testing.T) {
	s := sample()
	cp := s.Clone()

	cp.AccessToken = "other"
	cp.User.Roles[0] = "admin"

	if s.AccessToken != "access" {
		t.Error("clone shares top-level state")
	}
	if s.User.Roles[0] != "user" {
		t.Error("clone shares role slice")
	}

	var nilSession *Session
	if nilSession.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestRepository(t *testing.T) {
	repo := NewRepository()

	if repo.Present() {
		t.Fatal("new repository should be empty")
	}
	if repo.Get() != nil {
		t.Fatal("Get on empty repository should be nil")
	}

	if repo.Set(&Session{AccessToken: "only-access"}) {
		t.Error("Set accepted an invalid session")
	}
	if !repo.Set(sample()) {
		t.Fatal("Set rejected a valid session")
	}

	if repo.AccessToken() != "access" || repo.RefreshToken() != "refresh" {
		t.Errorf("tokens = %q / %q", repo.AccessToken(), repo.RefreshToken())
	}

	// 返回的是克隆，修改不影响仓库
	got := repo.Get()
	got.AccessToken = "tampered"
	if repo.AccessToken() != "access" {
		t.Error("Get returned shared state")
	}

	if !repo.Clear() {
		t.Error("Clear on populated repository should report true")
	}
	if repo.Clear() {
		t.Error("second Clear should report false")
	}
	if repo.AccessToken() != "" || repo.RefreshToken() != "" {
		t.Error("tokens remain after Clear")
	}
}

func signedToken(t *testing.T, hasura map[string]any) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": "u-1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
		HasuraNamespace: hasura,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestDecodeAccessToken(t *testing.T) {
	token := signedToken(t, map[string]any{
		"x-hasura-allowed-roles": []any{"user", "me"},
		"x-hasura-default-role":  "user",
		"x-hasura-user-id":       "u-1",
	})

	claims, err := DecodeAccessToken(token)
	if err != nil {
		t.Fatalf("DecodeAccessToken: %v", err)
	}

	roles := claims.AllowedRoles()
	if len(roles) != 2 || roles[0] != "user" {
		t.Errorf("AllowedRoles = %v", roles)
	}
	if claims.DefaultRole() != "user" {
		t.Errorf("DefaultRole = %q", claims.DefaultRole())
	}
	if claims.UserID() != "u-1" {
		t.Errorf("UserID = %q", claims.UserID())
	}
}

func TestDecodeAccessTokenErrors(t *testing.T) {
	if _, err := DecodeAccessToken(""); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := DecodeAccessToken("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}

	// 无 hasura 命名空间的 token 可解码，claims 为空
	token := signedToken(t, nil)
	claims, err := DecodeAccessToken(token)
	if err != nil {
		t.Fatalf("DecodeAccessToken: %v", err)
	}
	if claims.DefaultRole() != "" || claims.AllowedRoles() != nil {
		t.Errorf("claims = %+v", claims.Hasura)
	}
}
