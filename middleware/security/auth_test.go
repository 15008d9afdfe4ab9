package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	usermodel "EMProject/module/user/model"
	"EMProject/tools/errs"
	jwtlib "EMProject/tools/security"

	"github.com/gin-gonic/gin"
)

type fakeResolver struct {
	byID map[string]*usermodel.User
}

func (f *fakeResolver) ByUsername(_ context.Context, username string) (*usermodel.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeResolver) ByID(_ context.Context, id string) (*usermodel.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errs.ErrNotFound
}

func testRouter(t *testing.T) (*gin.Engine, jwtlib.Options) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtOpts := jwtlib.DefaultOptions([]byte("test-secret"))
	opts := &Options{
		Jwt: jwtOpts,
		Users: &fakeResolver{byID: map[string]*usermodel.User{
			"u-1": {ID: "u-1", Username: "alice"},
		}},
		QueryTokenParam: "token",
	}

	r := gin.New()
	r.GET("/hard", Middleware(opts), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})
	r.GET("/soft", SoftMiddleware(opts), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r, jwtOpts
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hard", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestMiddlewareBearerHeader(t *testing.T) {
	r, jwtOpts := testRouter(t)
	token, _, err := jwtlib.Generate(jwtOpts, "u-1", "employee")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/hard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "alice" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestMiddlewareQueryToken(t *testing.T) {
	r, jwtOpts := testRouter(t)
	token, _, _ := jwtlib.Generate(jwtOpts, "u-1", "employee")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hard?token="+token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestMiddlewareUnknownUser(t *testing.T) {
	r, jwtOpts := testRouter(t)
	token, _, _ := jwtlib.Generate(jwtOpts, "u-gone", "employee")

	req := httptest.NewRequest(http.MethodGet, "/hard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSoftMiddlewareNeverAborts(t *testing.T) {
	r, jwtOpts := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/soft", nil))
	if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}

	token, _, _ := jwtlib.Generate(jwtOpts, "u-1", "employee")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/soft?token="+token, nil))
	if w.Body.String() != "alice" {
		t.Fatalf("body = %q", w.Body.String())
	}
}
