package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	userDomain "contract-manager-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const (
	testContractUID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testApprovalUID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testApproverUID = "cccccccccccccccccccccccccccccccc"
)

var (
	testCreator  = userDomain.Actor{ID: 10, UserUID: "dddddddddddddddddddddddddddddddd", Role: userDomain.RoleUser}
	testManager  = userDomain.Actor{ID: 20, UserUID: "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", Role: userDomain.RoleManager}
	testApprover = userDomain.Actor{ID: 40, UserUID: testApproverUID, Role: userDomain.RoleApprover}
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newTestContext builds an echo context for a direct handler call, with the
// actor pre-resolved the way the auth middleware would have done it.
func newTestContext(t *testing.T, e *echo.Echo, method, target, body string, actor *userDomain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set("actor", *actor)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
