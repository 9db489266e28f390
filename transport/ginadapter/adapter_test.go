package ginadapter_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/transport/ginadapter"
	"github.com/mcpjungle/oauth2core/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestToRequestParsesGETQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "https://auth.example/authorize?client_id=abc&response_type=code", nil)

	req, err := ginadapter.ToRequest(c, nil)
	require.NoError(t, err)
	require.Equal(t, requests.MethodGET, req.Method)
	require.Equal(t, "abc", req.QueryParam("client_id"))
	require.Equal(t, "code", req.QueryParam("response_type"))
	require.Nil(t, req.User)
}

func TestToRequestParsesPOSTForm(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := strings.NewReader(url.Values{"grant_type": {"client_credentials"}, "scope": {"read"}}.Encode())
	c.Request = httptest.NewRequest(http.MethodPost, "https://auth.example/token", body)
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := ginadapter.ToRequest(c, nil)
	require.NoError(t, err)
	require.Equal(t, requests.MethodPOST, req.Method)
	require.Equal(t, "client_credentials", req.PostParam("grant_type"))
	require.Equal(t, "read", req.PostParam("scope"))
}

func TestToRequestResolvesUser(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "https://auth.example/authorize", nil)

	want := &types.User{ID: "user-1"}
	req, err := ginadapter.ToRequest(c, func(*gin.Context) *types.User { return want })
	require.NoError(t, err)
	require.Same(t, want, req.User)
}

func TestToRequestDefaultsSchemeFromForwardedProto(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/authorize", nil)
	c.Request.Header.Set("X-Forwarded-Proto", "https")

	req, err := ginadapter.ToRequest(c, nil)
	require.NoError(t, err)
	require.True(t, req.IsSecure())
}

func TestWriteResponseJSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	resp := responses.NewResponse(400, responses.ErrorContent{Error: types.ErrorInvalidRequest, ErrorDescription: "Missing client_id parameter."})
	ginadapter.WriteResponse(c, resp)

	require.Equal(t, 400, w.Code)
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	require.Contains(t, w.Body.String(), "invalid_request")
}

func TestWriteResponseRedirectAuthorizationCodeUsesQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	resp := responses.NewResponse(302, responses.AuthorizationCodeContent{Code: "abc123", State: "xyz"})
	resp.Redirect = "https://app.example/cb"
	ginadapter.WriteResponse(c, resp)

	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "https://app.example/cb?"))
	require.Contains(t, location, "code=abc123")
	require.Contains(t, location, "state=xyz")
}

func TestWriteResponseRedirectTokenUsesFragment(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	resp := responses.NewResponse(302, responses.TokenContent{AccessToken: "tok123", TokenType: "Bearer", ExpiresIn: 3600})
	resp.Redirect = "https://app.example/cb"
	ginadapter.WriteResponse(c, resp)

	location := w.Header().Get("Location")
	require.True(t, strings.Contains(location, "#"))
	fragment := strings.SplitN(location, "#", 2)[1]
	require.Contains(t, fragment, "access_token=tok123")
	require.Contains(t, fragment, "expires_in=3600")

	// The implicit grant's success content must never leak into the
	// query string, only the fragment.
	query := strings.SplitN(location, "#", 2)[0]
	require.NotContains(t, query, "access_token")
}
