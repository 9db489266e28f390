package ginadapter

import (
	"github.com/gin-gonic/gin"
	"github.com/mcpjungle/oauth2core/server"
)

// Handlers binds a server.Engine to gin routes, following the
// teacher's OAuthAuthorizeHandler/OAuthTokenHandler/
// OAuthIntrospectHandler naming in internal/api/oauth.go.
type Handlers struct {
	engine      *server.Engine
	resolveUser UserFunc
}

// NewHandlers builds gin handlers bound to engine. resolveUser supplies
// the authenticated-user lookup the authorization endpoint needs; pass
// nil if every request is anonymous (only useful for introspection/
// token-only deployments).
func NewHandlers(engine *server.Engine, resolveUser UserFunc) *Handlers {
	return &Handlers{engine: engine, resolveUser: resolveUser}
}

// Register mounts the three endpoints on r under the given base path
// (e.g. "/oauth").
func (h *Handlers) Register(r gin.IRouter, base string) {
	r.GET(base+"/authorize", h.Authorize)
	r.POST(base+"/token", h.Token)
	r.POST(base+"/introspect", h.Introspect)
}

// Authorize handles GET <base>/authorize.
func (h *Handlers) Authorize(c *gin.Context) {
	req, err := ToRequest(c, h.resolveUser)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "error_description": err.Error()})
		return
	}
	resp := h.engine.CreateAuthorizationCodeResponse(c.Request.Context(), req)
	WriteResponse(c, resp)
}

// Token handles POST <base>/token.
func (h *Handlers) Token(c *gin.Context) {
	req, err := ToRequest(c, nil)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "error_description": err.Error()})
		return
	}
	resp := h.engine.CreateTokenResponse(c.Request.Context(), req)
	WriteResponse(c, resp)
}

// Introspect handles POST <base>/introspect.
func (h *Handlers) Introspect(c *gin.Context) {
	req, err := ToRequest(c, nil)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "error_description": err.Error()})
		return
	}
	resp := h.engine.CreateTokenIntrospectionResponse(c.Request.Context(), req)
	WriteResponse(c, resp)
}
