package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"credentio/internal/domain"
	"credentio/internal/repository"
	"credentio/internal/service"
)

const claimsContextKey = "session_claims"

// Handler wires HTTP routes to the credential and session services.
type Handler struct {
	registration service.RegistrationService
	auth         service.AuthenticationService
	sessions     *service.SessionIssuer
	baseURL      string
}

func NewHandler(
	registration service.RegistrationService,
	auth service.AuthenticationService,
	sessions *service.SessionIssuer,
	baseURL string,
) *Handler {
	return &Handler{
		registration: registration,
		auth:         auth,
		sessions:     sessions,
		baseURL:      baseURL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.POST("/auth/refresh", h.refresh)
		api.GET("/user", h.requireSession(), h.currentUser)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CallbackURL string `json:"callback_url"`
}

// credentialResponse is the public view of a credential record. It never
// includes the password hash.
type credentialResponse struct {
	ID        string `json:"id"`
	Fullname  string `json:"fullname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type sessionResponse struct {
	Token       string `json:"token"`
	ExpiresAt   string `json:"expires_at"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cred, err := h.registration.Register(c.Request.Context(), req.Fullname, req.Email, req.Phone, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "registration successful",
		"data":    credentialToResponse(cred),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	claims := h.sessions.Issue(*identity)
	token, err := h.sessions.Token(claims)
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "login successful",
		"data": sessionResponse{
			Token:       token,
			ExpiresAt:   claims.ExpiresAt.Format(time.RFC3339),
			RedirectURL: service.ResolveRedirect(req.CallbackURL, h.baseURL),
		},
	})
}

func (h *Handler) refresh(c *gin.Context) {
	claims, ok := h.bearerClaims(c)
	if !ok {
		return
	}

	renewed, err := h.sessions.Renew(claims)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.sessions.Token(renewed)
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "session renewed",
		"data": sessionResponse{
			Token:     token,
			ExpiresAt: renewed.ExpiresAt.Format(time.RFC3339),
		},
	})
}

// requireSession authenticates the bearer token and rejects expired claims.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.bearerClaims(c)
		if !ok {
			c.Abort()
			return
		}
		if h.sessions.Expired(claims) {
			fail(c, http.StatusUnauthorized, "session expired")
			c.Abort()
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func (h *Handler) currentUser(c *gin.Context) {
	claims := c.MustGet(claimsContextKey).(domain.SessionClaims)

	cred, err := h.auth.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data":   credentialToResponse(cred),
	})
}

func (h *Handler) bearerClaims(c *gin.Context) (domain.SessionClaims, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return domain.SessionClaims{}, false
	}

	claims, err := h.sessions.Parse(token)
	if err != nil {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return domain.SessionClaims{}, false
	}
	return claims, true
}

// writeError maps service errors onto transport status codes. Storage and
// other unexpected failures surface as a generic internal error so internal
// detail never reaches the caller.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err), errors.Is(err, service.ErrMalformedInput):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		fail(c, http.StatusConflict, "email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrSessionExpired):
		fail(c, http.StatusUnauthorized, "session expired")
	case errors.Is(err, service.ErrTokenInvalid):
		fail(c, http.StatusUnauthorized, "unauthorized")
	default:
		fail(c, http.StatusInternalServerError, "internal error")
	}
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": false, "message": message})
}

func credentialToResponse(cred *domain.Credential) credentialResponse {
	return credentialResponse{
		ID:        cred.ID,
		Fullname:  cred.Fullname,
		Email:     cred.Email,
		Phone:     cred.Phone,
		Role:      cred.Role,
		CreatedAt: cred.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cred.UpdatedAt.Format(time.RFC3339),
	}
}
