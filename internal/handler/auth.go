package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/utils"
)

// AuthHandler issues staff access tokens.
type AuthHandler struct {
	Cfg   config.Config
	Staff model.Staff
}

// NewAuthHandler builds the handler for the configured staff account.
func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{
		Cfg: cfg,
		Staff: model.Staff{
			Username:     cfg.StaffUsername,
			PasswordHash: cfg.StaffPasswordHash,
			Role:         model.RoleStaff,
		},
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Access   tokenPart `json:"access"`
}

// Login checks the staff credentials and returns an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username/password required")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Staff.Username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passOK := utils.VerifyPassword(h.Staff.PasswordHash, req.Password)
	if !userOK || !passOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Staff.Username, h.Staff.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Username: h.Staff.Username,
		Role:     h.Staff.Role,
		Access:   tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
