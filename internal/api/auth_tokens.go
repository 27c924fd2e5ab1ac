package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lifelag/lifelag/internal/models"
)

const pulseDismissalPurpose = "quick_pulse_dismissal"

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type pulseDismissalClaims struct {
	UserID    uint   `json:"uid"`
	CheckinID uint   `json:"cid"`
	Purpose   string `json:"purpose"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = authTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

func (handler *Handler) parseSignedClaims(raw string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

func requestToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return strings.TrimSpace(c.Cookies(authCookieName))
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	raw := requestToken(c)
	if raw == "" {
		return nil, errors.New("missing auth token")
	}

	claims := &authClaims{}
	if err := handler.parseSignedClaims(raw, claims); err != nil {
		return nil, err
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(authTokenTTL),
	})
}

func (handler *Handler) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// setPulseDismissalCookie stores a session cookie (no Expires) so the dismissal
// ends with the browser session. The token is bound to one check-in.
func (handler *Handler) setPulseDismissalCookie(c *fiber.Ctx, userID uint, checkinID uint) error {
	now := time.Now()
	claims := pulseDismissalClaims{
		UserID:    userID,
		CheckinID: checkinID,
		Purpose:   pulseDismissalPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(pulseDismissalTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:        pulseCookieName,
		Value:       token,
		Path:        "/",
		HTTPOnly:    true,
		Secure:      handler.cookieSecure,
		SameSite:    "Lax",
		SessionOnly: true,
	})
	return nil
}

// dismissedPulseCheckinID returns the check-in id the current session
// dismissed the Quick Pulse for, or zero.
func (handler *Handler) dismissedPulseCheckinID(c *fiber.Ctx, userID uint) uint {
	raw := strings.TrimSpace(c.Cookies(pulseCookieName))
	if raw == "" {
		return 0
	}

	claims := &pulseDismissalClaims{}
	if err := handler.parseSignedClaims(raw, claims); err != nil {
		return 0
	}
	if claims.Purpose != pulseDismissalPurpose || claims.UserID != userID {
		return 0
	}
	return claims.CheckinID
}
