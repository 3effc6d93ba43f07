package services

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"golf-quota-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionTTL = 12 * time.Hour

// AuthService handles the admin login: username/password or PIN, both plain
// equality checks by scope. A successful login issues an opaque session token
// checked by the admin middleware. The PIN lives in the document's settings
// section, seeded from ADMIN_PIN on first use.
type AuthService struct {
	Store *DocumentStore

	adminUser string
	adminPass string
	seedPIN   string

	mu       sync.Mutex
	sessions map[string]time.Time // token → expiry
}

func NewAuthService(store *DocumentStore) *AuthService {
	user := os.Getenv("ADMIN_USER")
	if user == "" {
		user = "admin"
	}
	pass := os.Getenv("ADMIN_PASS")
	if pass == "" {
		log.Println("⚠️  ADMIN_PASS not set, admin password login disabled")
	}
	return &AuthService{
		Store:     store,
		adminUser: user,
		adminPass: pass,
		seedPIN:   os.Getenv("ADMIN_PIN"),
		sessions:  map[string]time.Time{},
	}
}

// Login accepts either {username, password} or {pin}.
func (s *AuthService) Login(c *fiber.Ctx) error {
	type Req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		PIN      string `json:"pin"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	ok := false
	switch {
	case req.PIN != "":
		ok = req.PIN == s.currentPIN()
	case req.Username != "" && s.adminPass != "":
		ok = req.Username == s.adminUser && req.Password == s.adminPass
	}
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token := uuid.NewString()
	expires := time.Now().Add(sessionTTL)
	s.mu.Lock()
	s.sessions[token] = expires
	s.mu.Unlock()
	return c.JSON(fiber.Map{"token": token, "expires_at": expires.UTC().Format(time.RFC3339)})
}

func (s *AuthService) Logout(c *fiber.Ctx) error {
	token := c.Get("X-Admin-Token")
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return c.JSON(fiber.Map{"message": "logged out"})
}

// UpdatePIN stores a new admin PIN in settings.
func (s *AuthService) UpdatePIN(c *fiber.Ctx) error {
	type Req struct {
		PIN string `json:"pin"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	pin := strings.TrimSpace(req.PIN)
	if pin == "" {
		return c.Status(400).JSON(fiber.Map{"error": "pin is required"})
	}
	_, err := s.Store.Update(func(doc *models.Document) error {
		doc.Settings[models.SettingAdminPIN] = pin
		return nil
	})
	if err != nil {
		log.Printf("ERROR updating admin PIN: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update PIN"})
	}
	return c.JSON(fiber.Map{"message": "admin PIN updated"})
}

// Valid reports whether a session token is live. Used by the admin
// middleware.
func (s *AuthService) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// SweepExpired drops expired sessions; run periodically by the scheduler.
func (s *AuthService) SweepExpired() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, expires := range s.sessions {
		if now.After(expires) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

func (s *AuthService) currentPIN() string {
	doc, err := s.Store.Load()
	if err == nil {
		if pin := doc.Settings[models.SettingAdminPIN]; pin != "" {
			return pin
		}
	}
	return s.seedPIN
}
