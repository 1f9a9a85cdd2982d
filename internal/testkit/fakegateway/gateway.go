// Package fakegateway is an in-process stand-in for the storefront backend:
// user sign-up/sign-in issuing HS256 tokens, and product create/update
// guarded by those tokens. It is meant for tests and local runs only.
package fakegateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type user struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash []byte
}

// Product is what the fake stores for /products.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// Gateway is safe for concurrent use.
type Gateway struct {
	secret   []byte
	tokenTTL time.Duration
	router   *mux.Router

	mu            sync.Mutex
	users         map[string]user // by email
	products      map[string]Product
	signInToken   string
	signInCalls   int
	lastRequestID string
}

// New returns a gateway signing tokens with secret.
func New(secret []byte) *Gateway {
	g := &Gateway{
		secret:   secret,
		tokenTTL: time.Hour,
		users:    make(map[string]user),
		products: make(map[string]Product),
	}

	r := mux.NewRouter()
	r.HandleFunc("/users/signup", g.handleSignUp).Methods(http.MethodPost)
	r.HandleFunc("/users/signin", g.handleSignIn).Methods(http.MethodPost)
	r.HandleFunc("/products", g.requireAdmin(g.handleCreateProduct)).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", g.requireAdmin(g.handleUpdateProduct)).Methods(http.MethodPut)
	g.router = r

	return g
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.lastRequestID = r.Header.Get("X-Request-ID")
	g.mu.Unlock()
	g.router.ServeHTTP(w, r)
}

// AddUser seeds an account and returns its ID.
func (g *Gateway) AddUser(name, email, password, role string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.users[email]; ok {
		return "", errors.New("user already exists")
	}
	u := user{ID: uuid.NewString(), Name: name, Email: email, Role: role, PasswordHash: hash}
	g.users[email] = u
	return u.ID, nil
}

// ForceSignInToken makes every successful sign-in return tok verbatim.
func (g *Gateway) ForceSignInToken(tok string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signInToken = tok
}

// SignInCalls counts sign-in requests received.
func (g *Gateway) SignInCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.signInCalls
}

// LastRequestID is the X-Request-ID of the most recent request.
func (g *Gateway) LastRequestID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastRequestID
}

// Product looks up a stored product.
func (g *Gateway) Product(id string) (Product, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.products[id]
	return p, ok
}

// IssueToken signs a token for the given principal.
func (g *Gateway) IssueToken(id, name, role string) (string, error) {
	now := time.Now()
	claims := token.Claims{
		UserID: token.ID(id),
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

func (g *Gateway) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	id, err := g.AddUser(req.Name, req.Email, req.Password, RoleUser)
	if err != nil {
		writeMessage(w, http.StatusConflict, "User already exists")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (g *Gateway) handleSignIn(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.signInCalls++
	g.mu.Unlock()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g.mu.Lock()
	u, ok := g.users[req.Email]
	forced := g.signInToken
	g.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tok := forced
	if tok == "" {
		var err error
		tok, err = g.IssueToken(u.ID, u.Name, u.Role)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Could not issue token")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (g *Gateway) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing token")
			return
		}

		claims := &token.Claims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return g.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims.Role != RoleAdmin {
			writeMessage(w, http.StatusForbidden, "Admin role required")
			return
		}
		next(w, r)
	}
}

func (g *Gateway) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = uuid.NewString()

	g.mu.Lock()
	g.products[p.ID] = p
	g.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

func (g *Gateway) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = id

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.products[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	g.products[id] = p

	writeJSON(w, http.StatusOK, p)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
