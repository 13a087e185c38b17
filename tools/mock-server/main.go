// Package main implements a mock upstream server for local development.
// It simulates the eBay OAuth token endpoint, the Browse API seller search,
// the Developer Analytics rate_limit endpoint, and the storefront proxy's
// create-product endpoint, so the importer runs end to end without real
// credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

type browseAPIResponse struct {
	ItemSummaries []itemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Offset        int           `json:"offset"`
	Limit         int           `json:"limit"`
	Next          string        `json:"next,omitempty"`
}

type itemSummary struct {
	ItemID     string     `json:"itemId"`
	Title      string     `json:"title"`
	Price      itemPrice  `json:"price"`
	ItemWebURL string     `json:"itemWebUrl"`
	Image      itemImage  `json:"image"`
	Seller     itemSeller `json:"seller"`
	Condition  string     `json:"condition"`
}

type itemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type itemImage struct {
	ImageURL string `json:"imageUrl"`
}

type itemSeller struct {
	Username string `json:"username"`
}

// emptySeller has no listings, for exercising the nothing-to-import path.
const emptySeller = "empty-seller"

var sellerFilter = regexp.MustCompile(`sellers:\{([^}]*)\}`)

// mockServer holds the counters shared by the handlers.
type mockServer struct {
	log            *slog.Logger
	itemsPerSeller int
	dailyLimit     int64
	failEvery      int
	secret         string

	mu         sync.Mutex
	browseUsed int64
	creates    int
	products   map[string]int
	windowEnds time.Time
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	items := flag.Int("items", 120, "listings each seller has")
	dailyLimit := flag.Int64("daily-limit", 5000, "Browse API calls reported as the daily limit")
	failEvery := flag.Int("proxy-fail-every", 0, "answer every Nth create-product call with 503 (0 disables)")
	secret := flag.String("proxy-secret", "", "required proxy bearer secret (empty accepts any)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newMockServer(logger, *items, *dailyLimit, *failEvery, *secret)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock upstream server", "addr", addr, "items_per_seller", *items)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, m.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMockServer(log *slog.Logger, items int, dailyLimit int64, failEvery int, secret string) *mockServer {
	return &mockServer{
		log:            log,
		itemsPerSeller: items,
		dailyLimit:     dailyLimit,
		failEvery:      failEvery,
		secret:         secret,
		products:       map[string]int{},
		windowEnds:     time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
	}
}

func (m *mockServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(m.log))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", m.searchHandler)
	mux.HandleFunc("GET /developer/analytics/v1_beta/rate_limit/", m.rateLimitHandler)
	mux.HandleFunc("POST /api/proxy/create-product", m.createProductHandler)
	mux.HandleFunc("GET /api/proxy/products", m.productsHandler)
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Basic Auth must be present; credentials are not checked.
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		})
		logger.Info("issued mock token")
	}
}

func (m *mockServer) searchHandler(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"errors": []map[string]any{{"errorId": 1001, "message": "Invalid access token"}},
		})
		return
	}

	m.mu.Lock()
	m.browseUsed++
	overLimit := m.browseUsed > m.dailyLimit
	m.mu.Unlock()
	if overLimit {
		w.Header().Set("Retry-After", "3600")
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"errors": []map[string]any{{"errorId": 2001, "message": "Too many requests"}},
		})
		return
	}

	query := r.URL.Query()
	limit := intParam(query.Get("limit"), 50, 1)
	offset := intParam(query.Get("offset"), 0, 0)

	seller := ""
	if match := sellerFilter.FindStringSubmatch(query.Get("filter")); match != nil {
		seller = match[1]
	}

	total := m.itemsPerSeller
	if seller == emptySeller {
		total = 0
	}

	resp := browseAPIResponse{
		ItemSummaries: []itemSummary{},
		Total:         total,
		Offset:        offset,
		Limit:         limit,
	}
	for i := offset; i < min(offset+limit, total); i++ {
		resp.ItemSummaries = append(resp.ItemSummaries, syntheticItem(seller, i))
	}
	if offset+limit < total {
		resp.Next = fmt.Sprintf("/buy/browse/v1/item_summary/search?filter=%s&offset=%d&limit=%d",
			query.Get("filter"), offset+limit, limit)
	}

	writeJSON(w, http.StatusOK, resp)
	m.log.Info("search", "seller", seller, "total", total, "returned", len(resp.ItemSummaries), "offset", offset, "limit", limit)
}

func syntheticItem(seller string, i int) itemSummary {
	id := fmt.Sprintf("v1|%d|0", 110000000000+i)
	return itemSummary{
		ItemID:     id,
		Title:      fmt.Sprintf("%s listing #%d", seller, i+1),
		Price:      itemPrice{Value: fmt.Sprintf("%d.99", 10+i%90), Currency: "USD"},
		ItemWebURL: "https://www.ebay.com/itm/" + strconv.Itoa(110000000000+i),
		Image:      itemImage{ImageURL: fmt.Sprintf("https://i.ebayimg.com/images/g/mock/s-l500-%d.jpg", i)},
		Seller:     itemSeller{Username: seller},
		Condition:  "Used",
	}
}

func (m *mockServer) rateLimitHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("api_name") != "browse" {
		writeJSON(w, http.StatusOK, map[string]any{"rateLimits": []any{}})
		return
	}

	m.mu.Lock()
	used, resetAt := m.browseUsed, m.windowEnds
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"rateLimits": []map[string]any{{
			"apiContext": "buy",
			"apiName":    "browse",
			"apiVersion": "v1",
			"resources": []map[string]any{{
				"name": "buy.browse",
				"rates": []map[string]any{{
					"count":      used,
					"limit":      m.dailyLimit,
					"remaining":  max(m.dailyLimit-used, 0),
					"reset":      resetAt.Format(time.RFC3339),
					"timeWindow": 86400,
				}},
			}},
		}},
	})
}

type createProductRequest struct {
	ShopDomain string `json:"shopDomain"`
	Product    struct {
		Title string `json:"title"`
	} `json:"product"`
}

func (m *mockServer) createProductHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || (m.secret != "" && token != m.secret) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ShopDomain == "" || req.Product.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shopDomain and product.title are required"})
		return
	}

	m.mu.Lock()
	m.creates++
	fail := m.failEvery > 0 && m.creates%m.failEvery == 0
	if !fail {
		m.products[req.ShopDomain]++
	}
	m.mu.Unlock()

	if fail {
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "simulated outage"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (m *mockServer) productsHandler(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, m.products)
}

func intParam(raw string, def, minimum int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < minimum {
		return def
	}
	return v
}
