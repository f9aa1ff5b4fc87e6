package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(clock Clock) *Limiter {
	return New(&Config{
		MaxFailures: 3,
		Lockout:     5 * time.Minute,
		IPEvery:     time.Second,
		IPBurst:     100,
		Clock:       clock,
	})
}

func TestCheckLogin_LockoutAfterFailures(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	email := "player@example.com"
	ip := "203.0.113.10"

	for i := 1; i <= 3; i++ {
		if result := limiter.CheckLogin(email, ip); !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got %s", i, result.Reason)
		}
		locked := limiter.RecordFailure(email)
		if locked != (i == 3) {
			t.Fatalf("attempt %d: lockedOut = %v", i, locked)
		}
	}

	result := limiter.CheckLogin(email, ip)
	if result.Allowed {
		t.Fatal("expected lockout after max failures")
	}
	if result.Reason != "lockout" {
		t.Errorf("Reason = %q, want lockout", result.Reason)
	}
	if result.RetryAfter != 5*time.Minute {
		t.Errorf("RetryAfter = %v, want 5m", result.RetryAfter)
	}

	clock.Advance(5*time.Minute + time.Second)
	if result := limiter.CheckLogin(email, ip); !result.Allowed {
		t.Fatalf("lockout should expire, got %s", result.Reason)
	}
	if limiter.RecordFailure(email) {
		t.Fatal("first failure after lockout expiry should not lock again")
	}
}

func TestCheckLogin_IdentifierNormalization(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	limiter.RecordFailure("Player@Example.com")
	limiter.RecordFailure("  player@example.com ")
	limiter.RecordFailure("PLAYER@EXAMPLE.COM")

	if result := limiter.CheckLogin("player@example.com", "203.0.113.10"); result.Allowed {
		t.Fatal("case and whitespace variants should share one counter")
	}
}

func TestReset_ClearsFailures(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	email := "player@example.com"
	limiter.RecordFailure(email)
	limiter.RecordFailure(email)
	limiter.Reset(email)

	if limiter.RecordFailure(email) {
		t.Fatal("counter should restart after Reset")
	}
	if result := limiter.CheckLogin(email, "203.0.113.10"); !result.Allowed {
		t.Fatalf("expected allowed after Reset, got %s", result.Reason)
	}
}

func TestCheckLogin_IPBucket(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxFailures: 100,
		Lockout:     time.Minute,
		IPEvery:     time.Minute,
		IPBurst:     3,
		Clock:       clock,
	})
	defer limiter.Close()

	ip := "203.0.113.20"
	for i := 0; i < 3; i++ {
		// Different accounts from one address share the bucket.
		if result := limiter.CheckLogin("user"+string(rune('a'+i))+"@example.com", ip); !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got %s", i+1, result.Reason)
		}
	}

	result := limiter.CheckLogin("userz@example.com", ip)
	if result.Allowed {
		t.Fatal("expected IP bucket to be empty")
	}
	if result.Reason != "ip_rate" {
		t.Errorf("Reason = %q, want ip_rate", result.Reason)
	}
	if result.RetryAfter <= 0 || result.RetryAfter > time.Minute+time.Second {
		t.Errorf("RetryAfter = %v, want about 1m", result.RetryAfter)
	}

	if result := limiter.CheckLogin("userz@example.com", "203.0.113.21"); !result.Allowed {
		t.Fatal("another IP should have its own bucket")
	}

	clock.Advance(time.Minute)
	if result := limiter.CheckLogin("userz@example.com", ip); !result.Allowed {
		t.Fatalf("bucket should refill, got %s", result.Reason)
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50",
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1",
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "198.51.100.7",
			trustProxy: false,
			expected:   "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("POST", "/login", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"JOHN.DOE@EXAMPLE.COM", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"not-an-email", "***"},
		{"", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.expected {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	limiter := New(nil)
	defer limiter.Close()

	if limiter.config.MaxFailures != 5 {
		t.Error("New(nil) should use default config")
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)
	limiter.CheckLogin("test@example.com", "1.2.3.4")

	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Error("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxFailures: 1000,
		Lockout:     time.Minute,
		IPEvery:     time.Millisecond,
		IPBurst:     1000,
		Clock:       clock,
	})
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if limiter.CheckLogin("user@example.com", "192.168.1.1").Allowed {
					limiter.RecordFailure("user@example.com")
				}
				limiter.Reset("user@example.com")
			}
		}()
	}
	wg.Wait()
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"fe80::1", true},
		{"::ffff:10.0.0.1", true},
		{"::ffff:8.8.8.8", false},
		{"203.0.113.50", false},
		{"2001:4860:4860::8888", false},
		{"invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := isPrivateIP(tt.ip); got != tt.expected {
				t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}
