package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shaiso/Keeper/internal/domain"
	"github.com/shaiso/Keeper/internal/gateway"
	"github.com/shaiso/Keeper/internal/signer"
)

const testSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

// newTestSession создаёт сессию против httptest-сервера.
func newTestSession(t *testing.T, baseURL string) *Session {
	t.Helper()

	sg, err := signer.FromHex(testSeed)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}

	acc := &domain.Account{
		Address:    sg.Address(),
		PrivateKey: testSeed,
		RefCode:    "INVITE42",
	}

	return New(Config{
		Account: acc,
		BaseURL: baseURL,
		Policy: gateway.Policy{
			MaxAttempts: 2,
			Timeout:     2 * time.Second,
			RetryWait:   5 * time.Millisecond,
			BaseBackoff: 5 * time.Millisecond,
		},
		Signer: sg,
	})
}

func TestIsRegistered(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.RegistrationStatus
	}{
		{"found", http.StatusOK, `{"data":{"address":"0xabc"}}`, domain.Registered},
		{"not found", http.StatusNotFound, `{"message":"wallet not found"}`, domain.NotRegistered},
		{"ok without data", http.StatusOK, `{}`, domain.RegistrationUnknown},
		{"forbidden", http.StatusForbidden, `{"message":"banned"}`, domain.RegistrationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			sess := newTestSession(t, server.URL)
			if got := sess.IsRegistered(context.Background()); got != tt.want {
				t.Errorf("IsRegistered = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRegistered_GatewayDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	sess := newTestSession(t, url)
	if got := sess.IsRegistered(context.Background()); got != domain.RegistrationUnknown {
		t.Errorf("IsRegistered = %v, want Unknown on transport failure", got)
	}
}

func TestVerifyReferralCode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.StepStatus
	}{
		{"valid", `{"data":{"valid":true}}`, domain.StepOK},
		{"explicitly invalid", `{"data":{"valid":false}}`, domain.StepRejected},
		{"no marker", `{"data":{}}`, domain.StepRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sentCode string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req map[string]string
				json.NewDecoder(r.Body).Decode(&req)
				sentCode = req["refCode"]
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			sess := newTestSession(t, server.URL)
			if got := sess.VerifyReferralCode(context.Background()); got != tt.want {
				t.Errorf("VerifyReferralCode = %v, want %v", got, tt.want)
			}
			if sentCode != "INVITE42" {
				t.Errorf("expected ref code in request, got %q", sentCode)
			}
		})
	}
}

func TestClaimDaily_SignedPayload(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"data":{"claimed":true}}`))
	}))
	defer server.Close()

	sess := newTestSession(t, server.URL)
	if got := sess.ClaimDaily(context.Background()); got != domain.StepOK {
		t.Fatalf("ClaimDaily = %v, want OK", got)
	}

	// Подписанный запрос несёт sign, timestamp и walletAddress.
	if payload["sign"] == "" || payload["sign"] == nil {
		t.Error("claim must carry a signature")
	}
	if _, ok := payload["timestamp"].(float64); !ok {
		t.Error("claim must carry a timestamp")
	}
	if payload["walletAddress"] != sess.acc.Address {
		t.Errorf("claim must carry wallet address, got %v", payload["walletAddress"])
	}
}

func TestNodeStatus(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantRunning bool
		wantStatus  domain.StepStatus
	}{
		{"running", `{"data":{"startTime":"2026-08-25T10:00:00Z"}}`, true, domain.StepOK},
		{"stopped null", `{"data":{"startTime":null}}`, false, domain.StepOK},
		{"stopped missing", `{"data":{}}`, false, domain.StepOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			sess := newTestSession(t, server.URL)
			running, st := sess.NodeStatus(context.Background())
			if running != tt.wantRunning || st != tt.wantStatus {
				t.Errorf("NodeStatus = (%v, %v), want (%v, %v)", running, st, tt.wantRunning, tt.wantStatus)
			}
		})
	}
}

func TestNodeAction_StartAndStop(t *testing.T) {
	var actions []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		actions = append(actions, req["action"].(string))
		if req["sign"] == "" || req["sign"] == nil {
			t.Error("node action must be signed")
		}
		w.Write([]byte(`{"data":{"success":true}}`))
	}))
	defer server.Close()

	sess := newTestSession(t, server.URL)
	if got := sess.StopNode(context.Background()); got != domain.StepOK {
		t.Errorf("StopNode = %v, want OK", got)
	}
	if got := sess.StartNode(context.Background()); got != domain.StepOK {
		t.Errorf("StartNode = %v, want OK", got)
	}

	if len(actions) != 2 || actions[0] != "stop" || actions[1] != "start" {
		t.Errorf("expected [stop start], got %v", actions)
	}
}

func TestFetchPoints(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantPoints int64
		wantStatus domain.StepStatus
	}{
		{"both fields", `{"data":{"point":120,"referralPoint":30}}`, 150, domain.StepOK},
		{"missing referral", `{"data":{"point":120}}`, 120, domain.StepOK},
		{"missing points entirely", `{"data":{}}`, 0, domain.StepOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			sess := newTestSession(t, server.URL)
			points, st := sess.FetchPoints(context.Background())
			if points != tt.wantPoints || st != tt.wantStatus {
				t.Errorf("FetchPoints = (%d, %v), want (%d, %v)", points, st, tt.wantPoints, tt.wantStatus)
			}
		})
	}
}

func TestFetchPoints_Unavailable(t *testing.T) {
	// Все попытки — 500: запрос не завершился, баланс неизвестен.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sess := newTestSession(t, server.URL)
	if _, st := sess.FetchPoints(context.Background()); st != domain.StepUnavailable {
		t.Errorf("FetchPoints status = %v, want Unavailable", st)
	}
}
