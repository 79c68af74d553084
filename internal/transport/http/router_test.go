package http

import (
	"bufio"
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"parish/internal/domain"
	"parish/internal/dto"
	"parish/internal/notify"
	"parish/internal/observability/logging"
	"parish/internal/observability/metrics"
	"parish/internal/paystack"
	"parish/internal/service"
	"parish/internal/session"
	"parish/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const webhookSecret = "sk_test_webhook"

func TestMain(m *testing.M) {
	metrics.MustRegister("test")
	os.Exit(m.Run())
}

// fakeGateway answers like Paystack without the network. Signature
// checks use the real HMAC so the webhook path is exercised end to end.
type fakeGateway struct {
	status map[string]string // reference -> gateway status
}

func (g *fakeGateway) Initialize(_ context.Context, req paystack.InitializeRequest) (*paystack.InitializeData, error) {
	return &paystack.InitializeData{
		AuthorizationURL: "https://checkout.paystack.test/" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *fakeGateway) Verify(_ context.Context, reference string) (*paystack.VerifyData, error) {
	status, ok := g.status[reference]
	if !ok {
		status = "abandoned"
	}
	return &paystack.VerifyData{Status: status, Reference: reference}, nil
}

func (g *fakeGateway) ValidSignature(body []byte, signature string) bool {
	return paystack.ValidSignature(webhookSecret, body, signature)
}

type testEnv struct {
	srv *httptest.Server
	st  *store.Store
	gw  *fakeGateway
	reg *notify.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.PasswordReset{},
		&domain.Mass{},
		&domain.MassIntention{},
		&domain.Thanksgiving{},
		&domain.Event{},
		&domain.RSVP{},
		&domain.Payment{},
		&domain.PaymentGoal{},
		&domain.ActivityLog{},
		&domain.SystemNotification{},
		&domain.ChurchInfo{},
		&domain.Service{},
	))
	st := store.New(db)

	registry := notify.NewRegistry()
	t.Cleanup(registry.Close)

	gw := &fakeGateway{status: map[string]string{}}
	hasher := service.NewHasher()
	sessions := session.NewManager("test-secret", time.Hour, false)
	log := logging.New(io.Discard, "error", "test")

	h := NewHandler(
		service.NewAuthService(st, hasher),
		service.NewBookingService(st, registry),
		service.NewPaymentService(st, gw, registry, "https://parish.test/payments/verify"),
		service.NewEventService(st),
		service.NewActivityService(st, registry),
		service.NewContentService(st),
		sessions,
		registry,
		log,
	)

	srv := httptest.NewServer(h.Router(""))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, st: st, gw: gw, reg: registry}
}

func signWebhook(body []byte) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, raw
}

func registerAs(t *testing.T, env *testEnv, c *http.Client, email string) dto.UserResponse {
	t.Helper()
	resp, raw := doJSON(t, c, http.MethodPost, env.srv.URL+"/auth/register", dto.RegisterRequest{
		Name: "Member", Email: email, Password: "Passw0rd!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var u dto.UserResponse
	require.NoError(t, json.Unmarshal(raw, &u))
	return u
}

// loginAs promotes the user directly in storage and signs in over HTTP,
// so the session cookie carries the elevated role.
func loginAs(t *testing.T, env *testEnv, email string, role domain.Role) *http.Client {
	t.Helper()
	c := newClient(t)
	registerAs(t, env, c, email)

	if role != domain.RoleParishioner {
		user, err := env.st.Users().GetByEmail(context.Background(), email)
		require.NoError(t, err)
		user.Role = role
		require.NoError(t, env.st.DB.Save(user).Error)

		resp, raw := doJSON(t, c, http.MethodPost, env.srv.URL+"/auth/login", dto.LoginRequest{
			Email: email, Password: "Passw0rd!",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	}
	return c
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := doJSON(t, newClient(t), http.MethodGet, env.srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(raw))
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t)

	// Anonymous requests to member routes are rejected.
	resp, _ := doJSON(t, c, http.MethodGet, env.srv.URL+"/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	u := registerAs(t, env, c, "ada@parish.test")
	assert.Equal(t, string(domain.RoleParishioner), u.Role)

	// Registration set the session cookie; /session now resolves.
	resp, raw := doJSON(t, c, http.MethodGet, env.srv.URL+"/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sess dto.SessionResponse
	require.NoError(t, json.Unmarshal(raw, &sess))
	assert.Equal(t, u.ID, sess.UserID)

	resp, _ = doJSON(t, c, http.MethodPost, env.srv.URL+"/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, c, http.MethodGet, env.srv.URL+"/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Bad credentials.
	resp, _ = doJSON(t, c, http.MethodPost, env.srv.URL+"/auth/login", dto.LoginRequest{
		Email: "ada@parish.test", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGating(t *testing.T) {
	env := newTestEnv(t)

	member := loginAs(t, env, "member@parish.test", domain.RoleParishioner)
	admin := loginAs(t, env, "admin@parish.test", domain.RoleAdmin)

	massReq := dto.CreateMassRequest{
		Title:                    "Sunday Mass",
		ScheduledAt:              time.Now().UTC().Add(48 * time.Hour),
		AvailableIntentionsSlots: 5,
	}

	resp, _ := doJSON(t, member, http.MethodPost, env.srv.URL+"/admin/masses", massReq)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := doJSON(t, admin, http.MethodPost, env.srv.URL+"/admin/masses", massReq)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	// Admin is not enough for the superadmin surface.
	resp, _ = doJSON(t, admin, http.MethodPost, env.srv.URL+"/admin/admins", dto.CreateAdminRequest{
		Name: "Second Admin", Email: "admin2@parish.test", Password: "Shepherd1",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	super := loginAs(t, env, "super@parish.test", domain.RoleSuperAdmin)
	resp, raw = doJSON(t, super, http.MethodPost, env.srv.URL+"/admin/admins", dto.CreateAdminRequest{
		Name: "Second Admin", Email: "admin2@parish.test", Password: "Shepherd1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.UserResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, string(domain.RoleAdmin), created.Role)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAs(t, env, "admin@parish.test", domain.RoleAdmin)
	member := loginAs(t, env, "member@parish.test", domain.RoleParishioner)

	resp, raw := doJSON(t, admin, http.MethodPost, env.srv.URL+"/admin/masses", dto.CreateMassRequest{
		Title:                       "Sunday Mass",
		ScheduledAt:                 time.Now().UTC().Add(48 * time.Hour),
		AvailableIntentionsSlots:    1,
		AvailableThanksgivingsSlots: 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var mass domain.Mass
	require.NoError(t, json.Unmarshal(raw, &mass))

	book := dto.BookIntentionRequest{Name: "Mary", Intention: "healing"}
	resp, raw = doJSON(t, member, http.MethodPost, env.srv.URL+"/masses/"+mass.ID.String()+"/intentions", book)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	// Pool exhausted: booking fails but the thanksgiving pool is intact.
	resp, raw = doJSON(t, member, http.MethodPost, env.srv.URL+"/masses/"+mass.ID.String()+"/intentions", book)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e errBody
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.Equal(t, domain.ErrNoSlots.Error(), e.Error)

	resp, _ = doJSON(t, member, http.MethodPost, env.srv.URL+"/masses/"+mass.ID.String()+"/thanksgivings",
		dto.BookThanksgivingRequest{Description: "new job"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw = doJSON(t, member, http.MethodGet, env.srv.URL+"/masses/"+mass.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Mass
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, domain.MassFull, got.Status)

	resp, raw = doJSON(t, member, http.MethodGet, env.srv.URL+"/me/intentions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []domain.MassIntention
	require.NoError(t, json.Unmarshal(raw, &mine))
	assert.Len(t, mine, 1)
}

func TestPaymentWebhookOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	member := loginAs(t, env, "member@parish.test", domain.RoleParishioner)

	resp, raw := doJSON(t, member, http.MethodPost, env.srv.URL+"/payments", dto.CreatePaymentRequest{
		Type: "DONATION", Category: "building-fund", Amount: 50000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var pay domain.Payment
	require.NoError(t, json.Unmarshal(raw, &pay))

	resp, raw = doJSON(t, member, http.MethodPost, env.srv.URL+"/payments/"+pay.ID.String()+"/initiate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var init dto.InitiatePaymentResponse
	require.NoError(t, json.Unmarshal(raw, &init))
	env.gw.status[init.Reference] = "success"

	body := []byte(`{"event":"charge.success","data":{"reference":"` + init.Reference + `"}}`)

	// A forged signature is rejected and nothing changes.
	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/webhooks/paystack", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(paystack.SignatureHeader, "forged")
	wr, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, wr.Body.Close())
	assert.Equal(t, http.StatusBadRequest, wr.StatusCode)

	// Properly signed delivery flips the payment.
	req, err = http.NewRequest(http.MethodPost, env.srv.URL+"/webhooks/paystack", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(paystack.SignatureHeader, signWebhook(body))
	wr, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, wr.Body.Close())
	assert.Equal(t, http.StatusOK, wr.StatusCode)

	resp, raw = doJSON(t, member, http.MethodGet, env.srv.URL+"/payments/"+pay.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Payment
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, domain.PaymentPaid, got.Status)

	// The redirect-side verify agrees.
	resp, raw = doJSON(t, newClient(t), http.MethodGet, env.srv.URL+"/payments/verify?reference="+init.Reference, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var vr dto.VerifyPaymentResponse
	require.NoError(t, json.Unmarshal(raw, &vr))
	assert.Equal(t, string(domain.PaymentPaid), vr.Status)
}

func TestMalformedBodyAndBadID(t *testing.T) {
	env := newTestEnv(t)
	member := loginAs(t, env, "member@parish.test", domain.RoleParishioner)

	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/payments", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp, err := member.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	r2, _ := doJSON(t, member, http.MethodGet, env.srv.URL+"/masses/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, r2.StatusCode)
}

// The stream route is mounted outside the request-timeout group, so a
// subscription stays open until the client hangs up and receives
// broadcasts published after the headers went out.
func TestStreamDeliversBroadcasts(t *testing.T) {
	env := newTestEnv(t)
	member := loginAs(t, env, "member@parish.test", domain.RoleParishioner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.srv.URL+"/stream", nil)
	require.NoError(t, err)
	resp, err := member.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	env.reg.Publish(notify.Message{Kind: "banner", Body: "Harvest thanksgiving moved to 10am"})

	lines := make(chan string, 1)
	go func() {
		rd := bufio.NewReader(resp.Body)
		for {
			line, err := rd.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, "data: ") {
				lines <- strings.TrimSpace(strings.TrimPrefix(line, "data: "))
				return
			}
		}
	}()

	select {
	case payload := <-lines:
		var msg notify.Message
		require.NoError(t, json.Unmarshal([]byte(payload), &msg))
		assert.Equal(t, "banner", msg.Kind)
		assert.Equal(t, "Harvest thanksgiving moved to 10am", msg.Body)
	case <-time.After(5 * time.Second):
		t.Fatal("no broadcast received on the stream")
	}
}
