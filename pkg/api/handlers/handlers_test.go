package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyconnect/pkg/blocklist"
	"familyconnect/pkg/chat"
	"familyconnect/pkg/models"
	"familyconnect/pkg/notify"
	"familyconnect/pkg/plan"
	"familyconnect/pkg/status"
	"familyconnect/pkg/store"
)

var (
	alex = models.FamilyMember{ID: "1", Name: "Alex", Role: models.RoleParent}
	maya = models.FamilyMember{ID: "3", Name: "Maya", Role: models.RoleChild}
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	require.NoError(t, store.Open(t.TempDir()))
	t.Cleanup(func() { _ = store.Close() })

	chats := []models.Chat{
		{ID: "c1", Name: "Sarah", Type: models.ChatIndividual, Participants: []string{"1", "2"}},
		{ID: "c3", Name: "Family", Type: models.ChatGroup, Participants: []string{"1", "2", "3", "4"}},
	}
	require.NoError(t, store.SaveCollection(store.KeyChats, chats))

	blocked := blocklist.Load()
	deps := Deps{
		Members:       []models.FamilyMember{alex, {ID: "2", Name: "Sarah", Role: models.RoleParent}, maya},
		CurrentUser:   alex,
		Chats:         chat.New(blocked, nil, func() bool { return false }),
		Statuses:      status.New(),
		Plans:         plan.New(),
		Notifications: notify.New(),
		Blocked:       blocked,
	}
	r := mux.NewRouter()
	New(deps).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string, hdr map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestSendAndListMessages(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/chats/c1/messages", `{"text":"hello"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var msg models.ChatMessage
	decode(t, resp, &msg)
	assert.Equal(t, "1", msg.SenderID, "defaults to the current user")
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, models.MessageText, msg.Type, "omitted type defaults to text")

	resp = do(t, http.MethodGet, srv.URL+"/chats/c1/messages", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msgs []models.ChatMessage
	decode(t, resp, &msgs)
	require.Len(t, msgs, 1)
	assert.Equal(t, msg.ID, msgs[0].ID)
}

func TestSendActsAsHeaderMember(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/chats/c3/messages", `{"text":"hi"}`,
		map[string]string{"X-Member-ID": "3"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var msg models.ChatMessage
	decode(t, resp, &msg)
	assert.Equal(t, "3", msg.SenderID)
	assert.Equal(t, "Maya", msg.SenderName)
}

func TestSendRejectsBadPayloads(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/chats/c1/messages", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/chats/c1/messages", `{"text":"x","type":"carrier-pigeon"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/chats/nope/messages", `{"text":"x"}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlockGateReturnsNotice(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/chats/c1/block", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var blocked map[string]string
	decode(t, resp, &blocked)
	assert.Equal(t, "2", blocked["blocked"])

	resp = do(t, http.MethodPost, srv.URL+"/chats/c1/messages", `{"text":"hello?"}`, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Contains(t, body["notice"], "blocked")
	assert.Empty(t, body["error"], "a blocked send is a notice, not an error")

	// re-blocking the same chat is an idempotent success
	resp = do(t, http.MethodPost, srv.URL+"/chats/c1/block", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &blocked)
	assert.Equal(t, "2", blocked["blocked"])

	// group chats get an acknowledgment without touching the set
	resp = do(t, http.MethodPost, srv.URL+"/chats/c3/block", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ack map[string]string
	decode(t, resp, &ack)
	assert.Equal(t, "Family has been blocked.", ack["notice"])

	resp = do(t, http.MethodGet, srv.URL+"/blocked", "", nil)
	var ids []string
	decode(t, resp, &ids)
	assert.Equal(t, []string{"2"}, ids)

	resp = do(t, http.MethodDelete, srv.URL+"/blocked/2", "", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodPost, srv.URL+"/chats/c1/messages", `{"text":"hello again"}`, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCallCheck(t *testing.T) {
	srv := newServer(t)
	do(t, http.MethodPost, srv.URL+"/chats/c1/block", "", nil)

	resp := do(t, http.MethodPost, srv.URL+"/calls/check", `{"member_id":"2"}`, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/calls/check", `{"member_id":"3"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check map[string]bool
	decode(t, resp, &check)
	assert.True(t, check["allowed"])
	assert.True(t, check["supervised"], "calls to a child are supervised")

	resp = do(t, http.MethodPost, srv.URL+"/calls/check", `{"member_id":""}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusLifecycle(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/statuses", `{"type":"text","content":"hi","background_color":"#fff"}`,
		map[string]string{"X-Member-ID": "2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var st models.StatusUpdate
	decode(t, resp, &st)
	assert.Equal(t, "2", st.SenderID)

	resp = do(t, http.MethodPost, srv.URL+"/statuses/"+st.ID+"/reactions", `{"emoji":"❤️"}`, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/statuses/"+st.ID+"/viewers", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// viewer is alex; sarah's status shows under the family scope
	resp = do(t, http.MethodGet, srv.URL+"/statuses?scope=family", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var family []models.StatusUpdate
	decode(t, resp, &family)
	require.Len(t, family, 1)
	assert.Equal(t, []string{"1"}, family[0].Viewers)
	require.Len(t, family[0].Reactions, 1)

	resp = do(t, http.MethodGet, srv.URL+"/statuses?scope=mine", "", nil)
	var mine []models.StatusUpdate
	decode(t, resp, &mine)
	assert.Empty(t, mine)

	resp = do(t, http.MethodDelete, srv.URL+"/statuses/"+st.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodDelete, srv.URL+"/statuses/"+st.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlanEndpoints(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/plans", `{"title":"Sleepover","type":"Event"}`,
		map[string]string{"X-Member-ID": "3"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p models.FamilyPlan
	decode(t, resp, &p)
	assert.False(t, p.IsApproved)

	resp = do(t, http.MethodPost, srv.URL+"/plans", `{"title":"","type":"Event"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/plans/"+p.ID+"/status", `{"status":"Cancelled"}`, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodPut, srv.URL+"/plans/"+p.ID+"/status", `{"status":"Paused"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/plans?type=Event", "", nil)
	var plans []models.FamilyPlan
	decode(t, resp, &plans)
	require.Len(t, plans, 1)

	resp = do(t, http.MethodDelete, srv.URL+"/plans/"+p.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDeleteMessagePermission(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/chats/c3/messages", `{"text":"from alex"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var msg models.ChatMessage
	decode(t, resp, &msg)

	resp = do(t, http.MethodDelete, srv.URL+"/messages/"+msg.ID, "", map[string]string{"X-Member-ID": "3"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/messages/"+msg.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNotificationsEndpoints(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/notifications", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Notifications []models.Notification `json:"notifications"`
		Unread        int                   `json:"unread"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 0, body.Unread)

	resp = do(t, http.MethodPost, srv.URL+"/notifications/read", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodDelete, srv.URL+"/notifications", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
