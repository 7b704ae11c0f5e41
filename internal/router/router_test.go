package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"doseup-parent/internal/app"
	"doseup-parent/internal/config"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/router"
)

// smsInbox captura los SMS del proveedor OTP local.
type smsInbox struct {
	mu   sync.Mutex
	last map[string]string
}

func (s *smsInbox) Send(_ context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		s.last = map[string]string{}
	}
	s.last[phone] = message
	return nil
}

func (s *smsInbox) code(t *testing.T, phone string) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.last[phone]
	if len(msg) < 6 {
		t.Fatalf("no sms for %s", phone)
	}
	return msg[len(msg)-6:]
}

type fixture struct {
	URL    string
	Inbox  *smsInbox
	Parent parents.Parent
	Noon   time.Time
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	inbox := &smsInbox{}
	a, err := app.New(app.Options{
		Config: config.Config{
			Env:          "development",
			Timezone:     "UTC",
			JWTSecret:    "test-secret",
			SessionTTL:   time.Hour,
			OTPProvider:  "local",
			OTPTTL:       time.Minute,
			Notifier:     "memory",
			PollInterval: time.Second,
		},
		SMS: inbox,
	})
	if err != nil {
		t.Fatalf("app: %v", err)
	}

	ctx := context.Background()
	p, err := a.Parents.Create(ctx, parents.CreateInput{
		AdminID:     "admin-1",
		PhoneNumber: "+51999111222",
		Name:        "Mamá",
		Timezone:    "UTC",
	})
	if err != nil {
		t.Fatalf("seed parent: %v", err)
	}

	now := time.Now().UTC()
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	tomorrow := int((noon.Weekday() + 1) % 7)

	seed := []medicines.Medicine{
		{ID: "aspirin", Name: "Aspirin", Dosage: "100 mg", Notes: "Take **with food**", DoseTimes: []string{"08:00", "20:00"}},
		{ID: "vitd", Name: "Vitamin D", DoseTimes: []string{"09:00"},
			Frequency: &medicines.Frequency{Type: medicines.FrequencyWeekly, Days: []int{tomorrow}}},
	}
	for _, m := range seed {
		m.AdminID, m.ParentID = p.AdminID, p.ID
		if err := a.Medicines.Save(ctx, m); err != nil {
			t.Fatalf("seed medicine: %v", err)
		}
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{App: a}))
	t.Cleanup(ts.Close)

	return fixture{URL: ts.URL, Inbox: inbox, Parent: p, Noon: noon}
}

func TestHTTP_EndToEnd_LoginScheduleDosesReminders(t *testing.T) {
	f := newFixture(t)

	// 1) Login por OTP
	token := login(t, f, "51999111222")
	bearer := map[string]string{"Authorization": "Bearer " + token}

	// 2) Tomas de hoy al mediodía: 20:00 viene, 08:00 ya pasó; Vitamin D no toca hoy
	sched := getSchedule(t, f, bearer)
	if got := entryTimes(sched); strings.Join(got, ",") != "20:00,08:00" {
		t.Fatalf("expected [20:00 08:00], got %v", got)
	}
	if sched.Next == nil || sched.Next.DoseTime != "20:00" {
		t.Fatalf("expected next dose 20:00, got %+v", sched.Next)
	}
	if sched.Entries[0].DisplayTime != "8:00 PM" {
		t.Fatalf("expected display 8:00 PM, got %q", sched.Entries[0].DisplayTime)
	}

	// 3) Marcar 08:00 tomada
	{
		st, body := doReq(t, f.URL, "POST", "/me/doses", bearer, map[string]any{
			"medicine_id": "aspirin",
			"dose_time":   "08:00",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 mark taken, got %d body=%s", st, string(body))
		}
	}

	// 4) Segunda vez el mismo día => 409
	{
		st, _ := doReq(t, f.URL, "POST", "/me/doses", bearer, map[string]any{
			"medicine_id": "aspirin",
			"dose_time":   "08:00",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate dose, got %d", st)
		}
	}

	// 5) Hora no configurada / hora inválida / medicina inexistente
	for _, tc := range []struct {
		payload map[string]any
		want    int
	}{
		{map[string]any{"medicine_id": "aspirin", "dose_time": "09:00"}, http.StatusUnprocessableEntity},
		{map[string]any{"medicine_id": "aspirin", "dose_time": "8am"}, http.StatusBadRequest},
		{map[string]any{"medicine_id": "nope", "dose_time": "08:00"}, http.StatusNotFound},
	} {
		st, body := doReq(t, f.URL, "POST", "/me/doses", bearer, tc.payload)
		if st != tc.want {
			t.Fatalf("payload %v: expected %d, got %d body=%s", tc.payload, tc.want, st, string(body))
		}
	}

	// 6) Progreso 1/2
	sched = getSchedule(t, f, bearer)
	if sched.Progress.Taken != 1 || sched.Progress.Total != 2 {
		t.Fatalf("expected progress 1/2, got %+v", sched.Progress)
	}
	if !sched.Entries[1].Taken || sched.Entries[0].Taken {
		t.Fatalf("expected only 08:00 taken, got %+v", sched.Entries)
	}

	// 7) Sync de recordatorios: todas las medicinas × horas, sin filtrar por frecuencia
	{
		st, body := doReq(t, f.URL, "POST", "/me/reminders/sync", bearer, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 sync, got %d body=%s", st, string(body))
		}
		var res struct {
			Scheduled int                 `json:"scheduled"`
			IDs       map[string][]string `json:"ids"`
		}
		_ = json.Unmarshal(body, &res)
		if res.Scheduled != 3 || len(res.IDs["aspirin"]) != 2 || len(res.IDs["vitd"]) != 1 {
			t.Fatalf("unexpected sync result %s", string(body))
		}
	}

	// 8) Listar y cancelar (logout)
	if n := countReminders(t, f, bearer); n != 3 {
		t.Fatalf("expected 3 reminders, got %d", n)
	}
	{
		st, _ := doReq(t, f.URL, "DELETE", "/me/reminders", bearer, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 clear reminders, got %d", st)
		}
	}
	if n := countReminders(t, f, bearer); n != 0 {
		t.Fatalf("expected 0 reminders after clear, got %d", n)
	}
}

func TestHTTP_OTP_RejectsWrongCodeAndUnknownPhone(t *testing.T) {
	f := newFixture(t)

	v := startOTP(t, f, "+51999111222")
	v["code"] = "000000"
	if st, _ := doReq(t, f.URL, "POST", "/auth/otp/confirm", nil, v); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 wrong code, got %d", st)
	}

	v = startOTP(t, f, "+51000000000")
	v["code"] = f.Inbox.code(t, "+51000000000")
	if st, _ := doReq(t, f.URL, "POST", "/auth/otp/confirm", nil, v); st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown parent, got %d", st)
	}
}

func TestHTTP_MeRoutesRequireAuth(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/me/schedule", "/me/medicines", "/me/doses", "/me/reminders"} {
		if st, _ := doReq(t, f.URL, "GET", path, nil, nil); st != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, st)
		}
	}
	bad := map[string]string{"Authorization": "Bearer nope"}
	if st, _ := doReq(t, f.URL, "GET", "/me/schedule", bad, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", st)
	}
}

func TestHTTP_MedicineDetail_WithDebugHeaders(t *testing.T) {
	f := newFixture(t)
	debug := map[string]string{
		"X-Debug-Parent-ID": f.Parent.ID,
		"X-Debug-Admin-ID":  f.Parent.AdminID,
	}

	st, body := doReq(t, f.URL, "GET", "/me/medicines", debug, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list medicines, got %d body=%s", st, string(body))
	}
	var list []map[string]any
	_ = json.Unmarshal(body, &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 medicines, got %d", len(list))
	}

	st, body = doReq(t, f.URL, "GET", "/me/medicines/aspirin", debug, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 medicine detail, got %d body=%s", st, string(body))
	}
	var m struct {
		NotesHTML    string   `json:"notes_html"`
		DisplayTimes []string `json:"display_times"`
		NextDose     *struct {
			DoseTime string `json:"dose_time"`
		} `json:"next_dose"`
	}
	_ = json.Unmarshal(body, &m)
	if !strings.Contains(m.NotesHTML, "<strong>with food</strong>") {
		t.Fatalf("expected rendered notes, got %q", m.NotesHTML)
	}
	if strings.Join(m.DisplayTimes, ",") != "8:00 AM,8:00 PM" {
		t.Fatalf("unexpected display times %v", m.DisplayTimes)
	}
	if m.NextDose == nil {
		t.Fatalf("expected next dose")
	}

	if st, _ := doReq(t, f.URL, "GET", "/me/medicines/nope", debug, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown medicine, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	f := newFixture(t)
	st, body := doReq(t, f.URL, "GET", "/health", nil, nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", st, string(body))
	}
}

// -------------------------
// helpers
// -------------------------

type scheduleResp struct {
	Date     string `json:"date"`
	Progress struct {
		Taken int `json:"taken"`
		Total int `json:"total"`
	} `json:"progress"`
	Entries []entryResp `json:"entries"`
	Next    *entryResp  `json:"next"`
}

type entryResp struct {
	MedicineID  string `json:"medicine_id"`
	DoseTime    string `json:"dose_time"`
	DisplayTime string `json:"display_time"`
	Taken       bool   `json:"taken"`
}

func entryTimes(s scheduleResp) []string {
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.DoseTime)
	}
	return out
}

func startOTP(t *testing.T, f fixture, phone string) map[string]any {
	t.Helper()

	st, body := doReq(t, f.URL, "POST", "/auth/otp/start", nil, map[string]any{"phone": phone})
	if st != http.StatusOK {
		t.Fatalf("expected 200 otp start, got %d body=%s", st, string(body))
	}
	var v map[string]any
	_ = json.Unmarshal(body, &v)
	if v["verification_id"] == "" {
		t.Fatalf("otp start: missing verification_id body=%s", string(body))
	}
	return v
}

func login(t *testing.T, f fixture, phone string) string {
	t.Helper()

	v := startOTP(t, f, phone)
	v["code"] = f.Inbox.code(t, v["phone"].(string))

	st, body := doReq(t, f.URL, "POST", "/auth/otp/confirm", nil, v)
	if st != http.StatusOK {
		t.Fatalf("expected 200 otp confirm, got %d body=%s", st, string(body))
	}
	var resp struct {
		Token  string `json:"token"`
		Parent struct {
			ID string `json:"id"`
		} `json:"parent"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" || resp.Parent.ID != f.Parent.ID {
		t.Fatalf("otp confirm: unexpected body=%s", string(body))
	}
	return resp.Token
}

func getSchedule(t *testing.T, f fixture, headers map[string]string) scheduleResp {
	t.Helper()

	st, body := doReq(t, f.URL, "GET", "/me/schedule?at="+f.Noon.Format(time.RFC3339), headers, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 schedule, got %d body=%s", st, string(body))
	}
	var s scheduleResp
	if err := json.Unmarshal(body, &s); err != nil {
		t.Fatalf("schedule json: %v", err)
	}
	return s
}

func countReminders(t *testing.T, f fixture, headers map[string]string) int {
	t.Helper()

	st, body := doReq(t, f.URL, "GET", "/me/reminders", headers, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list reminders, got %d body=%s", st, string(body))
	}
	var items []map[string]any
	_ = json.Unmarshal(body, &items)
	return len(items)
}

func doReq(t *testing.T, baseURL, method, path string, headers map[string]string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
