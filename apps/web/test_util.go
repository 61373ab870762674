package webapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/auth"
	"github.com/darasahq/darasa/core/directory"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/session"
	logsvc "github.com/darasahq/darasa/services/logger"
	notifysvc "github.com/darasahq/darasa/services/notify"
)

const testSecret = "password"

type testApp struct {
	srv   Server
	gate  *auth.Gate
	store session.Store
}

func testConf(t *testing.T) *core.Config {
	t.Helper()
	conf := &core.Config{
		AppName:      "Darasa",
		Env:          "TEST",
		Debug:        false,
		SecretKey:    []byte("secret"),
		SharedSecret: testSecret,
		LoginLatency: 0,
		SessionFile:  filepath.Join(t.TempDir(), "session"),
	}
	conf.Server.Addr = ":0"
	conf.Server.ShutdownTimeout = time.Second
	return conf
}

// initApp builds a full server against a fresh session slot. With
// restore=false the gate is left unsettled, as it is before main has run
// the startup load.
func initApp(t *testing.T, restore bool) *testApp {
	t.Helper()

	conf := testConf(t)
	std := log.New(ioutil.Discard, "", 0)
	logger := logsvc.NewConsoleLogger(std)
	notifier := notifysvc.NewConsoleService(std)

	dir := directory.Seeded()
	store := session.NewFileStore(conf.SessionFile, conf.SecretKey)
	gate := auth.NewGate(dir, store, logger, notifier, conf)
	if restore {
		gate.Restore()
	}

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	directory.InitValidators(validate, translator)

	srv := NewServer(Deps{
		Conf:           conf,
		Logger:         logger,
		Gate:           gate,
		Directory:      dir,
		School:         school.NewService(dir, school.Seed()),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return &testApp{srv: srv, gate: gate, store: store}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (app *testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.srv.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) login(t *testing.T, role, userID string) LoginResponse {
	t.Helper()
	rec := app.do(http.MethodPost, "/v1/auth/login", loginBody(t, role, userID, testSecret))
	if rec.Code != http.StatusOK {
		t.Fatalf("login(%s, %s) code = %d; body %s", role, userID, rec.Code, rec.Body.String())
	}
	var res LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding LoginResponse failed: %v", err)
	}
	return res
}

func loginBody(t *testing.T, role, userID, secret string) []byte {
	t.Helper()
	return marchallObj(t, auth.Attempt{Role: role, ExternalID: userID, Secret: secret})
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	wantLoc  string
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantLoc != "" {
		if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
			t.Errorf("failed! location = %q; wantLoc %q", loc, tt.wantLoc)
		}
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
