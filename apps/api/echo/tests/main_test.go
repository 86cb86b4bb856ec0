package tests

import (
	"bytes"
	"encoding/json"
	stdlog "log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ojtrack/ojtrack/apps/api/echo"
	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
	"github.com/ojtrack/ojtrack/core/activity"
	"github.com/ojtrack/ojtrack/core/person"
	"github.com/ojtrack/ojtrack/core/user"
	"github.com/ojtrack/ojtrack/services/email"
	"github.com/ojtrack/ojtrack/services/logger"
	"github.com/ojtrack/ojtrack/storage/kvrepos"
	"github.com/ojtrack/ojtrack/storage/kvstore/inmem"
)

var (
	store     core.Store
	app       Server
	usrRepo   user.Repository
	usrSvc    *user.Service
	personSvc *person.Service
	actSvc    *activity.Service
	sessions  access.SessionRepository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNoPermission = httpErr{Error: "you don't have permission to access this page"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	var err error
	store, err = inmemstore.Open()
	if err != nil {
		os.Exit(1)
	}

	// set up services
	usrRepo = kvrepos.NewUserRepository(store)
	usrSvc = user.NewService(usrRepo, emailsvc.NewConsoleServiceMock())
	personRepo := kvrepos.NewPersonRepository(store)
	actSvc = activity.NewService(kvrepos.NewActivityRepository(store), personRepo)
	personSvc = person.NewService(personRepo, personRepo, usrSvc, actSvc)
	sessions = kvrepos.NewSessionRepository(store)

	// set up server
	app = NewServer(
		&Options{
			DisableReqLogs: true,
			UserSvc:        usrSvc,
			PersonSvc:      personSvc,
			ActivitySvc:    actSvc,
			Sessions:       sessions,
			Store:          store,
			Logger:         logsvc.NewStdLogger(stdlog.New(os.Stdout, "TEST ", stdlog.LstdFlags)),
		},
	)

	os.Exit(m.Run())
}

// resetStore wipes every collection and session scalar between tests.
func resetStore(t *testing.T) {
	keys := []string{
		core.StoreKeyUsers, core.StoreKeyStudents, core.StoreKeySupervisors,
		core.StoreKeyRecords, core.StoreKeyEvaluations, core.StoreKeyAttendance,
		core.StoreKeyIsLoggedIn, core.StoreKeyUserID, core.StoreKeyUserName,
		core.StoreKeyUserEmail, core.StoreKeyUserRole, core.StoreKeyUserProfilePic,
		core.StoreKeyUserSettings, core.StoreKeyAppSettings,
	}
	for _, key := range keys {
		if err := store.Remove(key); err != nil {
			t.Fatalf("resetStore() failed on %q: %v", key, err)
		}
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	users, err := usrSvc.All() // bootstraps the default admin
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	for _, usr := range users {
		if usr.ID == user.DefaultAdminID {
			return getToken(t, usr)
		}
	}
	t.Fatal("default admin not found")
	return ""
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
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
	l1, ok1 := j1.([]interface{})
	l2, ok2 := j2.([]interface{})
	if ok1 && ok2 {
		// order does not matter for list payloads
		return assert.ElementsMatch(t, l1, l2), nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
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
