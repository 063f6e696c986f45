package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	"github.com/BruksfildServices01/clinic-portal/internal/config"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/idempotency"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/imagestore"
	"github.com/BruksfildServices01/clinic-portal/internal/routes"
	"github.com/BruksfildServices01/clinic-portal/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	idem   *idempotency.MemoryStore
	cfg    *config.Config
}

func newServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		LoginRatePerMin: 60,
		ImageMaxDim:     64,
		ImageStorage:    config.ImageStorageDB,
		IdempotencyTTL:  time.Minute,
	}
	for _, m := range mutate {
		m(cfg)
	}

	log := zap.NewNop()
	db := testutil.NewDB(t)
	d := audit.NewDispatcher(audit.New(db, log), log)
	t.Cleanup(d.Close)
	idem := idempotency.NewMemoryStore(cfg.IdempotencyTTL)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Audit:       d,
		Idempotency: idem,
		Images:      imagestore.NewDBStore(),
	})

	return &testServer{router: r, db: db, idem: idem, cfg: cfg}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return s.do(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
