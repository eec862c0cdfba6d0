package updates

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"mod-sync/core/models"
	"mod-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, svc *Service) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, NewFeature(svc).Load(app))
	return app
}

func TestHandleCheck(t *testing.T) {
	local := &fakeLocal{mods: []*models.Mod{localMod("alpha", "1.0.0")}}
	fetcher := &fakeFetcher{mods: map[string]*models.Mod{
		"alpha": remoteMod("alpha", models.Release{Version: "1.1.0"}),
	}}
	app := newTestApp(t, newTestService(t, local, fetcher, &fakeDownloader{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/updates", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Len(t, report.Checks, 1)
	assert.Equal(t, StatusUpdateAvailable, report.Checks[0].Status)
	assert.Equal(t, "1.1.0", report.Checks[0].Target.Version)
}

func TestHandleCheck_ScanError(t *testing.T) {
	app := newTestApp(t, newTestService(t, &fakeLocal{err: errors.New("mods directory missing")}, &fakeFetcher{}, &fakeDownloader{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/updates", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "mods directory missing")
}

func TestHandleSync_DryRun(t *testing.T) {
	local := &fakeLocal{mods: []*models.Mod{localMod("alpha", "1.0.0")}}
	fetcher := &fakeFetcher{mods: map[string]*models.Mod{
		"alpha": remoteMod("alpha", models.Release{Version: "1.1.0"}),
	}}
	app := newTestApp(t, newTestService(t, local, fetcher, &fakeDownloader{}))

	resp, err := app.Test(httptest.NewRequest("POST", "/updates/sync?dry_run=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.DryRun)
	assert.Empty(t, report.Downloads)
}

func TestHandleChangelog_NotFound(t *testing.T) {
	app := newTestApp(t, newTestService(t, &fakeLocal{}, &fakeFetcher{}, &fakeDownloader{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/updates/changelog/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleHistory_WithoutStore(t *testing.T) {
	app := newTestApp(t, newTestService(t, &fakeLocal{}, &fakeFetcher{}, &fakeDownloader{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/updates/history/alpha", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHandleMirror_Disabled(t *testing.T) {
	app := newTestApp(t, newTestService(t, &fakeLocal{}, &fakeFetcher{}, &fakeDownloader{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/updates/mirror/alpha", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"enabled":false,"objects":[]}`, string(body))
}

func TestHandleMirror_EnabledButEmpty(t *testing.T) {
	mirror := new(mockMirror)
	mirror.On("List", mock.Anything, "alpha").Return(nil, nil)
	app := newTestApp(t, newTestService(t, &fakeLocal{}, &fakeFetcher{}, &fakeDownloader{}, WithMirror(mirror)))

	resp, err := app.Test(httptest.NewRequest("GET", "/updates/mirror/alpha", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"enabled":true,"objects":[]}`, string(body))
}

func TestHandleMirror_ListsObjects(t *testing.T) {
	mirror := new(mockMirror)
	mirror.On("List", mock.Anything, "alpha").Return([]storage.Object{{Key: "archives/alpha/alpha_1.0.0.zip", Size: 11}}, nil)
	app := newTestApp(t, newTestService(t, &fakeLocal{}, &fakeFetcher{}, &fakeDownloader{}, WithMirror(mirror)))

	resp, err := app.Test(httptest.NewRequest("GET", "/updates/mirror/alpha", nil))
	require.NoError(t, err)

	var body struct {
		Enabled bool             `json:"enabled"`
		Objects []storage.Object `json:"objects"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Enabled)
	require.Len(t, body.Objects, 1)
	assert.Equal(t, int64(11), body.Objects[0].Size)
}
