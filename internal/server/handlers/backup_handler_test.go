package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmflow/internal/storage"
)

func uploadBundle(t *testing.T, r http.Handler, bundle []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("backup", "farmflow-backup.json")
	require.NoError(t, err)
	_, err = part.Write(bundle)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/restore", &buf)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(recorder, request)
	return recorder
}

func TestBackupReturnsBundleWithDownloadName(t *testing.T) {
	r, _ := newTestRouter(t)

	recorder := doJSON(r, http.MethodGet, "/backup", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	disposition := recorder.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "farmflow-backup-")

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &doc))
	assert.Contains(t, doc, "_backupMetadata")
	assert.Contains(t, doc, "livestock")
	assert.Contains(t, doc, "egg-logs")
	assert.NotContains(t, doc, "backup-history")
}

func TestBackupRecordsHistory(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/backup", "").Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/backup", "").Code)

	recorder := doJSON(r, http.MethodGet, "/backup-history", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Alice Farmer", entries[0]["user"])
}

func TestRestoreWithoutFileReturns400(t *testing.T) {
	r, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/restore", nil)
	r.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "No backup file uploaded.")
}

func TestRestoreWithMalformedBundleReturns500(t *testing.T) {
	r, _ := newTestRouter(t)

	recorder := uploadBundle(t, r, []byte("{not json"))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

// Full round trip: back up, delete a record out from under the store, then
// restore the bundle and observe the record reappear.
func TestBackupRestoreRoundTripRecoversDeletedRecord(t *testing.T) {
	r, store := newTestRouter(t)

	backupResp := doJSON(r, http.MethodGet, "/backup", "")
	require.Equal(t, http.StatusOK, backupResp.Code)

	require.NoError(t, store.DeleteRecord(storage.TableLivestock, "COW-001"))
	animals, err := store.ReadTable(storage.TableLivestock)
	require.NoError(t, err)
	require.Len(t, animals, 5)

	recorder := uploadBundle(t, r, backupResp.Body.Bytes())
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Restore successful.")

	animals, err = store.ReadTable(storage.TableLivestock)
	require.NoError(t, err)
	require.Len(t, animals, 6)

	found := false
	for _, animal := range animals {
		if animal["id"] == "COW-001" {
			found = true
		}
	}
	assert.True(t, found, "COW-001 should be restored")
}
