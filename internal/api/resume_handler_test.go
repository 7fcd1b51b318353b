package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/storage"
	"github.com/abhismart8/resume-builder/internal/tasks"
)

func TestResumeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.user("ada@example.com", database.RoleUser)

	w := env.do(http.MethodPost, "/v1/resumes", token, map[string]any{
		"title":         "<b>Engineer</b>",
		"personal":      map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"},
		"skills":        []string{"Go", "SQL"},
		"isPublic":      true,
		"shareableLink": "forged-token",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "Engineer", created["title"])
	assert.Equal(t, false, created["isPublic"])
	assert.Nil(t, created["shareableLink"])
	id := uint(created["id"].(float64))
	path := fmt.Sprintf("/v1/resumes/%d", id)

	w = env.do(http.MethodPut, path, token, map[string]any{"summary": "Analytical engine programmer", "isPublic": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, "Analytical engine programmer", updated["summary"])
	assert.Equal(t, "Ada Lovelace", updated["personal"].(map[string]any)["name"])
	assert.Equal(t, false, updated["isPublic"])

	w = env.do(http.MethodGet, "/v1/resumes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = env.do(http.MethodGet, "/v1/resumes/latest", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(id), decode(t, w)["id"])

	w = env.do(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{storage.ExportPrefix(user.ID, id)}, env.objects.prefixes)

	w = env.do(http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateResume_ReplacesListsWholesale(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("lists@example.com", database.RoleUser)
	id := env.createResume(token, map[string]any{
		"personal": map[string]any{"name": "Grace Hopper"},
		"experience": []map[string]any{
			{"role": "A", "company": "C1", "description": "only-for-A"},
			{"role": "B", "company": "C2"},
		},
	})
	path := fmt.Sprintf("/v1/resumes/%d", id)

	w := env.do(http.MethodPut, path, token, map[string]any{
		"experience": []map[string]any{{"role": "B", "company": "C2"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	entries := updated["experience"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "B", entry["role"])
	assert.Equal(t, "C2", entry["company"])
	assert.Empty(t, entry["description"])
	assert.Equal(t, "Grace Hopper", updated["personal"].(map[string]any)["name"])

	w = env.do(http.MethodPut, path, token, map[string]any{
		"personal": map[string]any{"email": "grace@example.com"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	personal := decode(t, w)["personal"].(map[string]any)
	assert.Equal(t, "grace@example.com", personal["email"])
	assert.Empty(t, personal["name"])
}

func TestCreateResume_ValidationFailed(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("v@example.com", database.RoleUser)

	w := env.do(http.MethodPost, "/v1/resumes", token, map[string]any{
		"personal": map[string]any{"email": "not-an-email"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	fields := body["fields"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "personal.email", fields[0].(map[string]any)["field"])

	w = env.do(http.MethodPost, "/v1/resumes", token, map[string]any{"skills": "Go"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateResume_Limit(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("limit@example.com", database.RoleUser)

	env.createResume(token, map[string]any{"title": "one"})
	env.createResume(token, map[string]any{"title": "two"})

	w := env.do(http.MethodPost, "/v1/resumes", token, map[string]any{"title": "three"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResume_OtherUsersAreInvisible(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.user("owner@example.com", database.RoleUser)
	_, other := env.user("other@example.com", database.RoleUser)
	id := env.createResume(owner, map[string]any{"title": "mine"})
	path := fmt.Sprintf("/v1/resumes/%d", id)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, path, other, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, path, other, map[string]any{"title": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, path, other, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/v1/resumes/abc", owner, nil).Code)
}

func TestResume_PasswordChangeGate(t *testing.T) {
	env := newTestEnv(t)
	u := database.User{Email: "gate@example.com", PasswordHash: "x", Role: database.RoleUser, MustChangePassword: true}
	require.NoError(t, env.db.Create(&u).Error)
	pair, err := env.auth.GenerateTokenPair(identityOf(u))
	require.NoError(t, err)

	w := env.do(http.MethodGet, "/v1/resumes", pair.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRenderStatic(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("render@example.com", database.RoleUser)

	w := env.do(http.MethodPost, "/v1/render/static", token, map[string]any{
		"data":           map[string]any{"personal": map[string]any{"name": "Ada Lovelace"}, "summary": "<script>x</script>Hi"},
		"templateStyles": map[string]any{"accentColor": "#ff0000", "fontFamily": "Roboto"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	html := body["html"].(string)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "#ff0000")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "Roboto")

	w = env.do(http.MethodPost, "/v1/render/static", token, map[string]any{"templateId": "modern"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No resume data provided", decode(t, w)["error"])
}

func TestRenderPreview_ReturnsTree(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("preview@example.com", database.RoleUser)
	id := env.createResume(token, map[string]any{"personal": map[string]any{"name": "Grace Hopper"}, "skills": []string{"COBOL"}})

	w := env.do(http.MethodPost, fmt.Sprintf("/v1/resumes/%d/preview", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Grace Hopper")
	assert.Contains(t, w.Body.String(), "COBOL")
}

func TestExportHTML(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("html@example.com", database.RoleUser)
	id := env.createResume(token, map[string]any{"personal": map[string]any{"name": "Alan Turing"}})

	w := env.do(http.MethodGet, fmt.Sprintf("/v1/resumes/%d/export/html", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Alan Turing")
}

func TestExportPDF_AndDownloadLink(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.user("pdf@example.com", database.RoleUser)
	id := env.createResume(token, map[string]any{"personal": map[string]any{"name": "Alan Turing"}})
	base := fmt.Sprintf("/v1/resumes/%d", id)

	w := env.do(http.MethodGet, base+"/export/link", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodPost, base+"/export/pdf", token, nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, "task-1", decode(t, w)["task_id"])
	assert.Equal(t, []string{tasks.TypePDFExport}, env.enqueuer.types())

	w = env.do(http.MethodGet, base, token, nil)
	assert.Equal(t, database.ExportStatusPending, decode(t, w)["exportStatus"])

	key := storage.NewExportKey(user.ID, id)
	require.NoError(t, env.db.Model(&database.Resume{}).Where("id = ?", id).Updates(map[string]any{
		"pdf_object_key": key,
		"export_status":  database.ExportStatusCompleted,
	}).Error)

	w = env.do(http.MethodGet, base+"/export/link", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	url := decode(t, w)["url"].(string)
	assert.Contains(t, url, key)
	assert.Contains(t, url, "Alan_Turing_Resume.pdf")
}

func TestExportPDF_EnqueueFailureKeepsPreviousExport(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.user("retry@example.com", database.RoleUser)
	id := env.createResume(token, map[string]any{"personal": map[string]any{"name": "Alan Turing"}})
	base := fmt.Sprintf("/v1/resumes/%d", id)

	key := storage.NewExportKey(user.ID, id)
	require.NoError(t, env.db.Model(&database.Resume{}).Where("id = ?", id).Updates(map[string]any{
		"pdf_object_key": key,
		"export_status":  database.ExportStatusCompleted,
	}).Error)

	env.enqueuer.err = errors.New("redis unavailable")
	w := env.do(http.MethodPost, base+"/export/pdf", token, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = env.do(http.MethodGet, base, token, nil)
	assert.Equal(t, database.ExportStatusCompleted, decode(t, w)["exportStatus"])

	w = env.do(http.MethodGet, base+"/export/link", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode(t, w)["url"].(string), key)
}
