package kratos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIdentityID = "5f0c8b52-3f9d-4a8e-9c1c-2b8f6f0d9a11"

func identityJSON(id, email, role string) map[string]interface{} {
	return map[string]interface{}{
		"id":         id,
		"schema_id":  "admin",
		"schema_url": "http://kratos/schemas/admin",
		"traits":     map[string]interface{}{"email": email},
		"metadata_public": map[string]interface{}{
			MetadataFullName: "Jane Roe",
			MetadataUserRole: role,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "admin", log.NewNopLogger())
}

func TestClient_CreateIdentity_Success(t *testing.T) {
	var received map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/identities", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		writeJSON(w, http.StatusCreated, identityJSON(testIdentityID, "jane@example.com", "admin"))
	})

	id, err := client.CreateIdentity(context.Background(), CreateIdentityInput{
		Email:    "jane@example.com",
		Password: "abc123",
		FullName: "Jane Roe",
		Role:     "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, testIdentityID, id)
	assert.Equal(t, "admin", received["schema_id"])
	assert.Equal(t, map[string]interface{}{"email": "jane@example.com"}, received["traits"])
	assert.Equal(t, map[string]interface{}{"full_name": "Jane Roe", "user_role": "admin"}, received["metadata_public"])

	credentials := received["credentials"].(map[string]interface{})
	password := credentials["password"].(map[string]interface{})["config"].(map[string]interface{})
	assert.Equal(t, "abc123", password["password"])
}

func TestClient_CreateIdentity_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantReason string
	}{
		{"邮箱已存在", http.StatusConflict, xerrors.ReasonDuplicateIdentity},
		{"密码策略不通过", http.StatusBadRequest, xerrors.ReasonPolicyViolation},
		{"Kratos 内部错误", http.StatusInternalServerError, xerrors.ReasonUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]interface{}{
					"error": map[string]interface{}{"code": tt.status, "message": "rejected"},
				})
			})

			id, err := client.CreateIdentity(context.Background(), CreateIdentityInput{Email: "jane@example.com", Password: "abc123"})

			require.Error(t, err)
			assert.Empty(t, id)
			appErr, ok := xerrors.As(err)
			require.True(t, ok)
			assert.Equal(t, xerrors.CodeKratosError, appErr.Code)
			assert.Equal(t, tt.status, appErr.Metadata(xerrors.MetaKratosStatus))
			assert.Equal(t, tt.wantReason, xerrors.ReasonOf(err))
		})
	}
}

func TestClient_CreateIdentity_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "admin", log.NewNopLogger())
	_, err := client.CreateIdentity(context.Background(), CreateIdentityInput{Email: "jane@example.com", Password: "abc123"})

	require.Error(t, err)
	assert.Equal(t, xerrors.ReasonUnavailable, xerrors.ReasonOf(err))
}

func TestClient_CreateIdentity_InvalidID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, identityJSON("not-a-uuid", "jane@example.com", "admin"))
	})

	_, err := client.CreateIdentity(context.Background(), CreateIdentityInput{Email: "jane@example.com", Password: "abc123"})

	require.Error(t, err)
	appErr, ok := xerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, xerrors.CodeDataIntegrityError, appErr.Code)
	assert.Equal(t, xerrors.ReasonInvalidResponse, xerrors.ReasonOf(err))
}

func TestClient_DeleteIdentity(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"删除成功", http.StatusNoContent, false},
		{"身份不存在", http.StatusNotFound, false},
		{"Kratos 不可用", http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/admin/identities/"+testIdentityID, r.URL.Path)
				if tt.status == http.StatusNoContent {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, map[string]interface{}{
					"error": map[string]interface{}{"code": tt.status, "message": "failed"},
				})
			})

			err := client.DeleteIdentity(context.Background(), testIdentityID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_ListIdentitiesByRole_Paginates(t *testing.T) {
	const otherID = "0a6e9d0b-8d5f-4f0e-b0d8-7b3e1f1c2d44"
	const thirdID = "c3b1a2d4-1111-4a2b-9c3d-5e6f7a8b9c0d"
	calls := 0
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/admin/identities", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page_size"))
		if r.URL.Query().Get("page_token") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/identities?page_size=2&page_token=next-1>; rel="next"`, serverURL))
			writeJSON(w, http.StatusOK, []interface{}{
				identityJSON(testIdentityID, "jane@example.com", "admin"),
				identityJSON(otherID, "student@example.com", "student"),
			})
			return
		}
		assert.Equal(t, "next-1", r.URL.Query().Get("page_token"))
		third := identityJSON(thirdID, "ops@example.com", "admin")
		third["created_at"] = "2024-06-01T12:00:00Z"
		writeJSON(w, http.StatusOK, []interface{}{third})
	}))
	serverURL = server.URL
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "admin", log.NewNopLogger())
	identities, err := client.ListIdentitiesByRole(context.Background(), "admin", 2)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, identities, 2)
	assert.Equal(t, testIdentityID, identities[0].ID)
	assert.Equal(t, "jane@example.com", identities[0].Email)
	assert.Equal(t, "Jane Roe", identities[0].FullName)
	assert.Equal(t, thirdID, identities[1].ID)
	assert.True(t, identities[0].CreatedAt.IsZero())
	assert.True(t, identities[1].CreatedAt.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
}

func TestNextPageToken(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"包含 next 链接", `<http://kratos/admin/identities?page_token=abc>; rel="next"`, "abc"},
		{"first 与 next 同时存在", `<http://kratos/admin/identities?page_token=f>; rel="first",<http://kratos/admin/identities?page_token=n>; rel="next"`, "n"},
		{"只有 first 链接", `<http://kratos/admin/identities?page_token=f>; rel="first"`, ""},
		{"没有 Link 头", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.link != "" {
				resp.Header.Set("Link", tt.link)
			}
			assert.Equal(t, tt.want, nextPageToken(resp))
		})
	}
}
