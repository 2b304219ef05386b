package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

func TestTenantOptionsClient_PathEscaping(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodGet, "/tenant/options/{category}/{key}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		writeJSON(w, http.StatusOK, map[string]string{
			"category": vars["category"],
			"key":      vars["key"],
			"value":    "on",
		})
	})

	client := tenant.client(t)

	option, err := client.TenantOptions().Get(context.Background(), "access.control", "allow/origin")
	require.NoError(t, err)
	assert.Equal(t, "on", option.Value)
	assert.Equal(t, "allow%2Forigin", option.Key)
	assert.Equal(t, "/tenant/options/access.control/allow%2Forigin", tenant.lastRequest(t).RawPath)
}

func TestTenantOptionsClient_EmptyKey(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	client := tenant.client(t)

	err := client.TenantOptions().Delete(context.Background(), "alarm.type.mapping", "")
	require.ErrorIs(t, err, c8y.ErrInvalidRequest)
	require.ErrorIs(t, err, c8y.ErrMissingPathParameter)
	assert.Zero(t, tenant.requestCount())
}

func TestTenantOptionsClient_CreateUpdate(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPost, "/tenant/options", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		writeJSON(w, http.StatusCreated, doc)
	})
	tenant.handle(http.MethodPut, "/tenant/options/{category}/{key}", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		doc["category"] = mux.Vars(r)["category"]
		doc["key"] = mux.Vars(r)["key"]
		writeJSON(w, http.StatusOK, doc)
	})

	client := tenant.client(t)
	ctx := context.Background()

	created, err := client.TenantOptions().Create(ctx, &c8y.TenantOptionCreate{Category: "alarm.type.mapping", Key: "c8y_Overheat", Value: "CRITICAL|"})
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL|", created.Value)

	updated, err := client.TenantOptions().Update(ctx, "alarm.type.mapping", "c8y_Overheat", &c8y.TenantOptionUpdate{Value: "MAJOR|"})
	require.NoError(t, err)
	assert.Equal(t, "MAJOR|", updated.Value)
	assert.JSONEq(t, `{"value":"MAJOR|"}`, string(tenant.lastRequest(t).Body))
	assert.Equal(t, c8y.MediaTypeOption, tenant.lastRequest(t).Header.Get("Content-Type"))
}

func TestCurrentUserClient_UpdatePassword(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPut, "/user/currentUser/password", func(w http.ResponseWriter, r *http.Request) {
		var change map[string]string
		_ = json.NewDecoder(r.Body).Decode(&change)

		if change["currentUserPassword"] != "secret" {
			writeServerError(w, http.StatusUnauthorized, "security/Unauthorized", "Invalid credentials")

			return
		}

		w.WriteHeader(http.StatusOK)
	})

	client := tenant.client(t)
	ctx := context.Background()

	err := client.CurrentUser().UpdatePassword(ctx, &c8y.PasswordChange{CurrentUserPassword: "secret", NewPassword: "n3w-Secret!"})
	require.NoError(t, err)

	err = client.CurrentUser().UpdatePassword(ctx, &c8y.PasswordChange{CurrentUserPassword: "wrong", NewPassword: "x"})
	require.Error(t, err)
	assert.True(t, c8y.IsUnauthorized(err))
}

func TestCurrentTenantClient_Get(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodGet, "/tenant/currentTenant", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"name":       "t100",
			"domainName": "demo.cumulocity.com",
			"parent":     "management",
		})
	})

	client := tenant.client(t)

	current, err := client.CurrentTenant().Get(context.Background(), &c8y.CurrentTenantParams{WithParent: c8y.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, "t100", current.Name)
	assert.Equal(t, "management", current.Parent)
	assert.Equal(t, "withParent=true", tenant.lastRequest(t).RawQuery)
}

func TestAuditRecordsClient_Create(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPost, "/audit/auditRecords", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		doc["id"] = "a1"
		writeJSON(w, http.StatusCreated, doc)
	})

	client := tenant.client(t)

	record, err := client.AuditRecords().Create(context.Background(), &c8y.AuditRecordCreate{
		Type:     "Inventory",
		Activity: "Device configured",
		Text:     "Configuration pushed",
		Source:   c8y.Source("42"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", record.ID)
	assert.Equal(t, "Device configured", record.Activity)
}
