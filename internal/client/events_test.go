package client

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

func TestEventsClient_CreateGetDelete(t *testing.T) {
	t.Parallel()

	var stored map[string]interface{}

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPost, "/event/events", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&stored)
		stored["id"] = "e1"
		writeJSON(w, http.StatusCreated, stored)
	})
	tenant.handle(http.MethodGet, "/event/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stored)
	})
	tenant.handle(http.MethodDelete, "/event/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := tenant.client(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	create := &c8y.EventCreate{Type: "c8y_DoorOpened", Text: "Door opened", Time: at, Source: c8y.Source("42")}
	require.NoError(t, create.Fragments.Set("c8y_Door", map[string]string{"id": "front"}))

	created, err := client.Events().Create(ctx, create)
	require.NoError(t, err)
	assert.Equal(t, "e1", created.ID)

	event, err := client.Events().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Door opened", event.Text)
	require.NotNil(t, event.Time)
	assert.True(t, at.Equal(*event.Time))
	assert.Equal(t, "42", event.Source.ID)
	assert.True(t, event.Fragments.Has("c8y_Door"))

	err = client.Events().Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "/event/events/e1", tenant.lastRequest(t).Path)
}

func TestEventsClient_ListTimeRange(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodGet, "/event/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"events": []interface{}{}})
	})

	client := tenant.client(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	collection, err := client.Events().List(context.Background(), &c8y.EventListParams{
		Source:   c8y.String("42"),
		DateFrom: c8y.Time(from),
		Revert:   c8y.Bool(true),
	})
	require.NoError(t, err)
	assert.Empty(t, collection.Events)
	assert.Equal(t, "source=42&dateFrom=2024-05-01T00%3A00%3A00.000Z&revert=true", tenant.lastRequest(t).RawQuery)
}

func TestEventBinariesClient(t *testing.T) {
	t.Parallel()

	var attachment []byte

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPost, "/event/events/{id}/binaries", func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			writeServerError(w, http.StatusBadRequest, "event/invalidBody", err.Error())

			return
		}

		reader := multipart.NewReader(r.Body, params["boundary"])

		for {
			part, err := reader.NextPart()
			if err != nil {
				break
			}

			if part.FormName() == "file" {
				attachment, _ = io.ReadAll(part)
			}
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"name":   "photo.jpg",
			"type":   "image/jpeg",
			"length": len(attachment),
			"source": "e1",
		})
	})
	tenant.handle(http.MethodGet, "/event/events/{id}/binaries", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(attachment)
	})
	tenant.handle(http.MethodPut, "/event/events/{id}/binaries", func(w http.ResponseWriter, r *http.Request) {
		attachment, _ = io.ReadAll(r.Body)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"name":   "photo.jpg",
			"type":   r.Header.Get("Content-Type"),
			"length": len(attachment),
			"source": "e1",
		})
	})
	tenant.handle(http.MethodDelete, "/event/events/{id}/binaries", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := tenant.client(t)
	ctx := context.Background()
	content := []byte{0xff, 0xd8, 0xff, 0xe0}

	binary, err := client.EventBinaries().Upload(ctx, "e1", "photo.jpg", "image/jpeg", content)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), binary.Length)
	assert.Equal(t, "e1", binary.Source)

	downloaded, err := client.EventBinaries().Download(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, content, downloaded)

	emptied, err := client.EventBinaries().Replace(ctx, "e1", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), emptied.Length)
	assert.Equal(t, c8y.MediaTypeOctetStream, emptied.Type)

	require.NoError(t, client.EventBinaries().Delete(ctx, "e1"))
}

func TestOperationsClient(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodPost, "/devicecontrol/operations", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		doc["id"] = "op1"
		doc["status"] = "PENDING"
		writeJSON(w, http.StatusCreated, doc)
	})
	tenant.handle(http.MethodPut, "/devicecontrol/operations/{id}", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		doc["id"] = "op1"
		writeJSON(w, http.StatusOK, doc)
	})
	tenant.handle(http.MethodGet, "/devicecontrol/operations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"operations": []interface{}{}})
	})

	client := tenant.client(t)
	ctx := context.Background()

	create := &c8y.OperationCreate{DeviceID: "42", Description: "Restart device"}
	require.NoError(t, create.Fragments.Set("c8y_Restart", map[string]interface{}{}))

	operation, err := client.Operations().Create(ctx, create)
	require.NoError(t, err)
	assert.Equal(t, c8y.OperationStatusPending, operation.Status)
	assert.True(t, operation.Fragments.Has("c8y_Restart"))

	updated, err := client.Operations().Update(ctx, operation.ID, &c8y.OperationUpdate{
		Status:        c8y.OperationStatusFailed,
		FailureReason: c8y.String("device offline"),
	})
	require.NoError(t, err)
	assert.Equal(t, c8y.OperationStatusFailed, updated.Status)
	assert.Equal(t, "device offline", updated.FailureReason)

	pending := c8y.OperationStatusPending

	_, err = client.Operations().List(ctx, &c8y.OperationListParams{DeviceID: c8y.String("42"), Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, "deviceId=42&status=PENDING", tenant.lastRequest(t).RawQuery)
}

func TestExternalIDsClient(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.handle(http.MethodGet, "/identity/externalIds/{type}/{externalId}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"externalId":    "SN 0001/A",
			"type":          "c8y_Serial",
			"managedObject": map[string]string{"id": "42"},
		})
	})
	tenant.handle(http.MethodPost, "/identity/globalIds/{id}/externalIds", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&doc)
		doc["managedObject"] = map[string]string{"id": "42"}
		writeJSON(w, http.StatusCreated, doc)
	})

	client := tenant.client(t)
	ctx := context.Background()

	identity, err := client.ExternalIDs().Get(ctx, "c8y_Serial", "SN 0001/A")
	require.NoError(t, err)
	assert.Equal(t, "42", identity.ManagedObject.ID)
	assert.Equal(t, "/identity/externalIds/c8y_Serial/SN%200001%2FA", tenant.lastRequest(t).RawPath)

	created, err := client.ExternalIDs().Create(ctx, "42", &c8y.ExternalIDCreate{ExternalID: "imei-1", Type: "c8y_IMEI"})
	require.NoError(t, err)
	assert.Equal(t, "imei-1", created.ExternalID)
	assert.Equal(t, "42", created.ManagedObject.ID)
}
